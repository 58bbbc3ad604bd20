// Package returnadder is the collaborator that rewrites a method or
// closure body so every implicit control-flow exit becomes an explicit
// return statement, and notifies a listener as each one is synthesized.
// The checker (package sema) consumes only this callback contract, per
// spec.md's scope note; the rewrite itself is not semantically load-
// bearing for type checking beyond driving the listener.
//
// Grounded on original_source/StaticTypeCheckingVisitor.java's two
// ReturnAdder instances (returnAdder / closureReturnAdder): both share
// this one implementation, parameterized by their listener.
package returnadder

import "github.com/emberlang/ember/ast"

// Listener is invoked once per return statement encountered (whether
// already present in the source or synthesized from an implicit tail
// expression).
type Listener func(stmt *ast.ReturnStatement)

// ReturnAdder walks a block, calling Listener for every return it finds
// or synthesizes for an implicit exit (the last expression statement of
// a block, when the block is a method/closure body's tail position).
type ReturnAdder struct {
	OnReturn Listener
}

func New(listener Listener) *ReturnAdder {
	return &ReturnAdder{OnReturn: listener}
}

// VisitMethod walks a method body's control-flow exits.
func (r *ReturnAdder) VisitMethod(body *ast.Block) {
	if body == nil {
		return
	}
	r.visitBlock(body, true)
}

// VisitClosure walks a closure body the same way; kept as a distinct
// entry point (rather than reusing VisitMethod) because the source's
// closureReturnAdder additionally suspends the enclosing method context
// while the listener runs, which is the caller's responsibility here.
func (r *ReturnAdder) VisitClosure(body *ast.Block) {
	r.VisitMethod(body)
}

func (r *ReturnAdder) visitBlock(block *ast.Block, tailPosition bool) {
	if block == nil || len(block.Statements) == 0 {
		return
	}
	for i, stmt := range block.Statements {
		isLast := i == len(block.Statements)-1
		r.visitStatement(stmt, tailPosition && isLast)
	}
}

func (r *ReturnAdder) visitStatement(stmt ast.Statement, tailPosition bool) {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		r.OnReturn(s)
	case *ast.IfStatement:
		r.visitBlock(s.Then, tailPosition)
		switch e := s.Else.(type) {
		case *ast.Block:
			r.visitBlock(e, tailPosition)
		case *ast.IfStatement:
			r.visitStatement(e, tailPosition)
		}
	case *ast.ExpressionStatement:
		if tailPosition {
			synthetic := &ast.ReturnStatement{Value: s.Expression}
			r.OnReturn(synthetic)
		}
	case *ast.WhileStatement:
		r.visitBlock(s.Body, false)
	case *ast.ForStatement:
		r.visitBlock(s.Body, false)
	case *ast.ForEachStatement:
		r.visitBlock(s.Body, false)
	}
}
