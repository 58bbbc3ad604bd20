package binder

import "github.com/emberlang/ember/ast"

// SymbolTable is a stack of lexical scopes mapping a name to the
// declaration it resolves to. It stands in for the out-of-scope
// name-resolution pass: a real front end would populate one of these
// while parsing and use it to stamp every VariableExpression's Binding
// and AccessedVariable fields before handing the tree to the checker.
//
// Grounded on onflow-cadence's runtime/activations.Activations: a slice
// of scope frames pushed/popped in lockstep with lexical blocks, most
// specific frame last.
type SymbolTable struct {
	scopes []map[string]*ast.VariableExpression
}

// NewSymbolTable starts with one top-level (class-body) scope open.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]*ast.VariableExpression{{}}}
}

// Push enters a new lexical scope (method body, block, closure).
func (t *SymbolTable) Push() {
	t.scopes = append(t.scopes, map[string]*ast.VariableExpression{})
}

// Pop exits the innermost scope.
func (t *SymbolTable) Pop() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Declare binds name to decl in the innermost open scope.
func (t *SymbolTable) Declare(name string, decl *ast.VariableExpression) {
	if len(t.scopes) == 0 {
		t.Push()
	}
	t.scopes[len(t.scopes)-1][name] = decl
}

// Find looks up name from the innermost scope outward, returning nil if
// no enclosing scope declares it (the caller then treats the reference
// as dynamic, per ast.BindingDynamic).
func (t *SymbolTable) Find(name string) *ast.VariableExpression {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if decl, ok := t.scopes[i][name]; ok {
			return decl
		}
	}
	return nil
}

// Depth reports how many scopes are currently open.
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}
