package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// visitBlock visits every statement of a block in syntactic order (§5
// ordering guarantee).
func (c *Checker) visitBlock(block *ast.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		c.visitStatement(stmt)
	}
}

func (c *Checker) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.typeOf(s.Expression)
	case *ast.VariableDeclarationStatement:
		c.visitVariableDeclaration(s)
	case *ast.IfStatement:
		c.visitIfStatement(s)
	case *ast.WhileStatement:
		c.visitWhileStatement(s)
	case *ast.ForStatement:
		c.visitForStatement(s)
	case *ast.ForEachStatement:
		c.visitForEachStatement(s)
	case *ast.ReturnStatement:
		if s.Value != nil {
			c.typeOf(s.Value)
		}
	case *ast.Block:
		c.visitBlock(s)
	}
}

// visitVariableDeclaration types the initializer (if any) and stamps the
// variable's own INFERRED_TYPE / DECLARATION_INFERRED_TYPE. A declared
// (non-`def`) type is authoritative for INFERRED_TYPE; a `def` variable
// takes its initializer's type, matching the source's "narrow declared
// type wins, widened LUB recorded separately" open question (§9).
func (c *Checker) visitVariableDeclaration(decl *ast.VariableDeclarationStatement) {
	var declaredType *types.Type
	if decl.DeclaredType != nil {
		declaredType = c.resolveTypeRef(decl.DeclaredType)
	}

	var valueType *types.Type
	if decl.Value != nil {
		valueType = c.typeOf(decl.Value)
		if declaredType != nil {
			c.checkAssignable(decl.Variable, declaredType, decl.Value, valueType)
		}
	}

	resultType := declaredType
	if resultType == nil {
		resultType = valueType
	}
	if resultType == nil {
		resultType = c.objectType
	}

	c.stampVariable(decl.Variable, resultType)
	c.trackAssignment(decl.Variable.Identity(), resultType)
}

// stampVariable records t as both the variable reference's own inferred
// type and (widened via LUB against whatever was there before) its
// declaration's widened type.
func (c *Checker) stampVariable(v *ast.VariableExpression, t *types.Type) {
	meta := v.Meta()
	if prior := meta.Get(ast.InferredType); prior != nil {
		widened := types.LUB(c.objectType, prior.(*types.Type), t)
		meta.Set(ast.DeclarationInferredType, widened)
	} else {
		meta.Set(ast.DeclarationInferredType, t)
	}
	meta.Set(ast.InferredType, t)
}

// visitIfStatement implements the flow-sensitive refinement + branch-join
// rules of §4.F: the then-branch runs under a fresh instanceof-refinement
// frame and a fresh assignment tracker; on exit every variable assigned
// in either branch is joined via LUB and written back.
func (c *Checker) visitIfStatement(stmt *ast.IfStatement) {
	savedTracker := c.pushAssignmentTracker()

	c.pushBranchFrame()
	c.typeOf(stmt.Condition)
	c.visitBlock(stmt.Then)
	c.popBranchFrame()

	switch e := stmt.Else.(type) {
	case *ast.Block:
		c.visitBlock(e)
	case *ast.IfStatement:
		c.visitIfStatement(e)
	}

	finished := c.popAssignmentTracker(savedTracker)
	c.joinAndWriteBack(finished)
}

func (c *Checker) visitWhileStatement(stmt *ast.WhileStatement) {
	savedTracker := c.pushAssignmentTracker()
	c.pushBranchFrame()
	c.typeOf(stmt.Condition)
	c.visitBlock(stmt.Body)
	c.popBranchFrame()
	finished := c.popAssignmentTracker(savedTracker)
	c.joinAndWriteBack(finished)
}

func (c *Checker) visitForStatement(stmt *ast.ForStatement) {
	if stmt.Init != nil {
		c.visitStatement(stmt.Init)
	}
	if stmt.Condition != nil {
		c.typeOf(stmt.Condition)
	}
	if stmt.Update != nil {
		c.typeOf(stmt.Update)
	}
	savedTracker := c.pushAssignmentTracker()
	c.visitBlock(stmt.Body)
	finished := c.popAssignmentTracker(savedTracker)
	c.joinAndWriteBack(finished)
}

// visitForEachStatement infers the loop variable's element type from the
// iterable and makes it available to the body via forLoopVariableTypes
// (§3), matching the source's for-each element-type propagation.
func (c *Checker) visitForEachStatement(stmt *ast.ForEachStatement) {
	iterableType := c.typeOf(stmt.Iterable)
	elementType := c.elementTypeOf(iterableType)
	if stmt.DeclaredType != nil {
		elementType = c.resolveTypeRef(stmt.DeclaredType)
	}
	c.forLoopVariableTypes[stmt.Variable] = elementType
	c.stampVariable(stmt.Variable, elementType)
	defer delete(c.forLoopVariableTypes, stmt.Variable)

	savedTracker := c.pushAssignmentTracker()
	c.visitBlock(stmt.Body)
	finished := c.popAssignmentTracker(savedTracker)
	c.joinAndWriteBack(finished)
}

// joinAndWriteBack applies §4.F's branch-join: for every variable
// touched in the closed tracker frame, its post-construct type becomes
// LUB(all recorded types), written back onto the variable's most recent
// reference metadata.
func (c *Checker) joinAndWriteBack(frame assignmentTracker) {
	for key, ts := range frame {
		joined := types.LUB(c.objectType, ts...)
		if v, ok := key.(*ast.VariableExpression); ok {
			c.stampVariable(v, joined)
		}
	}
}

// elementTypeOf returns a container type's element type: the array
// component type, the sole generic argument of a List/Range, or Object
// when neither is available (mirrors inferComponentType in the source).
func (c *Checker) elementTypeOf(t *types.Type) *types.Type {
	if t == nil {
		return c.objectType
	}
	if t.IsArray() {
		return t.ComponentType
	}
	if len(t.GenericArgs) == 1 {
		return t.GenericArgs[0]
	}
	return c.objectType
}
