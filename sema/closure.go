package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// collectClosureSharedVariables runs the "lightweight sub-visitor" of
// §4.G once per class, before the main visit: it finds every closure
// literal in every constructor and method body and marks the free
// local/parameter variables referenced inside it as shared, so every
// assignment to them anywhere in their owning method — before or after
// the closure appears — feeds closureSharedVariablesAssignmentTypes
// (§3).
func (c *Checker) collectClosureSharedVariables(class *ast.ClassDeclaration) {
	mark := func(closure *ast.ClosureExpression) {
		params := map[string]bool{}
		for _, p := range closure.Parameters {
			params[p.Name] = true
		}
		walkBlockForVariables(closure.Body, func(v *ast.VariableExpression) {
			if params[v.Name] {
				return
			}
			if v.Binding == ast.BindingLocal || v.Binding == ast.BindingParameter {
				c.closureSharedVariables[v.Identity()] = true
			}
		})
	}
	for _, ctor := range class.Constructors {
		walkBlockForClosures(ctor.Body, mark)
	}
	for _, method := range class.Methods {
		walkBlockForClosures(method.Body, mark)
	}
}

// typeOfClosure implements §4.G: snapshot shared-variable metadata,
// visit the body under a fresh closure context and return-type
// accumulator, then restore the snapshot.
func (c *Checker) typeOfClosure(e *ast.ClosureExpression) *types.Type {
	snapshot := c.snapshotSharedVariableMetadata(e)

	savedClosure := c.closureExpression
	savedReturns := c.closureReturnTypes
	savedMethod := c.methodNode
	c.closureExpression = e
	c.closureReturnTypes = nil
	c.methodNode = nil

	for _, p := range e.Parameters {
		if p.DeclaredType != nil {
			_ = c.resolveTypeRef(p.DeclaredType)
		}
	}

	savedTracker := c.pushAssignmentTracker()
	c.visitBlock(e.Body)
	c.popAssignmentTracker(savedTracker)
	c.closureReturnAdder.VisitClosure(e.Body)

	inferredReturn := types.LUB(c.objectType, c.closureReturnTypes...)
	if inferredReturn == nil {
		inferredReturn = c.objectType
	}

	c.closureExpression = savedClosure
	c.closureReturnTypes = savedReturns
	c.methodNode = savedMethod

	c.restoreSharedVariableMetadata(snapshot)

	closureType := c.universe.Lookup("Closure")
	e.Meta().Set(ast.InferredReturnType, inferredReturn)
	return c.universe.Parameterize(closureType, inferredReturn)
}

// onClosureReturn is the listener for closureReturnAdder: it suspends
// the enclosing method context (already nil while visiting the closure
// body) and folds the return expression's type into closureReturnTypes,
// mirroring original_source's closureReturnAdder listener.
func (c *Checker) onClosureReturn(stmt *ast.ReturnStatement) {
	if stmt.Value == nil {
		return
	}
	if _, isNull := stmt.Value.(*ast.NullLiteral); isNull {
		return
	}
	if c.closureExpression == nil {
		return
	}
	c.closureReturnTypes = append(c.closureReturnTypes, c.typeOf(stmt.Value))
}

type sharedVarSnapshot struct {
	v      *ast.VariableExpression
	values [5]any
}

func (c *Checker) snapshotSharedVariableMetadata(e *ast.ClosureExpression) []sharedVarSnapshot {
	var snapshots []sharedVarSnapshot
	walkBlockForVariables(e.Body, func(v *ast.VariableExpression) {
		if !c.closureSharedVariables[v.Identity()] {
			return
		}
		var s sharedVarSnapshot
		s.v = v
		for m := ast.InferredType; m <= ast.DirectMethodCallTarget; m++ {
			s.values[m] = v.Meta().Get(m)
		}
		snapshots = append(snapshots, s)
		v.Meta().Set(ast.InferredType, nil)
	})
	return snapshots
}

func (c *Checker) restoreSharedVariableMetadata(snapshots []sharedVarSnapshot) {
	for _, s := range snapshots {
		for m := ast.InferredType; m <= ast.DirectMethodCallTarget; m++ {
			s.v.Meta().Set(m, s.values[m])
		}
	}
}

// PerformSecondPass implements §4.G's "Second pass" and §6's "Exposed to
// callers" entry point: every deferred call whose receiver was a
// closure-shared variable assigned ≥2 distinct types is re-resolved
// against the LUB of every type it was ever assigned; a non-singleton
// result is reported. Callers invoke this once, after VisitClass
// returns.
func (c *Checker) PerformSecondPass() {
	for _, deferred := range c.secondPassExpressions {
		assigned := c.closureSharedVariablesAssignmentTypes[deferred.sharedVariable]
		if len(uniqueTypes(assigned)) < 2 {
			continue
		}
		lub := types.LUB(c.objectType, assigned...)
		results := c.findMethod(lub, deferred.call.calleeName, deferred.formalArgTypes)
		if len(results) != 1 {
			c.addError(KindClosureSharedVariableNotOnLUB, deferred.call.node,
				"A closure shared variable has been assigned with various types and the method %s does not exist in the lowest upper bound of those types: %s",
				deferred.call.calleeName, lub)
		}
	}
}

func uniqueTypes(ts []*types.Type) []*types.Type {
	seen := map[string]bool{}
	var out []*types.Type
	for _, t := range ts {
		if t == nil || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out
}

// --- minimal free-standing AST walkers, used only for closure-shared-
// variable discovery: they visit every node reachable from a block
// without computing types.

func walkBlockForClosures(b *ast.Block, onClosure func(*ast.ClosureExpression)) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		walkStatementForClosures(stmt, onClosure)
	}
}

func walkStatementForClosures(stmt ast.Statement, onClosure func(*ast.ClosureExpression)) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		walkExpressionForClosures(s.Expression, onClosure)
	case *ast.VariableDeclarationStatement:
		if s.Value != nil {
			walkExpressionForClosures(s.Value, onClosure)
		}
	case *ast.IfStatement:
		walkExpressionForClosures(s.Condition, onClosure)
		walkBlockForClosures(s.Then, onClosure)
		switch e := s.Else.(type) {
		case *ast.Block:
			walkBlockForClosures(e, onClosure)
		case *ast.IfStatement:
			walkStatementForClosures(e, onClosure)
		}
	case *ast.WhileStatement:
		walkExpressionForClosures(s.Condition, onClosure)
		walkBlockForClosures(s.Body, onClosure)
	case *ast.ForStatement:
		if s.Init != nil {
			walkStatementForClosures(s.Init, onClosure)
		}
		if s.Condition != nil {
			walkExpressionForClosures(s.Condition, onClosure)
		}
		if s.Update != nil {
			walkExpressionForClosures(s.Update, onClosure)
		}
		walkBlockForClosures(s.Body, onClosure)
	case *ast.ForEachStatement:
		walkExpressionForClosures(s.Iterable, onClosure)
		walkBlockForClosures(s.Body, onClosure)
	case *ast.ReturnStatement:
		if s.Value != nil {
			walkExpressionForClosures(s.Value, onClosure)
		}
	case *ast.Block:
		walkBlockForClosures(s, onClosure)
	}
}

func walkExpressionForClosures(expr ast.Expression, onClosure func(*ast.ClosureExpression)) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.ClosureExpression:
		onClosure(e)
		walkBlockForClosures(e.Body, onClosure)
	case *ast.BinaryExpression:
		walkExpressionForClosures(e.Left, onClosure)
		walkExpressionForClosures(e.Right, onClosure)
	case *ast.UnaryExpression:
		walkExpressionForClosures(e.Operand, onClosure)
	case *ast.TernaryExpression:
		walkExpressionForClosures(e.Condition, onClosure)
		walkExpressionForClosures(e.IfTrue, onClosure)
		walkExpressionForClosures(e.IfFalse, onClosure)
	case *ast.PropertyExpression:
		walkExpressionForClosures(e.Receiver, onClosure)
	case *ast.IndexExpression:
		walkExpressionForClosures(e.Receiver, onClosure)
		walkExpressionForClosures(e.Index, onClosure)
	case *ast.MethodCallExpression:
		walkExpressionForClosures(e.Receiver, onClosure)
		for _, a := range e.Arguments {
			walkExpressionForClosures(a.Value, onClosure)
		}
	case *ast.ConstructorCallExpression:
		for _, a := range e.Arguments {
			walkExpressionForClosures(a.Value, onClosure)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			walkExpressionForClosures(el, onClosure)
		}
	case *ast.MapLiteral:
		for _, entry := range e.Entries {
			walkExpressionForClosures(entry.Key, onClosure)
			walkExpressionForClosures(entry.Value, onClosure)
		}
	case *ast.RangeLiteral:
		walkExpressionForClosures(e.From, onClosure)
		walkExpressionForClosures(e.To, onClosure)
	case *ast.CastExpression:
		walkExpressionForClosures(e.Target, onClosure)
	case *ast.SpreadExpression:
		walkExpressionForClosures(e.Target, onClosure)
	case *ast.WithExpression:
		walkExpressionForClosures(e.Receiver, onClosure)
		walkExpressionForClosures(e.Body, onClosure)
	}
}

// walkBlockForVariables visits every VariableExpression reachable from b,
// descending into nested closure bodies (via walkExpressionForVariables'
// ClosureExpression case) exactly once.
func walkBlockForVariables(b *ast.Block, onVar func(*ast.VariableExpression)) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		walkStatementForVariables(stmt, onVar)
	}
}

func walkStatementForVariables(stmt ast.Statement, onVar func(*ast.VariableExpression)) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		walkExpressionForVariables(s.Expression, onVar)
	case *ast.VariableDeclarationStatement:
		onVar(s.Variable)
		if s.Value != nil {
			walkExpressionForVariables(s.Value, onVar)
		}
	case *ast.IfStatement:
		walkExpressionForVariables(s.Condition, onVar)
		walkBlockForVariables(s.Then, onVar)
		switch e := s.Else.(type) {
		case *ast.Block:
			walkBlockForVariables(e, onVar)
		case *ast.IfStatement:
			walkStatementForVariables(e, onVar)
		}
	case *ast.WhileStatement:
		walkExpressionForVariables(s.Condition, onVar)
		walkBlockForVariables(s.Body, onVar)
	case *ast.ForEachStatement:
		onVar(s.Variable)
		walkExpressionForVariables(s.Iterable, onVar)
		walkBlockForVariables(s.Body, onVar)
	case *ast.ForStatement:
		if s.Init != nil {
			walkStatementForVariables(s.Init, onVar)
		}
		if s.Condition != nil {
			walkExpressionForVariables(s.Condition, onVar)
		}
		if s.Update != nil {
			walkExpressionForVariables(s.Update, onVar)
		}
		walkBlockForVariables(s.Body, onVar)
	case *ast.ReturnStatement:
		if s.Value != nil {
			walkExpressionForVariables(s.Value, onVar)
		}
	case *ast.Block:
		walkBlockForVariables(s, onVar)
	}
}

func walkExpressionForVariables(expr ast.Expression, onVar func(*ast.VariableExpression)) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.VariableExpression:
		onVar(e)
	case *ast.BinaryExpression:
		walkExpressionForVariables(e.Left, onVar)
		walkExpressionForVariables(e.Right, onVar)
	case *ast.UnaryExpression:
		walkExpressionForVariables(e.Operand, onVar)
	case *ast.TernaryExpression:
		walkExpressionForVariables(e.Condition, onVar)
		walkExpressionForVariables(e.IfTrue, onVar)
		walkExpressionForVariables(e.IfFalse, onVar)
	case *ast.PropertyExpression:
		walkExpressionForVariables(e.Receiver, onVar)
	case *ast.IndexExpression:
		walkExpressionForVariables(e.Receiver, onVar)
		walkExpressionForVariables(e.Index, onVar)
	case *ast.MethodCallExpression:
		walkExpressionForVariables(e.Receiver, onVar)
		for _, a := range e.Arguments {
			walkExpressionForVariables(a.Value, onVar)
		}
	case *ast.ConstructorCallExpression:
		for _, a := range e.Arguments {
			walkExpressionForVariables(a.Value, onVar)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			walkExpressionForVariables(el, onVar)
		}
	case *ast.MapLiteral:
		for _, entry := range e.Entries {
			walkExpressionForVariables(entry.Key, onVar)
			walkExpressionForVariables(entry.Value, onVar)
		}
	case *ast.RangeLiteral:
		walkExpressionForVariables(e.From, onVar)
		walkExpressionForVariables(e.To, onVar)
	case *ast.CastExpression:
		walkExpressionForVariables(e.Target, onVar)
	case *ast.ClosureExpression:
		walkBlockForVariables(e.Body, onVar)
	case *ast.SpreadExpression:
		walkExpressionForVariables(e.Target, onVar)
	case *ast.TupleLiteral:
		for _, el := range e.Elements {
			onVar(el)
		}
	case *ast.WithExpression:
		walkExpressionForVariables(e.Receiver, onVar)
		walkExpressionForVariables(e.Body, onVar)
	}
}
