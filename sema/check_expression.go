package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// typeOf is the expression typer's dispatcher (§4.B): every expression
// variant computes a result type here, which is always stamped onto
// INFERRED_TYPE before returning, satisfying the invariant of §8 that no
// visited expression is left untyped.
func (c *Checker) typeOf(expr ast.Expression) *types.Type {
	if expr == nil {
		return c.objectType
	}

	var result *types.Type
	switch e := expr.(type) {
	case *ast.IntLiteral:
		result = c.universe.Lookup("int")
	case *ast.LongLiteral:
		result = c.universe.Lookup("long")
	case *ast.FloatLiteral:
		result = c.universe.Lookup("float")
	case *ast.DoubleLiteral:
		result = c.universe.Lookup("double")
	case *ast.BigIntegerLiteral:
		result = c.universe.Lookup("BigInteger")
	case *ast.BigDecimalLiteral:
		result = c.universe.Lookup("BigDecimal")
	case *ast.BoolLiteral:
		result = c.universe.Lookup("boolean")
	case *ast.NullLiteral:
		result = types.UnknownParameterMarker
	case *ast.StringLiteral:
		if e.Interpolated {
			result = c.universe.Lookup("GString")
		} else {
			result = c.universe.Lookup("String")
		}
	case *ast.VariableExpression:
		result = c.typeOfVariable(e)
	case *ast.PropertyExpression:
		result = c.typeOfProperty(e)
	case *ast.IndexExpression:
		result = c.typeOfIndex(e)
	case *ast.BinaryExpression:
		result = c.typeOfBinary(e)
	case *ast.UnaryExpression:
		result = c.typeOfUnary(e)
	case *ast.ListLiteral:
		result = c.typeOfList(e)
	case *ast.MapLiteral:
		result = c.typeOfMap(e)
	case *ast.RangeLiteral:
		result = c.typeOfRange(e)
	case *ast.TernaryExpression:
		result = c.typeOfTernary(e)
	case *ast.CastExpression:
		result = c.typeOfCast(e)
	case *ast.MethodCallExpression:
		result = c.typeOfMethodCall(e)
	case *ast.ConstructorCallExpression:
		result = c.typeOfConstructorCall(e)
	case *ast.ClosureExpression:
		result = c.typeOfClosure(e)
	case *ast.TupleLiteral:
		result = c.objectType
		for _, v := range e.Elements {
			c.typeOf(v)
		}
	case *ast.SpreadExpression:
		if !c.inSpreadContext {
			c.addError(KindSpreadOperatorMisuse, e,
				"Spread operator can only be used inside a list or map literal")
		}
		saved := c.inSpreadContext
		c.inSpreadContext = false
		result = c.typeOf(e.Target)
		c.inSpreadContext = saved
	case *ast.WithExpression:
		result = c.typeOfWith(e)
	default:
		result = c.objectType
	}

	if result == nil {
		result = c.objectType
	}
	expr.Meta().Set(ast.InferredType, result)
	return result
}

// typeOfVariable implements §4.B "Variable reference": `this`/`super`
// resolve directly; a dynamic binding searches with-receivers then the
// plugin before reporting an undeclared-variable error.
func (c *Checker) typeOfVariable(v *ast.VariableExpression) *types.Type {
	switch v.Binding {
	case ast.BindingThis:
		return c.classType
	case ast.BindingSuper:
		if len(c.classType.Super) > 0 {
			return c.classType.Super[0]
		}
		return c.objectType
	case ast.BindingLocal, ast.BindingParameter, ast.BindingField:
		if refined := c.refinedCandidates(v.Identity()); len(refined) == 1 {
			return refined[0]
		}
		if t, ok := c.forLoopVariableTypes[v]; ok {
			return t
		}
		if prior := v.Meta().Get(ast.InferredType); prior != nil {
			return prior.(*types.Type)
		}
		if v.Binding == ast.BindingField {
			if field := types.FindField(c.classType, v.Name); field != nil {
				return field.Type
			}
			if prop := types.FindProperty(c.classType, v.Name); prop != nil {
				return prop.Type
			}
		}
		return c.objectType
	case ast.BindingDynamic:
		return c.resolveDynamicVariable(v)
	}
	return c.objectType
}

// resolveDynamicVariable implements the ordered fallback of §4.B: each
// with-receiver's properties then fields, then the plugin, else an
// UnknownVariable diagnostic.
func (c *Checker) resolveDynamicVariable(v *ast.VariableExpression) *types.Type {
	for i := len(c.withReceiverList) - 1; i >= 0; i-- {
		receiver := c.withReceiverList[i]
		if prop := types.FindProperty(receiver, v.Name); prop != nil {
			return prop.Type
		}
		if field := types.FindField(receiver, v.Name); field != nil {
			return field.Type
		}
	}
	if t := c.plugin.ResolveDynamicVariableType(v.Name); t != nil {
		return t
	}
	c.addError(KindUnknownVariable, v, "The variable [%s] is undeclared.", v.Name)
	return c.objectType
}

// typeOfProperty implements §4.B "Property / attribute access": array
// `.length` is always int; map/list receivers always succeed with
// Object (dynamic property sugar); otherwise the receiver type and every
// refined candidate are searched in turn.
func (c *Checker) typeOfProperty(e *ast.PropertyExpression) *types.Type {
	receiverType := c.typeOf(e.Receiver)

	if receiverType.IsArray() && e.Property == "length" {
		return c.universe.Lookup("int")
	}
	if isMapOrListName(receiverType) {
		return c.objectType
	}

	candidates := append([]*types.Type{receiverType}, c.refinementCandidatesFor(e.Receiver)...)
	for _, candidate := range candidates {
		if prop := types.FindProperty(candidate, e.Property); prop != nil {
			if prop.ReadOnly {
				return prop.Type
			}
			return prop.Type
		}
		if field := types.FindField(candidate, e.Property); field != nil {
			return field.Type
		}
	}
	if prop := c.plugin.ResolveProperty(receiverType, e.Property); prop != nil {
		return prop.Type
	}

	c.addError(KindUnknownProperty, e, "No such property: %s for class: %s", e.Property, receiverType)
	return c.objectType
}

func isMapOrListName(t *types.Type) bool {
	if t == nil {
		return false
	}
	return t.Redirect().Name == "Map" || t.Redirect().Name == "LinkedHashMap" ||
		t.Redirect().Name == "List" || t.Redirect().Name == "ArrayList"
}

// refinementCandidatesFor resolves the refinement key for an arbitrary
// receiver expression: for a variable expression it's the variable's own
// identity; for anything else (e.g. a property chain) it's the receiver
// expression's own pointer identity, mirroring the source's fallback to
// source-text-derived keys for non-variable receivers.
func (c *Checker) refinementCandidatesFor(receiver ast.Expression) []*types.Type {
	key := refinementKey(receiver)
	return c.refinedCandidates(key)
}

func refinementKey(e ast.Expression) any {
	if v, ok := e.(*ast.VariableExpression); ok {
		return v.Identity()
	}
	return e
}

// typeOfIndex implements §4.B indexing: string indexes to string, arrays
// and collections index to their element type.
func (c *Checker) typeOfIndex(e *ast.IndexExpression) *types.Type {
	receiverType := c.typeOf(e.Receiver)
	c.typeOf(e.Index)
	if receiverType.Redirect().Name == "String" {
		return receiverType
	}
	return c.elementTypeOf(receiverType)
}

// typeOfWith implements the with-receiver block: while visiting Body,
// unqualified member references first search Receiver (§3
// withReceiverList).
func (c *Checker) typeOfWith(e *ast.WithExpression) *types.Type {
	if len(e.Body.Parameters) > 1 {
		c.addError(KindWithParameterMismatch, e,
			"with block accepts at most one parameter, got %d", len(e.Body.Parameters))
	}
	receiverType := c.typeOf(e.Receiver)
	c.withReceiverList = append(c.withReceiverList, receiverType)
	savedImplicit := c.lastImplicitItType
	c.lastImplicitItType = receiverType
	defer func() {
		c.withReceiverList = c.withReceiverList[:len(c.withReceiverList)-1]
		c.lastImplicitItType = savedImplicit
	}()
	return c.typeOfClosure(e.Body)
}
