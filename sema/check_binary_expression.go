package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// typeOfBinary implements §4.B "Binary operation": dispatch on operator
// class, delegating assignment to the assignment checker (§4.C) and
// instanceof to the refinement frame (§4.F).
func (c *Checker) typeOfBinary(e *ast.BinaryExpression) *types.Type {
	if e.Operator == ast.OpAssign {
		return c.checkAssignmentExpression(e)
	}

	leftType := c.typeOf(e.Left)

	if e.Operator == ast.OpInstanceOf {
		rightType := c.typeOfInstanceOfTarget(e.Right)
		c.refine(refinementKey(e.Left), rightType)
		return c.universe.Lookup("boolean")
	}

	rightType := c.typeOf(e.Right)

	if e.Operator == ast.OpRegexFind {
		return c.universe.Lookup("Matcher")
	}

	group, isFixed := operatorGroup(e.Operator)
	if isFixed {
		if result, ok := types.Promote(c.universe, leftType, rightType, group); ok {
			return result
		}
	}

	// Fall back to an operator-method lookup (e.g. `a.plus(b)`),
	// mirroring the source's findMethodOrFail on the operator's method
	// name when the fixed numeric table does not apply.
	methodName := operatorMethodName(e.Operator)
	if methodName == "" {
		return c.objectType
	}
	method := c.findMethodOrFail(e, leftType, methodName, []*types.Type{rightType})
	if method == nil {
		return c.objectType
	}
	if isCompareBoolean(e.Operator) {
		return c.universe.Lookup("boolean")
	}
	if e.Operator == ast.OpCompareTo {
		return c.universe.Lookup("int")
	}
	return method.ReturnType
}

// typeOfInstanceOfTarget types the right-hand side of `x instanceof T`;
// grammatically this is a bare type reference, modeled here as a
// VariableExpression naming the type for simplicity of the AST.
func (c *Checker) typeOfInstanceOfTarget(expr ast.Expression) *types.Type {
	if v, ok := expr.(*ast.VariableExpression); ok {
		if t := c.universe.Lookup(v.Name); t != nil {
			expr.Meta().Set(ast.InferredType, t)
			return t
		}
	}
	return c.typeOf(expr)
}

func operatorGroup(op ast.Operator) (types.OperationGroup, bool) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpMod:
		return types.GroupArithmetic, true
	case ast.OpDiv:
		return types.GroupDivide, true
	case ast.OpPower:
		return types.GroupPower, true
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		return types.GroupBitwise, true
	case ast.OpShiftLeft, ast.OpShiftRight:
		return types.GroupShift, true
	case ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual, ast.OpCompareEqual, ast.OpCompareNotEqual:
		return types.GroupCompareBoolean, true
	case ast.OpCompareTo:
		return types.GroupCompareTo, true
	}
	return 0, false
}

func isCompareBoolean(op ast.Operator) bool {
	group, ok := operatorGroup(op)
	return ok && group == types.GroupCompareBoolean
}

var operatorMethodNames = map[ast.Operator]string{
	ast.OpAdd: "plus", ast.OpSub: "minus", ast.OpMul: "multiply", ast.OpDiv: "div",
	ast.OpMod: "mod", ast.OpPower: "power",
	ast.OpBitAnd: "and", ast.OpBitOr: "or", ast.OpBitXor: "xor",
	ast.OpShiftLeft: "leftShift", ast.OpShiftRight: "rightShift",
	ast.OpCompareTo: "compareTo",
}

func operatorMethodName(op ast.Operator) string {
	return operatorMethodNames[op]
}

// typeOfUnary implements §4.B unary minus/plus/bitwise-negate.
func (c *Checker) typeOfUnary(e *ast.UnaryExpression) *types.Type {
	operandType := c.typeOf(e.Operand)

	switch e.Operator {
	case ast.UnaryLogicalNot:
		return c.universe.Lookup("boolean")
	case ast.UnaryMinus, ast.UnaryPlus:
		if types.IsNumeric(operandType) {
			return operandType
		}
		if operandType.Redirect().Name == "ArrayList" {
			return operandType
		}
	case ast.UnaryBitwiseNegate:
		if types.IsNumeric(operandType) {
			return operandType
		}
		if operandType.Redirect().Name == "ArrayList" {
			return operandType
		}
		if operandType.Redirect().Name == "String" || operandType.Redirect().Name == "GString" {
			return c.universe.Lookup("Pattern")
		}
	}

	name := unaryMethodName(e.Operator)
	method := c.findMethodOrFail(e, operandType, name, nil)
	if method == nil {
		return c.objectType
	}
	return method.ReturnType
}

func unaryMethodName(op ast.UnaryOperator) string {
	switch op {
	case ast.UnaryMinus:
		return "negative"
	case ast.UnaryPlus:
		return "positive"
	case ast.UnaryBitwiseNegate:
		return "bitwiseNegate"
	}
	return ""
}
