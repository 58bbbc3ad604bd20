package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

func TestTypeOfBinaryArithmeticPromotes(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.BinaryExpression{Left: &ast.IntLiteral{Value: 1}, Operator: ast.OpAdd, Right: &ast.DoubleLiteral{Value: 2}}

	result := c.typeOf(e)

	assert.Equal(t, u.Lookup("double"), result)
}

func TestTypeOfBinaryCompareIsBoolean(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.BinaryExpression{Left: &ast.IntLiteral{Value: 1}, Operator: ast.OpLess, Right: &ast.IntLiteral{Value: 2}}

	assert.Equal(t, u.Lookup("boolean"), c.typeOf(e))
}

func TestTypeOfBinaryInstanceOfIsBooleanAndRefines(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	param := v("x", ast.BindingParameter)
	param.Meta().Set(ast.InferredType, u.Lookup("Object"))

	c.pushBranchFrame()
	e := &ast.BinaryExpression{Left: param, Operator: ast.OpInstanceOf, Right: &ast.VariableExpression{Name: "String"}}
	result := c.typeOf(e)

	assert.Equal(t, u.Lookup("boolean"), result)
	refined := c.refinedCandidates(param.Identity())
	require.Len(t, refined, 1)
	assert.Equal(t, u.Lookup("String"), refined[0])
	c.popBranchFrame()
}

func TestTypeOfBinaryFallsBackToOperatorMethod(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	plus := &ast.MethodDeclaration{Name: "plus"}
	addMethod(class, classType, plus, []types.MethodParameter{{Name: "o", Type: classType}}, classType)
	c := newTestChecker(class, classType, u)

	receiver := v("self", ast.BindingParameter)
	receiver.Meta().Set(ast.InferredType, classType)
	other := v("other", ast.BindingParameter)
	other.Meta().Set(ast.InferredType, classType)

	e := &ast.BinaryExpression{Left: receiver, Operator: ast.OpAdd, Right: other}
	e.Range = testRange(1)

	result := c.typeOf(e)

	assert.Equal(t, classType, result)
	assert.Empty(t, c.Errors())
}

func TestTypeOfUnaryLogicalNotIsBoolean(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.UnaryExpression{Operator: ast.UnaryLogicalNot, Operand: &ast.BoolLiteral{Value: true}}

	assert.Equal(t, u.Lookup("boolean"), c.typeOf(e))
}

func TestTypeOfUnaryMinusPreservesNumericType(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.UnaryExpression{Operator: ast.UnaryMinus, Operand: &ast.DoubleLiteral{Value: 1}}

	assert.Equal(t, u.Lookup("double"), c.typeOf(e))
}

func TestTypeOfCastCoerceIsUnconditional(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.CastExpression{Target: &ast.StringLiteral{Value: "x"}, TypeName: &ast.TypeRef{Name: "int"}, Kind: ast.CastCoerce}

	assert.Equal(t, u.Lookup("int"), c.typeOf(e))
	assert.Empty(t, c.Errors())
}

func TestTypeOfCastNumericToNumericAllowed(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.CastExpression{Target: &ast.IntLiteral{Value: 65}, TypeName: &ast.TypeRef{Name: "double"}, Kind: ast.CastCheck}

	assert.Equal(t, u.Lookup("double"), c.typeOf(e))
	assert.Empty(t, c.Errors())
}

func TestTypeOfCastSingleCharacterStringToChar(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.CastExpression{Target: &ast.StringLiteral{Value: "x"}, TypeName: &ast.TypeRef{Name: "char"}, Kind: ast.CastCheck}

	assert.Equal(t, u.Lookup("char"), c.typeOf(e))
	assert.Empty(t, c.Errors())
}

func TestTypeOfCastMultiCharacterStringToCharIsInconvertible(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.CastExpression{Target: &ast.StringLiteral{Value: "xy"}, TypeName: &ast.TypeRef{Name: "char"}, Kind: ast.CastCheck}
	e.Range = testRange(1)

	c.typeOf(e)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindInconvertibleCast, c.Errors()[0].(*Diagnostic).Kind)
}

func TestTypeOfListLiteralParameterizesByLUB(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}, &ast.DoubleLiteral{Value: 2}}}

	result := c.typeOf(e)

	assert.Equal(t, "ArrayList", result.Name)
	require.Len(t, result.GenericArgs, 1)
	assert.Equal(t, u.Lookup("Number"), result.GenericArgs[0], "boxed int/double join at Number")
}

func TestTypeOfMapLiteralEmptyIsUnparameterized(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.MapLiteral{}

	result := c.typeOf(e)

	assert.Equal(t, u.Lookup("LinkedHashMap"), result)
	assert.Empty(t, result.GenericArgs)
}

func TestTypeOfMapLiteralParameterizesKeyAndValue(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.MapLiteral{Entries: []ast.MapEntry{
		{Key: &ast.StringLiteral{Value: "a"}, Value: &ast.IntLiteral{Value: 1}},
	}}

	result := c.typeOf(e)

	require.Len(t, result.GenericArgs, 2)
	assert.Equal(t, u.Lookup("String"), result.GenericArgs[0])
	assert.Equal(t, u.Lookup("Integer"), result.GenericArgs[1])
}

func TestTypeOfListLiteralAllowsSpreadElement(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.ListLiteral{Elements: []ast.Expression{
		&ast.SpreadExpression{Target: &ast.IntLiteral{Value: 1}},
	}}

	c.typeOf(e)

	assert.Empty(t, c.Errors())
}

func TestTypeOfSpreadOutsideLiteralIsMisuse(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.SpreadExpression{Target: &ast.IntLiteral{Value: 1}}
	e.Range = testRange(1)

	c.typeOf(e)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindSpreadOperatorMisuse, c.Errors()[0].(*Diagnostic).Kind)
}

func TestTypeOfWithRejectsMultipleClosureParameters(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.WithExpression{
		Receiver: &ast.StringLiteral{Value: "x"},
		Body: &ast.ClosureExpression{
			Parameters: []ast.ClosureParameter{{Name: "a"}, {Name: "b"}},
			Body:       &ast.Block{},
		},
	}
	e.Range = testRange(1)

	c.typeOf(e)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindWithParameterMismatch, c.Errors()[0].(*Diagnostic).Kind)
}

func TestTypeOfWithAllowsSingleClosureParameter(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.WithExpression{
		Receiver: &ast.StringLiteral{Value: "x"},
		Body: &ast.ClosureExpression{
			Parameters: []ast.ClosureParameter{{Name: "self"}},
			Body:       &ast.Block{},
		},
	}

	c.typeOf(e)

	assert.Empty(t, c.Errors())
}

func TestTypeOfRangeParameterizesByEndpointLUB(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	e := &ast.RangeLiteral{From: &ast.IntLiteral{Value: 1}, To: &ast.IntLiteral{Value: 10}}

	result := c.typeOfRange(e)

	assert.Equal(t, "Range", result.Name)
	require.Len(t, result.GenericArgs, 1)
	assert.Equal(t, u.Lookup("Integer"), result.GenericArgs[0], "endpoints are boxed before joining")
}

func TestTypeOfTernaryRefinesOnlyTrueBranch(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	param := v("x", ast.BindingParameter)
	param.Meta().Set(ast.InferredType, u.Lookup("Object"))

	instanceOf := &ast.BinaryExpression{Left: param, Operator: ast.OpInstanceOf, Right: &ast.VariableExpression{Name: "String"}}
	e := &ast.TernaryExpression{
		Condition: instanceOf,
		IfTrue:    param,
		IfFalse:   &ast.NullLiteral{},
	}

	result := c.typeOf(e)

	assert.Equal(t, u.Lookup("String"), result, "IfTrue observed the narrowed type; LUB(String, null-marker) is String")
}
