package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

func TestCheckAssignableFlagsIncompatibleTypes(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)

	result := c.checkAssignable(node, u.Lookup("String"), &ast.IntLiteral{}, u.Lookup("int"))

	assert.Equal(t, u.Lookup("String"), result)
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindAssignmentIncompatible, c.Errors()[0].(*Diagnostic).Kind)
}

func TestCheckAssignableWarnsOnNarrowing(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)

	result := c.checkAssignable(node, u.Lookup("int"), &ast.IntLiteral{}, u.Lookup("double"))

	assert.Equal(t, u.Lookup("int"), result)
	require.Len(t, c.Errors(), 1)
	d := c.Errors()[0].(*Diagnostic)
	assert.Equal(t, KindNumericPrecisionLoss, d.Kind)
	assert.Equal(t, SeverityWarning, d.Severity)
	assert.False(t, c.HasErrors(), "a precision-loss warning must not count as an error")
}

func TestCheckAssignableReadOnlyPropertyMessage(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)

	c.checkAssignable(node, types.ReadOnlyPropertyMarker, &ast.IntLiteral{}, u.Lookup("int"))

	require.Len(t, c.Errors(), 1)
	assert.Contains(t, c.Errors()[0].Error(), "read-only")
}

func TestLeftRedirectTypeFallsBackToFieldDeclaration(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	classType.Fields["count"] = &types.Field{Name: "count", Type: u.Lookup("int")}
	c := newTestChecker(class, classType, u)

	// Distinct node instance for every field reference, unlike a local's
	// shared declaration node: no prior INFERRED_TYPE stamp exists here.
	field := v("count", ast.BindingField)

	redirected := c.leftRedirectType(field)

	assert.Equal(t, u.Lookup("int"), redirected)
}

func TestLeftRedirectTypeUsesPriorStampForLocals(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	local := v("n", ast.BindingLocal)
	local.Meta().Set(ast.InferredType, u.Lookup("double"))

	redirected := c.leftRedirectType(local)

	assert.Equal(t, u.Lookup("double"), redirected)
}

func TestCheckAssignmentExpressionStampsAndTracksVariable(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	local := v("n", ast.BindingLocal)
	local.Meta().Set(ast.InferredType, u.Lookup("Object"))

	saved := c.pushAssignmentTracker()
	e := &ast.BinaryExpression{Left: local, Operator: ast.OpAssign, Right: &ast.IntLiteral{Value: 5}}
	result := c.checkAssignmentExpression(e)
	frame := c.popAssignmentTracker(saved)

	assert.Equal(t, u.Lookup("Object"), result, "declared-type-wins: assigning into an Object-typed local keeps Object")
	assert.Equal(t, u.Lookup("Object"), local.Meta().Get(ast.InferredType).(*types.Type))
	require.Contains(t, frame, local.Identity())
	assert.Contains(t, frame[local.Identity()], u.Lookup("Object"))
}

func TestCheckTupleAssignmentArityMismatch(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	tuple := &ast.TupleLiteral{Elements: []*ast.VariableExpression{v("a", ast.BindingLocal), v("b", ast.BindingLocal)}}
	tuple.Range = testRange(1)
	right := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}}}

	result := c.checkTupleAssignment(tuple, right, u.Lookup("List"))

	assert.Equal(t, u.Lookup("Object"), result)
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindTupleArityMismatch, c.Errors()[0].(*Diagnostic).Kind)
}

func TestCheckTupleAssignmentStampsEachVariable(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	a, b := v("a", ast.BindingLocal), v("b", ast.BindingLocal)
	tuple := &ast.TupleLiteral{Elements: []*ast.VariableExpression{a, b}}
	right := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}, &ast.StringLiteral{Value: "x"}}}

	c.checkTupleAssignment(tuple, right, u.Lookup("List"))

	assert.Empty(t, c.Errors())
	assert.Equal(t, u.Lookup("int"), a.Meta().Get(ast.InferredType).(*types.Type))
	assert.Equal(t, u.Lookup("String"), b.Meta().Get(ast.InferredType).(*types.Type))
}

func TestCheckArrayLiteralAssignmentElementwise(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	arrayType := u.Array(u.Lookup("String"))
	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	list := &ast.ListLiteral{Elements: []ast.Expression{
		&ast.StringLiteral{Value: "ok"},
		&ast.IntLiteral{Value: 1},
	}}

	c.checkArrayLiteralAssignment(node, arrayType, list)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindAssignmentIncompatible, c.Errors()[0].(*Diagnostic).Kind)
}

func TestCheckGroovyStyleConstructorRequiresMatchingCtor(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	list := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}}}

	c.checkGroovyStyleConstructor(node, classType, list)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindUnknownMethod, c.Errors()[0].(*Diagnostic).Kind)
}

func TestCheckGroovyStyleConstructorMatchesDeclaredCtor(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	classType.Constructors = []*types.Method{{
		Name:           "<init>",
		DeclaringClass: classType,
		Parameters:     []types.MethodParameter{{Name: "n", Type: u.Lookup("int")}},
		ReturnType:     classType,
	}}
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	list := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}}}

	c.checkGroovyStyleConstructor(node, classType, list)

	assert.Empty(t, c.Errors())
}

func TestCheckNamedArgumentConstructorResolvesPropertiesAndFields(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	classType.Properties["age"] = &types.Property{Name: "age", Type: u.Lookup("int")}
	classType.Fields["name"] = &types.Field{Name: "name", Type: u.Lookup("String")}
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	mapLit := &ast.MapLiteral{Entries: []ast.MapEntry{
		{Key: &ast.StringLiteral{Value: "age"}, Value: &ast.IntLiteral{Value: 9}},
		{Key: &ast.StringLiteral{Value: "name"}, Value: &ast.StringLiteral{Value: "Rex"}},
	}}

	c.checkNamedArgumentConstructor(node, classType, mapLit)

	assert.Empty(t, c.Errors())
}

func TestCheckNamedArgumentConstructorRejectsUnknownProperty(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	mapLit := &ast.MapLiteral{Entries: []ast.MapEntry{
		{Key: &ast.StringLiteral{Value: "nope"}, Value: &ast.IntLiteral{Value: 1}},
	}}

	c.checkNamedArgumentConstructor(node, classType, mapLit)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindUnknownProperty, c.Errors()[0].(*Diagnostic).Kind)
}

func TestCheckNamedArgumentConstructorRejectsDynamicKey(t *testing.T) {
	t.Parallel()
	u := types.NewUniverse()
	class, classType := newTestClass(u)
	classType.Fields["name"] = &types.Field{Name: "name", Type: u.Lookup("String")}
	c := newTestChecker(class, classType, u)

	node := &ast.IntLiteral{}
	node.Range = testRange(1)
	mapLit := &ast.MapLiteral{Entries: []ast.MapEntry{
		{Key: &ast.VariableExpression{Name: "dynamicKey"}, Value: &ast.StringLiteral{Value: "x"}},
	}}

	c.checkNamedArgumentConstructor(node, classType, mapLit)

	require.Len(t, c.Errors(), 1)
	assert.Equal(t, KindDynamicMapKey, c.Errors()[0].(*Diagnostic).Kind)
}
