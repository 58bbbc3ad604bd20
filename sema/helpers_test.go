package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/binder"
	"github.com/emberlang/ember/types"
)

// testRange returns a non-zero range anchored at line so diagnostics
// emitted against synthetic nodes in these tests are not silently
// dropped by addDiagnostic's zero-Range guard.
func testRange(line int) ast.Range {
	return ast.Range{
		StartPos: ast.Position{Line: line, Column: 1},
		EndPos:   ast.Position{Line: line, Column: 2},
	}
}

// newTestClass builds an empty "Sample" class and its matching type
// descriptor, both already wired to Object, ready for a test to attach
// fields/properties/methods before constructing a Checker.
func newTestClass(u *types.Universe) (*ast.ClassDeclaration, *types.Type) {
	classType := &types.Type{
		Kind:       types.KindClass,
		Name:       "Sample",
		Super:      []*types.Type{u.Lookup("Object")},
		Fields:     map[string]*types.Field{},
		Properties: map[string]*types.Property{},
		Methods:    map[string][]*types.Method{},
	}
	class := &ast.ClassDeclaration{Name: "Sample"}
	u.DefineClass(classType)
	return class, classType
}

// newTestChecker wires a fresh universe, extension registry, and no-op
// plugin around class/classType, mirroring what cmd/embercheck's demo
// does for a full end-to-end run.
func newTestChecker(class *ast.ClassDeclaration, classType *types.Type, u *types.Universe) *Checker {
	return New(u, types.NewExtensionRegistry(), binder.NoopPlugin{}, class, classType)
}

// addMethod attaches a method both to the AST class and to its type
// descriptor's method table, keeping the two in lockstep the way an
// out-of-scope name resolver would.
func addMethod(class *ast.ClassDeclaration, classType *types.Type, method *ast.MethodDeclaration, params []types.MethodParameter, returnType *types.Type) {
	class.Methods = append(class.Methods, method)
	classType.Methods[method.Name] = append(classType.Methods[method.Name], &types.Method{
		Name:           method.Name,
		DeclaringClass: classType,
		Parameters:     params,
		ReturnType:     returnType,
	})
}

func v(name string, binding ast.BindingKind) *ast.VariableExpression {
	return &ast.VariableExpression{Name: name, Binding: binding}
}
