package main

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// buildSampleClass constructs a small in-memory class and its resolved
// type descriptor, standing in for what a real parser + name resolver
// would hand the checker. It exercises the visitor, expression typer,
// assignment checker, and flow-sensitive refinement on a handful of
// statements, including one deliberately unsound assignment so running
// the CLI against it demonstrates diagnostic output.
//
//	class Greeter {
//	    String prefix = "Hello, "
//	    def greet(Object name) {
//	        if (name instanceof String) {
//	            def message = prefix + name
//	            return message
//	        }
//	        int broken = name
//	        return prefix
//	    }
//	}
func buildSampleClass(universe *types.Universe) (*ast.ClassDeclaration, *types.Type) {
	pos := func(line int) ast.Range {
		return ast.Range{
			StartPos: ast.Position{Line: line, Column: 1},
			EndPos:   ast.Position{Line: line, Column: 40},
		}
	}

	stringType := universe.Lookup("String")
	objectType := universe.Lookup("Object")

	prefixField := &ast.FieldDeclaration{Name: "prefix"}
	nameParam := ast.VariableExpression{Name: "name", Binding: ast.BindingParameter}
	prefixRef := ast.VariableExpression{Name: "prefix", Binding: ast.BindingField}
	messageVar := ast.VariableExpression{Name: "message", Binding: ast.BindingLocal}
	brokenVar := ast.VariableExpression{Name: "broken", Binding: ast.BindingLocal}
	brokenVar.Range = pos(8)

	instanceOf := &ast.BinaryExpression{
		Left:     &nameParam,
		Operator: ast.OpInstanceOf,
		Right:    &ast.VariableExpression{Name: "String"},
	}

	ifBody := &ast.Block{Statements: []ast.Statement{
		&ast.VariableDeclarationStatement{
			Variable: &messageVar,
			Value: &ast.BinaryExpression{
				Left:     &prefixRef,
				Operator: ast.OpAdd,
				Right:    &nameParam,
			},
		},
		&ast.ReturnStatement{Value: &messageVar},
	}}

	greet := &ast.MethodDeclaration{
		Name:       "greet",
		Parameters: []ast.Parameter{{Name: "name"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.IfStatement{
				Condition: instanceOf,
				Then:      ifBody,
			},
			&ast.VariableDeclarationStatement{
				Variable:     &brokenVar,
				DeclaredType: &ast.TypeRef{Name: "int"},
				Value:        &nameParam,
			},
			&ast.ReturnStatement{Value: &prefixRef},
		}},
	}
	greet.Range = pos(3)

	class := &ast.ClassDeclaration{
		Name:    "Greeter",
		Fields:  []*ast.FieldDeclaration{prefixField},
		Methods: []*ast.MethodDeclaration{greet},
	}

	classType := &types.Type{
		Kind: types.KindClass,
		Name: "Greeter",
		Super: []*types.Type{objectType},
		Fields: map[string]*types.Field{
			"prefix": {Name: "prefix", Type: stringType},
		},
		Properties: map[string]*types.Property{},
		Methods: map[string][]*types.Method{
			"greet": {{
				Name:           "greet",
				DeclaringClass: nil, // filled below once interned
				Parameters:     []types.MethodParameter{{Name: "name", Type: objectType}},
				ReturnType:     objectType,
			}},
		},
	}
	classType.Methods["greet"][0].DeclaringClass = classType

	return class, classType
}
