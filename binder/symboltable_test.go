package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberlang/ember/ast"
)

func TestSymbolTableScopedLookup(t *testing.T) {
	t.Parallel()

	table := NewSymbolTable()
	assert.Equal(t, 1, table.Depth())

	outer := &ast.VariableExpression{Name: "x", Binding: ast.BindingLocal}
	table.Declare("x", outer)

	table.Push()
	assert.Equal(t, 2, table.Depth())

	inner := &ast.VariableExpression{Name: "y", Binding: ast.BindingLocal}
	table.Declare("y", inner)

	assert.Same(t, outer, table.Find("x"))
	assert.Same(t, inner, table.Find("y"))

	table.Pop()
	assert.Equal(t, 1, table.Depth())
	assert.Nil(t, table.Find("y"))
	assert.Same(t, outer, table.Find("x"))
}

func TestSymbolTableShadowing(t *testing.T) {
	t.Parallel()

	table := NewSymbolTable()
	outer := &ast.VariableExpression{Name: "x", Binding: ast.BindingLocal}
	table.Declare("x", outer)

	table.Push()
	shadow := &ast.VariableExpression{Name: "x", Binding: ast.BindingLocal}
	table.Declare("x", shadow)

	assert.Same(t, shadow, table.Find("x"))
	table.Pop()
	assert.Same(t, outer, table.Find("x"))
}

func TestSymbolTableUndeclaredNameIsNil(t *testing.T) {
	t.Parallel()

	table := NewSymbolTable()
	assert.Nil(t, table.Find("nonexistent"))
}
