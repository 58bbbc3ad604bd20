package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataGetSetHas(t *testing.T) {
	t.Parallel()

	var m Metadata
	assert.False(t, m.Has(InferredType))
	assert.Nil(t, m.Get(InferredType))

	m.Set(InferredType, "int")
	assert.True(t, m.Has(InferredType))
	assert.Equal(t, "int", m.Get(InferredType))

	assert.False(t, m.Has(ClosureArguments))
}

func TestRangeHasPosition(t *testing.T) {
	t.Parallel()

	var zero Range
	assert.False(t, zero.HasPosition())

	nonZero := Range{StartPos: Position{Line: 1, Column: 1}}
	assert.True(t, nonZero.HasPosition())
}

func TestVariableExpressionIdentity(t *testing.T) {
	t.Parallel()

	local := &VariableExpression{Name: "x", Binding: BindingLocal}
	assert.Same(t, local, local.Identity())

	alias := &VariableExpression{Name: "x", Binding: BindingLocal, AccessedVariable: local}
	assert.Same(t, local, alias.Identity())
}
