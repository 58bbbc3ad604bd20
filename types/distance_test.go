package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAncestorDistance(t *testing.T) {
	t.Parallel()
	u := NewUniverse()
	base, derived := testHierarchy(u)

	assert.Equal(t, 0, AncestorDistance(derived, derived))
	assert.Equal(t, 1, AncestorDistance(derived, base))
	assert.Equal(t, 2, AncestorDistance(derived, u.Lookup("Object")))
	assert.Equal(t, -1, AncestorDistance(derived, u.Lookup("String")))
	assert.Equal(t, -1, AncestorDistance(nil, u.Lookup("Object")))
}

func TestWideningSteps(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	t.Run("exact match costs nothing", func(t *testing.T) {
		assert.Equal(t, 0, WideningSteps(u.Lookup("int"), u.Lookup("int")))
	})

	t.Run("numeric widening uses the fixed ladder", func(t *testing.T) {
		assert.Equal(t, 1, WideningSteps(u.Lookup("Integer"), u.Lookup("Long")))
		assert.Equal(t, 4, WideningSteps(u.Lookup("Integer"), u.Lookup("Double")))
	})

	t.Run("unknown parameter marker costs nothing", func(t *testing.T) {
		assert.Equal(t, 0, WideningSteps(UnknownParameterMarker, u.Lookup("String")))
	})

	t.Run("reference widening uses ancestor distance", func(t *testing.T) {
		_, derived := testHierarchy(u)
		assert.Equal(t, 1, WideningSteps(derived, u.Lookup("Animal")))
	})

	t.Run("unrelated types default to 1", func(t *testing.T) {
		assert.Equal(t, 1, WideningSteps(u.Lookup("String"), u.Lookup("BigInteger")))
	})
}
