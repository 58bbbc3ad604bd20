package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAssignablePrimitivesAndBoxing(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	assert.True(t, IsAssignable(u.Lookup("int"), u.Lookup("int")))
	assert.True(t, IsAssignable(u.Lookup("int"), u.Lookup("long")), "widening between numeric primitives is allowed")
	assert.True(t, IsAssignable(u.Lookup("long"), u.Lookup("int")), "narrowing is allowed too; checkAssignable warns rather than rejects")
	assert.False(t, IsAssignable(u.Lookup("boolean"), u.Lookup("int")), "non-numeric primitives never cross-assign")
	assert.True(t, IsAssignable(u.Lookup("int"), u.Lookup("Integer")))
	assert.True(t, IsAssignable(u.Lookup("int"), u.Lookup("Number")))
	assert.True(t, IsAssignable(u.Lookup("String"), u.Lookup("Object")))
	assert.False(t, IsAssignable(u.Lookup("Object"), u.Lookup("String")))
}

func TestIsAssignableArrays(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	stringArr := u.Array(u.Lookup("String"))
	objectArr := u.Array(u.Lookup("Object"))
	assert.True(t, IsAssignable(stringArr, objectArr))
	assert.False(t, IsAssignable(objectArr, stringArr))
	assert.False(t, IsAssignable(stringArr, u.Lookup("String")))
}

func TestIsAssignableUnknownParameter(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	assert.True(t, IsAssignable(UnknownParameterMarker, u.Lookup("String")))
	assert.False(t, IsAssignable(UnknownParameterMarker, u.Lookup("int")))
}

func TestIsAssignablePlaceholderAlwaysMatches(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	placeholder := u.Placeholder("T")
	assert.True(t, IsAssignable(u.Lookup("String"), placeholder))
}

func TestLUB(t *testing.T) {
	t.Parallel()
	u := NewUniverse()
	object := u.Lookup("Object")

	t.Run("identical types", func(t *testing.T) {
		assert.Equal(t, u.Lookup("String"), LUB(object, u.Lookup("String"), u.Lookup("String")))
	})

	t.Run("distinct numeric primitives join at Number", func(t *testing.T) {
		assert.Equal(t, u.Lookup("Number"), LUB(object, u.Lookup("int"), u.Lookup("double")))
	})

	t.Run("shared ancestor via Number", func(t *testing.T) {
		result := LUB(object, u.Lookup("BigInteger"), u.Lookup("BigDecimal"))
		assert.Equal(t, u.Lookup("Number"), result)
	})

	t.Run("types whose first shared ancestor is Object join at Object", func(t *testing.T) {
		assert.Equal(t, object, LUB(object, u.Lookup("String"), u.Lookup("BigInteger")))
	})

	t.Run("nil elements are skipped", func(t *testing.T) {
		assert.Equal(t, u.Lookup("String"), LUB(object, nil, u.Lookup("String")))
	})

	t.Run("all nil yields nil", func(t *testing.T) {
		assert.Nil(t, LUB(object, nil, nil))
	})
}

func TestAncestorLinearization(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	bigInt := u.Lookup("BigInteger")
	assert.True(t, isDerivedFrom(bigInt, u.Lookup("Number")))
	assert.True(t, isDerivedFrom(bigInt, u.Lookup("Comparable")))
	assert.False(t, isDerivedFrom(bigInt, u.Lookup("String")))
}
