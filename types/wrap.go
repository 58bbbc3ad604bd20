package types

// Wrap returns the boxed companion of a primitive type, or t itself if
// t is already a reference type. Total on the primitive set (§3
// invariant).
func Wrap(t *Type) *Type {
	if t == nil {
		return t
	}
	if t.Kind == KindPrimitive && t.boxed != nil {
		return t.boxed
	}
	return t
}

// Unwrap returns the primitive companion of a boxed type, or t itself
// if t has none.
func Unwrap(t *Type) *Type {
	if t == nil {
		return t
	}
	if t.unboxed != nil {
		return t.unboxed
	}
	return t
}

func category(t *Type) string {
	if t == nil {
		return ""
	}
	u := Unwrap(t)
	for _, spec := range primitiveSpecs {
		if spec.primitiveName == u.Name {
			return spec.category
		}
	}
	switch t.Redirect().Name {
	case "BigInteger":
		return "bigint"
	case "BigDecimal":
		return "bigdec"
	}
	return ""
}

// IsNumeric reports whether t is a primitive or boxed numeric type, or
// BigInteger/BigDecimal.
func IsNumeric(t *Type) bool {
	return category(t) != ""
}

// IsIntCategory reports int/short/byte/char widening-compatible types.
func IsIntCategory(t *Type) bool { return category(t) == "int" }

// IsLongCategory reports whether t widens to long (includes int
// category, matching the source's isLongCategory which subsumes int).
func IsLongCategory(t *Type) bool { c := category(t); return c == "int" || c == "long" }

func IsFloatCategory(t *Type) bool  { return category(t) == "float" }
func IsDoubleCategory(t *Type) bool { c := category(t); return c == "float" || c == "double" }
func IsFloatingCategory(t *Type) bool {
	c := category(t)
	return c == "float" || c == "double" || c == "bigdec"
}
func IsBigIntCategory(t *Type) bool { c := category(t); return c == "bigint" || c == "int" || c == "long" }
func IsBigDecCategory(t *Type) bool { return IsFloatingCategory(t) || category(t) == "bigint" }

// wideningRank orders the numeric ladder narrow-to-wide for the
// precision-loss check (§4.C step 4).
var wideningRank = map[string]int{
	"byte": 0, "Byte": 0,
	"short": 1, "Short": 1,
	"char": 1, "Character": 1,
	"int": 2, "Integer": 2,
	"long": 3, "Long": 3,
	"BigInteger": 4,
	"float": 5, "Float": 5,
	"double": 6, "Double": 6,
	"BigDecimal": 7,
}

// IsNarrowing reports whether assigning a value statically typed `from`
// to a variable statically typed `to` may lose precision.
func IsNarrowing(from, to *Type) bool {
	if from == nil || to == nil {
		return false
	}
	rf, okF := wideningRank[from.Redirect().Name]
	rt, okT := wideningRank[to.Redirect().Name]
	if !okF || !okT {
		return false
	}
	return rf > rt
}
