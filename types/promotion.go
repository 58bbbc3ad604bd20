package types

// OperationGroup classifies a binary operator the way the source's
// getResultType does, so the promotion tables below can dispatch on
// group rather than the concrete operator symbol.
type OperationGroup int

const (
	GroupArithmetic OperationGroup = iota // + - * %
	GroupPower                            // **
	GroupBitwise                          // & | ^
	GroupShift                            // << >>
	GroupCompareBoolean                   // < <= > >= == !=
	GroupCompareTo                        // <=>
	GroupDivide                           // /
)

// Promote implements §4.B's numeric promotion table for two numeric
// operand types under the given operation group. ok is false when
// neither the fixed table nor the fallback ladder produces a result and
// the caller must fall back to operator-method lookup.
func Promote(u *Universe, left, right *Type, group OperationGroup) (result *Type, ok bool) {
	leftR, rightR := left.Redirect(), right.Redirect()

	switch group {
	case GroupCompareBoolean:
		return u.Lookup("boolean"), true
	case GroupCompareTo:
		return u.Lookup("int"), true
	case GroupPower:
		return u.Lookup("Number"), true
	case GroupDivide:
		if IsDoubleCategory(leftR) || IsDoubleCategory(rightR) {
			return u.Lookup("Double"), true
		}
		if leftR.Redirect().Name == "BigDecimal" || rightR.Redirect().Name == "BigDecimal" {
			return u.Lookup("BigDecimal"), true
		}
		return GroupOperationResult(u, leftR, rightR), true
	case GroupShift:
		if IsNumeric(leftR) && (IsIntCategory(rightR) || IsLongCategory(rightR)) {
			return leftR, true
		}
		return nil, false
	}

	// GroupArithmetic / GroupBitwise: exact same-category fast paths
	// first, exactly as the source's isOperationInGroup/isBitOperator
	// branches try before falling through to the general ladder.
	if group == GroupArithmetic {
		if IsIntCategory(leftR) && IsIntCategory(rightR) {
			return u.Lookup("int"), true
		}
		if IsLongCategory(leftR) && IsLongCategory(rightR) {
			return u.Lookup("long"), true
		}
		if IsFloatCategory(leftR) && IsFloatCategory(rightR) {
			return u.Lookup("float"), true
		}
		if IsDoubleCategory(leftR) && IsDoubleCategory(rightR) {
			return u.Lookup("double"), true
		}
	}
	if group == GroupBitwise {
		if IsIntCategory(leftR) && IsIntCategory(rightR) {
			return u.Lookup("int"), true
		}
		if IsLongCategory(leftR) && IsLongCategory(rightR) {
			return u.Lookup("Long"), true
		}
		if IsBigIntCategory(leftR) && IsBigIntCategory(rightR) {
			return u.Lookup("BigInteger"), true
		}
	}

	if IsNumeric(Wrap(leftR)) && IsNumeric(Wrap(rightR)) {
		return GroupOperationResult(u, leftR, rightR), true
	}
	return nil, false
}

// GroupOperationResult follows the Java source's
// getGroupOperationResultType ladder (original_source, ~line 1275): a
// BigInteger pair gives BigInteger, a BigDecimal operand gives
// BigDecimal, a BigInteger mixed with a non-integral type gives
// BigDecimal, and otherwise the first of a fixed wide-to-narrow order
// over the wrapper/primitive numeric types that either operand matches.
func GroupOperationResult(u *Universe, a, b *Type) *Type {
	is := func(t *Type, name string) bool { return t.Redirect().Name == name }

	if is(a, "BigInteger") && is(b, "BigInteger") {
		return u.Lookup("BigInteger")
	}
	if is(a, "BigDecimal") || is(b, "BigDecimal") {
		return u.Lookup("BigDecimal")
	}
	if is(a, "BigInteger") || is(b, "BigInteger") {
		if IsBigIntCategory(a) && IsBigIntCategory(b) {
			return u.Lookup("BigInteger")
		}
		return u.Lookup("BigDecimal")
	}
	order := []string{"double", "Double", "float", "Float", "long", "Long", "int", "Integer", "short", "Short", "byte", "Byte", "char", "Character"}
	for _, name := range order {
		if is(a, name) || is(b, name) {
			return u.Lookup(name)
		}
	}
	return u.Lookup("Number")
}
