package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
	"github.com/rivo/uniseg"
)

// typeOfCast implements §4.B "Cast": `as`-style coercion is permitted
// unconditionally; a checked cast is allowed for the char/one-character-
// string special case (grapheme-cluster counted, not byte-counted, via
// uniseg exactly as the teacher's checker counts identifier text),
// numeric-to-numeric, null-to-reference, and ordinary assignability.
func (c *Checker) typeOfCast(e *ast.CastExpression) *types.Type {
	sourceType := c.typeOf(e.Target)
	targetType := c.resolveTypeRef(e.TypeName)

	if e.Kind == ast.CastCoerce {
		return targetType
	}

	if isCharTarget(targetType) {
		if lit, ok := e.Target.(*ast.StringLiteral); ok && uniseg.GraphemeClusterCount(lit.Value) == 1 {
			return targetType
		}
	}

	if types.IsNumeric(sourceType) && types.IsNumeric(targetType) {
		return targetType
	}

	if sourceType == types.UnknownParameterMarker && !targetType.Primitive {
		return targetType
	}

	if types.IsAssignable(sourceType, targetType) {
		return targetType
	}

	c.addError(KindInconvertibleCast, e, "Inconvertible types: cannot cast %s to %s", sourceType, targetType)
	return targetType
}

func isCharTarget(t *types.Type) bool {
	name := t.Redirect().Name
	return name == "char" || name == "Character"
}
