package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// typeOfList implements §4.B "List literal": an already-parameterized
// literal is returned as-is; otherwise the element type is
// wrap(LUB(elementTypes)) and the result is ArrayList<elementType>.
func (c *Checker) typeOfList(e *ast.ListLiteral) *types.Type {
	elementTypes := make([]*types.Type, len(e.Elements))
	for i, elem := range e.Elements {
		c.inSpreadContext = true
		elementTypes[i] = c.typeOf(elem)
		c.inSpreadContext = false
	}

	arrayList := c.universe.Lookup("ArrayList")
	if e.GenericElementType != nil {
		return c.universe.Parameterize(arrayList, c.resolveTypeRef(e.GenericElementType))
	}

	elementType := types.Wrap(types.LUB(c.objectType, elementTypes...))
	if elementType == nil {
		elementType = c.objectType
	}
	return c.universe.Parameterize(arrayList, elementType)
}

// typeOfMap implements §4.B "Map literal": key/value LUBs are wrapped;
// the parameterization is only set when at least one of key/value is not
// bare Object.
func (c *Checker) typeOfMap(e *ast.MapLiteral) *types.Type {
	keyTypes := make([]*types.Type, len(e.Entries))
	valueTypes := make([]*types.Type, len(e.Entries))
	for i, entry := range e.Entries {
		keyTypes[i] = c.typeOf(entry.Key)
		c.inSpreadContext = true
		valueTypes[i] = c.typeOf(entry.Value)
		c.inSpreadContext = false
	}

	mapType := c.universe.Lookup("LinkedHashMap")
	if len(e.Entries) == 0 {
		return mapType
	}

	keyType := types.Wrap(types.LUB(c.objectType, keyTypes...))
	valueType := types.Wrap(types.LUB(c.objectType, valueTypes...))
	if keyType == c.objectType && valueType == c.objectType {
		return mapType
	}
	return c.universe.Parameterize(mapType, keyType, valueType)
}

// typeOfRange implements §4.B "Range literal".
func (c *Checker) typeOfRange(e *ast.RangeLiteral) *types.Type {
	fromType := c.typeOf(e.From)
	toType := c.typeOf(e.To)
	elementType := types.Wrap(types.LUB(c.objectType, fromType, toType))
	return c.universe.Parameterize(c.universe.Lookup("Range"), elementType)
}

// typeOfTernary implements §4.B "Ternary": the refinement from the
// condition applies only to the true branch.
func (c *Checker) typeOfTernary(e *ast.TernaryExpression) *types.Type {
	c.pushBranchFrame()
	c.typeOf(e.Condition)
	trueType := c.typeOf(e.IfTrue)
	c.popBranchFrame()

	falseType := c.typeOf(e.IfFalse)

	return types.LUB(c.objectType, trueType, falseType)
}
