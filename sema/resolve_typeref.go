package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// resolveTypeRef turns a syntactic type reference into a canonical Type,
// consulting the universe, the current class's own generic parameters,
// and the current method's generic parameters. An unresolvable name
// resolves to Object rather than failing the whole check, consistent
// with §7's best-effort fallback policy.
func (c *Checker) resolveTypeRef(ref *ast.TypeRef) *types.Type {
	if ref == nil {
		return c.objectType
	}
	if ref.Array {
		return c.universe.Array(c.resolveTypeRef(ref.ComponentType))
	}
	if placeholder := c.lookupGenericParam(ref.Name); placeholder != nil {
		return placeholder
	}
	base := c.universe.Lookup(ref.Name)
	if base == nil {
		return c.objectType
	}
	if len(ref.Generics) == 0 {
		return base
	}
	args := make([]*types.Type, len(ref.Generics))
	for i, g := range ref.Generics {
		args[i] = c.resolveTypeRef(g)
	}
	return c.universe.Parameterize(base, args...)
}

// lookupGenericParam returns a placeholder Type if name names a generic
// parameter declared on the current class or method, else nil.
func (c *Checker) lookupGenericParam(name string) *types.Type {
	if c.methodNode != nil {
		for _, g := range c.methodNode.Generics {
			if g.Name == name {
				return c.universe.Placeholder(name)
			}
		}
	}
	if c.class != nil {
		for _, g := range c.class.Generics {
			if g.Name == name {
				return c.universe.Placeholder(name)
			}
		}
	}
	return nil
}
