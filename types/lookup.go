package types

// FindField walks t's ancestor chain (most-derived first) for a
// declared field named name.
func FindField(t *Type, name string) *Field {
	var chain []*Type
	linearize(t, map[string]bool{}, &chain)
	for _, c := range chain {
		if f, ok := c.Fields[name]; ok {
			return f
		}
	}
	return nil
}

// FindProperty walks t's ancestor chain for a declared property.
func FindProperty(t *Type, name string) *Property {
	var chain []*Type
	linearize(t, map[string]bool{}, &chain)
	for _, c := range chain {
		if p, ok := c.Properties[name]; ok {
			return p
		}
	}
	return nil
}

// FindMethods collects every method named name declared anywhere in t's
// ancestor chain (§4.D step 2). Order is most-derived first, matching
// override shadowing expectations for overload resolution.
func FindMethods(t *Type, name string) []*Method {
	var out []*Method
	var chain []*Type
	linearize(t, map[string]bool{}, &chain)
	for _, c := range chain {
		out = append(out, c.Methods[name]...)
	}
	return out
}

// FindConstructors returns t's own declared constructors (constructors
// are never inherited).
func FindConstructors(t *Type) []*Method {
	if t == nil {
		return nil
	}
	return t.Constructors
}
