package types

// IsAssignable reports whether a value of type `from` may be assigned to
// or passed where `to` is expected, walking the superclass/interface
// chain. Arrays are covariant at the descriptor level (§3 invariant);
// componentwise compatibility is the caller's job for concrete
// assignment checks (§4.C step 4 for arrays).
func IsAssignable(from, to *Type) bool {
	if to == nil || from == nil {
		return false
	}
	if to.Name == "Object" && to.Kind == KindClass {
		return true
	}
	if from == UnknownParameterMarker {
		return !to.Primitive
	}
	if to.IsPlaceholder() {
		return true
	}
	if from.IsArray() && to.IsArray() {
		return IsAssignable(from.ComponentType, to.ComponentType)
	}
	if from.IsArray() != to.IsArray() {
		return false
	}
	if from.Primitive || to.Primitive {
		wf, wt := Wrap(from), Wrap(to)
		if wf.Name == wt.Name {
			return true
		}
		if IsNumeric(from) && IsNumeric(to) && !to.Primitive {
			return isDerivedFrom(wf, wt)
		}
		if from.Primitive && to.Primitive {
			return IsNumeric(from) && IsNumeric(to)
		}
		return isDerivedFrom(wf, wt)
	}
	return isDerivedFrom(from, to)
}

func isDerivedFrom(t, ancestor *Type) bool {
	if t == nil {
		return false
	}
	if t.Name == ancestor.Name {
		return true
	}
	for _, s := range t.Super {
		if isDerivedFrom(s, ancestor) {
			return true
		}
	}
	return false
}

// linearize appends t and every ancestor to out, depth-first, following
// each Super list in declaration order (so Object can precede an
// interface such as Comparable); used by LUB and the Find* lookups.
func linearize(t *Type, seen map[string]bool, out *[]*Type) {
	if t == nil || seen[t.Name] {
		return
	}
	seen[t.Name] = true
	*out = append(*out, t)
	for _, s := range t.Super {
		linearize(s, seen, out)
	}
}

// LUB computes the lowest upper bound of a set of types, folding them
// pairwise from the left. Each pair joins at the first entry of the
// first type's linearized ancestors that the second type also has
// (String and BigInteger join at Object, not Comparable); primitives
// join by their wrappers, and the null-literal marker joins as the other
// type. Nil elements are skipped; a nil or empty set, or one whose
// elements are all nil, yields nil, and callers substitute Object per
// the caller's convention (the checker does so explicitly, matching the
// source treating a missing type as "not yet known" rather than silently
// assuming Object).
func LUB(objectType *Type, ts ...*Type) *Type {
	var present []*Type
	for _, t := range ts {
		if t != nil {
			present = append(present, t)
		}
	}
	if len(present) == 0 {
		return nil
	}
	acc := present[0]
	for _, t := range present[1:] {
		acc = lub2(objectType, acc, t)
	}
	return acc
}

func lub2(objectType, a, b *Type) *Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a == UnknownParameterMarker {
		return b
	}
	if b == UnknownParameterMarker {
		return a
	}
	if a.Name == b.Name && a.Kind == b.Kind {
		if a.IsArray() {
			return &Type{Kind: KindArray, Name: a.Name, ComponentType: lub2(objectType, a.ComponentType, b.ComponentType)}
		}
		return a
	}
	if a.Primitive || b.Primitive {
		a, b = Wrap(a), Wrap(b)
	}
	var aChain, bChain []*Type
	linearize(a, map[string]bool{}, &aChain)
	linearize(b, map[string]bool{}, &bChain)
	bNames := map[string]bool{}
	for _, t := range bChain {
		bNames[t.Name] = true
	}
	for _, t := range aChain {
		if bNames[t.Name] {
			return t
		}
	}
	return objectType
}
