package types

// AncestorDistance returns how many superclass/interface hops separate t
// from ancestor (0 if t == ancestor), or -1 if ancestor is unreachable.
// Used by the resolver's best-match distance metric (§4.D).
func AncestorDistance(t, ancestor *Type) int {
	if t == nil {
		return -1
	}
	if t.Name == ancestor.Name {
		return 0
	}
	best := -1
	for _, s := range t.Super {
		if d := AncestorDistance(s, ancestor); d >= 0 {
			if best == -1 || d+1 < best {
				best = d + 1
			}
		}
	}
	return best
}

// WideningSteps is the resolver's per-argument distance contribution:
// the number of widening hops from an argument's type to a parameter's
// type. Numeric widening uses the fixed ladder rank difference; reference
// widening uses ancestor distance. An exact match costs 0.
func WideningSteps(from, to *Type) int {
	if from == nil || to == nil {
		return 0
	}
	if from.Name == to.Name {
		return 0
	}
	if from == UnknownParameterMarker {
		return 0
	}
	rf, okF := wideningRank[from.Redirect().Name]
	rt, okT := wideningRank[to.Redirect().Name]
	if okF && okT && rt >= rf {
		return rt - rf
	}
	wf, wt := Wrap(from), Wrap(to)
	if d := AncestorDistance(wf, wt); d >= 0 {
		return d
	}
	return 1
}
