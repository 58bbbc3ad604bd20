package sema

import (
	"strings"
	"unicode"

	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// findMethod is the resolver used everywhere a call is type-checked
// (§4.D). It returns every candidate tied for the minimum match
// distance; an empty result means "not found", and a result with more
// than one entry means "ambiguous" (the caller decides how to report
// that).
func (c *Checker) findMethod(receiver *types.Type, name string, args []*types.Type) []*types.Method {
	receiver = types.Wrap(receiver)

	candidates := c.collectCandidates(receiver, name, args)
	if best := c.bestMatches(receiver, candidates, args); len(best) > 0 {
		return best
	}

	if ext := c.extensions.Lookup(receiver, name); len(ext) > 0 {
		if best := c.bestMatches(receiver, ext, args); len(best) > 0 {
			return best
		}
	}

	if receiver.Redirect().Name == "GString" {
		return c.findMethod(c.universe.Lookup("String"), name, args)
	}

	if m := c.plugin.FindMethod(receiver, name, args); m != nil {
		return []*types.Method{m}
	}

	return nil
}

// collectCandidates implements §4.D's ordered candidate discovery
// (steps 1-3): constructors (synthesizing a nullary one when absent and
// zero args are given), ordinary methods, or a synthesized get/is
// accessor over a matching property.
func (c *Checker) collectCandidates(receiver *types.Type, name string, args []*types.Type) []*types.Method {
	if name == "<init>" {
		ctors := types.FindConstructors(receiver)
		if len(ctors) == 0 && len(args) == 0 {
			return []*types.Method{{Name: "<init>", DeclaringClass: receiver, ReturnType: receiver}}
		}
		return ctors
	}

	methods := types.FindMethods(receiver, name)
	if len(methods) == 0 && len(args) == 0 {
		if propName, ok := accessorPropertyName(name); ok {
			if prop := types.FindProperty(receiver, propName); prop != nil {
				return []*types.Method{{
					Name: name, DeclaringClass: receiver, ReturnType: prop.Type,
				}}
			}
		}
	}
	return methods
}

// accessorPropertyName decapitalizes a getX/isX method name into the
// property name it may be sugar for (§4.D step 3).
func accessorPropertyName(methodName string) (string, bool) {
	var suffix string
	switch {
	case strings.HasPrefix(methodName, "get") && len(methodName) > 3:
		suffix = methodName[3:]
	case strings.HasPrefix(methodName, "is") && len(methodName) > 2:
		suffix = methodName[2:]
	default:
		return "", false
	}
	r := []rune(suffix)
	r[0] = unicode.ToLower(r[0])
	return string(r), true
}

type scoredMethod struct {
	method   *types.Method
	distance int
}

// bestMatches scores every candidate against args and returns the
// subset tied at the minimum distance (§4.D "Best-match selection").
func (c *Checker) bestMatches(receiver *types.Type, candidates []*types.Method, args []*types.Type) []*types.Method {
	var scored []scoredMethod
	for _, m := range candidates {
		if d, ok := c.matchDistance(receiver, m, args); ok {
			scored = append(scored, scoredMethod{m, d})
		}
	}
	if len(scored) == 0 {
		return nil
	}
	min := scored[0].distance
	for _, s := range scored[1:] {
		if s.distance < min {
			min = s.distance
		}
	}
	var out []*types.Method
	for _, s := range scored {
		if s.distance == min {
			out = append(out, s.method)
		}
	}
	return out
}

// matchDistance implements the two match shapes of §4.D plus the
// supertype-declaration penalty. Autoboxing (wrapping primitive
// receivers/arguments before comparison) is applied throughout.
func (c *Checker) matchDistance(receiver *types.Type, m *types.Method, args []*types.Type) (int, bool) {
	params := types.AlignParameters(receiver, m.Parameters)
	n := len(params)
	argc := len(args)

	lastVararg := len(m.Parameters) > 0 && m.Parameters[n-1].Vararg

	var distance int
	var ok bool

	if !lastVararg {
		distance, ok = allParametersAndArgumentsMatch(params, args)
	} else {
		if argc == n {
			if d, exact := allParametersAndArgumentsMatch(params, args); exact {
				distance, ok = d, true
			}
		}
		if !ok {
			distance, ok = lastArgMatchesVararg(params, args)
		}
	}
	if !ok {
		return 0, false
	}

	if m.DeclaringClass != nil && m.DeclaringClass != receiver && types.AncestorDistance(receiver, m.DeclaringClass) > 0 {
		distance++
	}
	return distance, true
}

func allParametersAndArgumentsMatch(params []*types.Type, args []*types.Type) (int, bool) {
	if len(params) != len(args) {
		return 0, false
	}
	distance := 0
	for i, p := range params {
		wp, wa := types.Wrap(p), types.Wrap(args[i])
		if !types.IsAssignable(wa, wp) {
			return 0, false
		}
		distance += types.WideningSteps(wa, wp)
	}
	return distance, true
}

// lastArgMatchesVararg implements §4.D's vararg fold: every argument up
// to arity-1 matches the corresponding parameter, and the remaining
// (possibly zero) trailing arguments match the vararg element type.
// Distance is bumped by 1 after normalization so an exact,
// non-vararg-folded match always wins ties; when no vararg argument was
// passed at all (arity == formal_arity - 1) the bump is the same single 1.
func lastArgMatchesVararg(params []*types.Type, args []*types.Type) (int, bool) {
	n := len(params)
	argc := len(args)
	if argc < n-1 {
		return 0, false
	}
	distance := 0
	for i := 0; i < n-1; i++ {
		wp, wa := types.Wrap(params[i]), types.Wrap(args[i])
		if !types.IsAssignable(wa, wp) {
			return 0, false
		}
		distance += types.WideningSteps(wa, wp)
	}
	varargParam := params[n-1]
	elementType := varargParam
	if varargParam.IsArray() {
		elementType = varargParam.ComponentType
	}
	if argc == n-1 {
		return distance + 1, true
	}
	for i := n - 1; i < argc; i++ {
		wa := types.Wrap(args[i])
		we := types.Wrap(elementType)
		if !types.IsAssignable(wa, we) {
			return 0, false
		}
		distance += types.WideningSteps(wa, we)
	}
	return distance + 1, true
}

// findMethodOrFail resolves exactly one method, emitting an
// UnknownMethod or AmbiguousMethod diagnostic and returning nil on
// failure, mirroring the source's findMethodOrFail.
func (c *Checker) findMethodOrFail(node ast.HasPosition, receiver *types.Type, name string, args []*types.Type) *types.Method {
	methods := c.findMethod(receiver, name, args)
	switch len(methods) {
	case 0:
		c.addError(KindUnknownMethod, node, "Cannot find matching method %s#%s(%s)", receiver, name, joinTypes(args))
		return nil
	case 1:
		return methods[0]
	default:
		c.addError(KindAmbiguousMethod, node, "Reference to method is ambiguous. Cannot choose between %s", joinMethods(methods))
		return nil
	}
}

func joinTypes(ts []*types.Type) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s
}

func joinMethods(ms []*types.Method) string {
	s := ""
	for i, m := range ms {
		if i > 0 {
			s += ", "
		}
		s += m.String()
	}
	return s
}
