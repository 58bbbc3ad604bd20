package types

// Binding is a resolved placeholder-name -> concrete-type mapping,
// accumulated during generic argument alignment and return-type
// reconstruction (§4.E).
type Binding map[string]*Type

// Substitute walks t and replaces every generic placeholder found in
// bindings with its bound concrete type. Non-placeholder types are
// returned unchanged except that their own GenericArgs are recursively
// substituted (so `List<T>` under `{T: Integer}` becomes
// `List<Integer>`).
func Substitute(t *Type, bindings Binding) *Type {
	if t == nil {
		return nil
	}
	if t.IsPlaceholder() {
		if bound, ok := bindings[t.PlaceholderName]; ok {
			return bound
		}
		return t
	}
	if t.IsArray() {
		return &Type{Kind: KindArray, Name: t.Name, ComponentType: Substitute(t.ComponentType, bindings)}
	}
	if len(t.GenericArgs) == 0 {
		return t
	}
	newArgs := make([]*Type, len(t.GenericArgs))
	changed := false
	for i, a := range t.GenericArgs {
		newArgs[i] = Substitute(a, bindings)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	clone := *t
	clone.GenericArgs = newArgs
	return &clone
}

// AlignParameters substitutes a method's declared parameter types using
// the receiver's own generic bindings (declared placeholder -> bound
// argument), producing the concrete parameter types a call site compares
// arguments against (§4.E "Parameter alignment").
func AlignParameters(receiver *Type, params []MethodParameter) []*Type {
	bindings := ReceiverBindings(receiver)
	out := make([]*Type, len(params))
	for i, p := range params {
		out[i] = Substitute(p.Type, bindings)
	}
	return out
}

// ReceiverBindings extracts the placeholder->argument bindings implied
// by a parameterized receiver, e.g. `Box<Integer>` against declared
// placeholder `T` yields {T: Integer}.
func ReceiverBindings(receiver *Type) Binding {
	bindings := Binding{}
	if receiver == nil {
		return bindings
	}
	for i, name := range receiver.GenericParams {
		if i < len(receiver.GenericArgs) {
			bindings[name] = receiver.GenericArgs[i]
		}
	}
	return bindings
}

// ExtractPlaceholders walks a type tree collecting every generic
// placeholder name it references (§4.E "Placeholder extraction"),
// unioning the receiver's and the method's return type's placeholders.
func ExtractPlaceholders(ts ...*Type) map[string]bool {
	out := map[string]bool{}
	var walk func(t *Type)
	walk = func(t *Type) {
		if t == nil {
			return
		}
		if t.IsPlaceholder() {
			out[t.PlaceholderName] = true
			return
		}
		if t.IsArray() {
			walk(t.ComponentType)
			return
		}
		for _, a := range t.GenericArgs {
			walk(a)
		}
	}
	for _, t := range ts {
		walk(t)
	}
	return out
}

// ReconstructReturnType implements §4.E's "Return-type reconstruction":
// given the method's raw (unsubstituted) return type, its formal
// parameter types, and the actual argument types at the call site, bind
// every placeholder appearing in a formal to the corresponding actual
// (walking the actual's ancestor chain until the formal's raw type is
// reached), then substitute the bindings into the return type template.
// If the raw return type is bare Object with a single unresolved
// placeholder, that placeholder's concrete type is returned directly
// rather than a parameterized Object.
func ReconstructReturnType(objectType *Type, rawReturn *Type, formals []*Type, actuals []*Type, varargLast bool) *Type {
	bindings := Binding{}
	n := len(formals)
	for i := 0; i < n && i < len(actuals); i++ {
		formal := formals[i]
		actual := actuals[i]
		if varargLast && i == n-1 && actual != nil && actual.IsArray() {
			actual = actual.ComponentType
		}
		bindFormalToActual(formal, actual, bindings)
	}

	placeholders := ExtractPlaceholders(rawReturn)
	if rawReturn != nil && rawReturn.Kind == KindClass && rawReturn.Name == "Object" && len(placeholders) == 1 {
		for name := range placeholders {
			if bound, ok := bindings[name]; ok {
				return bound
			}
		}
	}
	return Substitute(rawReturn, bindings)
}

func bindFormalToActual(formal, actual *Type, bindings Binding) {
	if formal == nil || actual == nil {
		return
	}
	if formal.IsPlaceholder() {
		if _, already := bindings[formal.PlaceholderName]; !already {
			bindings[formal.PlaceholderName] = actual
		}
		return
	}
	if formal.IsArray() && actual.IsArray() {
		bindFormalToActual(formal.ComponentType, actual.ComponentType, bindings)
		return
	}
	if len(formal.GenericArgs) == 0 {
		return
	}
	// Walk the actual's ancestor chain until we reach a parameterization
	// of the formal's raw type, then bind positionally.
	target := findAncestorParameterization(actual, formal.Name)
	if target == nil {
		return
	}
	for i, arg := range formal.GenericArgs {
		if i < len(target.GenericArgs) {
			bindFormalToActual(arg, target.GenericArgs[i], bindings)
		}
	}
}

func findAncestorParameterization(t *Type, rawName string) *Type {
	if t == nil {
		return nil
	}
	if t.Name == rawName {
		return t
	}
	for _, s := range t.Super {
		if found := findAncestorParameterization(s, rawName); found != nil {
			return found
		}
	}
	return nil
}

// Wildcarded returns t with every bound generic argument replaced by an
// unresolved placeholder, used by the assignment checker (§4.C step 4)
// to build the permissive comparison form `List<?>` from `List<String>`.
func Wildcarded(t *Type) *Type {
	if t == nil || len(t.GenericArgs) == 0 {
		return t
	}
	clone := *t
	clone.GenericArgs = make([]*Type, len(t.GenericArgs))
	for i, name := range t.GenericParams {
		clone.GenericArgs[i] = &Type{Kind: KindGenericPlaceholder, Name: "?", PlaceholderName: name}
	}
	return &clone
}
