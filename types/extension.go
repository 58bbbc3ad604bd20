package types

// ExtensionRegistry holds statically-registered extension methods (DGM,
// "default groovy methods" in the source's vocabulary): pseudo-methods
// attached to an existing receiver type from outside its declaration.
// The resolver (§4.D step 4) consults this only after ordinary member
// lookup fails.
type ExtensionRegistry struct {
	byReceiver map[string]map[string][]*Method
}

func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{byReceiver: map[string]map[string][]*Method{}}
}

func (r *ExtensionRegistry) Register(receiver *Type, m *Method) {
	byName, ok := r.byReceiver[receiver.Name]
	if !ok {
		byName = map[string][]*Method{}
		r.byReceiver[receiver.Name] = byName
	}
	byName[m.Name] = append(byName[m.Name], m)
}

// Lookup returns every extension method with the given name reachable
// from receiver, walking its superclass chain the same way ordinary
// method lookup does (a DGM registered on Object matches everything).
func (r *ExtensionRegistry) Lookup(receiver *Type, name string) []*Method {
	var out []*Method
	var chain []*Type
	linearize(receiver, map[string]bool{}, &chain)
	for _, t := range chain {
		if byName, ok := r.byReceiver[t.Name]; ok {
			out = append(out, byName[name]...)
		}
	}
	return out
}
