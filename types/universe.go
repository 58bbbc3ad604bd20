package types

// Universe is the arena owning every interned Type reachable from one
// class visit: it resolves names to canonical descriptors so equality
// is pointer equality, mirroring the "intern in an arena, reference by
// handle" design called for by the cyclic-reference redesign note.
type Universe struct {
	classes map[string]*Type
}

func NewUniverse() *Universe {
	u := &Universe{classes: map[string]*Type{}}
	u.registerCore()
	u.registerPrimitives()
	return u
}

func (u *Universe) intern(t *Type) *Type {
	if existing, ok := u.classes[t.Name]; ok {
		return existing
	}
	u.classes[t.Name] = t
	return t
}

func (u *Universe) Lookup(name string) *Type {
	return u.classes[name]
}

func (u *Universe) DefineClass(t *Type) *Type {
	if t.Fields == nil {
		t.Fields = map[string]*Field{}
	}
	if t.Properties == nil {
		t.Properties = map[string]*Property{}
	}
	if t.Methods == nil {
		t.Methods = map[string][]*Method{}
	}
	return u.intern(t)
}

// Array returns the (cached) array type with the given component.
func (u *Universe) Array(component *Type) *Type {
	name := component.String() + "[]"
	if existing, ok := u.classes[name]; ok {
		return existing
	}
	arr := &Type{Kind: KindArray, Name: name, ComponentType: component}
	u.classes[name] = arr
	return arr
}

// Parameterize returns t bound with the given generic arguments. The
// result is not interned globally (each call site's binding is
// distinct) but shares the underlying member tables.
func (u *Universe) Parameterize(t *Type, args ...*Type) *Type {
	if t == nil {
		return nil
	}
	clone := *t
	clone.GenericArgs = args
	return &clone
}

// Placeholder returns a fresh unresolved generic placeholder Type.
func (u *Universe) Placeholder(name string) *Type {
	return &Type{Kind: KindGenericPlaceholder, Name: name, PlaceholderName: name}
}

var (
	// ReadOnlyPropertyMarker flags a Property looked up as read-only;
	// used as the "left type" placeholder when an assignment target is
	// a read-only accessor (§4.C step 3).
	ReadOnlyPropertyMarker = &Type{Kind: KindClass, Name: "<read-only-property>"}
	// UnknownParameterMarker types a literal `null` argument during
	// overload matching (§3): it is assignable to any reference type
	// but never wins a distance comparison over a concrete match.
	UnknownParameterMarker = &Type{Kind: KindClass, Name: "<unknown-parameter>"}
)

func (u *Universe) registerCore() {
	object := &Type{Kind: KindClass, Name: "Object"}
	u.DefineClass(object)

	comparable := &Type{Kind: KindClass, Name: "Comparable", Interface: true, Super: []*Type{object}}
	u.DefineClass(comparable)

	number := &Type{Kind: KindClass, Name: "Number", Super: []*Type{object}}
	u.DefineClass(number)

	str := &Type{Kind: KindClass, Name: "String", Super: []*Type{object, comparable}}
	u.DefineClass(str)
	gstring := &Type{Kind: KindClass, Name: "GString", Super: []*Type{object}}
	u.DefineClass(gstring)

	class := &Type{Kind: KindClass, Name: "Class", Super: []*Type{object}}
	u.DefineClass(class)

	matcher := &Type{Kind: KindClass, Name: "Matcher", Super: []*Type{object}}
	u.DefineClass(matcher)

	pattern := &Type{Kind: KindClass, Name: "Pattern", Super: []*Type{object}}
	u.DefineClass(pattern)

	bigInteger := &Type{Kind: KindClass, Name: "BigInteger", Super: []*Type{number, comparable}}
	u.DefineClass(bigInteger)
	bigDecimal := &Type{Kind: KindClass, Name: "BigDecimal", Super: []*Type{number, comparable}}
	u.DefineClass(bigDecimal)

	list := &Type{Kind: KindClass, Name: "List", Interface: true, Super: []*Type{object}, GenericParams: []string{"E"}}
	u.DefineClass(list)
	arrayList := &Type{Kind: KindClass, Name: "ArrayList", Super: []*Type{list}, GenericParams: []string{"E"}}
	u.DefineClass(arrayList)
	m := &Type{Kind: KindClass, Name: "Map", Interface: true, Super: []*Type{object}, GenericParams: []string{"K", "V"}}
	u.DefineClass(m)
	linkedHashMap := &Type{Kind: KindClass, Name: "LinkedHashMap", Super: []*Type{m}, GenericParams: []string{"K", "V"}}
	u.DefineClass(linkedHashMap)
	rangeType := &Type{Kind: KindClass, Name: "Range", Super: []*Type{list}, GenericParams: []string{"E"}}
	u.DefineClass(rangeType)
	closure := &Type{Kind: KindClass, Name: "Closure", Super: []*Type{object}, GenericParams: []string{"R"}}
	u.DefineClass(closure)
}

// wrapper/unwrapper pairs, one entry per primitive per the "total on
// those sets" invariant of §3.
type primitiveSpec struct {
	primitiveName string
	boxedName     string
	numeric       bool
	category      string // "int", "long", "float", "double", "" for non-numeric
}

var primitiveSpecs = []primitiveSpec{
	{"boolean", "Boolean", false, ""},
	{"char", "Character", true, "int"},
	{"byte", "Byte", true, "int"},
	{"short", "Short", true, "int"},
	{"int", "Integer", true, "int"},
	{"long", "Long", true, "long"},
	{"float", "Float", true, "float"},
	{"double", "Double", true, "double"},
	{"void", "Void", false, ""},
}

func (u *Universe) registerPrimitives() {
	object := u.Lookup("Object")
	number := u.Lookup("Number")
	comparable := u.Lookup("Comparable")

	for _, spec := range primitiveSpecs {
		prim := &Type{Kind: KindPrimitive, Name: spec.primitiveName, Primitive: true}
		super := []*Type{object}
		if spec.numeric {
			super = []*Type{number, comparable}
		} else if spec.primitiveName == "boolean" {
			super = []*Type{object, comparable}
		}
		boxed := &Type{Kind: KindClass, Name: spec.boxedName, Super: super}
		prim.boxed = boxed
		boxed.unboxed = prim
		u.intern(prim)
		u.DefineClass(boxed)
	}
}
