package ast

import "github.com/turbolent/prettier"

// TypeRef is a syntactic reference to a type, as written in source
// (a declared variable type, a cast target, a generic argument list).
// The checker resolves it against the type lattice; TypeRef itself
// carries no semantic information beyond what was written.
type TypeRef struct {
	Range
	Name          string
	Generics      []*TypeRef
	Array         bool
	ComponentType *TypeRef // non-nil iff Array
}

func (t *TypeRef) Doc() prettier.Doc {
	if t.Array {
		return prettier.Concat{t.ComponentType.Doc(), prettier.Text("[]")}
	}
	doc := prettier.Concat{prettier.Text(t.Name)}
	if len(t.Generics) > 0 {
		doc = append(doc, prettier.Text("<"))
		for i, g := range t.Generics {
			if i > 0 {
				doc = append(doc, prettier.Text(", "))
			}
			doc = append(doc, g.Doc())
		}
		doc = append(doc, prettier.Text(">"))
	}
	return doc
}
