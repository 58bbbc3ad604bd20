package ast

// Access mirrors the language's member visibility modifiers; the checker
// only reads it when synthesizing accessor methods (§4.D) and does not
// otherwise enforce access control (out of scope: that's the resolver's
// job before the checker ever runs).
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
)

// GenericParameterDecl is a declared generic placeholder on a class or
// method, e.g. the `T` in `class Box<T>`.
type GenericParameterDecl struct {
	Name  string
	Bound *TypeRef // nil => Object bound
}

type Parameter struct {
	Name         string
	DeclaredType *TypeRef // nil => dynamic
	Vararg       bool
	DefaultValue Expression // nil => required
}

type MethodDeclaration struct {
	base
	Name         string
	Access       Access
	Static       bool
	Generics     []GenericParameterDecl
	Parameters   []Parameter
	ReturnType   *TypeRef // nil => inferred ("def" return)
	Body         *Block   // nil for abstract/interface methods
}

type ConstructorDeclaration struct {
	base
	Access     Access
	Parameters []Parameter
	Body       *Block
}

type FieldDeclaration struct {
	base
	Name         string
	Access       Access
	Static       bool
	ReadOnly     bool
	DeclaredType *TypeRef // nil => dynamic
}

// PropertyDeclaration is a synthesized accessor-only member (getX/isX
// with no backing field), used by the resolver's ReadOnlyProperty path.
type PropertyDeclaration struct {
	Name     string
	Type     *TypeRef
	ReadOnly bool
}

type ClassDeclaration struct {
	base
	Name        string
	Generics    []GenericParameterDecl
	SuperClass  *TypeRef // nil => implicit root type
	Interfaces  []*TypeRef
	IsInterface bool
	IsEnum      bool
	Fields       []*FieldDeclaration
	Properties   []*PropertyDeclaration
	Constructors []*ConstructorDeclaration
	Methods      []*MethodDeclaration
}
