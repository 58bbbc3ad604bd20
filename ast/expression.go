package ast

import "github.com/turbolent/prettier"

// Expression is the common interface of every expression node. Doc lets
// diagnostics print an approximation of the offending expression without
// re-lexing the file; some variants print placeholders instead of their
// source text (float and double literals print their type name, a cast
// prints "(T) " or " as ...", and a closure prints "{ ... }").
type Expression interface {
	Node
	isExpression()
	Doc() prettier.Doc
}

// Operator enumerates the binary operators the expression typer (§4.B)
// dispatches on.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPower
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
	OpCompareEqual
	OpCompareNotEqual
	OpCompareTo
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpLogicalAnd
	OpLogicalOr
	OpRegexFind
	OpInstanceOf
	OpAssign
)

var operatorSymbols = map[Operator]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPower: "**",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpShiftLeft: "<<", OpShiftRight: ">>",
	OpCompareEqual: "==", OpCompareNotEqual: "!=", OpCompareTo: "<=>",
	OpLess: "<", OpLessEqual: "<=", OpGreater: ">", OpGreaterEqual: ">=",
	OpLogicalAnd: "&&", OpLogicalOr: "||",
	OpRegexFind: "=~", OpInstanceOf: "instanceof", OpAssign: "=",
}

func (o Operator) String() string { return operatorSymbols[o] }

// --- literals ---

type IntLiteral struct {
	base
	Value int32
}

func (*IntLiteral) isExpression() {}
func (e *IntLiteral) Doc() prettier.Doc {
	return prettier.Text(intText(int64(e.Value)))
}

type LongLiteral struct {
	base
	Value int64
}

func (*LongLiteral) isExpression() {}
func (e *LongLiteral) Doc() prettier.Doc { return prettier.Text(intText(e.Value) + "L") }

type FloatLiteral struct {
	base
	Value float32
}

func (*FloatLiteral) isExpression() {}
func (e *FloatLiteral) Doc() prettier.Doc { return prettier.Text("float") }

type DoubleLiteral struct {
	base
	Value float64
}

func (*DoubleLiteral) isExpression() {}
func (e *DoubleLiteral) Doc() prettier.Doc { return prettier.Text("double") }

type BigIntegerLiteral struct {
	base
	Text string
}

func (*BigIntegerLiteral) isExpression()  {}
func (e *BigIntegerLiteral) Doc() prettier.Doc { return prettier.Text(e.Text + "g") }

type BigDecimalLiteral struct {
	base
	Text string
}

func (*BigDecimalLiteral) isExpression()  {}
func (e *BigDecimalLiteral) Doc() prettier.Doc { return prettier.Text(e.Text + "g") }

// StringLiteral covers both plain strings and interpolated GStrings; the
// language treats interpolated literals ("...${x}...") as a distinct
// GString type from plain 'strings'.
type StringLiteral struct {
	base
	Value        string
	Interpolated bool
}

func (*StringLiteral) isExpression() {}
func (e *StringLiteral) Doc() prettier.Doc { return prettier.Text(`"` + e.Value + `"`) }

type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) isExpression() {}
func (e *BoolLiteral) Doc() prettier.Doc {
	if e.Value {
		return prettier.Text("true")
	}
	return prettier.Text("false")
}

type NullLiteral struct{ base }

func (*NullLiteral) isExpression()      {}
func (*NullLiteral) Doc() prettier.Doc { return prettier.Text("null") }

// --- structural literals ---

// ListLiteral is `[a, b, c]`. GenericElementType is non-nil when the
// literal already carries an explicit element type from the source
// (`[1, 2] as List<Integer>` style annotations resolved upstream).
type ListLiteral struct {
	base
	Elements          []Expression
	GenericElementType *TypeRef // nil unless already parameterized
}

func (*ListLiteral) isExpression() {}
func (e *ListLiteral) Doc() prettier.Doc { return listDoc("[", e.Elements, "]") }

type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct {
	base
	Entries []MapEntry
}

func (*MapLiteral) isExpression() {}
func (e *MapLiteral) Doc() prettier.Doc {
	elems := make([]Expression, 0, len(e.Entries))
	for _, entry := range e.Entries {
		elems = append(elems, entry.Key, entry.Value)
	}
	return listDoc("[", elems, "]")
}

type RangeLiteral struct {
	base
	From      Expression
	To        Expression
	Inclusive bool
}

func (*RangeLiteral) isExpression() {}
func (e *RangeLiteral) Doc() prettier.Doc {
	return prettier.Concat{e.From.Doc(), prettier.Text(".."), e.To.Doc()}
}

// TupleLiteral is the destructuring-target form `(a, b) = [1, 2]`; it is
// only ever valid as the left side of an assignment.
type TupleLiteral struct {
	base
	Elements []*VariableExpression
}

func (*TupleLiteral) isExpression() {}
func (e *TupleLiteral) Doc() prettier.Doc {
	elems := make([]Expression, len(e.Elements))
	for i, v := range e.Elements {
		elems[i] = v
	}
	return listDoc("(", elems, ")")
}

// SpreadExpression is `*expr` inside a list or map literal.
type SpreadExpression struct {
	base
	Target Expression
}

func (*SpreadExpression) isExpression() {}
func (e *SpreadExpression) Doc() prettier.Doc {
	return prettier.Concat{prettier.Text("*"), e.Target.Doc()}
}

// --- variable & member access ---

// BindingKind classifies how the out-of-scope name-resolution pass bound
// an identifier. The checker never re-derives this; it only reads it.
type BindingKind int

const (
	BindingLocal BindingKind = iota
	BindingParameter
	BindingField
	BindingThis
	BindingSuper
	BindingDynamic // undeclared, or a member of a `with` receiver
)

// VariableExpression references a name; Binding is filled in by the
// out-of-scope resolver before the checker ever sees the tree.
type VariableExpression struct {
	base
	Name    string
	Binding BindingKind
	// AccessedVariable, when non-nil, is the underlying declared variable
	// this expression is a synthetic alias for (e.g. the target of a
	// `def x` capture-by-closure). Mirrors accessedVariable indirection
	// used by the assignment checker's declared-type special case.
	AccessedVariable *VariableExpression
}

func (*VariableExpression) isExpression() {}
func (e *VariableExpression) Doc() prettier.Doc { return prettier.Text(e.Name) }

// Identity returns the stable key used by refinement tracking (§4.F):
// the resolved variable's own pointer identity, so the same variable
// referenced through different expression nodes still shares a key.
func (e *VariableExpression) Identity() any {
	if e.AccessedVariable != nil {
		return e.AccessedVariable.Identity()
	}
	return e
}

type PropertyExpression struct {
	base
	Receiver Expression
	Property string
	Safe     bool // `?.` navigation
}

func (*PropertyExpression) isExpression() {}
func (e *PropertyExpression) Doc() prettier.Doc {
	op := "."
	if e.Safe {
		op = "?."
	}
	return prettier.Concat{e.Receiver.Doc(), prettier.Text(op + e.Property)}
}

type IndexExpression struct {
	base
	Receiver Expression
	Index    Expression
}

func (*IndexExpression) isExpression() {}
func (e *IndexExpression) Doc() prettier.Doc {
	return prettier.Concat{e.Receiver.Doc(), prettier.Text("["), e.Index.Doc(), prettier.Text("]")}
}

// --- operators ---

type BinaryExpression struct {
	base
	Left     Expression
	Operator Operator
	Right    Expression
}

func (*BinaryExpression) isExpression() {}
func (e *BinaryExpression) Doc() prettier.Doc {
	return prettier.Concat{
		e.Left.Doc(),
		prettier.Text(" " + e.Operator.String() + " "),
		e.Right.Doc(),
	}
}

type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota
	UnaryPlus
	UnaryBitwiseNegate
	UnaryLogicalNot
)

type UnaryExpression struct {
	base
	Operator UnaryOperator
	Operand  Expression
}

func (*UnaryExpression) isExpression() {}
func (e *UnaryExpression) Doc() prettier.Doc {
	sym := map[UnaryOperator]string{
		UnaryMinus: "-", UnaryPlus: "+", UnaryBitwiseNegate: "~", UnaryLogicalNot: "!",
	}[e.Operator]
	return prettier.Concat{prettier.Text(sym), e.Operand.Doc()}
}

// --- control expressions ---

type TernaryExpression struct {
	base
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

func (*TernaryExpression) isExpression() {}
func (e *TernaryExpression) Doc() prettier.Doc {
	return prettier.Concat{
		e.Condition.Doc(), prettier.Text(" ? "), e.IfTrue.Doc(), prettier.Text(" : "), e.IfFalse.Doc(),
	}
}

// CastKind distinguishes `(T) expr` from `expr as T` (the latter, `coerce`
// in §4.B, is always permitted).
type CastKind int

const (
	CastCheck CastKind = iota
	CastCoerce
)

type CastExpression struct {
	base
	Target   Expression
	TypeName *TypeRef
	Kind     CastKind
}

func (*CastExpression) isExpression() {}
func (e *CastExpression) Doc() prettier.Doc {
	if e.Kind == CastCoerce {
		return prettier.Concat{e.Target.Doc(), prettier.Text(" as ...")}
	}
	return prettier.Concat{prettier.Text("(T) "), e.Target.Doc()}
}

// --- calls ---

type Argument struct {
	Label string // "" when positional
	Value Expression
}

// MethodCallExpression is `receiver.name(args)`; Receiver is nil for an
// implicit-this call.
type MethodCallExpression struct {
	base
	Receiver Expression
	Name     string
	Arguments []Argument
}

func (*MethodCallExpression) isExpression() {}
func (e *MethodCallExpression) Doc() prettier.Doc {
	args := make([]Expression, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.Value
	}
	var prefix prettier.Doc = prettier.Text(e.Name)
	if e.Receiver != nil {
		prefix = prettier.Concat{e.Receiver.Doc(), prettier.Text("."), prefix}
	}
	return prettier.Concat{prefix, listDoc("(", args, ")")}
}

type ConstructorCallExpression struct {
	base
	TypeName  *TypeRef
	Arguments []Argument
}

func (*ConstructorCallExpression) isExpression() {}
func (e *ConstructorCallExpression) Doc() prettier.Doc {
	args := make([]Expression, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.Value
	}
	return prettier.Concat{prettier.Text("new "), e.TypeName.Doc(), listDoc("(", args, ")")}
}

// --- closures ---

type ClosureParameter struct {
	Name         string
	DeclaredType *TypeRef // nil for `def`/untyped
}

type ClosureExpression struct {
	base
	Parameters []ClosureParameter
	Body       *Block
}

func (*ClosureExpression) isExpression() {}
func (e *ClosureExpression) Doc() prettier.Doc { return prettier.Text("{ ... }") }

// --- with block ---

// WithExpression models the language's implicit-receiver block: inside
// Body, unqualified member references first search Receiver.
type WithExpression struct {
	base
	Receiver Expression
	Body     *ClosureExpression
}

func (*WithExpression) isExpression() {}
func (e *WithExpression) Doc() prettier.Doc {
	return prettier.Concat{e.Receiver.Doc(), prettier.Text(".with "), e.Body.Doc()}
}

func listDoc(open string, elems []Expression, close string) prettier.Doc {
	docs := make([]prettier.Doc, len(elems))
	for i, e := range elems {
		docs[i] = e.Doc()
	}
	concat := prettier.Concat{prettier.Text(open)}
	for i, d := range docs {
		if i > 0 {
			concat = append(concat, prettier.Text(", "))
		}
		concat = append(concat, d)
	}
	concat = append(concat, prettier.Text(close))
	return concat
}

func intText(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf []byte
	for v > 0 {
		buf = append([]byte{byte('0' + v%10)}, buf...)
		v /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}
