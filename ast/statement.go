package ast

// Statement is the common interface of every statement node.
type Statement interface {
	Node
	isStatement()
}

type Block struct {
	base
	Statements []Statement
}

func (*Block) isStatement() {}

type ExpressionStatement struct {
	base
	Expression Expression
}

func (*ExpressionStatement) isStatement() {}

// VariableDeclarationStatement is `T x = expr` or `def x = expr`.
// DeclaredType is nil for `def`-declared (dynamic) variables.
type VariableDeclarationStatement struct {
	base
	Variable     *VariableExpression
	DeclaredType *TypeRef // nil => dynamic ("def")
	Value        Expression // nil => no initializer
}

func (*VariableDeclarationStatement) isStatement() {}

type IfStatement struct {
	base
	Condition Expression
	Then      *Block
	Else      Statement // *Block, *IfStatement, or nil
}

func (*IfStatement) isStatement() {}

type WhileStatement struct {
	base
	Condition Expression
	Body      *Block
}

func (*WhileStatement) isStatement() {}

// ForEachStatement is `for (T item : expr) body`; DeclaredType nil means
// the loop variable is dynamically typed and its type is inferred from
// the collection's element type (§3, forLoopVariableTypes).
type ForEachStatement struct {
	base
	Variable     *VariableExpression
	DeclaredType *TypeRef
	Iterable     Expression
	Body         *Block
}

func (*ForEachStatement) isStatement() {}

type ForStatement struct {
	base
	Init      Statement
	Condition Expression
	Update    Expression
	Body      *Block
}

func (*ForStatement) isStatement() {}

type ReturnStatement struct {
	base
	Value Expression // nil for bare `return`
}

func (*ReturnStatement) isStatement() {}
