package returnadder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/ast"
)

func TestVisitMethodFindsExplicitReturns(t *testing.T) {
	t.Parallel()

	var seen []*ast.ReturnStatement
	r := New(func(stmt *ast.ReturnStatement) { seen = append(seen, stmt) })

	explicit := &ast.ReturnStatement{Value: &ast.IntLiteral{Value: 1}}
	body := &ast.Block{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expression: &ast.IntLiteral{Value: 0}},
		explicit,
	}}

	r.VisitMethod(body)

	require.Len(t, seen, 1)
	assert.Same(t, explicit, seen[0])
}

func TestVisitMethodSynthesizesTailExpressionReturn(t *testing.T) {
	t.Parallel()

	var seen []*ast.ReturnStatement
	r := New(func(stmt *ast.ReturnStatement) { seen = append(seen, stmt) })

	tail := &ast.IntLiteral{Value: 42}
	body := &ast.Block{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expression: &ast.IntLiteral{Value: 0}},
		&ast.ExpressionStatement{Expression: tail},
	}}

	r.VisitMethod(body)

	require.Len(t, seen, 1)
	assert.Same(t, tail, seen[0].Value)
}

func TestVisitMethodDoesNotSynthesizeInsideLoops(t *testing.T) {
	t.Parallel()

	var seen []*ast.ReturnStatement
	r := New(func(stmt *ast.ReturnStatement) { seen = append(seen, stmt) })

	loopTail := &ast.IntLiteral{Value: 7}
	body := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: &ast.BoolLiteral{Value: true},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.ExpressionStatement{Expression: loopTail},
			}},
		},
	}}

	r.VisitMethod(body)

	assert.Empty(t, seen)
}

func TestVisitMethodDescendsBothIfBranchesInTailPosition(t *testing.T) {
	t.Parallel()

	var seen []*ast.ReturnStatement
	r := New(func(stmt *ast.ReturnStatement) { seen = append(seen, stmt) })

	thenTail := &ast.IntLiteral{Value: 1}
	elseTail := &ast.IntLiteral{Value: 2}
	body := &ast.Block{Statements: []ast.Statement{
		&ast.IfStatement{
			Condition: &ast.BoolLiteral{Value: true},
			Then:      &ast.Block{Statements: []ast.Statement{&ast.ExpressionStatement{Expression: thenTail}}},
			Else:      &ast.Block{Statements: []ast.Statement{&ast.ExpressionStatement{Expression: elseTail}}},
		},
	}}

	r.VisitMethod(body)

	require.Len(t, seen, 2)
	assert.Same(t, thenTail, seen[0].Value)
	assert.Same(t, elseTail, seen[1].Value)
}
