// Package sema is THE CORE of this repository: the single visitor that
// performs bidirectional type inference, method/constructor resolution,
// generic parameter substitution, least-upper-bound computation, and
// closure-shared-variable analysis over one already-parsed,
// name-resolved class, emitting diagnostics and annotating nodes for
// the (out-of-scope) bytecode emitter to consume.
//
// Grounded on onflow-cadence's runtime/sema.Checker: a stateful visitor
// holding a stack of scoped activations, a metadata-bearing AST, and an
// error sink, driven by one-class-per-instance construction.
package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/binder"
	"github.com/emberlang/ember/internal/returnadder"
	"github.com/emberlang/ember/types"
)

// Checker is the single-pass recursive visitor of spec.md §2. One
// instance checks exactly one class; it must not be shared across
// threads or reused across two calls to VisitClass (§5, §8 idempotence).
type Checker struct {
	universe   *types.Universe
	extensions *types.ExtensionRegistry
	plugin     binder.Plugin
	objectType *types.Type

	class     *ast.ClassDeclaration
	classType *types.Type

	methodNode        *ast.MethodDeclaration
	closureExpression *ast.ClosureExpression

	methodsToBeVisited   map[string]bool // nil/empty => check all
	alreadyVisitedMethods map[*ast.MethodDeclaration]bool

	errors []error

	// §3 stacked inference context
	withReceiverList        []*types.Type
	lastImplicitItType      *types.Type
	ifBranchFrames          []branchFrame
	assignmentTrackerFrame  assignmentTracker
	forLoopVariableTypes    map[*ast.VariableExpression]*types.Type
	closureSharedVariables  map[any]bool
	closureSharedVariablesAssignmentTypes map[any][]*types.Type
	secondPassExpressions   []*deferredCall
	closureReturnTypes      []*types.Type
	inSpreadContext         bool

	returnAdder        *returnadder.ReturnAdder
	closureReturnAdder *returnadder.ReturnAdder

	isChecked bool
}

// New constructs a checker for one class. `class` and `classType` must
// already be bound to each other by the out-of-scope name resolver:
// classType's Fields/Properties/Methods/Constructors reflect what
// `class` declares.
func New(
	universe *types.Universe,
	extensions *types.ExtensionRegistry,
	plugin binder.Plugin,
	class *ast.ClassDeclaration,
	classType *types.Type,
) *Checker {
	if plugin == nil {
		plugin = binder.NoopPlugin{}
	}
	c := &Checker{
		universe:               universe,
		extensions:             extensions,
		plugin:                 plugin,
		objectType:             universe.Lookup("Object"),
		class:                  class,
		classType:              classType,
		alreadyVisitedMethods:  map[*ast.MethodDeclaration]bool{},
		forLoopVariableTypes:   map[*ast.VariableExpression]*types.Type{},
		closureSharedVariables: map[any]bool{},
		closureSharedVariablesAssignmentTypes: map[any][]*types.Type{},
	}
	c.returnAdder = returnadder.New(c.onMethodReturn)
	c.closureReturnAdder = returnadder.New(c.onClosureReturn)
	return c
}

// SetMethodsToBeVisited restricts which methods VisitClass checks. An
// empty or nil set means "check all" (§6).
func (c *Checker) SetMethodsToBeVisited(names []string) {
	if len(names) == 0 {
		c.methodsToBeVisited = nil
		return
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	c.methodsToBeVisited = set
}

// VisitClass is the primary entry point (§6): it walks every
// constructor body and gated method body of the class exactly once.
// Field declarations carry no initializer expressions, so no field is
// typed here.
func (c *Checker) VisitClass(class *ast.ClassDeclaration) {
	if c.isChecked {
		panic("sema: VisitClass called twice on the same Checker instance")
	}
	c.isChecked = true
	c.class = class

	c.collectClosureSharedVariables(class)

	for _, field := range class.Fields {
		_ = field // field initializer expressions, if any, are typed via VariableDeclarationStatement-shaped construction; none here
	}
	for _, ctor := range class.Constructors {
		c.visitConstructorBody(ctor)
	}
	for _, method := range class.Methods {
		c.visitMethodIfSelected(method)
	}
}

func (c *Checker) methodSelected(name string) bool {
	if len(c.methodsToBeVisited) == 0 {
		return true
	}
	return c.methodsToBeVisited[name]
}

func (c *Checker) visitMethodIfSelected(method *ast.MethodDeclaration) {
	if !c.methodSelected(method.Name) {
		return
	}
	c.visitMethod(method)
}

// visitMethod enters method exactly once (§4.A, guarded by
// alreadyVisitedMethods to break recursion when the resolver re-enters a
// callee to discover its return type), visits its body, then drives the
// return-adder to fold every return expression's type into
// INFERRED_RETURN_TYPE via LUB.
func (c *Checker) visitMethod(method *ast.MethodDeclaration) {
	if c.alreadyVisitedMethods[method] {
		return
	}
	c.alreadyVisitedMethods[method] = true

	if method.Body == nil {
		return
	}

	savedMethod := c.methodNode
	c.methodNode = method
	defer func() { c.methodNode = savedMethod }()

	savedTracker := c.pushAssignmentTracker()
	c.visitBlock(method.Body)
	c.popAssignmentTracker(savedTracker)

	c.returnAdder.VisitMethod(method.Body)
}

func (c *Checker) visitConstructorBody(ctor *ast.ConstructorDeclaration) {
	if ctor.Body == nil {
		return
	}
	c.visitBlock(ctor.Body)
}

// onMethodReturn is the listener passed to returnAdder: it folds the
// return expression's type into the current method's INFERRED_RETURN_TYPE
// via LUB, skipping literal-null returns (grounded on
// original_source's returnAdder listener).
func (c *Checker) onMethodReturn(stmt *ast.ReturnStatement) {
	if stmt.Value == nil {
		return
	}
	if _, isNull := stmt.Value.(*ast.NullLiteral); isNull {
		return
	}
	// The body visit already typed (and reported on) this expression;
	// reuse its stamp so the synthesized tail return does not emit the
	// same diagnostics a second time.
	returnType, _ := stmt.Value.Meta().Get(ast.InferredType).(*types.Type)
	if returnType == nil {
		returnType = c.typeOf(stmt.Value)
	}
	if c.methodNode == nil {
		return
	}
	if declared := c.methodNode.ReturnType; declared != nil {
		declaredType := c.resolveTypeRef(declared)
		if !types.IsAssignable(returnType, declaredType) {
			c.addError(KindReturnTypeMismatch, stmt,
				"Cannot return value of type %s from method returning %s",
				returnType.Name, declaredType.Name)
		}
	}
	meta := c.methodNode.Meta()
	var previous *types.Type
	if v := meta.Get(ast.InferredReturnType); v != nil {
		previous = v.(*types.Type)
	}
	inferred := returnType
	if previous != nil {
		inferred = types.LUB(c.objectType, returnType, previous)
	}
	meta.Set(ast.InferredReturnType, inferred)
}
