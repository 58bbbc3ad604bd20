package sema

import (
	"github.com/emberlang/ember/ast"
	"github.com/emberlang/ember/types"
)

// methodCallSite is the deferred-second-pass unit of §4.G: enough
// information to re-run resolution once a closure-shared receiver's
// final LUB is known.
type methodCallSite struct {
	node       ast.HasPosition
	calleeName string
}

// typeOfMethodCall implements §4.D's call-site path: resolve the
// receiver, compute argument types, resolve the callee, apply the
// generics constraint check and return-type reconstruction (§4.E), and
// stamp DIRECT_METHOD_CALL_TARGET for the bytecode emitter.
func (c *Checker) typeOfMethodCall(e *ast.MethodCallExpression) *types.Type {
	var receiverType *types.Type
	var receiverKey any

	switch {
	case e.Receiver != nil:
		receiverType = c.typeOf(e.Receiver)
		receiverKey = refinementKey(e.Receiver)
	case len(c.withReceiverList) > 0:
		receiverType = c.withReceiverList[len(c.withReceiverList)-1]
	default:
		receiverType = c.classType
	}

	argTypes := make([]*types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = c.typeOf(arg.Value)
	}

	method := c.resolveAndCheckCall(e, receiverType, e.Name, argTypes)
	if method == nil {
		return c.objectType
	}

	e.Meta().Set(ast.DirectMethodCallTarget, method)

	if c.closureSharedVariables[receiverKey] {
		c.secondPassExpressions = append(c.secondPassExpressions, &deferredCall{
			call:           &methodCallSite{node: e, calleeName: e.Name},
			sharedVariable: receiverKey,
			receiverAtCall: receiverType,
			formalArgTypes: argTypes,
		})
	}

	return c.callReturnType(receiverType, method, argTypes)
}

// resolveAndCheckCall resolves the callee and, when it is itself
// generic, applies §4.E's typeCheckMethodsWithGenerics constraint check.
func (c *Checker) resolveAndCheckCall(node ast.HasPosition, receiverType *types.Type, name string, argTypes []*types.Type) *types.Method {
	candidates := c.findMethod(receiverType, name, argTypes)
	switch len(candidates) {
	case 0:
		c.addError(KindUnknownMethod, node, "Cannot find matching method %s#%s(%s)", receiverType, name, joinTypes(argTypes))
		return nil
	case 1:
		method := candidates[0]
		if len(method.GenericParams) > 0 {
			if !c.typeCheckMethodsWithGenerics(node, receiverType, []*types.Method{method}, argTypes) {
				return nil
			}
		}
		return method
	default:
		if !anyGeneric(candidates) {
			c.addError(KindAmbiguousMethod, node, "Reference to method is ambiguous. Cannot choose between %s", joinMethods(candidates))
			return nil
		}
		if !c.typeCheckMethodsWithGenerics(node, receiverType, candidates, argTypes) {
			return nil
		}
		return candidates[0]
	}
}

func anyGeneric(ms []*types.Method) bool {
	for _, m := range ms {
		if len(m.GenericParams) > 0 {
			return true
		}
	}
	return false
}

// typeCheckMethodsWithGenerics implements §4.E's constraint check: for
// each candidate's generic parameters, verify the bound argument's
// wrapped type actually derives from the resolved formal. All candidates
// failing with an identical single-parameter profile is reported as a
// call-not-possible; more varied failures are reported as no-match.
func (c *Checker) typeCheckMethodsWithGenerics(node ast.HasPosition, receiver *types.Type, candidates []*types.Method, argTypes []*types.Type) bool {
	failures := 0
	var lastMethod *types.Method
	uniformSingleParam := true

	for _, m := range candidates {
		params := types.AlignParameters(receiver, m.Parameters)
		ok := true
		for i, p := range params {
			if i >= len(argTypes) {
				break
			}
			if !types.IsAssignable(types.Wrap(argTypes[i]), types.Wrap(p)) {
				ok = false
				break
			}
		}
		if !ok {
			failures++
			lastMethod = m
			if len(m.GenericParams) != 1 {
				uniformSingleParam = false
			}
		}
	}

	if failures == 0 {
		return true
	}
	if failures == len(candidates) && uniformSingleParam && lastMethod != nil {
		c.addError(KindGenericsIncompatible, node, "Cannot call %s#%s(%s) with arguments (%s)",
			lastMethod.DeclaringClass, lastMethod.Name, joinTypes(paramTypes(lastMethod)), joinTypes(argTypes))
		return false
	}
	c.addError(KindGenericsIncompatible, node, "No matching method found for arguments %s", joinTypes(argTypes))
	return false
}

func paramTypes(m *types.Method) []*types.Type {
	out := make([]*types.Type, len(m.Parameters))
	for i, p := range m.Parameters {
		out[i] = p.Type
	}
	return out
}

// callReturnType implements §4.E's return-type reconstruction over the
// resolved method's raw return type.
func (c *Checker) callReturnType(receiver *types.Type, method *types.Method, argTypes []*types.Type) *types.Type {
	bindings := types.ReceiverBindings(receiver)
	rawReturn := types.Substitute(method.ReturnType, bindings)

	formals := types.AlignParameters(receiver, method.Parameters)
	lastVararg := len(method.Parameters) > 0 && method.Parameters[len(method.Parameters)-1].Vararg

	return types.ReconstructReturnType(c.objectType, rawReturn, formals, argTypes, lastVararg)
}

// typeOfConstructorCall implements the `<init>` path of §4.D.
func (c *Checker) typeOfConstructorCall(e *ast.ConstructorCallExpression) *types.Type {
	targetType := c.resolveTypeRef(e.TypeName)
	argTypes := make([]*types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = c.typeOf(arg.Value)
	}
	method := c.resolveAndCheckCall(e, targetType, "<init>", argTypes)
	if method == nil {
		return targetType
	}
	e.Meta().Set(ast.DirectMethodCallTarget, method)
	return targetType
}
