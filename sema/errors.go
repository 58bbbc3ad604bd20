package sema

import (
	"fmt"

	"github.com/emberlang/ember/ast"
)

// Kind enumerates the error kinds of §7, not type names: downstream
// tooling switches on Kind rather than on Go error types.
type Kind int

const (
	KindUnknownVariable Kind = iota
	KindUnknownProperty
	KindUnknownMethod
	KindAmbiguousMethod
	KindAssignmentIncompatible
	KindGenericsIncompatible
	KindNumericPrecisionLoss
	KindInconvertibleCast
	KindTupleArityMismatch
	KindDynamicMapKey
	KindSpreadOperatorMisuse
	KindWithParameterMismatch
	KindClosureArgumentsMismatch
	KindReturnTypeMismatch
	KindClosureSharedVariableNotOnLUB
)

// Severity distinguishes fatal diagnostics from precision-loss warnings
// (§7 "Warnings ... use the same channel but are conceptually
// recoverable").
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is a single checker-emitted error, carrying the fixed
// English message text spec.md documents as a stable interface.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Range    ast.Range
}

func (d *Diagnostic) Error() string { return d.Message }

// addError is the sink of §4.H: it is a no-op for nodes with no source
// position (generated nodes), and otherwise appends to the checker's
// error list in discovery order.
func (c *Checker) addError(kind Kind, node ast.HasPosition, format string, args ...any) {
	c.addDiagnostic(kind, SeverityError, node, format, args...)
}

func (c *Checker) addWarning(kind Kind, node ast.HasPosition, format string, args ...any) {
	c.addDiagnostic(kind, SeverityWarning, node, format, args...)
}

func (c *Checker) addDiagnostic(kind Kind, severity Severity, node ast.HasPosition, format string, args ...any) {
	if node == nil {
		return
	}
	start, end := node.StartPosition(), node.EndPosition()
	if start == (ast.Position{}) && end == (ast.Position{}) {
		// Generated node with no source location: silently dropped,
		// per §4.H.
		return
	}
	c.errors = append(c.errors, &Diagnostic{
		Kind:     kind,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Range:    ast.Range{StartPos: start, EndPos: end},
	})
}

// Errors returns every diagnostic emitted so far, in discovery order.
func (c *Checker) Errors() []error {
	return c.errors
}

// HasErrors reports whether any error-severity diagnostic (as opposed to
// a warning) was emitted.
func (c *Checker) HasErrors() bool {
	for _, err := range c.errors {
		if d, ok := err.(*Diagnostic); ok && d.Severity == SeverityWarning {
			continue
		}
		return true
	}
	return false
}
