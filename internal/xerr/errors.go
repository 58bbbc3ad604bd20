// Package xerr splits errors surfacing from the checker into the same
// internal/user/external categories the teacher's runtime/errors
// package uses, so a host embedding the checker can tell "the input
// program is invalid" apart from "the checker itself hit a bug".
package xerr

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/xerrors"
)

// InternalError is a bug in the checker itself (e.g. an unreachable code
// path). It must always propagate, never be silently recovered.
type InternalError interface {
	error
	IsInternalError()
}

// UserError is an error in the checked program, not the checker.
type UserError interface {
	error
	IsUserError()
}

// UnreachableError marks a code path the checker's own invariants should
// have made impossible; capturing the stack at construction time lets
// the wrapping xerrors.Errorf preserve the frame where it happened.
type UnreachableError struct {
	Stack []byte
	Cause error
}

var _ InternalError = UnreachableError{}

func NewUnreachableError(cause error) UnreachableError {
	return UnreachableError{Stack: debug.Stack(), Cause: cause}
}

func (e UnreachableError) Error() string {
	if e.Cause != nil {
		return xerrors.Errorf("unreachable: %w", e.Cause).Error()
	}
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (e UnreachableError) IsInternalError() {}

// ExternalError wraps a value recovered from a panic inside a
// collaborator (plugin, return-adder) so it can cross the checker's API
// boundary as a normal error.
type ExternalError struct {
	Recovered any
}

func NewExternalError(recovered any) ExternalError {
	return ExternalError{Recovered: recovered}
}

func (e ExternalError) Error() string {
	return fmt.Sprint(e.Recovered)
}
