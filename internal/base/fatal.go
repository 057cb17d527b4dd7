// Package base holds the small amount of state and helpers shared by every
// compiler phase: fatal internal-consistency failures and their recovery.
package base

import (
	"fmt"

	"github.com/pkg/errors"
)

// InternalError is an unrecoverable compiler invariant violation.
// It signals a bug in the compiler, never an error in the user program.
type InternalError struct {
	err error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return "internal compiler error: " + e.err.Error()
}

// Unwrap returns the underlying error (carrying the stack of the Fatalf call).
func (e *InternalError) Unwrap() error {
	return e.err
}

// Format prints the stack trace with %+v.
func (e *InternalError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "internal compiler error: %+v", e.err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Fatalf aborts compilation with an internal error.
// The current phase unwinds to the nearest Recover.
func Fatalf(format string, args ...interface{}) {
	panic(&InternalError{err: errors.Errorf(format, args...)})
}

// Assert calls Fatalf if cond is false.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		Fatalf(format, args...)
	}
}

// Recover converts a panic raised by Fatalf into an error stored in *errp.
// Any other panic is re-raised. It must be called directly by a deferred
// function:
//
//	defer base.Recover(&err, "layout")
func Recover(errp *error, phase string) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*InternalError)
	if !ok {
		panic(r)
	}
	*errp = errors.Wrap(ie, phase)
}

// IsInternal reports whether err was produced by Fatalf.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
