// Package types2 resolves names and type-checks Decaf programs.
package types2

import (
	"fmt"

	"github.com/you-not-fish/decafc/internal/syntax"
)

// ErrorKind classifies a diagnosis.
type ErrorKind int

const (
	DeclarationConflict ErrorKind = iota
	IdentifierNotDeclared
	OverrideMismatch
	InterfaceNotImplemented
	IncompatibleOperand
	IncompatibleOperands
	SubscriptNotInteger
	BracketsOnNonArray
	FieldNotFoundInBase
	InaccessibleField
	NumArgsMismatch
	ArgMismatch
	TestNotBoolean
	BreakOutsideLoop
	ReturnMismatch
	PrintArgMismatch
	ThisOutsideClassScope
	NewArraySizeNotInteger
	NoEntryRoutineFound
	CyclicInheritance
	SwitchNotInteger
)

var errorKindNames = [...]string{
	DeclarationConflict:     "DeclarationConflict",
	IdentifierNotDeclared:   "IdentifierNotDeclared",
	OverrideMismatch:        "OverrideMismatch",
	InterfaceNotImplemented: "InterfaceNotImplemented",
	IncompatibleOperand:     "IncompatibleOperand",
	IncompatibleOperands:    "IncompatibleOperands",
	SubscriptNotInteger:     "SubscriptNotInteger",
	BracketsOnNonArray:      "BracketsOnNonArray",
	FieldNotFoundInBase:     "FieldNotFoundInBase",
	InaccessibleField:       "InaccessibleField",
	NumArgsMismatch:         "NumArgsMismatch",
	ArgMismatch:             "ArgMismatch",
	TestNotBoolean:          "TestNotBoolean",
	BreakOutsideLoop:        "BreakOutsideLoop",
	ReturnMismatch:          "ReturnMismatch",
	PrintArgMismatch:        "PrintArgMismatch",
	ThisOutsideClassScope:   "ThisOutsideClassScope",
	NewArraySizeNotInteger:  "NewArraySizeNotInteger",
	NoEntryRoutineFound:     "NoEntryRoutineFound",
	CyclicInheritance:       "CyclicInheritance",
	SwitchNotInteger:        "SwitchNotInteger",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// LookingFor says what kind of entity an undeclared identifier was
// expected to name.
type LookingFor int

const (
	LookingForType LookingFor = iota
	LookingForClass
	LookingForInterface
	LookingForVariable
	LookingForFunction
)

var lookingForNames = [...]string{
	LookingForType:      "type",
	LookingForClass:     "class",
	LookingForInterface: "interface",
	LookingForVariable:  "variable",
	LookingForFunction:  "function",
}

func (l LookingFor) String() string { return lookingForNames[l] }

// Error is a diagnosis. Checking continues after an Error is reported.
// Names lists the identifiers involved, most specific first. For is only
// meaningful for IdentifierNotDeclared.
type Error struct {
	Kind  ErrorKind
	Pos   syntax.Pos
	Names []string
	For   LookingFor
	Msg   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is called for each diagnosis.
type ErrorHandler func(err *Error)

// report records a diagnosis.
func (c *Checker) report(err *Error) {
	if c.errors == 0 {
		c.first = err
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}

// errorf reports a diagnosis of the given kind at pos.
func (c *Checker) errorf(kind ErrorKind, pos syntax.Pos, names []string, format string, args ...interface{}) {
	c.report(&Error{Kind: kind, Pos: pos, Names: names, Msg: fmt.Sprintf(format, args...)})
}

// notDeclared reports an identifier that does not name the expected entity.
func (c *Checker) notDeclared(id *syntax.Identifier, what LookingFor) {
	c.report(&Error{
		Kind:  IdentifierNotDeclared,
		Pos:   id.Pos(),
		Names: []string{id.Name},
		For:   what,
		Msg:   fmt.Sprintf("No declaration found for %s '%s'", what, id.Name),
	})
}

// NoEntry returns the diagnosis for a program without a main function.
func NoEntry() *Error {
	return &Error{
		Kind:  NoEntryRoutineFound,
		Names: []string{"main"},
		Msg:   "function 'main' not defined",
	}
}
