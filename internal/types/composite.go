package types

import "strings"

// Array represents an array type Elem[].
type Array struct {
	typ
	elem Type
}

// NewArray creates a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// String implements Type.
func (a *Array) String() string {
	return a.elem.String() + "[]"
}

// Signature represents the type of a function or method.
// The receiver of a method is implicit.
type Signature struct {
	typ
	params []*Var
	result Type
}

// NewSignature creates a new signature. result is Typ[Void] for routines
// without a value.
func NewSignature(params []*Var, result Type) *Signature {
	return &Signature{params: params, result: result}
}

// Params returns the parameter list.
func (s *Signature) Params() []*Var {
	return s.params
}

// Result returns the result type.
func (s *Signature) Result() Type {
	return s.result
}

// String implements Type.
func (s *Signature) String() string {
	var buf strings.Builder
	buf.WriteString("(")
	for i, p := range s.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(") ")
	buf.WriteString(s.result.String())
	return buf.String()
}
