// Package types implements the Decaf type model and symbol tables.
// It has no dependency on the AST beyond source positions.
package types

// Type is the interface implemented by all types: *Basic, *Named, *Array
// and *Signature.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
