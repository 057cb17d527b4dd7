// Package rtabi defines the ABI constants shared between the compiler and
// the Decaf runtime. These values must match the runtime's frame and
// object conventions.
package rtabi

// Word size. Every scalar, reference, and address occupies one word.
const (
	WordSize = 4
)

// Object layout
const (
	// ObjHeaderSize is the size of the object header (dispatch table pointer).
	ObjHeaderSize = WordSize

	// ObjVTableOffset is the offset of the dispatch table pointer.
	ObjVTableOffset = 0

	// ObjFirstFieldOffset is the offset of the first field.
	ObjFirstFieldOffset = ObjHeaderSize
)

// Array layout. The returned array address points at element 0; the
// element count is stored in the word before it.
const (
	ArrayHeaderSize   = WordSize
	ArrayLengthOffset = -WordSize
)

// Frame layout
const (
	// OffsetToFirstParam is the fp-relative offset of the first actual.
	// Methods receive the receiver there and shift the rest by one word.
	OffsetToFirstParam = 4

	// OffsetToFirstLocal is the fp-relative offset of the first local.
	// Locals and temporaries grow downward from here.
	OffsetToFirstLocal = -8

	// OffsetToFirstGlobal is the gp-relative offset of the first global.
	OffsetToFirstGlobal = 0
)
