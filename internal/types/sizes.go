package types

import "github.com/you-not-fish/decafc/internal/rtabi"

// Sizes provides size calculations for types.
// It uses the rtabi constants to ensure ABI consistency with the runtime.
type Sizes struct{}

// DefaultSizes is the default Sizes implementation.
var DefaultSizes = &Sizes{}

// Sizeof returns the size of a value of type T in bytes. Scalars,
// strings, object references, and array references all occupy one word;
// void has no size.
func (s *Sizes) Sizeof(T Type) int {
	switch t := T.(type) {
	case *Basic:
		if t.kind == Void {
			return 0
		}
		return rtabi.WordSize
	case *Named, *Array:
		return rtabi.WordSize
	}
	return 0
}

// InstanceSize returns the size of an object of class c: the header word
// plus one word per field, inherited fields included.
func (s *Sizes) InstanceSize(c *Class) int {
	n := 0
	for k := c; k != nil; k = k.super {
		n += len(k.fields)
	}
	return rtabi.ObjHeaderSize + n*rtabi.WordSize
}
