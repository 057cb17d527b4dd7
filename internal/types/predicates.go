package types

// Identical reports whether x and y are identical types: basic types by
// kind, named types by declaration, arrays by element type.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Named:
		if y, ok := y.(*Named); ok {
			return x.obj == y.obj
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Signature:
		if y, ok := y.(*Signature); ok {
			return identicalSignatures(x, y)
		}
	}
	return false
}

func identicalSignatures(x, y *Signature) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// OverrideCompatible reports whether f and g have identical formal
// parameter types, in order, and identical result types.
func OverrideCompatible(f, g *Func) bool {
	fs, gs := f.Signature(), g.Signature()
	if fs == nil || gs == nil {
		return false
	}
	return identicalSignatures(fs, gs)
}

// AssignableTo reports whether a value of type V may be stored in a
// location of type T. The relation is one-way: identical types, null to
// any class or interface type, and a class to each type on its
// compatibility list (ancestors and implemented interfaces).
func AssignableTo(V, T Type) bool {
	if Identical(V, T) {
		return true
	}
	if IsNull(V) {
		_, ok := T.(*Named)
		return ok
	}
	if c := asClass(V); c != nil {
		for _, t := range c.compat {
			if Identical(t, T) {
				return true
			}
		}
	}
	return false
}

// Compatible reports whether either of x and y is assignable to the other.
func Compatible(x, y Type) bool {
	return AssignableTo(x, y) || AssignableTo(y, x)
}

func asClass(T Type) *Class {
	if n, ok := T.(*Named); ok {
		return n.Class()
	}
	return nil
}

func isKind(T Type, kind BasicKind) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == kind
}

// IsError reports whether T is the error type.
func IsError(T Type) bool { return isKind(T, Invalid) }

// IsInt reports whether T is int.
func IsInt(T Type) bool { return isKind(T, Int) }

// IsDouble reports whether T is double.
func IsDouble(T Type) bool { return isKind(T, Double) }

// IsBool reports whether T is bool.
func IsBool(T Type) bool { return isKind(T, Bool) }

// IsVoid reports whether T is void.
func IsVoid(T Type) bool { return isKind(T, Void) }

// IsString reports whether T is string.
func IsString(T Type) bool { return isKind(T, String) }

// IsNull reports whether T is the type of the null constant.
func IsNull(T Type) bool { return isKind(T, Null) }

// IsArithmetic reports whether T is int or double.
func IsArithmetic(T Type) bool {
	return IsInt(T) || IsDouble(T)
}

// IsPrintable reports whether a value of type T may be passed to Print.
func IsPrintable(T Type) bool {
	return IsInt(T) || IsBool(T) || IsString(T)
}

// IsArray reports whether T is an array type.
func IsArray(T Type) bool {
	_, ok := T.(*Array)
	return ok
}
