package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	// Invalid is the error type: the expression was already diagnosed
	// and further errors involving it are suppressed.
	Invalid BasicKind = iota

	Int
	Double
	Bool
	Void
	String
	Null
)

// Basic represents a built-in type. Basic types compare by kind.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
var Typ = []*Basic{
	Invalid: {kind: Invalid, name: "error"},
	Int:     {kind: Int, name: "int"},
	Double:  {kind: Double, name: "double"},
	Bool:    {kind: Bool, name: "bool"},
	Void:    {kind: Void, name: "void"},
	String:  {kind: String, name: "string"},
	Null:    {kind: Null, name: "null"},
}
