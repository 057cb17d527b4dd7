package types

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
)

// Object represents a declared entity: variable, function, class, or
// interface.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // declaring scope (set by the first Insert)

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarKind says where a variable lives.
type VarKind int

const (
	GlobalVar VarKind = iota // gp-relative
	LocalVar                 // fp-relative, below fp
	ParamVar                 // fp-relative, above fp
	FieldVar                 // receiver-relative
)

var varKindNames = [...]string{
	GlobalVar: "global",
	LocalVar:  "local",
	ParamVar:  "param",
	FieldVar:  "field",
}

func (k VarKind) String() string { return varKindNames[k] }

// Var represents a global, local, parameter, or field.
type Var struct {
	object
	kind   VarKind
	offset int
	placed bool
}

// NewVar creates a new variable object. typ may be nil and set later.
func NewVar(pos syntax.Pos, name string, kind VarKind, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: kind}
}

// Kind returns where the variable lives.
func (v *Var) Kind() VarKind {
	return v.kind
}

// SetType sets the variable's type.
// This is called during resolution once the type is known.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// Offset returns the byte offset assigned by layout, relative to the
// segment or object the variable lives in.
func (v *Var) Offset() int {
	base.Assert(v.placed, "offset of %s %s requested before layout", v.kind, v.name)
	return v.offset
}

// HasOffset reports whether layout has placed the variable.
func (v *Var) HasOffset() bool {
	return v.placed
}

// SetOffset records the variable's byte offset. It may be called once.
func (v *Var) SetOffset(off int) {
	base.Assert(!v.placed, "%s %s placed twice", v.kind, v.name)
	v.offset, v.placed = off, true
}

// Func represents a declared function, method, or interface prototype.
type Func struct {
	object
	owner Object // nil, *Class, or *Interface
	label string
	slot  int
}

// NewFunc creates a new function object. owner is nil for top-level
// functions. The signature is set later using SetSignature.
func NewFunc(pos syntax.Pos, name string, owner Object) *Func {
	return &Func{object: object{name: name, pos: pos}, owner: owner, slot: -1}
}

// Signature returns the function signature.
func (f *Func) Signature() *Signature {
	sig, _ := f.typ.(*Signature)
	return sig
}

// SetSignature sets the function signature.
func (f *Func) SetSignature(sig *Signature) {
	f.typ = sig
}

// Class returns the declaring class, or nil.
func (f *Func) Class() *Class {
	c, _ := f.owner.(*Class)
	return c
}

// IsMethod reports whether f is declared in a class or interface.
func (f *Func) IsMethod() bool {
	return f.owner != nil
}

// Label returns the routine label assigned by layout.
func (f *Func) Label() string {
	return f.label
}

// SetLabel records the routine label. It may be called once.
func (f *Func) SetLabel(label string) {
	base.Assert(f.label == "", "function %s labeled twice", f.name)
	f.label = label
}

// Slot returns the dispatch table slot, or -1 if f has none.
func (f *Func) Slot() int {
	return f.slot
}

// SetSlot records the dispatch table slot. It may be called once.
func (f *Func) SetSlot(slot int) {
	base.Assert(f.slot < 0, "method %s given slot %d twice", f.name, slot)
	f.slot = slot
}

// Class represents a declared class.
type Class struct {
	object
	super   *Class
	ifaces  []*Interface
	compat  []Type
	fields  []*Var
	methods []*Func
	scope   *Scope
}

// NewClass creates a class object and its named type.
func NewClass(pos syntax.Pos, name string) *Class {
	c := &Class{object: object{name: name, pos: pos}}
	c.typ = &Named{obj: c}
	return c
}

// Named returns the class type.
func (c *Class) Named() *Named {
	return c.typ.(*Named)
}

// Super returns the superclass, or nil.
func (c *Class) Super() *Class {
	return c.super
}

// Interfaces returns the directly implemented interfaces.
func (c *Class) Interfaces() []*Interface {
	return c.ifaces
}

// SetBases records the resolved superclass and interfaces and computes the
// compatibility list: the superclass, everything the superclass is
// compatible with, then each interface. The superclass's bases must
// already be set.
func (c *Class) SetBases(super *Class, ifaces []*Interface) {
	c.super, c.ifaces = super, ifaces
	c.compat = nil
	if super != nil {
		c.compat = append(c.compat, super.Named())
		c.compat = append(c.compat, super.compat...)
	}
	for _, i := range ifaces {
		c.compat = append(c.compat, i.Named())
	}
}

// Compat returns the flattened list of types c is assignable to,
// excluding c itself.
func (c *Class) Compat() []Type {
	return c.compat
}

// Fields returns the fields declared directly in c, in order.
func (c *Class) Fields() []*Var {
	return c.fields
}

// Methods returns the methods declared directly in c, in order.
func (c *Class) Methods() []*Func {
	return c.methods
}

// AddField appends a directly declared field.
func (c *Class) AddField(v *Var) {
	c.fields = append(c.fields, v)
}

// AddMethod appends a directly declared method.
func (c *Class) AddMethod(f *Func) {
	c.methods = append(c.methods, f)
}

// Scope returns the class's member table (inherited members included),
// or nil before resolution.
func (c *Class) Scope() *Scope {
	return c.scope
}

// SetScope records the member table.
func (c *Class) SetScope(s *Scope) {
	c.scope = s
}

// Interface represents a declared interface.
type Interface struct {
	object
	methods []*Func
	scope   *Scope
}

// NewInterface creates an interface object and its named type.
func NewInterface(pos syntax.Pos, name string) *Interface {
	i := &Interface{object: object{name: name, pos: pos}}
	i.typ = &Named{obj: i}
	return i
}

// Named returns the interface type.
func (i *Interface) Named() *Named {
	return i.typ.(*Named)
}

// Methods returns the method prototypes in declaration order.
func (i *Interface) Methods() []*Func {
	return i.methods
}

// AddMethod appends a method prototype.
func (i *Interface) AddMethod(f *Func) {
	i.methods = append(i.methods, f)
}

// Scope returns the interface's member table, or nil before resolution.
func (i *Interface) Scope() *Scope {
	return i.scope
}

// SetScope records the member table.
func (i *Interface) SetScope(s *Scope) {
	i.scope = s
}
