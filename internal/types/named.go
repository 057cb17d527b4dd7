package types

// Named is the type of a class or interface, referring to its declaration
// object. Two named types are identical iff they name the same object.
type Named struct {
	typ
	obj Object // *Class or *Interface
}

// Obj returns the declaring *Class or *Interface.
func (n *Named) Obj() Object {
	return n.obj
}

// Class returns the named class, or nil if n names an interface.
func (n *Named) Class() *Class {
	c, _ := n.obj.(*Class)
	return c
}

// Interface returns the named interface, or nil if n names a class.
func (n *Named) Interface() *Interface {
	i, _ := n.obj.(*Interface)
	return i
}

// String implements Type.
func (n *Named) String() string {
	return n.obj.Name()
}
