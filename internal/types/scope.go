package types

import (
	"fmt"
	"strings"
)

// Scope is an ordered symbol table mapping names to objects.
// Scopes form a tree mirroring the program: a block's parent is the
// enclosing block or function, a function's parent is its class or the
// program, and the program scope has no parent.
type Scope struct {
	parent  *Scope
	elems   map[string]Object
	names   []string // insertion order
	comment string   // debugging comment (e.g., "class Animal", "block")
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope, comment string) *Scope {
	return &Scope{
		parent:  parent,
		elems:   make(map[string]Object),
		comment: comment,
	}
}

// Parent returns the parent scope, or nil for the program scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup returns the object with the given name in this scope only.
// Returns nil if not found.
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// LookupParent returns the object with the given name by searching
// from the current scope up through all parent scopes.
// Returns the object and the scope in which it was found.
// Returns (nil, nil) if not found.
func (s *Scope) LookupParent(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert binds obj in the scope and returns nil on success.
//
// If the name is already bound, Insert returns the existing object and
// leaves the scope unchanged, with one exception: when both objects are
// functions, the existing one was declared in a different scope (it was
// merged in from a superclass or interface), and the two are override
// compatible, obj replaces the existing binding in place.
//
// The first successful Insert of an object records s as its declaring
// scope.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		if !overrides(obj, existing, s) {
			return existing
		}
	} else {
		s.names = append(s.names, name)
	}
	s.elems[name] = obj
	if obj.Parent() == nil {
		obj.setParent(s)
	}
	return nil
}

func overrides(obj, existing Object, s *Scope) bool {
	f, ok1 := obj.(*Func)
	g, ok2 := existing.(*Func)
	return ok1 && ok2 && g.Parent() != s && OverrideCompatible(f, g)
}

// Merge copies every binding of other into s. A name already bound in s
// is overwritten in place; new names are appended in other's order.
// Declaring scopes of the copied objects are not changed.
func (s *Scope) Merge(other *Scope) {
	for _, name := range other.names {
		if _, ok := s.elems[name]; !ok {
			s.names = append(s.names, name)
		}
		s.elems[name] = other.elems[name]
	}
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	return s.names
}

// NumObjects returns the number of objects in the scope.
func (s *Scope) NumObjects() int {
	return len(s.names)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scope %s {\n", s.comment)
	for _, name := range s.names {
		obj := s.elems[name]
		fmt.Fprintf(&buf, "  %s: %s", name, obj.Type())
		if obj.Parent() != s && obj.Parent() != nil {
			fmt.Fprintf(&buf, " (from %s)", obj.Parent().comment)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}
