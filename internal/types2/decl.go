package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// decl checks a declaration and everything nested in it.
func (c *Checker) decl(d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.VarDecl:
		// Variables are resolved with the scope that declares them.

	case *syntax.FuncDecl:
		c.Scope(d)
		if d.Body != nil {
			c.stmt(d.Body)
		}

	case *syntax.ClassDecl:
		c.Scope(d)
		for _, m := range d.Members {
			c.decl(m)
		}
		c.implements(d)

	case *syntax.InterfaceDecl:
		c.Scope(d)
		for _, m := range d.Methods {
			c.decl(m)
		}

	default:
		base.Fatalf("%s: unexpected declaration %T", d.Pos(), d)
	}
}

// implements verifies that the class itself defines every method of
// each interface it names, with a matching signature. An interface is
// reported at most once however many of its methods are missing.
func (c *Checker) implements(d *syntax.ClassDecl) {
	s := c.info.ClassOf(d).Scope()
	for _, t := range d.Implements {
		iface, ok := c.info.Uses[t.Name].(*types.Interface)
		if !ok {
			continue
		}
		for _, m := range iface.Methods() {
			f, ok := s.Lookup(m.Name()).(*types.Func)
			if ok && f.Parent() == s && types.OverrideCompatible(f, m) {
				continue
			}
			c.errorf(InterfaceNotImplemented, t.Pos(), []string{d.Name.Name, iface.Name()},
				"Class '%s' does not implement entire interface '%s'", d.Name.Name, iface.Name())
			break
		}
	}
}
