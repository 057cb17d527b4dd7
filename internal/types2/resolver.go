package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// ownsScope reports whether n carries its own symbol table.
func ownsScope(n syntax.Node) bool {
	switch n.(type) {
	case *syntax.Program, *syntax.ClassDecl, *syntax.InterfaceDecl, *syntax.FuncDecl, *syntax.StmtBlock:
		return true
	}
	return false
}

// Scope returns the symbol table owned by n, building it on first use.
// n must be a Program, ClassDecl, InterfaceDecl, FuncDecl or StmtBlock.
func (c *Checker) Scope(n syntax.Node) *types.Scope {
	if s := c.info.Scopes[n]; s != nil {
		return s
	}

	switch n := n.(type) {
	case *syntax.Program:
		return c.programScope(n)
	case *syntax.ClassDecl:
		return c.classScope(n)
	case *syntax.InterfaceDecl:
		return c.interfaceScope(n)
	case *syntax.FuncDecl:
		return c.funcScope(n)
	case *syntax.StmtBlock:
		return c.blockScope(n)
	}
	base.Fatalf("%s: %T has no scope", n.Pos(), n)
	return nil
}

// scopeAt returns the symbol table names are resolved in at n: the
// table of n itself or of its nearest ancestor that owns one.
func (c *Checker) scopeAt(n syntax.Node) *types.Scope {
	for p := n; p != nil; p = p.Parent() {
		if ownsScope(p) {
			return c.Scope(p)
		}
	}
	base.Fatalf("%s: %T is not attached to a program", n.Pos(), n)
	return nil
}

// Resolve looks id up starting at the symbol table in effect at from.
// With localOnly set only that table is searched; otherwise the search
// continues through the enclosing tables up to the program.
func (c *Checker) Resolve(id *syntax.Identifier, from syntax.Node, localOnly bool) types.Object {
	s := c.scopeAt(from)
	if localOnly {
		return s.Lookup(id.Name)
	}
	obj, _ := s.LookupParent(id.Name)
	return obj
}

// programScope declares every top-level name before resolving any
// type, so declarations may refer to classes declared later.
func (c *Checker) programScope(prog *syntax.Program) *types.Scope {
	s := types.NewScope(nil, "program")
	c.info.Scopes[prog] = s

	for _, d := range prog.Decls {
		id := d.Ident()
		var obj types.Object
		switch d := d.(type) {
		case *syntax.VarDecl:
			obj = types.NewVar(id.Pos(), id.Name, types.GlobalVar, nil)
		case *syntax.FuncDecl:
			obj = types.NewFunc(id.Pos(), id.Name, nil)
		case *syntax.ClassDecl:
			cls := types.NewClass(id.Pos(), id.Name)
			c.classDecls[cls] = d
			obj = cls
		case *syntax.InterfaceDecl:
			iface := types.NewInterface(id.Pos(), id.Name)
			c.ifaceDecls[iface] = d
			obj = iface
		default:
			base.Fatalf("%s: unexpected declaration %T", d.Pos(), d)
		}
		c.declare(s, d, obj)
	}

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *syntax.VarDecl:
			c.info.VarOf(d).SetType(c.typExpr(d.Type))
		case *syntax.FuncDecl:
			c.funcSignature(d, c.info.FuncOf(d))
		}
	}
	return s
}

// classScope builds the member table of a class: the superclass's
// members, then each interface's prototypes, then the class's own
// fields and methods. A method whose signature matches an inherited one
// replaces it.
func (c *Checker) classScope(d *syntax.ClassDecl) *types.Scope {
	prog := c.Scope(c.prog)
	cls := c.info.ClassOf(d)
	s := types.NewScope(prog, "class "+d.Name.Name)
	c.info.Scopes[d] = s
	cls.SetScope(s)

	c.building[d] = true
	defer delete(c.building, d)

	var super *types.Class
	if d.Extends != nil {
		super = c.superclass(d)
		if super != nil {
			s.Merge(super.Scope())
		}
	}

	var ifaces []*types.Interface
	for _, t := range d.Implements {
		iface, ok := c.lookupType(t.Name.Name).(*types.Interface)
		if !ok {
			c.notDeclared(t.Name, LookingForInterface)
			continue
		}
		c.recordUse(t.Name, iface)
		s.Merge(c.Scope(c.ifaceDecls[iface]))
		ifaces = append(ifaces, iface)
	}
	cls.SetBases(super, ifaces)

	for _, m := range d.Members {
		switch m := m.(type) {
		case *syntax.VarDecl:
			v := types.NewVar(m.Name.Pos(), m.Name.Name, types.FieldVar, c.typExpr(m.Type))
			c.declare(s, m, v)
			cls.AddField(v)
		case *syntax.FuncDecl:
			f := types.NewFunc(m.Name.Pos(), m.Name.Name, cls)
			c.funcSignature(m, f)
			c.declare(s, m, f)
			cls.AddMethod(f)
		default:
			base.Fatalf("%s: unexpected class member %T", m.Pos(), m)
		}
	}
	return s
}

// superclass resolves the class d extends and makes sure its member
// table is complete. It returns nil if the name is not a class or the
// class is one of d's own descendants.
func (c *Checker) superclass(d *syntax.ClassDecl) *types.Class {
	id := d.Extends.Name
	super, ok := c.lookupType(id.Name).(*types.Class)
	if !ok {
		c.notDeclared(id, LookingForClass)
		return nil
	}
	c.recordUse(id, super)

	sd := c.classDecls[super]
	if c.building[sd] {
		c.errorf(CyclicInheritance, id.Pos(), []string{d.Name.Name, id.Name},
			"Class '%s' inherits from itself through '%s'", d.Name.Name, id.Name)
		return nil
	}
	c.Scope(sd)
	return super
}

func (c *Checker) interfaceScope(d *syntax.InterfaceDecl) *types.Scope {
	prog := c.Scope(c.prog)
	iface := c.info.InterfaceOf(d)
	s := types.NewScope(prog, "interface "+d.Name.Name)
	c.info.Scopes[d] = s
	iface.SetScope(s)

	for _, m := range d.Methods {
		f := types.NewFunc(m.Name.Pos(), m.Name.Name, iface)
		c.funcSignature(m, f)
		c.declare(s, m, f)
		iface.AddMethod(f)
	}
	return s
}

// funcSignature creates the formal parameters of d and sets f's
// signature. The formals are bound later by funcScope.
func (c *Checker) funcSignature(d *syntax.FuncDecl, f *types.Func) {
	params := make([]*types.Var, len(d.Params))
	for i, p := range d.Params {
		v := types.NewVar(p.Name.Pos(), p.Name.Name, types.ParamVar, c.typExpr(p.Type))
		c.info.Defs[p] = v
		params[i] = v
	}
	f.SetSignature(types.NewSignature(params, c.typExpr(d.Result)))
}

// funcScope binds the formals of d. Its parent is the table d was
// declared in, so the body sees the members of an enclosing class.
func (c *Checker) funcScope(d *syntax.FuncDecl) *types.Scope {
	outer := c.scopeAt(d.Parent())
	s := types.NewScope(outer, "function "+d.Name.Name)
	c.info.Scopes[d] = s

	for _, p := range d.Params {
		c.declare(s, p, c.info.VarOf(p))
	}
	return s
}

func (c *Checker) blockScope(b *syntax.StmtBlock) *types.Scope {
	outer := c.scopeAt(b.Parent())
	s := types.NewScope(outer, "block")
	c.info.Scopes[b] = s

	for _, d := range b.Decls {
		v := types.NewVar(d.Name.Pos(), d.Name.Name, types.LocalVar, c.typExpr(d.Type))
		c.declare(s, d, v)
	}
	return s
}

// members returns the member table of a class or interface type.
func (c *Checker) members(n *types.Named) *types.Scope {
	if cls := n.Class(); cls != nil {
		return c.Scope(c.classDecls[cls])
	}
	return c.Scope(c.ifaceDecls[n.Interface()])
}
