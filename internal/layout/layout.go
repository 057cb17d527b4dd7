// Package layout assigns storage and dispatch information to a checked
// program: variable offsets, instance sizes, dispatch tables and routine
// labels.
package layout

import (
	"fmt"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
	"github.com/you-not-fish/decafc/internal/types2"
)

// Program is the layout of a whole program.
type Program struct {
	Globals    []*types.Var
	GlobalSize int

	// Funcs lists every routine with a body in source order, methods
	// after the class that declares them.
	Funcs   []*Func
	Classes []*Class

	// Selectors lists the interface method names in order of first
	// declaration. Selector i occupies dispatch slot TableLen+i in
	// every class's table.
	Selectors []string
	TableLen  int

	funcs   map[*types.Func]*Func
	classes map[*types.Class]*Class
	sizes   *types.Sizes
}

// Func is the frame layout of one routine.
type Func struct {
	Obj    *types.Func
	Decl   *syntax.FuncDecl
	Label  string
	Params []*types.Var
	Locals []*types.Var

	// FrameSize is the number of bytes of locals. Temporaries are
	// allocated by the emitter below them.
	FrameSize int
}

// Class is the object layout of one class.
type Class struct {
	Obj   *types.Class
	Decl  *syntax.ClassDecl
	Super *Class
	Size  int

	// Fields lists every field of an instance, inherited fields
	// first, in offset order.
	Fields []*types.Var

	// Slots is the dispatch table: slot i holds the most derived
	// implementation of the i'th method.
	Slots []*types.Func
}

// Labels returns the routine labels of the dispatch table.
func (c *Class) Labels() []string {
	labels := make([]string, len(c.Slots))
	for i, f := range c.Slots {
		labels[i] = f.Label()
	}
	return labels
}

// Method returns the implementation bound to name, or nil.
func (c *Class) Method(name string) *types.Func {
	for _, f := range c.Slots {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Func returns the layout of the routine f.
func (p *Program) Func(f *types.Func) *Func {
	fn := p.funcs[f]
	base.Assert(fn != nil, "no layout for routine %s", f.Name())
	return fn
}

// Class returns the layout of cls.
func (p *Program) Class(cls *types.Class) *Class {
	c := p.classes[cls]
	base.Assert(c != nil, "no layout for class %s", cls.Name())
	return c
}

// VTable returns the labels of the full dispatch table of c: its own
// slots, the halt routine up to TableLen, then one entry per selector.
// A selector the class does not implement also maps to the halt routine.
func (p *Program) VTable(c *Class) []string {
	labels := c.Labels()
	for len(labels) < p.TableLen {
		labels = append(labels, rtabi.FnHalt)
	}
	for _, name := range p.Selectors {
		if f := c.Method(name); f != nil {
			labels = append(labels, f.Label())
		} else {
			labels = append(labels, rtabi.FnHalt)
		}
	}
	return labels
}

// FuncLabel returns the label of a routine: the entry routine keeps its
// name, methods are prefixed with their class, and other functions get
// a leading underscore. A function whose label would clash with a
// runtime routine gets a second underscore.
func FuncLabel(f *types.Func) string {
	if cls := f.Class(); cls != nil {
		return fmt.Sprintf("_%s.%s", cls.Name(), f.Name())
	}
	if f.Name() == rtabi.EntryName {
		return rtabi.EntryName
	}
	label := "_" + f.Name()
	if _, ok := rtabi.LookupSignature(label); ok {
		label = "_" + label
	}
	return label
}

// Plan computes the layout of prog, which must have been checked
// without errors. Layout records offsets, labels and slots on the
// objects in info.
func Plan(prog *syntax.Program, info *types2.Info, sizes *types.Sizes) (p *Program, err error) {
	defer base.Recover(&err, "layout")

	if sizes == nil {
		sizes = types.DefaultSizes
	}
	p = &Program{
		funcs:   make(map[*types.Func]*Func),
		classes: make(map[*types.Class]*Class),
		sizes:   sizes,
	}
	pl := &planner{prog: p, info: info, decls: make(map[*types.Class]*syntax.ClassDecl)}

	for _, d := range prog.Decls {
		if cd, ok := d.(*syntax.ClassDecl); ok {
			pl.decls[info.ClassOf(cd)] = cd
		}
	}

	off := rtabi.OffsetToFirstGlobal
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *syntax.VarDecl:
			v := info.VarOf(d)
			v.SetOffset(off)
			off += sizes.Sizeof(v.Type())
			p.Globals = append(p.Globals, v)
		case *syntax.ClassDecl:
			pl.class(info.ClassOf(d))
		case *syntax.InterfaceDecl:
			pl.selectors(info.InterfaceOf(d))
		}
	}
	p.GlobalSize = off - rtabi.OffsetToFirstGlobal

	for _, c := range p.Classes {
		if len(c.Slots) > p.TableLen {
			p.TableLen = len(c.Slots)
		}
	}
	for _, d := range prog.Decls {
		if d, ok := d.(*syntax.InterfaceDecl); ok {
			for _, f := range info.InterfaceOf(d).Methods() {
				f.SetSlot(p.TableLen + pl.selector[f.Name()])
			}
		}
	}

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *syntax.FuncDecl:
			pl.fn(d)
		case *syntax.ClassDecl:
			for _, m := range d.Members {
				if fd, ok := m.(*syntax.FuncDecl); ok {
					pl.fn(fd)
				}
			}
		}
	}
	return p, nil
}

type planner struct {
	prog     *Program
	info     *types2.Info
	decls    map[*types.Class]*syntax.ClassDecl
	selector map[string]int
}

// class lays out cls after its superclass.
func (pl *planner) class(cls *types.Class) *Class {
	if c := pl.prog.classes[cls]; c != nil {
		return c
	}
	base.Assert(cls.Scope() != nil, "class %s laid out before checking", cls.Name())

	c := &Class{Obj: cls, Decl: pl.decls[cls]}
	if super := cls.Super(); super != nil {
		c.Super = pl.class(super)
		c.Fields = append(c.Fields, c.Super.Fields...)
		c.Slots = append(c.Slots, c.Super.Slots...)
	}

	for _, v := range cls.Fields() {
		v.SetOffset(rtabi.ObjFirstFieldOffset + len(c.Fields)*rtabi.WordSize)
		c.Fields = append(c.Fields, v)
	}
	c.Size = pl.prog.sizes.InstanceSize(cls)
	base.Assert(c.Size == rtabi.ObjHeaderSize+len(c.Fields)*rtabi.WordSize,
		"class %s: instance size %d does not cover %d fields", cls.Name(), c.Size, len(c.Fields))

	for _, f := range cls.Methods() {
		f.SetLabel(FuncLabel(f))
		slot := len(c.Slots)
		for i, g := range c.Slots {
			if g.Name() == f.Name() {
				slot = i
				break
			}
		}
		f.SetSlot(slot)
		if slot == len(c.Slots) {
			c.Slots = append(c.Slots, f)
		} else {
			c.Slots[slot] = f
		}
	}

	pl.prog.classes[cls] = c
	pl.prog.Classes = append(pl.prog.Classes, c)
	return c
}

// selectors assigns a selector to each new interface method name.
func (pl *planner) selectors(iface *types.Interface) {
	if pl.selector == nil {
		pl.selector = make(map[string]int)
	}
	for _, f := range iface.Methods() {
		if _, ok := pl.selector[f.Name()]; !ok {
			pl.selector[f.Name()] = len(pl.prog.Selectors)
			pl.prog.Selectors = append(pl.prog.Selectors, f.Name())
		}
	}
}

// fn lays out the frame of a routine with a body.
func (pl *planner) fn(d *syntax.FuncDecl) {
	base.Assert(d.Body != nil, "%s: routine %s has no body", d.Pos(), d.Name.Name)
	f := pl.info.FuncOf(d)
	if !f.IsMethod() {
		f.SetLabel(FuncLabel(f))
	}
	fn := &Func{Obj: f, Decl: d, Label: f.Label()}

	off := rtabi.OffsetToFirstParam
	if f.IsMethod() {
		off += rtabi.WordSize // this
	}
	for _, v := range f.Signature().Params() {
		v.SetOffset(off)
		off += rtabi.WordSize
		fn.Params = append(fn.Params, v)
	}

	off = rtabi.OffsetToFirstLocal
	syntax.Inspect(d.Body, func(n syntax.Node) bool {
		if b, ok := n.(*syntax.StmtBlock); ok {
			for _, vd := range b.Decls {
				v := pl.info.VarOf(vd)
				v.SetOffset(off)
				off -= rtabi.WordSize
				fn.Locals = append(fn.Locals, v)
			}
		}
		return true
	})
	fn.FrameSize = len(fn.Locals) * rtabi.WordSize

	pl.prog.funcs[f] = fn
	pl.prog.Funcs = append(pl.prog.Funcs, fn)
}
