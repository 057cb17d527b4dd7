// Package codegen walks a checked and laid out Decaf program and issues
// its instructions to an Emitter.
package codegen

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/layout"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
	"github.com/you-not-fish/decafc/internal/types2"
)

// generator holds the state of one Generate call.
type generator struct {
	info *types2.Info
	plan *layout.Program
	e    Emitter

	vars  map[*types.Var]*Location
	this  *Location
	exits map[syntax.LoopStmt]string // loop exit labels
}

// HasEntry reports whether prog declares a top-level entry routine.
func HasEntry(prog *syntax.Program) bool {
	for _, d := range prog.Decls {
		if fd, ok := d.(*syntax.FuncDecl); ok && fd.Name.Name == rtabi.EntryName {
			return true
		}
	}
	return false
}

// Generate emits prog to e. The program must have been checked without
// errors and laid out by layout.Plan.
//
// A program without an entry routine yields the NoEntryRoutineFound
// diagnosis and nothing is emitted. Internal consistency failures are
// returned as errors satisfying base.IsInternal.
func Generate(prog *syntax.Program, info *types2.Info, plan *layout.Program, e Emitter) (err error) {
	if !HasEntry(prog) {
		return types2.NoEntry()
	}
	defer base.Recover(&err, "codegen")

	g := &generator{
		info:  info,
		plan:  plan,
		e:     e,
		vars:  make(map[*types.Var]*Location),
		this:  &Location{Name: "this", Segment: FPRelative, Offset: rtabi.OffsetToFirstParam},
		exits: make(map[syntax.LoopStmt]string),
	}
	for _, d := range prog.Decls {
		g.decl(d)
	}
	return nil
}

func (g *generator) decl(d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.VarDecl, *syntax.InterfaceDecl:
		// no code

	case *syntax.FuncDecl:
		g.fn(d)

	case *syntax.ClassDecl:
		for _, m := range d.Members {
			if fd, ok := m.(*syntax.FuncDecl); ok {
				g.fn(fd)
			}
		}
		c := g.plan.Class(g.info.ClassOf(d))
		g.e.VTable(c.Obj.Name(), g.plan.VTable(c))

	default:
		base.Fatalf("%s: unexpected declaration %T", d.Pos(), d)
	}
}

func (g *generator) fn(d *syntax.FuncDecl) {
	fn := g.plan.Func(g.info.FuncOf(d))
	g.e.BeginFunc(fn.Label, fn.FrameSize)
	g.stmt(d.Body)
	g.e.EndFunc()
}

// varLoc returns the location of a global, parameter or local.
func (g *generator) varLoc(v *types.Var) *Location {
	if loc := g.vars[v]; loc != nil {
		return loc
	}
	base.Assert(v.Kind() != types.FieldVar, "field %s has no location", v.Name())
	seg := FPRelative
	if v.Kind() == types.GlobalVar {
		seg = GPRelative
	}
	loc := &Location{Name: v.Name(), Segment: seg, Offset: v.Offset()}
	g.vars[v] = loc
	return loc
}

// halt emits a runtime error report and stops the program.
func (g *generator) halt(msg string) {
	g.e.Builtin(rtabi.FnPrintString, g.e.LoadString(msg))
	g.e.Builtin(rtabi.FnHalt)
}
