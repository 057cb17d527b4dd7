package codegen

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// call emits a call. Arguments are evaluated left to right and pushed
// last first; a method receives its object as the first parameter and
// is reached through the dispatch table of that object.
func (g *generator) call(e *syntax.CallExpr) *Location {
	if g.info.IsLength(e) {
		return g.e.Load(g.expr(e.X), rtabi.ArrayLengthOffset)
	}

	f, ok := g.info.Use(e.Field).(*types.Func)
	base.Assert(ok, "%s: %s does not denote a function", e.Pos(), e.Field.Name)
	hasResult := !types.IsVoid(f.Signature().Result())

	args := make([]*Location, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.expr(a)
	}

	if !f.IsMethod() {
		g.pushArgs(args)
		res := g.e.LCall(f.Label(), hasResult)
		g.e.PopParams(len(args) * rtabi.WordSize)
		return res
	}

	base.Assert(f.Slot() >= 0, "%s: method %s has no dispatch slot", e.Pos(), f.Name())
	obj := g.receiver(e.X)
	vtable := g.e.Load(obj, rtabi.ObjVTableOffset)
	addr := g.e.Load(vtable, f.Slot()*rtabi.WordSize)
	g.pushArgs(args)
	g.e.PushParam(obj)
	res := g.e.ACall(addr, hasResult)
	g.e.PopParams((len(args) + 1) * rtabi.WordSize)
	return res
}

func (g *generator) pushArgs(args []*Location) {
	for i := len(args) - 1; i >= 0; i-- {
		g.e.PushParam(args[i])
	}
}
