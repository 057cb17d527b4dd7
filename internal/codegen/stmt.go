package codegen

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

func (g *generator) stmts(list []syntax.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.StmtBlock:
		g.stmts(s.Stmts)

	case *syntax.ExprStmt:
		g.expr(s.X)

	case *syntax.IfStmt:
		g.ifStmt(s)

	case *syntax.WhileStmt:
		top := g.e.NewLabel()
		g.e.Label(top)
		test := g.expr(s.Cond)
		exit := g.e.NewLabel()
		g.exits[s] = exit
		g.e.IfZ(test, exit)
		g.stmt(s.Body)
		g.e.Goto(top)
		g.e.Label(exit)

	case *syntax.ForStmt:
		top := g.e.NewLabel()
		exit := g.e.NewLabel()
		g.exits[s] = exit
		g.expr(s.Init)
		g.e.Label(top)
		g.e.IfZ(g.expr(s.Cond), exit)
		g.stmt(s.Body)
		g.expr(s.Post)
		g.e.Goto(top)
		g.e.Label(exit)

	case *syntax.BreakStmt:
		loop := syntax.EnclosingLoop(s)
		exit, ok := g.exits[loop]
		base.Assert(ok, "%s: break outside a loop reached emission", s.Pos())
		g.e.Goto(exit)

	case *syntax.ReturnStmt:
		if s.IsBare() {
			g.e.Return(nil)
		} else {
			g.e.Return(g.expr(s.Result))
		}

	case *syntax.PrintStmt:
		for _, a := range s.Args {
			v := g.expr(a)
			g.e.Builtin(printer(g.info.TypeOf(a)), v)
		}

	case *syntax.SwitchStmt:
		g.switchStmt(s)

	default:
		base.Fatalf("%s: unexpected statement %T", s.Pos(), s)
	}
}

func (g *generator) ifStmt(s *syntax.IfStmt) {
	els := g.e.NewLabel()
	g.e.IfZ(g.expr(s.Cond), els)
	g.stmt(s.Then)
	if s.Else == nil {
		g.e.Label(els)
		return
	}
	end := g.e.NewLabel()
	g.e.Goto(end)
	g.e.Label(els)
	g.stmt(s.Else)
	g.e.Label(end)
}

// switchStmt tests the cases in order and runs the default, wherever
// it is written, when none matches. Cases do not fall through.
func (g *generator) switchStmt(s *syntax.SwitchStmt) {
	x := g.expr(s.X)
	end := g.e.NewLabel()
	var dflt *syntax.CaseStmt
	for _, c := range s.Cases {
		if c.IsDefault() {
			dflt = c
			continue
		}
		next := g.e.NewLabel()
		match := g.e.BinaryOp("==", x, g.e.LoadConstant(c.Value.Value))
		g.e.IfZ(match, next)
		g.stmts(c.Stmts)
		g.e.Goto(end)
		g.e.Label(next)
	}
	if dflt != nil {
		g.stmts(dflt.Stmts)
	}
	g.e.Label(end)
}

// printer returns the runtime routine printing a value of type t.
func printer(t types.Type) string {
	switch {
	case types.IsInt(t):
		return rtabi.FnPrintInt
	case types.IsBool(t):
		return rtabi.FnPrintBool
	case types.IsString(t):
		return rtabi.FnPrintString
	}
	base.Fatalf("no print routine for %s", t)
	return ""
}
