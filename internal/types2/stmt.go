package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.StmtBlock:
		c.Scope(s)
		c.stmts(s.Stmts)

	case *syntax.ExprStmt:
		c.expr(s.X)

	case *syntax.IfStmt:
		c.test(s.Cond)
		c.stmt(s.Then)
		if s.Else != nil {
			c.stmt(s.Else)
		}

	case *syntax.WhileStmt:
		c.test(s.Cond)
		c.stmt(s.Body)

	case *syntax.ForStmt:
		c.expr(s.Init)
		c.test(s.Cond)
		c.expr(s.Post)
		c.stmt(s.Body)

	case *syntax.BreakStmt:
		if syntax.EnclosingLoop(s) == nil {
			c.errorf(BreakOutsideLoop, s.Pos(), nil, "break is only allowed inside a loop")
		}

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.PrintStmt:
		c.printStmt(s)

	case *syntax.SwitchStmt:
		c.switchStmt(s)

	default:
		base.Fatalf("%s: unexpected statement %T", s.Pos(), s)
	}
}

// test checks the condition of an if, while or for statement.
func (c *Checker) test(cond syntax.Expr) {
	t := c.expr(cond)
	if !types.IsError(t) && !types.IsBool(t) {
		c.errorf(TestNotBoolean, cond.Pos(), nil, "Test expression must have boolean type")
	}
}

// returnStmt checks a return against the result type of the enclosing
// function. A bare return is only valid in a void function.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	var got types.Type = types.Typ[types.Void]
	if s.Result != nil {
		got = c.expr(s.Result)
	}
	fd := syntax.EnclosingFunc(s)
	if fd == nil {
		return
	}
	want := c.info.FuncOf(fd).Signature().Result()
	if types.IsError(got) || types.IsError(want) {
		return
	}

	if s.IsBare() {
		if !types.IsVoid(want) {
			c.errorf(ReturnMismatch, s.Pos(), nil, "Incompatible return: void given, %s expected", want)
		}
		return
	}
	if !types.AssignableTo(got, want) {
		c.errorf(ReturnMismatch, s.Result.Pos(), nil, "Incompatible return: %s given, %s expected", got, want)
	}
}

// printStmt reports each argument that is not an int, bool or string.
func (c *Checker) printStmt(s *syntax.PrintStmt) {
	for i, a := range s.Args {
		t := c.expr(a)
		if types.IsError(t) || types.IsPrintable(t) {
			continue
		}
		c.errorf(PrintArgMismatch, a.Pos(), nil,
			"Incompatible argument %d: %s given, int/bool/string expected", i+1, t)
	}
}

func (c *Checker) switchStmt(s *syntax.SwitchStmt) {
	t := c.expr(s.X)
	if !types.IsError(t) && !types.IsInt(t) {
		c.errorf(SwitchNotInteger, s.X.Pos(), nil, "Switch expression must be an integer")
	}
	for _, cs := range s.Cases {
		if !cs.IsDefault() {
			c.expr(cs.Value)
		}
		c.stmts(cs.Stmts)
	}
}
