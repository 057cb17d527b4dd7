package codegen

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// expr emits e and returns the location of its value, or nil for an
// expression without one.
func (g *generator) expr(e syntax.Expr) *Location {
	switch e := e.(type) {
	case *syntax.EmptyExpr:
		return nil

	case *syntax.IntLit:
		return g.e.LoadConstant(e.Value)

	case *syntax.DoubleLit:
		return g.e.LoadDouble(e.Value)

	case *syntax.BoolLit:
		if e.Value {
			return g.e.LoadConstant(1)
		}
		return g.e.LoadConstant(0)

	case *syntax.StringLit:
		return g.e.LoadString(e.Value)

	case *syntax.NullLit:
		return g.e.LoadConstant(0)

	case *syntax.This:
		return g.this

	case *syntax.ReadIntegerExpr:
		return g.e.Builtin(rtabi.FnReadInteger)

	case *syntax.ReadLineExpr:
		return g.e.Builtin(rtabi.FnReadLine)

	case *syntax.Operation:
		return g.operation(e)

	case *syntax.AssignExpr:
		return g.assign(e)

	case *syntax.PostfixExpr:
		return g.postfix(e)

	case *syntax.ArrayAccess:
		return g.e.Load(g.elemAddr(e), 0)

	case *syntax.FieldAccess:
		v := g.variable(e)
		if v.Kind() == types.FieldVar {
			return g.e.Load(g.receiver(e.X), v.Offset())
		}
		return g.varLoc(v)

	case *syntax.CallExpr:
		return g.call(e)

	case *syntax.NewExpr:
		cls, ok := g.info.Use(e.Class.Name).(*types.Class)
		base.Assert(ok, "%s: new of non-class %s", e.Pos(), e.Class.Name.Name)
		c := g.plan.Class(cls)
		obj := g.e.Builtin(rtabi.FnAlloc, g.e.LoadConstant(c.Size))
		g.e.Store(obj, rtabi.ObjVTableOffset, g.e.LoadLabel(cls.Name()))
		return obj

	case *syntax.NewArrayExpr:
		return g.newArray(e)
	}
	base.Fatalf("%s: unexpected expression %T", e.Pos(), e)
	return nil
}

// variable returns the variable a field access denotes.
func (g *generator) variable(e *syntax.FieldAccess) *types.Var {
	v, ok := g.info.Use(e.Field).(*types.Var)
	base.Assert(ok, "%s: %s does not denote a variable", e.Pos(), e.Field.Name)
	return v
}

// receiver returns the object x denotes, the current one if x is nil.
func (g *generator) receiver(x syntax.Expr) *Location {
	if x == nil {
		return g.this
	}
	return g.expr(x)
}

func (g *generator) operation(e *syntax.Operation) *Location {
	if e.IsUnary() {
		y := g.expr(e.Y)
		switch e.Op {
		case syntax.Sub:
			var zero *Location
			if types.IsDouble(g.info.TypeOf(e.Y)) {
				zero = g.e.LoadDouble(0)
			} else {
				zero = g.e.LoadConstant(0)
			}
			return g.e.BinaryOp("-", zero, y)
		case syntax.Not:
			return g.e.BinaryOp("==", y, g.e.LoadConstant(0))
		}
		base.Fatalf("%s: unexpected unary operator %s", e.Pos(), e.Op)
	}

	x := g.expr(e.X)
	y := g.expr(e.Y)
	switch e.Op {
	case syntax.Add, syntax.Sub, syntax.Mul, syntax.Div, syntax.Rem, syntax.Lss, syntax.AndAnd, syntax.OrOr:
		return g.e.BinaryOp(e.Op.String(), x, y)
	case syntax.Gtr:
		return g.e.BinaryOp("<", y, x)
	case syntax.Leq:
		less := g.e.BinaryOp("<", x, y)
		return g.e.BinaryOp("||", less, g.e.BinaryOp("==", x, y))
	case syntax.Geq:
		greater := g.e.BinaryOp("<", y, x)
		return g.e.BinaryOp("||", greater, g.e.BinaryOp("==", x, y))
	case syntax.Eql:
		return g.equal(e.X, x, y)
	case syntax.Neq:
		return g.e.BinaryOp("==", g.equal(e.X, x, y), g.e.LoadConstant(0))
	}
	base.Fatalf("%s: unexpected binary operator %s", e.Pos(), e.Op)
	return nil
}

// equal compares x and y, by contents when they are strings.
func (g *generator) equal(left syntax.Expr, x, y *Location) *Location {
	if types.IsString(g.info.TypeOf(left)) {
		return g.e.Builtin(rtabi.FnStringEqual, x, y)
	}
	return g.e.BinaryOp("==", x, y)
}

// assign evaluates the right side before the target, except that an
// explicit receiver of a field is evaluated first.
func (g *generator) assign(e *syntax.AssignExpr) *Location {
	switch lhs := e.Left.(type) {
	case *syntax.FieldAccess:
		v := g.variable(lhs)
		if v.Kind() != types.FieldVar {
			rhs := g.expr(e.Right)
			g.e.Assign(g.varLoc(v), rhs)
			return rhs
		}
		obj := g.receiver(lhs.X)
		rhs := g.expr(e.Right)
		g.e.Store(obj, v.Offset(), rhs)
		return rhs

	case *syntax.ArrayAccess:
		rhs := g.expr(e.Right)
		g.e.Store(g.elemAddr(lhs), 0, rhs)
		return rhs
	}
	base.Fatalf("%s: unexpected assignment target %T", e.Pos(), e.Left)
	return nil
}

// postfix updates its operand and yields the value it had before.
func (g *generator) postfix(e *syntax.PostfixExpr) *Location {
	op, undo := "+", "-"
	if e.Op == syntax.Dec {
		op, undo = "-", "+"
	}

	var updated *Location
	switch x := e.X.(type) {
	case *syntax.FieldAccess:
		v := g.variable(x)
		if v.Kind() != types.FieldVar {
			loc := g.varLoc(v)
			updated = g.e.BinaryOp(op, loc, g.e.LoadConstant(1))
			g.e.Assign(loc, updated)
			break
		}
		obj := g.receiver(x.X)
		old := g.e.Load(obj, v.Offset())
		updated = g.e.BinaryOp(op, old, g.e.LoadConstant(1))
		g.e.Store(obj, v.Offset(), updated)

	case *syntax.ArrayAccess:
		addr := g.elemAddr(x)
		old := g.e.Load(addr, 0)
		updated = g.e.BinaryOp(op, old, g.e.LoadConstant(1))
		g.e.Store(addr, 0, updated)

	default:
		base.Fatalf("%s: unexpected postfix operand %T", e.Pos(), e.X)
	}
	return g.e.BinaryOp(undo, updated, g.e.LoadConstant(1))
}

// elemAddr evaluates the subscript, then the array, checks the
// subscript against the stored length and returns the element address.
func (g *generator) elemAddr(e *syntax.ArrayAccess) *Location {
	index := g.expr(e.Index)
	zero := g.e.LoadConstant(0)
	negative := g.e.BinaryOp("<", index, zero)
	arr := g.expr(e.X)
	length := g.e.Load(arr, rtabi.ArrayLengthOffset)
	inside := g.e.BinaryOp("<", index, length)
	beyond := g.e.BinaryOp("==", inside, zero)
	bad := g.e.BinaryOp("||", negative, beyond)

	ok := g.e.NewLabel()
	g.e.IfZ(bad, ok)
	g.halt(rtabi.ErrArrayOutOfBounds)
	g.e.Label(ok)

	offset := g.e.BinaryOp("*", g.e.LoadConstant(rtabi.WordSize), index)
	return g.e.BinaryOp("+", arr, offset)
}

// newArray allocates the length header and the elements and returns the
// address of the first element. A size below one halts the program.
func (g *generator) newArray(e *syntax.NewArrayExpr) *Location {
	size := g.expr(e.Size)
	one := g.e.LoadConstant(1)
	tooSmall := g.e.BinaryOp("<", size, one)
	ok := g.e.NewLabel()
	g.e.IfZ(tooSmall, ok)
	g.halt(rtabi.ErrArrayBadSize)
	g.e.Label(ok)

	words := g.e.BinaryOp("+", one, size)
	word := g.e.LoadConstant(rtabi.WordSize)
	arr := g.e.Builtin(rtabi.FnAlloc, g.e.BinaryOp("*", words, word))
	g.e.Store(arr, 0, size)
	return g.e.BinaryOp("+", arr, g.e.LoadConstant(rtabi.ArrayHeaderSize))
}
