package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

var (
	errorType = types.Typ[types.Invalid]
	boolType  = types.Typ[types.Bool]
	intType   = types.Typ[types.Int]
)

// expr type-checks e and returns its type. The result is recorded in
// Info.Types, and checking the same expression again returns the
// recorded type without reporting anything twice.
func (c *Checker) expr(e syntax.Expr) types.Type {
	if T, ok := c.info.Types[e]; ok {
		return T
	}
	T := c.exprInternal(e)
	c.info.Types[e] = T
	return T
}

func (c *Checker) exprInternal(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.EmptyExpr:
		return types.Typ[types.Void]
	case *syntax.IntLit:
		return intType
	case *syntax.DoubleLit:
		return types.Typ[types.Double]
	case *syntax.BoolLit:
		return boolType
	case *syntax.StringLit:
		return types.Typ[types.String]
	case *syntax.NullLit:
		return types.Typ[types.Null]
	case *syntax.ReadIntegerExpr:
		return intType
	case *syntax.ReadLineExpr:
		return types.Typ[types.String]

	case *syntax.This:
		return c.this(e)
	case *syntax.Operation:
		return c.operation(e)
	case *syntax.AssignExpr:
		return c.assignment(e)
	case *syntax.PostfixExpr:
		return c.postfix(e)
	case *syntax.ArrayAccess:
		return c.index(e)
	case *syntax.FieldAccess:
		return c.selector(e)
	case *syntax.CallExpr:
		return c.call(e)
	case *syntax.NewExpr:
		return c.newObject(e)
	case *syntax.NewArrayExpr:
		return c.newArray(e)
	}

	base.Fatalf("%s: unexpected expression %T", e.Pos(), e)
	return nil
}

func (c *Checker) this(e *syntax.This) types.Type {
	cd := syntax.EnclosingClass(e)
	if cd == nil {
		c.errorf(ThisOutsideClassScope, e.Pos(), nil, "'this' is only valid within class scope")
		return errorType
	}
	return c.info.ClassOf(cd).Named()
}

func (c *Checker) badOperand(e syntax.Expr, op syntax.Operator, y types.Type) {
	c.errorf(IncompatibleOperand, e.Pos(), nil, "Incompatible operand: %s %s", op, y)
}

func (c *Checker) badOperands(e syntax.Expr, op string, x, y types.Type) {
	c.errorf(IncompatibleOperands, e.Pos(), nil, "Incompatible operands: %s %s %s", x, op, y)
}

// operation checks unary and binary operators. Operands are checked
// left to right before the operator itself.
func (c *Checker) operation(e *syntax.Operation) types.Type {
	var x types.Type
	if !e.IsUnary() {
		x = c.expr(e.X)
	}
	y := c.expr(e.Y)

	switch op := e.Op; {
	case op.IsArithmetic():
		return c.arithmetic(e, x, y)
	case op.IsRelational():
		return c.relational(e, x, y)
	case op.IsEquality():
		return c.equality(e, x, y)
	case op.IsLogical():
		return c.logical(e, x, y)
	}

	base.Fatalf("%s: unexpected operator %s", e.Pos(), e.Op)
	return nil
}

// arithmetic: operands must be int or double and agree. The result is
// the operand type, or the error type after a diagnosis.
func (c *Checker) arithmetic(e *syntax.Operation, x, y types.Type) types.Type {
	if e.IsUnary() {
		if types.IsError(y) {
			return errorType
		}
		if !types.IsArithmetic(y) {
			c.badOperand(e, e.Op, y)
			return errorType
		}
		return y
	}

	if types.IsError(x) || types.IsError(y) {
		return errorType
	}
	if !types.IsArithmetic(x) || !types.Identical(x, y) {
		c.badOperands(e, e.Op.String(), x, y)
		return errorType
	}
	return x
}

// relational: operands as for arithmetic, but the result is always bool.
func (c *Checker) relational(e *syntax.Operation, x, y types.Type) types.Type {
	if types.IsError(x) || types.IsError(y) {
		return boolType
	}
	if !types.IsArithmetic(x) || !types.Identical(x, y) {
		c.badOperands(e, e.Op.String(), x, y)
	}
	return boolType
}

// equality: either operand must be assignable to the other.
func (c *Checker) equality(e *syntax.Operation, x, y types.Type) types.Type {
	if types.IsError(x) || types.IsError(y) {
		return boolType
	}
	if !types.Compatible(x, y) {
		c.badOperands(e, e.Op.String(), x, y)
	}
	return boolType
}

func (c *Checker) logical(e *syntax.Operation, x, y types.Type) types.Type {
	if e.IsUnary() {
		if !types.IsError(y) && !types.IsBool(y) {
			c.badOperand(e, e.Op, y)
		}
		return boolType
	}

	if types.IsError(x) || types.IsError(y) {
		return boolType
	}
	if !types.IsBool(x) || !types.IsBool(y) {
		c.badOperands(e, e.Op.String(), x, y)
	}
	return boolType
}

// assignment: the right side must be assignable to the left. The
// expression has the type of the left side.
func (c *Checker) assignment(e *syntax.AssignExpr) types.Type {
	l := c.expr(e.Left)
	r := c.expr(e.Right)
	if types.IsError(l) || types.IsError(r) {
		return errorType
	}
	if !types.AssignableTo(r, l) {
		c.badOperands(e, "=", l, r)
		return errorType
	}
	return l
}

func (c *Checker) postfix(e *syntax.PostfixExpr) types.Type {
	x := c.expr(e.X)
	if !types.IsError(x) && !types.IsInt(x) {
		c.badOperand(e, e.Op, x)
	}
	return intType
}

// index checks x[i]. The subscript is checked even when x is not an
// array.
func (c *Checker) index(e *syntax.ArrayAccess) types.Type {
	x := c.expr(e.X)
	i := c.expr(e.Index)
	if !types.IsError(i) && !types.IsInt(i) {
		c.errorf(SubscriptNotInteger, e.Index.Pos(), nil, "Array subscript must be an integer")
	}

	if types.IsError(x) {
		return errorType
	}
	a, ok := x.(*types.Array)
	if !ok {
		c.errorf(BracketsOnNonArray, e.Pos(), nil, "[] can only be applied to arrays")
		return errorType
	}
	return a.Elem()
}

// selector checks a variable reference or a field access x.f.
func (c *Checker) selector(e *syntax.FieldAccess) types.Type {
	if e.X == nil {
		v, ok := c.Resolve(e.Field, e, false).(*types.Var)
		if !ok {
			c.notDeclared(e.Field, LookingForVariable)
			return errorType
		}
		c.recordUse(e.Field, v)
		return v.Type()
	}

	x := c.expr(e.X)
	if types.IsError(x) {
		return errorType
	}
	if n, ok := x.(*types.Named); ok && n.Class() != nil {
		if v, ok := c.members(n).Lookup(e.Field.Name).(*types.Var); ok {
			c.recordUse(e.Field, v)
			if !c.accessible(e, n.Class()) {
				c.errorf(InaccessibleField, e.Field.Pos(), []string{e.Field.Name},
					"%s field '%s' only accessible within class scope", x, e.Field.Name)
			}
			return v.Type()
		}
	}

	c.errorf(FieldNotFoundInBase, e.Field.Pos(), []string{e.Field.Name},
		"%s has no such field '%s'", x, e.Field.Name)
	return errorType
}

// accessible reports whether the fields of cls may be read at e: the
// receiver is this, or e is inside a class compatible with cls.
func (c *Checker) accessible(e *syntax.FieldAccess, cls *types.Class) bool {
	if _, ok := e.X.(*syntax.This); ok {
		return true
	}
	cd := syntax.EnclosingClass(e)
	return cd != nil && types.AssignableTo(c.info.ClassOf(cd).Named(), cls.Named())
}

func (c *Checker) newObject(e *syntax.NewExpr) types.Type {
	id := e.Class.Name
	cls, ok := c.lookupType(id.Name).(*types.Class)
	if !ok {
		c.notDeclared(id, LookingForClass)
		return errorType
	}
	c.recordUse(id, cls)
	return cls.Named()
}

func (c *Checker) newArray(e *syntax.NewArrayExpr) types.Type {
	size := c.expr(e.Size)
	if !types.IsError(size) && !types.IsInt(size) {
		c.errorf(NewArraySizeNotInteger, e.Size.Pos(), nil, "Size for NewArray must be an integer")
	}
	elem := c.typExpr(e.Elem)
	if types.IsError(elem) {
		return errorType
	}
	return types.NewArray(elem)
}
