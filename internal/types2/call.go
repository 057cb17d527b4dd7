package types2

import (
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// call checks f(args) and x.f(args). The receiver and every argument are
// checked even when the callee cannot be found.
func (c *Checker) call(e *syntax.CallExpr) types.Type {
	var recv types.Type
	if e.X != nil {
		recv = c.expr(e.X)
	}
	args := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		args[i] = c.expr(a)
	}

	if e.X == nil {
		f, ok := c.Resolve(e.Field, e, false).(*types.Func)
		if !ok {
			c.notDeclared(e.Field, LookingForFunction)
			return errorType
		}
		return c.arguments(e, f, args)
	}

	if types.IsError(recv) {
		return errorType
	}
	if isLength(e, recv) {
		return intType
	}
	if n, ok := recv.(*types.Named); ok {
		if f, ok := c.members(n).Lookup(e.Field.Name).(*types.Func); ok {
			return c.arguments(e, f, args)
		}
	}

	c.errorf(FieldNotFoundInBase, e.Field.Pos(), []string{e.Field.Name},
		"%s has no such field '%s'", recv, e.Field.Name)
	return errorType
}

// isLength reports whether e is the built-in a.length() on an array.
func isLength(e *syntax.CallExpr, recv types.Type) bool {
	return types.IsArray(recv) && e.Field.Name == "length" && len(e.Args) == 0
}

// IsLength reports whether the checked call e is a.length() on an array.
func (info *Info) IsLength(e *syntax.CallExpr) bool {
	return e.X != nil && isLength(e, info.TypeOf(e.X))
}

// arguments matches the actual argument types against the formals of f
// and returns f's result type. A count mismatch is reported once; each
// position both lists have is then compared.
func (c *Checker) arguments(e *syntax.CallExpr, f *types.Func, args []types.Type) types.Type {
	c.recordUse(e.Field, f)
	sig := f.Signature()
	params := sig.Params()

	if len(params) != len(args) {
		c.errorf(NumArgsMismatch, e.Field.Pos(), []string{e.Field.Name},
			"Function '%s' expects %d arguments but %d given", e.Field.Name, len(params), len(args))
	}
	for i := 0; i < len(params) && i < len(args); i++ {
		want := params[i].Type()
		if types.IsError(args[i]) || types.IsError(want) {
			continue
		}
		if !types.AssignableTo(args[i], want) {
			c.errorf(ArgMismatch, e.Args[i].Pos(), []string{e.Field.Name},
				"Incompatible argument %d: %s given, %s expected", i+1, args[i], want)
		}
	}
	return sig.Result()
}
