package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

var basicTypes = [...]types.BasicKind{
	syntax.IntType:    types.Int,
	syntax.DoubleType: types.Double,
	syntax.BoolType:   types.Bool,
	syntax.VoidType:   types.Void,
	syntax.StringType: types.String,
}

// lookupType returns the top-level object called name, or nil.
// Classes and interfaces are only declared at the top level.
func (c *Checker) lookupType(name string) types.Object {
	return c.Scope(c.prog).Lookup(name)
}

// typExpr resolves a type expression. A name that does not denote a
// class or interface is reported once and resolves to the error type.
func (c *Checker) typExpr(t syntax.TypeExpr) types.Type {
	if T, ok := c.typExprs[t]; ok {
		return T
	}
	T := c.typExprInternal(t)
	c.typExprs[t] = T
	return T
}

func (c *Checker) typExprInternal(t syntax.TypeExpr) types.Type {
	switch t := t.(type) {
	case *syntax.BasicType:
		return types.Typ[basicTypes[t.Kind]]

	case *syntax.NamedType:
		switch obj := c.lookupType(t.Name.Name).(type) {
		case *types.Class:
			c.recordUse(t.Name, obj)
			return obj.Named()
		case *types.Interface:
			c.recordUse(t.Name, obj)
			return obj.Named()
		}
		c.notDeclared(t.Name, LookingForType)
		return types.Typ[types.Invalid]

	case *syntax.ArrayType:
		elem := c.typExpr(t.Elem)
		if types.IsError(elem) {
			return elem
		}
		return types.NewArray(elem)
	}

	base.Fatalf("%s: unexpected type expression %T", t.Pos(), t)
	return nil
}
