package types2

import (
	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each diagnosis.
	// If nil, diagnoses are only counted.
	Error ErrorHandler

	// Sizes provides value size information.
	// If nil, DefaultSizes is used.
	Sizes *types.Sizes
}

// Info holds the results of type checking. Every map is keyed by node
// identity, and an entry never changes once recorded.
type Info struct {
	// Types maps expressions to their types. Expressions that failed
	// to check map to the error type.
	Types map[syntax.Expr]types.Type

	// Defs maps declarations to the objects they declare.
	Defs map[syntax.Decl]types.Object

	// Uses maps referencing identifiers to the objects they denote.
	// The length pseudo-method of arrays has no entry.
	Uses map[*syntax.Identifier]types.Object

	// Scopes maps scope-owning nodes to their symbol tables:
	// Program, ClassDecl, InterfaceDecl, FuncDecl and StmtBlock.
	Scopes map[syntax.Node]*types.Scope
}

// TypeOf returns the type recorded for e. Asking for an expression
// that was never checked is an internal error.
func (info *Info) TypeOf(e syntax.Expr) types.Type {
	t, ok := info.Types[e]
	base.Assert(ok, "%s: type of %T requested before checking", e.Pos(), e)
	return t
}

// ObjectOf returns the object declared by d.
func (info *Info) ObjectOf(d syntax.Decl) types.Object {
	obj, ok := info.Defs[d]
	base.Assert(ok, "%s: %s has no object", d.Pos(), d.Ident().Name)
	return obj
}

// VarOf returns the variable declared by d.
func (info *Info) VarOf(d *syntax.VarDecl) *types.Var {
	return info.ObjectOf(d).(*types.Var)
}

// FuncOf returns the function declared by d.
func (info *Info) FuncOf(d *syntax.FuncDecl) *types.Func {
	return info.ObjectOf(d).(*types.Func)
}

// ClassOf returns the class declared by d.
func (info *Info) ClassOf(d *syntax.ClassDecl) *types.Class {
	return info.ObjectOf(d).(*types.Class)
}

// InterfaceOf returns the interface declared by d.
func (info *Info) InterfaceOf(d *syntax.InterfaceDecl) *types.Interface {
	return info.ObjectOf(d).(*types.Interface)
}

// Use returns the object id refers to, or nil.
func (info *Info) Use(id *syntax.Identifier) types.Object {
	return info.Uses[id]
}

func (info *Info) init() {
	if info.Types == nil {
		info.Types = make(map[syntax.Expr]types.Type)
	}
	if info.Defs == nil {
		info.Defs = make(map[syntax.Decl]types.Object)
	}
	if info.Uses == nil {
		info.Uses = make(map[*syntax.Identifier]types.Object)
	}
	if info.Scopes == nil {
		info.Scopes = make(map[syntax.Node]*types.Scope)
	}
}

// Check resolves and type-checks prog. Every diagnosis is passed to
// conf.Error; the first one is returned.
//
// An internal consistency failure panics; callers recover it with
// base.Recover.
func Check(prog *syntax.Program, conf *Config, info *Info) error {
	c := NewChecker(prog, conf, info)
	c.checkProgram()

	if c.errors > 0 {
		return c.first
	}
	return nil
}
