package types2

import (
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/types"
)

// Checker resolves and type-checks one program.
//
// Symbol tables are built on demand: the first request for the scope of
// a node constructs it (and any scope it depends on) and records it in
// Info.Scopes; later requests return the recorded table.
type Checker struct {
	conf *Config
	info *Info
	prog *syntax.Program

	// Declarations of classes and interfaces, for building their
	// member tables when a type name is first used.
	classDecls map[*types.Class]*syntax.ClassDecl
	ifaceDecls map[*types.Interface]*syntax.InterfaceDecl

	// Classes whose member table is under construction.
	building map[*syntax.ClassDecl]bool

	// Resolved type expressions.
	typExprs map[syntax.TypeExpr]types.Type

	// Error tracking
	errors int
	first  *Error
}

// NewChecker returns a checker for prog. info may be nil.
func NewChecker(prog *syntax.Program, conf *Config, info *Info) *Checker {
	if conf == nil {
		conf = &Config{}
	}
	if conf.Sizes == nil {
		conf.Sizes = types.DefaultSizes
	}
	if info == nil {
		info = &Info{}
	}
	info.init()

	return &Checker{
		conf:       conf,
		info:       info,
		prog:       prog,
		classDecls: make(map[*types.Class]*syntax.ClassDecl),
		ifaceDecls: make(map[*types.Interface]*syntax.InterfaceDecl),
		building:   make(map[*syntax.ClassDecl]bool),
		typExprs:   make(map[syntax.TypeExpr]types.Type),
	}
}

// Info returns the side tables the checker fills in.
func (c *Checker) Info() *Info {
	return c.info
}

// NumErrors returns the number of diagnoses reported so far.
func (c *Checker) NumErrors() int {
	return c.errors
}

// checkProgram checks every declaration in source order.
func (c *Checker) checkProgram() {
	c.Scope(c.prog)
	for _, d := range c.prog.Decls {
		c.decl(d)
	}
}

// recordUse records the object an identifier refers to.
func (c *Checker) recordUse(id *syntax.Identifier, obj types.Object) {
	c.info.Uses[id] = obj
}

// declare binds obj in s and records it as the object declared by d.
// A name already bound is reported as a conflict, or as an override
// mismatch when an inherited method is redefined with a different
// signature.
func (c *Checker) declare(s *types.Scope, d syntax.Decl, obj types.Object) {
	c.info.Defs[d] = obj
	existing := s.Insert(obj)
	if existing == nil {
		return
	}

	id := d.Ident()
	_, isFunc := obj.(*types.Func)
	_, wasFunc := existing.(*types.Func)
	if isFunc && wasFunc && existing.Parent() != s {
		c.errorf(OverrideMismatch, id.Pos(), []string{id.Name},
			"Method '%s' must match inherited type signature", id.Name)
		return
	}
	c.errorf(DeclarationConflict, id.Pos(), []string{id.Name},
		"Declaration of '%s' here conflicts with declaration on line %d", id.Name, existing.Pos().Line())
}
