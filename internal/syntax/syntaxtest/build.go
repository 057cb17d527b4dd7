// Package syntaxtest provides terse AST constructors for tests.
//
// Every node gets a distinct position in the file "test.decaf" so
// diagnostics produced from these trees can be told apart.
package syntaxtest

import (
	"github.com/you-not-fish/decafc/internal/syntax"
)

// Filename is the file name used in generated positions.
const Filename = "test.decaf"

var line uint32

// Pos returns a fresh position.
func Pos() syntax.Pos {
	line++
	return syntax.NewPos(Filename, line, 1)
}

func id(name string) *syntax.Identifier { return syntax.NewIdent(Pos(), name) }

// Types

func Int() syntax.TypeExpr    { return syntax.NewBasicType(Pos(), syntax.IntType) }
func Double() syntax.TypeExpr { return syntax.NewBasicType(Pos(), syntax.DoubleType) }
func Bool() syntax.TypeExpr   { return syntax.NewBasicType(Pos(), syntax.BoolType) }
func Void() syntax.TypeExpr   { return syntax.NewBasicType(Pos(), syntax.VoidType) }
func String() syntax.TypeExpr { return syntax.NewBasicType(Pos(), syntax.StringType) }

// Named refers to a class or interface.
func Named(name string) *syntax.NamedType { return syntax.NewNamedType(id(name)) }

// ArrayOf returns elem[].
func ArrayOf(elem syntax.TypeExpr) syntax.TypeExpr { return syntax.NewArrayType(Pos(), elem) }

// Declarations

// Var declares name of type t.
func Var(name string, t syntax.TypeExpr) *syntax.VarDecl {
	return syntax.NewVarDecl(id(name), t)
}

// Vars collects variable declarations.
func Vars(vs ...*syntax.VarDecl) []*syntax.VarDecl { return vs }

// Func declares a function with a body.
func Func(name string, result syntax.TypeExpr, params []*syntax.VarDecl, body *syntax.StmtBlock) *syntax.FuncDecl {
	return syntax.NewFuncDecl(id(name), result, params, body)
}

// Proto declares a body-less method prototype for an interface.
func Proto(name string, result syntax.TypeExpr, params ...*syntax.VarDecl) *syntax.FuncDecl {
	return syntax.NewFuncDecl(id(name), result, params, nil)
}

// Main declares void main() { stmts }.
func Main(locals []*syntax.VarDecl, stmts ...syntax.Stmt) *syntax.FuncDecl {
	return Func("main", Void(), nil, Block(locals, stmts...))
}

// Class declares a class. extends may be empty.
func Class(name, extends string, implements []string, members ...syntax.Decl) *syntax.ClassDecl {
	var ext *syntax.NamedType
	if extends != "" {
		ext = Named(extends)
	}
	var impls []*syntax.NamedType
	for _, i := range implements {
		impls = append(impls, Named(i))
	}
	return syntax.NewClassDecl(id(name), ext, impls, members)
}

// Interface declares an interface.
func Interface(name string, methods ...*syntax.FuncDecl) *syntax.InterfaceDecl {
	return syntax.NewInterfaceDecl(id(name), methods)
}

// Prog builds a program.
func Prog(decls ...syntax.Decl) *syntax.Program { return syntax.NewProgram(decls...) }

// Statements

// Block builds { locals stmts }.
func Block(locals []*syntax.VarDecl, stmts ...syntax.Stmt) *syntax.StmtBlock {
	return syntax.NewBlock(Pos(), locals, stmts)
}

// Do wraps an expression as a statement.
func Do(x syntax.Expr) syntax.Stmt { return syntax.NewExprStmt(x) }

func If(cond syntax.Expr, then, els syntax.Stmt) *syntax.IfStmt {
	return syntax.NewIf(Pos(), cond, then, els)
}

func While(cond syntax.Expr, body syntax.Stmt) *syntax.WhileStmt {
	return syntax.NewWhile(Pos(), cond, body)
}

// For builds a for loop; nil init or post become empty expressions.
func For(init, cond, post syntax.Expr, body syntax.Stmt) *syntax.ForStmt {
	if init == nil {
		init = syntax.NewEmptyExpr(Pos())
	}
	if post == nil {
		post = syntax.NewEmptyExpr(Pos())
	}
	return syntax.NewFor(Pos(), init, cond, post, body)
}

func Break() *syntax.BreakStmt { return syntax.NewBreak(Pos()) }

// Return builds return x; x may be nil.
func Return(x syntax.Expr) *syntax.ReturnStmt { return syntax.NewReturn(Pos(), x) }

func Print(args ...syntax.Expr) *syntax.PrintStmt { return syntax.NewPrint(Pos(), args) }

func Switch(x syntax.Expr, cases ...*syntax.CaseStmt) *syntax.SwitchStmt {
	return syntax.NewSwitch(Pos(), x, cases)
}

func Case(v int, stmts ...syntax.Stmt) *syntax.CaseStmt {
	return syntax.NewCase(Pos(), syntax.NewIntLit(Pos(), v), stmts)
}

func Default(stmts ...syntax.Stmt) *syntax.CaseStmt {
	return syntax.NewCase(Pos(), nil, stmts)
}

// Expressions

func IntLit(v int) *syntax.IntLit {
	return syntax.NewIntLit(Pos(), v)
}

func DoubleLit(v float64) *syntax.DoubleLit {
	return syntax.NewDoubleLit(Pos(), v)
}

func BoolLit(v bool) *syntax.BoolLit {
	return syntax.NewBoolLit(Pos(), v)
}

func StringLit(v string) *syntax.StringLit {
	return syntax.NewStringLit(Pos(), v)
}

func Null() *syntax.NullLit {
	return syntax.NewNullLit(Pos())
}

func This() *syntax.This {
	return syntax.NewThis(Pos())
}

func ReadInteger() *syntax.ReadIntegerExpr {
	return syntax.NewReadInteger(Pos())
}

func ReadLine() *syntax.ReadLineExpr {
	return syntax.NewReadLine(Pos())
}

func Empty() *syntax.EmptyExpr {
	return syntax.NewEmptyExpr(Pos())
}

func Ref(name string) *syntax.FieldAccess {
	return syntax.NewFieldAccess(nil, id(name))
}

func Index(x, i syntax.Expr) *syntax.ArrayAccess {
	return syntax.NewArrayAccess(Pos(), x, i)
}

// Field builds x.name.
func Field(x syntax.Expr, name string) *syntax.FieldAccess {
	return syntax.NewFieldAccess(x, id(name))
}

// Call builds x.name(args); x may be nil.
func Call(x syntax.Expr, name string, args ...syntax.Expr) *syntax.CallExpr {
	return syntax.NewCall(Pos(), x, id(name), args)
}

func Bin(op syntax.Operator, x, y syntax.Expr) *syntax.Operation {
	return syntax.NewOperation(Pos(), op, x, y)
}

func Neg(y syntax.Expr) *syntax.Operation { return syntax.NewUnary(Pos(), syntax.Sub, y) }
func Not(y syntax.Expr) *syntax.Operation { return syntax.NewUnary(Pos(), syntax.Not, y) }

func Assign(lv syntax.LValue, rhs syntax.Expr) *syntax.AssignExpr {
	return syntax.NewAssign(Pos(), lv, rhs)
}

func Inc(lv syntax.LValue) *syntax.PostfixExpr { return syntax.NewPostfix(Pos(), lv, syntax.Inc) }
func Dec(lv syntax.LValue) *syntax.PostfixExpr { return syntax.NewPostfix(Pos(), lv, syntax.Dec) }

func New(class string) *syntax.NewExpr { return syntax.NewNew(Pos(), Named(class)) }

func NewArray(size syntax.Expr, elem syntax.TypeExpr) *syntax.NewArrayExpr {
	return syntax.NewNewArray(Pos(), size, elem)
}
