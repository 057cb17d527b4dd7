// Package syntax defines the abstract syntax tree consumed by the Decaf
// semantic core: nodes, source positions, traversal, and the text and JSON
// encodings used to hand a parsed program to the compiler.
package syntax

import "github.com/you-not-fish/decafc/internal/base"

// ----------------------------------------------------------------------------
// Interfaces
//
// Every node implements Node. The node families (declarations, types,
// expressions, statements) are closed: each is an interface with an
// unexported marker method, so only this package can add variants and
// type switches over a family can be checked for completeness.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos     // source location (NoPos if unknown)
	Parent() Node // enclosing node; nil only for *Program
	setParent(Node)
	aNode()
}

// Decl is a declaration: *VarDecl, *FuncDecl, *ClassDecl or *InterfaceDecl.
type Decl interface {
	Node
	Ident() *Identifier
	aDecl()
}

// TypeExpr is a type reference: *BasicType, *NamedType or *ArrayType.
type TypeExpr interface {
	Node
	aType()
}

// Expr is an expression node.
type Expr interface {
	Node
	aExpr()
}

// LValue is an assignable expression: *FieldAccess or *ArrayAccess.
type LValue interface {
	Expr
	aLValue()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	aStmt()
}

// LoopStmt is a statement that break can exit: *WhileStmt or *ForStmt.
type LoopStmt interface {
	Stmt
	LoopBody() Stmt
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos    Pos
	parent Node
}

func (n *node) Pos() Pos     { return n.pos }
func (n *node) Parent() Node { return n.parent }
func (*node) aNode()         {}

// setParent records the enclosing node. A node is attached exactly once.
func (n *node) setParent(p Node) {
	if n.parent != nil && n.parent != p {
		base.Fatalf("%s: node already attached to another parent", n.pos)
	}
	n.parent = p
}

type decl struct{ node }

func (*decl) aDecl() {}

type typ struct{ node }

func (*typ) aType() {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program and identifiers

// Program is the root of the tree.
type Program struct {
	node
	Decls []Decl // top-level declarations
}

// NewProgram creates a program owning decls.
func NewProgram(decls ...Decl) *Program {
	p := &Program{Decls: decls}
	for _, d := range decls {
		d.setParent(p)
	}
	return p
}

// Identifier is a name. Identifiers compare by exact text.
type Identifier struct {
	node
	Name string
}

// NewIdent creates an identifier.
func NewIdent(pos Pos, name string) *Identifier {
	return &Identifier{node: node{pos: pos}, Name: name}
}

// String returns the identifier text.
func (id *Identifier) String() string { return id.Name }

// ----------------------------------------------------------------------------
// Declarations

// VarDecl declares a global, local, parameter, or field: Type Name;
type VarDecl struct {
	decl
	Name *Identifier
	Type TypeExpr
}

// NewVarDecl creates a variable declaration positioned at its name.
func NewVarDecl(name *Identifier, t TypeExpr) *VarDecl {
	d := &VarDecl{decl: decl{node{pos: name.Pos()}}, Name: name, Type: t}
	name.setParent(d)
	t.setParent(d)
	return d
}

// Ident implements Decl.
func (d *VarDecl) Ident() *Identifier { return d.Name }

// FuncDecl declares a function or method. Body is nil for interface
// method prototypes.
type FuncDecl struct {
	decl
	Name   *Identifier
	Result TypeExpr
	Params []*VarDecl
	Body   *StmtBlock
}

// NewFuncDecl creates a function declaration. body may be nil.
func NewFuncDecl(name *Identifier, result TypeExpr, params []*VarDecl, body *StmtBlock) *FuncDecl {
	d := &FuncDecl{decl: decl{node{pos: name.Pos()}}, Name: name, Result: result, Params: params, Body: body}
	name.setParent(d)
	result.setParent(d)
	for _, p := range params {
		p.setParent(d)
	}
	if body != nil {
		body.setParent(d)
	}
	return d
}

// Ident implements Decl.
func (d *FuncDecl) Ident() *Identifier { return d.Name }

// ClassDecl declares a class: class Name extends Extends implements I, J { Members }
type ClassDecl struct {
	decl
	Name       *Identifier
	Extends    *NamedType // nil if no superclass
	Implements []*NamedType
	Members    []Decl // *VarDecl and *FuncDecl
}

// NewClassDecl creates a class declaration. extends may be nil.
func NewClassDecl(name *Identifier, extends *NamedType, implements []*NamedType, members []Decl) *ClassDecl {
	d := &ClassDecl{decl: decl{node{pos: name.Pos()}}, Name: name, Extends: extends, Implements: implements, Members: members}
	name.setParent(d)
	if extends != nil {
		extends.setParent(d)
	}
	for _, t := range implements {
		t.setParent(d)
	}
	for _, m := range members {
		m.setParent(d)
	}
	return d
}

// Ident implements Decl.
func (d *ClassDecl) Ident() *Identifier { return d.Name }

// InterfaceDecl declares an interface of method prototypes.
type InterfaceDecl struct {
	decl
	Name    *Identifier
	Methods []*FuncDecl
}

// NewInterfaceDecl creates an interface declaration.
func NewInterfaceDecl(name *Identifier, methods []*FuncDecl) *InterfaceDecl {
	d := &InterfaceDecl{decl: decl{node{pos: name.Pos()}}, Name: name, Methods: methods}
	name.setParent(d)
	for _, m := range methods {
		m.setParent(d)
	}
	return d
}

// Ident implements Decl.
func (d *InterfaceDecl) Ident() *Identifier { return d.Name }

// ----------------------------------------------------------------------------
// Type expressions

// BasicKind identifies a built-in type keyword.
type BasicKind int

const (
	IntType BasicKind = iota
	DoubleType
	BoolType
	VoidType
	StringType
)

var basicKindNames = [...]string{
	IntType:    "int",
	DoubleType: "double",
	BoolType:   "bool",
	VoidType:   "void",
	StringType: "string",
}

func (k BasicKind) String() string {
	if k >= 0 && int(k) < len(basicKindNames) {
		return basicKindNames[k]
	}
	return "?"
}

// BasicType is a built-in type keyword.
type BasicType struct {
	typ
	Kind BasicKind
}

// NewBasicType creates a built-in type reference.
func NewBasicType(pos Pos, kind BasicKind) *BasicType {
	return &BasicType{typ: typ{node{pos: pos}}, Kind: kind}
}

// NamedType refers to a class or interface by name.
type NamedType struct {
	typ
	Name *Identifier
}

// NewNamedType creates a named type reference.
func NewNamedType(name *Identifier) *NamedType {
	t := &NamedType{typ: typ{node{pos: name.Pos()}}, Name: name}
	name.setParent(t)
	return t
}

// ArrayType is Elem[].
type ArrayType struct {
	typ
	Elem TypeExpr
}

// NewArrayType creates an array type reference.
func NewArrayType(pos Pos, elem TypeExpr) *ArrayType {
	t := &ArrayType{typ: typ{node{pos: pos}}, Elem: elem}
	elem.setParent(t)
	return t
}

// ----------------------------------------------------------------------------
// Expressions

// EmptyExpr is an omitted expression (bare return, empty for clause).
type EmptyExpr struct{ expr }

// NewEmptyExpr creates an empty expression.
func NewEmptyExpr(pos Pos) *EmptyExpr {
	return &EmptyExpr{expr{node{pos: pos}}}
}

// IntLit is an integer constant.
type IntLit struct {
	expr
	Value int
}

// NewIntLit creates an integer constant.
func NewIntLit(pos Pos, v int) *IntLit {
	return &IntLit{expr: expr{node{pos: pos}}, Value: v}
}

// DoubleLit is a floating-point constant.
type DoubleLit struct {
	expr
	Value float64
}

// NewDoubleLit creates a double constant.
func NewDoubleLit(pos Pos, v float64) *DoubleLit {
	return &DoubleLit{expr: expr{node{pos: pos}}, Value: v}
}

// BoolLit is true or false.
type BoolLit struct {
	expr
	Value bool
}

// NewBoolLit creates a boolean constant.
func NewBoolLit(pos Pos, v bool) *BoolLit {
	return &BoolLit{expr: expr{node{pos: pos}}, Value: v}
}

// StringLit is a string constant (decoded, without quotes).
type StringLit struct {
	expr
	Value string
}

// NewStringLit creates a string constant.
func NewStringLit(pos Pos, v string) *StringLit {
	return &StringLit{expr: expr{node{pos: pos}}, Value: v}
}

// NullLit is the null constant.
type NullLit struct{ expr }

// NewNullLit creates a null constant.
func NewNullLit(pos Pos) *NullLit {
	return &NullLit{expr{node{pos: pos}}}
}

// Operation is a unary or binary arithmetic, relational, equality, or
// logical operation. X is nil for unary operations (-Y, !Y).
type Operation struct {
	expr
	Op Operator
	X  Expr
	Y  Expr
}

// NewOperation creates a binary operation.
func NewOperation(pos Pos, op Operator, x, y Expr) *Operation {
	e := &Operation{expr: expr{node{pos: pos}}, Op: op, X: x, Y: y}
	x.setParent(e)
	y.setParent(e)
	return e
}

// NewUnary creates a unary operation (Sub or Not).
func NewUnary(pos Pos, op Operator, y Expr) *Operation {
	e := &Operation{expr: expr{node{pos: pos}}, Op: op, Y: y}
	y.setParent(e)
	return e
}

// IsUnary reports whether e has a single operand.
func (e *Operation) IsUnary() bool { return e.X == nil }

// AssignExpr is Left = Right.
type AssignExpr struct {
	expr
	Left  LValue
	Right Expr
}

// NewAssign creates an assignment.
func NewAssign(pos Pos, left LValue, right Expr) *AssignExpr {
	e := &AssignExpr{expr: expr{node{pos: pos}}, Left: left, Right: right}
	left.setParent(e)
	right.setParent(e)
	return e
}

// This is the receiver of the enclosing method.
type This struct{ expr }

// NewThis creates a this expression.
func NewThis(pos Pos) *This {
	return &This{expr{node{pos: pos}}}
}

// ArrayAccess is X[Index].
type ArrayAccess struct {
	expr
	X     Expr
	Index Expr
}

// NewArrayAccess creates an array element access.
func NewArrayAccess(pos Pos, x, index Expr) *ArrayAccess {
	e := &ArrayAccess{expr: expr{node{pos: pos}}, X: x, Index: index}
	x.setParent(e)
	index.setParent(e)
	return e
}

func (*ArrayAccess) aLValue() {}

// FieldAccess is X.Field, or a bare variable reference when X is nil.
type FieldAccess struct {
	expr
	X     Expr // nil if no explicit receiver
	Field *Identifier
}

// NewFieldAccess creates a field access. x may be nil.
func NewFieldAccess(x Expr, field *Identifier) *FieldAccess {
	pos := field.Pos()
	if x != nil {
		pos = x.Pos()
	}
	e := &FieldAccess{expr: expr{node{pos: pos}}, X: x, Field: field}
	if x != nil {
		x.setParent(e)
	}
	field.setParent(e)
	return e
}

// NewVarRef is shorthand for a receiver-less FieldAccess.
func NewVarRef(pos Pos, name string) *FieldAccess {
	return NewFieldAccess(nil, NewIdent(pos, name))
}

func (*FieldAccess) aLValue() {}

// CallExpr is X.Field(Args) or Field(Args) when X is nil.
type CallExpr struct {
	expr
	X     Expr // nil if no explicit receiver
	Field *Identifier
	Args  []Expr
}

// NewCall creates a call. x may be nil.
func NewCall(pos Pos, x Expr, field *Identifier, args []Expr) *CallExpr {
	e := &CallExpr{expr: expr{node{pos: pos}}, X: x, Field: field, Args: args}
	if x != nil {
		x.setParent(e)
	}
	field.setParent(e)
	for _, a := range args {
		a.setParent(e)
	}
	return e
}

// NewExpr is new ClassName.
type NewExpr struct {
	expr
	Class *NamedType
}

// NewNew creates an object allocation.
func NewNew(pos Pos, class *NamedType) *NewExpr {
	e := &NewExpr{expr: expr{node{pos: pos}}, Class: class}
	class.setParent(e)
	return e
}

// NewArrayExpr is NewArray(Size, Elem).
type NewArrayExpr struct {
	expr
	Size Expr
	Elem TypeExpr
}

// NewNewArray creates an array allocation.
func NewNewArray(pos Pos, size Expr, elem TypeExpr) *NewArrayExpr {
	e := &NewArrayExpr{expr: expr{node{pos: pos}}, Size: size, Elem: elem}
	size.setParent(e)
	elem.setParent(e)
	return e
}

// ReadIntegerExpr is ReadInteger().
type ReadIntegerExpr struct{ expr }

// NewReadInteger creates a ReadInteger() call.
func NewReadInteger(pos Pos) *ReadIntegerExpr {
	return &ReadIntegerExpr{expr{node{pos: pos}}}
}

// ReadLineExpr is ReadLine().
type ReadLineExpr struct{ expr }

// NewReadLine creates a ReadLine() call.
func NewReadLine(pos Pos) *ReadLineExpr {
	return &ReadLineExpr{expr{node{pos: pos}}}
}

// PostfixExpr is X++ or X--.
type PostfixExpr struct {
	expr
	X  LValue
	Op Operator // Inc or Dec
}

// NewPostfix creates a postfix increment or decrement.
func NewPostfix(pos Pos, x LValue, op Operator) *PostfixExpr {
	e := &PostfixExpr{expr: expr{node{pos: pos}}, X: x, Op: op}
	x.setParent(e)
	return e
}

// ----------------------------------------------------------------------------
// Statements

// StmtBlock is { Decls Stmts }. Local declarations precede statements.
type StmtBlock struct {
	stmt
	Decls []*VarDecl
	Stmts []Stmt
}

// NewBlock creates a statement block.
func NewBlock(pos Pos, decls []*VarDecl, stmts []Stmt) *StmtBlock {
	s := &StmtBlock{stmt: stmt{node{pos: pos}}, Decls: decls, Stmts: stmts}
	for _, d := range decls {
		d.setParent(s)
	}
	for _, st := range stmts {
		st.setParent(s)
	}
	return s
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	stmt
	X Expr
}

// NewExprStmt creates an expression statement positioned at x.
func NewExprStmt(x Expr) *ExprStmt {
	s := &ExprStmt{stmt: stmt{node{pos: x.Pos()}}, X: x}
	x.setParent(s)
	return s
}

// IfStmt is if (Cond) Then else Else.
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// NewIf creates an if statement. els may be nil.
func NewIf(pos Pos, cond Expr, then, els Stmt) *IfStmt {
	s := &IfStmt{stmt: stmt{node{pos: pos}}, Cond: cond, Then: then, Else: els}
	cond.setParent(s)
	then.setParent(s)
	if els != nil {
		els.setParent(s)
	}
	return s
}

// WhileStmt is while (Cond) Body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// NewWhile creates a while loop.
func NewWhile(pos Pos, cond Expr, body Stmt) *WhileStmt {
	s := &WhileStmt{stmt: stmt{node{pos: pos}}, Cond: cond, Body: body}
	cond.setParent(s)
	body.setParent(s)
	return s
}

// LoopBody implements LoopStmt.
func (s *WhileStmt) LoopBody() Stmt { return s.Body }

// ForStmt is for (Init; Cond; Post) Body. Init and Post may be *EmptyExpr.
type ForStmt struct {
	stmt
	Init Expr
	Cond Expr
	Post Expr
	Body Stmt
}

// NewFor creates a for loop.
func NewFor(pos Pos, init, cond, post Expr, body Stmt) *ForStmt {
	s := &ForStmt{stmt: stmt{node{pos: pos}}, Init: init, Cond: cond, Post: post, Body: body}
	init.setParent(s)
	cond.setParent(s)
	post.setParent(s)
	body.setParent(s)
	return s
}

// LoopBody implements LoopStmt.
func (s *ForStmt) LoopBody() Stmt { return s.Body }

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct{ stmt }

// NewBreak creates a break statement.
func NewBreak(pos Pos) *BreakStmt {
	return &BreakStmt{stmt{node{pos: pos}}}
}

// ReturnStmt is return Result; Result is nil or *EmptyExpr for a bare return.
type ReturnStmt struct {
	stmt
	Result Expr
}

// NewReturn creates a return statement. result may be nil.
func NewReturn(pos Pos, result Expr) *ReturnStmt {
	s := &ReturnStmt{stmt: stmt{node{pos: pos}}, Result: result}
	if result != nil {
		result.setParent(s)
	}
	return s
}

// IsBare reports whether the statement returns no value.
func (s *ReturnStmt) IsBare() bool {
	if s.Result == nil {
		return true
	}
	_, empty := s.Result.(*EmptyExpr)
	return empty
}

// PrintStmt is Print(Args).
type PrintStmt struct {
	stmt
	Args []Expr
}

// NewPrint creates a print statement.
func NewPrint(pos Pos, args []Expr) *PrintStmt {
	s := &PrintStmt{stmt: stmt{node{pos: pos}}, Args: args}
	for _, a := range args {
		a.setParent(s)
	}
	return s
}

// SwitchStmt is switch (X) { Cases }.
type SwitchStmt struct {
	stmt
	X     Expr
	Cases []*CaseStmt
}

// NewSwitch creates a switch statement.
func NewSwitch(pos Pos, x Expr, cases []*CaseStmt) *SwitchStmt {
	s := &SwitchStmt{stmt: stmt{node{pos: pos}}, X: x, Cases: cases}
	x.setParent(s)
	for _, c := range cases {
		c.setParent(s)
	}
	return s
}

// CaseStmt is case Value: Stmts, or default: Stmts when Value is nil.
type CaseStmt struct {
	stmt
	Value *IntLit
	Stmts []Stmt
}

// NewCase creates a switch case. value is nil for default.
func NewCase(pos Pos, value *IntLit, stmts []Stmt) *CaseStmt {
	s := &CaseStmt{stmt: stmt{node{pos: pos}}, Value: value, Stmts: stmts}
	if value != nil {
		value.setParent(s)
	}
	for _, st := range stmts {
		st.setParent(s)
	}
	return s
}

// IsDefault reports whether c is the default case.
func (c *CaseStmt) IsDefault() bool { return c.Value == nil }
