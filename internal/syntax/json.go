package syntax

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// The JSON form of a program is the hand-off format between an external
// parser and the compiler. Every node is an object tagged with "kind";
// children are nested objects or arrays of objects.

type jsonNode struct {
	Kind    string          `json:"kind"`
	Pos     string          `json:"pos,omitempty"`
	Name    string          `json:"name,omitempty"`
	NamePos string          `json:"namePos,omitempty"`
	Op      string          `json:"op,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`

	Type       *jsonNode   `json:"type,omitempty"`
	Extends    *jsonNode   `json:"extends,omitempty"`
	Implements []*jsonNode `json:"implements,omitempty"`
	Params     []*jsonNode `json:"params,omitempty"`
	Members    []*jsonNode `json:"members,omitempty"`
	Decls      []*jsonNode `json:"decls,omitempty"`
	Stmts      []*jsonNode `json:"stmts,omitempty"`
	Args       []*jsonNode `json:"args,omitempty"`
	Cases      []*jsonNode `json:"cases,omitempty"`
	Body       *jsonNode   `json:"body,omitempty"`

	X      *jsonNode `json:"x,omitempty"`
	Y      *jsonNode `json:"y,omitempty"`
	Index  *jsonNode `json:"index,omitempty"`
	Cond   *jsonNode `json:"cond,omitempty"`
	Then   *jsonNode `json:"then,omitempty"`
	Else   *jsonNode `json:"else,omitempty"`
	Init   *jsonNode `json:"init,omitempty"`
	Post   *jsonNode `json:"post,omitempty"`
	Result *jsonNode `json:"result,omitempty"`
	Left   *jsonNode `json:"left,omitempty"`
	Right  *jsonNode `json:"right,omitempty"`
	Size   *jsonNode `json:"size,omitempty"`
}

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) *jsonNode {
	if node == nil {
		return nil
	}
	j := &jsonNode{Pos: posString(node.Pos())}

	switch n := node.(type) {
	case *Program:
		j.Kind = "Program"
		for _, d := range n.Decls {
			j.Decls = append(j.Decls, toJSON(d))
		}

	case *VarDecl:
		j.Kind = "VarDecl"
		j.Name = n.Name.Name
		j.Type = toJSON(n.Type)

	case *FuncDecl:
		j.Kind = "FuncDecl"
		j.Name = n.Name.Name
		j.Type = toJSON(n.Result)
		for _, p := range n.Params {
			j.Params = append(j.Params, toJSON(p))
		}
		if n.Body != nil {
			j.Body = toJSON(n.Body)
		}

	case *ClassDecl:
		j.Kind = "ClassDecl"
		j.Name = n.Name.Name
		if n.Extends != nil {
			j.Extends = toJSON(n.Extends)
		}
		for _, t := range n.Implements {
			j.Implements = append(j.Implements, toJSON(t))
		}
		for _, m := range n.Members {
			j.Members = append(j.Members, toJSON(m))
		}

	case *InterfaceDecl:
		j.Kind = "InterfaceDecl"
		j.Name = n.Name.Name
		for _, m := range n.Methods {
			j.Members = append(j.Members, toJSON(m))
		}

	case *BasicType:
		j.Kind = "BasicType"
		j.Name = n.Kind.String()

	case *NamedType:
		j.Kind = "NamedType"
		j.Name = n.Name.Name

	case *ArrayType:
		j.Kind = "ArrayType"
		j.Type = toJSON(n.Elem)

	case *StmtBlock:
		j.Kind = "StmtBlock"
		for _, d := range n.Decls {
			j.Decls = append(j.Decls, toJSON(d))
		}
		for _, s := range n.Stmts {
			j.Stmts = append(j.Stmts, toJSON(s))
		}

	case *ExprStmt:
		j.Kind = "ExprStmt"
		j.X = toJSON(n.X)

	case *IfStmt:
		j.Kind = "IfStmt"
		j.Cond = toJSON(n.Cond)
		j.Then = toJSON(n.Then)
		if n.Else != nil {
			j.Else = toJSON(n.Else)
		}

	case *WhileStmt:
		j.Kind = "WhileStmt"
		j.Cond = toJSON(n.Cond)
		j.Body = toJSON(n.Body)

	case *ForStmt:
		j.Kind = "ForStmt"
		j.Init = toJSON(n.Init)
		j.Cond = toJSON(n.Cond)
		j.Post = toJSON(n.Post)
		j.Body = toJSON(n.Body)

	case *BreakStmt:
		j.Kind = "BreakStmt"

	case *ReturnStmt:
		j.Kind = "ReturnStmt"
		if !n.IsBare() {
			j.Result = toJSON(n.Result)
		}

	case *PrintStmt:
		j.Kind = "PrintStmt"
		for _, a := range n.Args {
			j.Args = append(j.Args, toJSON(a))
		}

	case *SwitchStmt:
		j.Kind = "SwitchStmt"
		j.X = toJSON(n.X)
		for _, c := range n.Cases {
			j.Cases = append(j.Cases, toJSON(c))
		}

	case *CaseStmt:
		j.Kind = "CaseStmt"
		if n.Value != nil {
			j.Value = json.RawMessage(strconv.Itoa(n.Value.Value))
		}
		for _, s := range n.Stmts {
			j.Stmts = append(j.Stmts, toJSON(s))
		}

	case *EmptyExpr:
		j.Kind = "EmptyExpr"

	case *IntLit:
		j.Kind = "IntLit"
		j.Value = rawValue(n.Value)

	case *DoubleLit:
		j.Kind = "DoubleLit"
		j.Value = rawValue(n.Value)

	case *BoolLit:
		j.Kind = "BoolLit"
		j.Value = rawValue(n.Value)

	case *StringLit:
		j.Kind = "StringLit"
		j.Value = rawValue(n.Value)

	case *NullLit:
		j.Kind = "NullLit"

	case *This:
		j.Kind = "This"

	case *ReadIntegerExpr:
		j.Kind = "ReadInteger"

	case *ReadLineExpr:
		j.Kind = "ReadLine"

	case *Operation:
		j.Kind = "Operation"
		j.Op = n.Op.String()
		if n.X != nil {
			j.X = toJSON(n.X)
		}
		j.Y = toJSON(n.Y)

	case *AssignExpr:
		j.Kind = "AssignExpr"
		j.Left = toJSON(n.Left)
		j.Right = toJSON(n.Right)

	case *PostfixExpr:
		j.Kind = "PostfixExpr"
		j.Op = n.Op.String()
		j.X = toJSON(n.X)

	case *ArrayAccess:
		j.Kind = "ArrayAccess"
		j.X = toJSON(n.X)
		j.Index = toJSON(n.Index)

	case *FieldAccess:
		j.Kind = "FieldAccess"
		j.Name = n.Field.Name
		if n.X != nil {
			j.X = toJSON(n.X)
			j.NamePos = posString(n.Field.Pos())
		}

	case *CallExpr:
		j.Kind = "CallExpr"
		j.Name = n.Field.Name
		if n.Field.Pos() != n.pos {
			j.NamePos = posString(n.Field.Pos())
		}
		if n.X != nil {
			j.X = toJSON(n.X)
		}
		for _, a := range n.Args {
			j.Args = append(j.Args, toJSON(a))
		}

	case *NewExpr:
		j.Kind = "NewExpr"
		j.Type = toJSON(n.Class)

	case *NewArrayExpr:
		j.Kind = "NewArrayExpr"
		j.Size = toJSON(n.Size)
		j.Type = toJSON(n.Elem)

	case *Identifier:
		j.Kind = "Identifier"
		j.Name = n.Name

	default:
		j.Kind = "Unknown"
	}
	return j
}

func posString(p Pos) string {
	if !p.IsValid() {
		return ""
	}
	return p.String()
}

func rawValue(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err) // scalars always marshal
	}
	return b
}

// ReadJSON decodes a program written by FprintJSON (or by an external
// parser producing the same format). Parent links are established as the
// tree is rebuilt.
func ReadJSON(r io.Reader) (prog *Program, err error) {
	var root jsonNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(err, "decoding AST")
	}
	if root.Kind != "Program" {
		return nil, errors.Errorf("root node is %q, want Program", root.Kind)
	}

	defer func() {
		if x := recover(); x != nil {
			de, ok := x.(decodeError)
			if !ok {
				panic(x)
			}
			prog, err = nil, de.err
		}
	}()

	var decls []Decl
	for _, d := range root.Decls {
		decls = append(decls, fromDecl(d))
	}
	return NewProgram(decls...), nil
}

type decodeError struct{ err error }

func failf(j *jsonNode, format string, args ...interface{}) {
	msg := errors.Errorf(format, args...)
	if j != nil && j.Pos != "" {
		msg = errors.Wrap(msg, j.Pos)
	}
	panic(decodeError{msg})
}

func jsonPos(j *jsonNode) Pos {
	p, err := ParsePos(j.Pos)
	if err != nil {
		failf(nil, "%v", err)
	}
	return p
}

func need(parent *jsonNode, j *jsonNode, field string) *jsonNode {
	if j == nil {
		failf(parent, "%s: missing %s", parent.Kind, field)
	}
	return j
}

func ident(j *jsonNode) *Identifier {
	if j.Name == "" {
		failf(j, "%s: missing name", j.Kind)
	}
	p := jsonPos(j)
	if j.NamePos != "" {
		np, err := ParsePos(j.NamePos)
		if err != nil {
			failf(j, "%v", err)
		}
		p = np
	}
	return NewIdent(p, j.Name)
}

func fromDecl(j *jsonNode) Decl {
	switch j.Kind {
	case "VarDecl":
		return fromVar(j)
	case "FuncDecl":
		return fromFunc(j)
	case "ClassDecl":
		var ext *NamedType
		if j.Extends != nil {
			ext = fromNamed(j.Extends)
		}
		var impls []*NamedType
		for _, t := range j.Implements {
			impls = append(impls, fromNamed(t))
		}
		var members []Decl
		for _, m := range j.Members {
			switch m.Kind {
			case "VarDecl", "FuncDecl":
				members = append(members, fromDecl(m))
			default:
				failf(m, "class member cannot be %s", m.Kind)
			}
		}
		return NewClassDecl(ident(j), ext, impls, members)
	case "InterfaceDecl":
		var methods []*FuncDecl
		for _, m := range j.Members {
			f := fromFunc(m)
			if f.Body != nil {
				failf(m, "interface method %s has a body", f.Name.Name)
			}
			methods = append(methods, f)
		}
		return NewInterfaceDecl(ident(j), methods)
	}
	failf(j, "unexpected declaration %q", j.Kind)
	return nil
}

func fromVar(j *jsonNode) *VarDecl {
	if j.Kind != "VarDecl" {
		failf(j, "expected VarDecl, got %q", j.Kind)
	}
	return NewVarDecl(ident(j), fromType(need(j, j.Type, "type")))
}

func fromFunc(j *jsonNode) *FuncDecl {
	if j.Kind != "FuncDecl" {
		failf(j, "expected FuncDecl, got %q", j.Kind)
	}
	var params []*VarDecl
	for _, p := range j.Params {
		params = append(params, fromVar(p))
	}
	var body *StmtBlock
	if j.Body != nil {
		b, ok := fromStmt(j.Body).(*StmtBlock)
		if !ok {
			failf(j.Body, "function body must be a StmtBlock")
		}
		body = b
	}
	return NewFuncDecl(ident(j), fromType(need(j, j.Type, "type")), params, body)
}

func fromNamed(j *jsonNode) *NamedType {
	if j.Kind != "NamedType" {
		failf(j, "expected NamedType, got %q", j.Kind)
	}
	return NewNamedType(ident(j))
}

func fromType(j *jsonNode) TypeExpr {
	switch j.Kind {
	case "BasicType":
		for k, s := range basicKindNames {
			if s == j.Name {
				return NewBasicType(jsonPos(j), BasicKind(k))
			}
		}
		failf(j, "unknown basic type %q", j.Name)
	case "NamedType":
		return fromNamed(j)
	case "ArrayType":
		return NewArrayType(jsonPos(j), fromType(need(j, j.Type, "type")))
	}
	failf(j, "unexpected type %q", j.Kind)
	return nil
}

func fromStmt(j *jsonNode) Stmt {
	p := jsonPos(j)
	switch j.Kind {
	case "StmtBlock":
		var decls []*VarDecl
		for _, d := range j.Decls {
			decls = append(decls, fromVar(d))
		}
		return NewBlock(p, decls, fromStmts(j.Stmts))
	case "ExprStmt":
		return NewExprStmt(fromExpr(need(j, j.X, "x")))
	case "IfStmt":
		var els Stmt
		if j.Else != nil {
			els = fromStmt(j.Else)
		}
		return NewIf(p, fromExpr(need(j, j.Cond, "cond")), fromStmt(need(j, j.Then, "then")), els)
	case "WhileStmt":
		return NewWhile(p, fromExpr(need(j, j.Cond, "cond")), fromStmt(need(j, j.Body, "body")))
	case "ForStmt":
		return NewFor(p, optExpr(j, j.Init), fromExpr(need(j, j.Cond, "cond")), optExpr(j, j.Post),
			fromStmt(need(j, j.Body, "body")))
	case "BreakStmt":
		return NewBreak(p)
	case "ReturnStmt":
		if j.Result == nil {
			return NewReturn(p, nil)
		}
		return NewReturn(p, fromExpr(j.Result))
	case "PrintStmt":
		return NewPrint(p, fromExprs(j.Args))
	case "SwitchStmt":
		var cases []*CaseStmt
		for _, c := range j.Cases {
			cs, ok := fromStmt(c).(*CaseStmt)
			if !ok {
				failf(c, "switch arm must be a CaseStmt")
			}
			cases = append(cases, cs)
		}
		return NewSwitch(p, fromExpr(need(j, j.X, "x")), cases)
	case "CaseStmt":
		var value *IntLit
		if len(j.Value) > 0 {
			var v int
			if err := json.Unmarshal(j.Value, &v); err != nil {
				failf(j, "case label: %v", err)
			}
			value = NewIntLit(p, v)
		}
		return NewCase(p, value, fromStmts(j.Stmts))
	}
	// An expression in statement position.
	return NewExprStmt(fromExpr(j))
}

func fromStmts(js []*jsonNode) []Stmt {
	var list []Stmt
	for _, s := range js {
		list = append(list, fromStmt(s))
	}
	return list
}

// optExpr decodes an optional expression, substituting EmptyExpr.
func optExpr(parent, j *jsonNode) Expr {
	if j == nil {
		return NewEmptyExpr(jsonPos(parent))
	}
	return fromExpr(j)
}

func fromExprs(js []*jsonNode) []Expr {
	var list []Expr
	for _, e := range js {
		list = append(list, fromExpr(e))
	}
	return list
}

func literal(j *jsonNode, v interface{}) {
	if len(j.Value) == 0 {
		failf(j, "%s: missing value", j.Kind)
	}
	if err := json.Unmarshal(j.Value, v); err != nil {
		failf(j, "%s: %v", j.Kind, err)
	}
}

func fromExpr(j *jsonNode) Expr {
	p := jsonPos(j)
	switch j.Kind {
	case "EmptyExpr":
		return NewEmptyExpr(p)
	case "IntLit":
		var v int
		literal(j, &v)
		return NewIntLit(p, v)
	case "DoubleLit":
		var v float64
		literal(j, &v)
		return NewDoubleLit(p, v)
	case "BoolLit":
		var v bool
		literal(j, &v)
		return NewBoolLit(p, v)
	case "StringLit":
		var v string
		literal(j, &v)
		return NewStringLit(p, v)
	case "NullLit":
		return NewNullLit(p)
	case "This":
		return NewThis(p)
	case "ReadInteger":
		return NewReadInteger(p)
	case "ReadLine":
		return NewReadLine(p)
	case "Operation":
		op, ok := LookupOperator(j.Op)
		if !ok || op.IsPostfix() {
			failf(j, "unknown operator %q", j.Op)
		}
		if j.X == nil {
			if op != Sub && op != Not {
				failf(j, "%s is not a unary operator", op)
			}
			return NewUnary(p, op, fromExpr(need(j, j.Y, "y")))
		}
		return NewOperation(p, op, fromExpr(j.X), fromExpr(need(j, j.Y, "y")))
	case "AssignExpr":
		return NewAssign(p, lvalue(need(j, j.Left, "left")), fromExpr(need(j, j.Right, "right")))
	case "PostfixExpr":
		op, ok := LookupOperator(j.Op)
		if !ok || !op.IsPostfix() {
			failf(j, "unknown postfix operator %q", j.Op)
		}
		return NewPostfix(p, lvalue(need(j, j.X, "x")), op)
	case "ArrayAccess":
		return NewArrayAccess(p, fromExpr(need(j, j.X, "x")), fromExpr(need(j, j.Index, "index")))
	case "FieldAccess":
		var x Expr
		if j.X != nil {
			x = fromExpr(j.X)
		}
		e := NewFieldAccess(x, ident(j))
		if x != nil {
			e.pos = p
		}
		return e
	case "CallExpr":
		var x Expr
		if j.X != nil {
			x = fromExpr(j.X)
		}
		return NewCall(p, x, ident(j), fromExprs(j.Args))
	case "NewExpr":
		return NewNew(p, fromNamed(need(j, j.Type, "type")))
	case "NewArrayExpr":
		return NewNewArray(p, fromExpr(need(j, j.Size, "size")), fromType(need(j, j.Type, "type")))
	}
	failf(j, "unexpected expression %q", j.Kind)
	return nil
}

func lvalue(j *jsonNode) LValue {
	lv, ok := fromExpr(j).(LValue)
	if !ok {
		failf(j, "%s is not assignable", j.Kind)
	}
	return lv
}
