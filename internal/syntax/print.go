package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// labeled prints "label:" followed by n one level deeper.
func (p *printer) labeled(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program\n")
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s %s %s\n", n.pos, n.Name.Name, TypeString(n.Type))

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.pos, n.Name.Name)
		p.indent++
		p.printf("Result: %s\n", TypeString(n.Result))
		for _, f := range n.Params {
			p.printf("Param: %s %s\n", f.Name.Name, TypeString(f.Type))
		}
		if n.Body != nil {
			p.labeled("Body", n.Body)
		}
		p.indent--

	case *ClassDecl:
		p.printf("ClassDecl %s %s\n", n.pos, n.Name.Name)
		p.indent++
		if n.Extends != nil {
			p.printf("Extends: %s\n", n.Extends.Name.Name)
		}
		for _, t := range n.Implements {
			p.printf("Implements: %s\n", t.Name.Name)
		}
		for _, m := range n.Members {
			p.print(m)
		}
		p.indent--

	case *InterfaceDecl:
		p.printf("InterfaceDecl %s %s\n", n.pos, n.Name.Name)
		p.indent++
		for _, m := range n.Methods {
			p.print(m)
		}
		p.indent--

	case *StmtBlock:
		p.printf("StmtBlock %s\n", n.pos)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ExprStmt:
		p.print(n.X)

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.labeled("Cond", n.Cond)
		p.labeled("Then", n.Then)
		if n.Else != nil {
			p.labeled("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.labeled("Cond", n.Cond)
		p.labeled("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.labeled("Init", n.Init)
		p.labeled("Cond", n.Cond)
		p.labeled("Post", n.Post)
		p.labeled("Body", n.Body)
		p.indent--

	case *BreakStmt:
		p.printf("BreakStmt %s\n", n.pos)

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if !n.IsBare() {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *SwitchStmt:
		p.printf("SwitchStmt %s\n", n.pos)
		p.indent++
		p.labeled("X", n.X)
		for _, c := range n.Cases {
			p.print(c)
		}
		p.indent--

	case *CaseStmt:
		if n.IsDefault() {
			p.printf("Default %s\n", n.pos)
		} else {
			p.printf("Case %s %d\n", n.pos, n.Value.Value)
		}
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *EmptyExpr:
		p.printf("Empty\n")

	case *IntLit:
		p.printf("IntLit %s %d\n", n.pos, n.Value)

	case *DoubleLit:
		p.printf("DoubleLit %s %g\n", n.pos, n.Value)

	case *BoolLit:
		p.printf("BoolLit %s %t\n", n.pos, n.Value)

	case *StringLit:
		p.printf("StringLit %s %q\n", n.pos, n.Value)

	case *NullLit:
		p.printf("NullLit %s\n", n.pos)

	case *This:
		p.printf("This %s\n", n.pos)

	case *ReadIntegerExpr:
		p.printf("ReadInteger %s\n", n.pos)

	case *ReadLineExpr:
		p.printf("ReadLine %s\n", n.pos)

	case *Operation:
		if n.IsUnary() {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.Y)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.labeled("X", n.X)
			p.labeled("Y", n.Y)
			p.indent--
		}

	case *AssignExpr:
		p.printf("Assign %s\n", n.pos)
		p.indent++
		p.labeled("Left", n.Left)
		p.labeled("Right", n.Right)
		p.indent--

	case *PostfixExpr:
		p.printf("Postfix %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ArrayAccess:
		p.printf("ArrayAccess %s\n", n.pos)
		p.indent++
		p.labeled("X", n.X)
		p.labeled("Index", n.Index)
		p.indent--

	case *FieldAccess:
		if n.X == nil {
			p.printf("FieldAccess %s %s\n", n.pos, n.Field.Name)
			return
		}
		p.printf("FieldAccess %s .%s\n", n.pos, n.Field.Name)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("Call %s %s\n", n.pos, n.Field.Name)
		p.indent++
		if n.X != nil {
			p.labeled("Receiver", n.X)
		}
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *NewExpr:
		p.printf("New %s %s\n", n.pos, n.Class.Name.Name)

	case *NewArrayExpr:
		p.printf("NewArray %s %s\n", n.pos, TypeString(n.Elem))
		p.indent++
		p.print(n.Size)
		p.indent--

	case *Identifier:
		p.printf("Identifier %s %s\n", n.pos, n.Name)

	case TypeExpr:
		p.printf("Type %s %s\n", n.Pos(), TypeString(n))

	default:
		p.printf("<%T>\n", node)
	}
}

// TypeString returns the source spelling of a type expression.
func TypeString(t TypeExpr) string {
	switch t := t.(type) {
	case nil:
		return "<nil>"
	case *BasicType:
		return t.Kind.String()
	case *NamedType:
		return t.Name.Name
	case *ArrayType:
		return TypeString(t.Elem) + "[]"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}
