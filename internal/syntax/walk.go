package syntax

import "github.com/you-not-fish/decafc/internal/base"

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, children in source order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *VarDecl:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *FuncDecl:
		Walk(n.Result, v)
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *ClassDecl:
		Walk(n.Name, v)
		if n.Extends != nil {
			Walk(n.Extends, v)
		}
		for _, t := range n.Implements {
			Walk(t, v)
		}
		for _, m := range n.Members {
			Walk(m, v)
		}

	case *InterfaceDecl:
		Walk(n.Name, v)
		for _, m := range n.Methods {
			Walk(m, v)
		}

	case *NamedType:
		Walk(n.Name, v)

	case *ArrayType:
		Walk(n.Elem, v)

	case *StmtBlock:
		for _, d := range n.Decls {
			Walk(d, v)
		}
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Init, v)
		Walk(n.Cond, v)
		Walk(n.Post, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *PrintStmt:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *SwitchStmt:
		Walk(n.X, v)
		for _, c := range n.Cases {
			Walk(c, v)
		}

	case *CaseStmt:
		if n.Value != nil {
			Walk(n.Value, v)
		}
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *Operation:
		if n.X != nil {
			Walk(n.X, v)
		}
		Walk(n.Y, v)

	case *AssignExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *ArrayAccess:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *FieldAccess:
		if n.X != nil {
			Walk(n.X, v)
		}
		Walk(n.Field, v)

	case *CallExpr:
		if n.X != nil {
			Walk(n.X, v)
		}
		Walk(n.Field, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *NewExpr:
		Walk(n.Class, v)

	case *NewArrayExpr:
		Walk(n.Size, v)
		Walk(n.Elem, v)

	case *PostfixExpr:
		Walk(n.X, v)

	case *Identifier, *BasicType, *EmptyExpr, *IntLit, *DoubleLit, *BoolLit,
		*StringLit, *NullLit, *This, *ReadIntegerExpr, *ReadLineExpr, *BreakStmt:
		// leaves

	default:
		base.Fatalf("%s: Walk: unexpected node %T", node.Pos(), node)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// EnclosingClass returns the nearest class declaration containing n,
// or nil if n is not inside a class.
func EnclosingClass(n Node) *ClassDecl {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if c, ok := p.(*ClassDecl); ok {
			return c
		}
	}
	return nil
}

// EnclosingFunc returns the nearest function declaration containing n.
func EnclosingFunc(n Node) *FuncDecl {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if f, ok := p.(*FuncDecl); ok {
			return f
		}
	}
	return nil
}

// EnclosingLoop returns the innermost while or for statement containing n.
func EnclosingLoop(n Node) LoopStmt {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if l, ok := p.(LoopStmt); ok {
			return l
		}
	}
	return nil
}
