package syntax_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/you-not-fish/decafc/internal/syntax"
	st "github.com/you-not-fish/decafc/internal/syntax/syntaxtest"
)

func sampleProgram() *syntax.Program {
	return st.Prog(
		st.Interface("Shape", st.Proto("area", st.Double())),
		st.Class("Square", "", []string{"Shape"},
			st.Var("side", st.Double()),
			st.Func("area", st.Double(), nil, st.Block(nil,
				st.Return(st.Bin(syntax.Mul, st.Ref("side"), st.Field(st.This(), "side"))),
			)),
		),
		st.Main(st.Vars(st.Var("a", st.ArrayOf(st.Int())), st.Var("i", st.Int())),
			st.Do(st.Assign(st.Ref("a"), st.NewArray(st.IntLit(3), st.Int()))),
			st.For(st.Assign(st.Ref("i"), st.IntLit(0)),
				st.Bin(syntax.Lss, st.Ref("i"), st.Call(st.Ref("a"), "length")),
				st.Inc(st.Ref("i")),
				st.Block(nil, st.Do(st.Assign(st.Index(st.Ref("a"), st.Ref("i")), st.Neg(st.Ref("i")))))),
			st.Switch(st.ReadInteger(),
				st.Case(1, st.Print(st.StringLit("one\n"))),
				st.Default(st.Print(st.BoolLit(false), st.Null()))),
			st.If(st.Not(st.BoolLit(true)), st.Break(), st.Return(nil)),
		),
	)
}

func dump(n syntax.Node) string {
	var buf bytes.Buffer
	syntax.Fprint(&buf, n)
	return buf.String()
}

func TestJSONRoundTrip(t *testing.T) {
	prog := sampleProgram()

	var buf bytes.Buffer
	if err := syntax.FprintJSON(&buf, prog); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}
	back, err := syntax.ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got, want := dump(back), dump(prog); got != want {
		t.Errorf("round trip changed the tree:\n--- got\n%s\n--- want\n%s", got, want)
	}
}

func TestReadJSONParents(t *testing.T) {
	var buf bytes.Buffer
	if err := syntax.FprintJSON(&buf, sampleProgram()); err != nil {
		t.Fatal(err)
	}
	prog, err := syntax.ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	syntax.Inspect(prog, func(n syntax.Node) bool {
		if n != prog && n.Parent() == nil {
			t.Errorf("%T at %s has no parent", n, n.Pos())
		}
		return true
	})
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"syntax", `{`, "decoding AST"},
		{"root", `{"kind":"VarDecl"}`, "want Program"},
		{"decl", `{"kind":"Program","decls":[{"kind":"Banana","pos":"1:1"}]}`, `unexpected declaration "Banana"`},
		{"missing type", `{"kind":"Program","decls":[{"kind":"VarDecl","name":"x","pos":"1:1"}]}`, "missing type"},
		{"basic", `{"kind":"Program","decls":[{"kind":"VarDecl","name":"x","type":{"kind":"BasicType","name":"float"}}]}`, `unknown basic type "float"`},
		{"not assignable", `{"kind":"Program","decls":[{"kind":"FuncDecl","name":"main","type":{"kind":"BasicType","name":"void"},
			"body":{"kind":"StmtBlock","stmts":[{"kind":"AssignExpr","left":{"kind":"IntLit","value":1},"right":{"kind":"IntLit","value":2}}]}}]}`,
			"IntLit is not assignable"},
		{"interface body", `{"kind":"Program","decls":[{"kind":"InterfaceDecl","name":"I","members":[
			{"kind":"FuncDecl","name":"m","type":{"kind":"BasicType","name":"void"},"body":{"kind":"StmtBlock"}}]}]}`,
			"interface method m has a body"},
		{"bad pos", `{"kind":"Program","decls":[{"kind":"VarDecl","name":"x","pos":"line 3","type":{"kind":"BasicType","name":"int"}}]}`,
			"invalid position"},
		{"unary", `{"kind":"Program","decls":[{"kind":"FuncDecl","name":"main","type":{"kind":"BasicType","name":"void"},
			"body":{"kind":"StmtBlock","stmts":[{"kind":"Operation","op":"*","y":{"kind":"IntLit","value":1}}]}}]}`,
			"* is not a unary operator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := syntax.ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestReadJSONDefaults(t *testing.T) {
	input := `{"kind":"Program","decls":[{"kind":"FuncDecl","name":"main","pos":"2:1",
		"type":{"kind":"BasicType","name":"void"},
		"body":{"kind":"StmtBlock","stmts":[
			{"kind":"ForStmt","pos":"3:5","cond":{"kind":"BoolLit","value":true},"body":{"kind":"BreakStmt"}},
			{"kind":"CallExpr","name":"f","pos":"4:5"}
		]}}]}`
	prog, err := syntax.ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	body := prog.Decls[0].(*syntax.FuncDecl).Body
	loop := body.Stmts[0].(*syntax.ForStmt)
	if _, ok := loop.Init.(*syntax.EmptyExpr); !ok {
		t.Errorf("missing init decoded as %T, want *EmptyExpr", loop.Init)
	}
	if _, ok := loop.Post.(*syntax.EmptyExpr); !ok {
		t.Errorf("missing post decoded as %T, want *EmptyExpr", loop.Post)
	}
	call := body.Stmts[1].(*syntax.ExprStmt).X.(*syntax.CallExpr)
	if call.Field.Name != "f" || call.Pos().Line() != 4 {
		t.Errorf("call decoded as %s at %s", call.Field.Name, call.Pos())
	}
}
