package types2

import (
	"fmt"
	"testing"

	"github.com/you-not-fish/decafc/internal/syntax"
	st "github.com/you-not-fish/decafc/internal/syntax/syntaxtest"
	"github.com/you-not-fish/decafc/internal/types"
)

func TestResolveShadowing(t *testing.T) {
	// int x; void f(int x) { bool x; x = true; } void main() { x = 1; }
	inner := st.Ref("x")
	outer := st.Ref("x")
	body := st.Block(st.Vars(st.Var("x", st.Bool())), st.Do(st.Assign(inner, st.BoolLit(true))))
	param := st.Var("x", st.Int())
	f := st.Func("f", st.Void(), st.Vars(param), body)
	global := st.Var("x", st.Int())
	prog := withMain([]syntax.Decl{global, f}, nil, st.Do(st.Assign(outer, st.IntLit(1))))

	c := NewChecker(prog, nil, nil)
	c.checkProgram()
	if c.NumErrors() != 0 {
		t.Fatalf("got %d errors", c.NumErrors())
	}
	info := c.Info()

	if v := info.Use(inner.Field).(*types.Var); v.Kind() != types.LocalVar || !types.IsBool(v.Type()) {
		t.Errorf("inner x resolved to %s %s, want local bool", v.Kind(), v.Type())
	}
	if v := info.Use(outer.Field).(*types.Var); v != info.VarOf(global) {
		t.Errorf("outer x resolved to %s, want the global", v.Kind())
	}

	// From the function scope the parameter is visible, the local is not.
	if obj := c.Resolve(inner.Field, f, false); obj != info.VarOf(param) {
		t.Errorf("Resolve from f = %v, want the parameter", obj)
	}
	if obj := c.Resolve(syntax.NewIdent(syntax.Pos{}, "main"), body, true); obj != nil {
		t.Errorf("local-only Resolve of main from the body = %v, want nil", obj)
	}
	if obj := c.Resolve(syntax.NewIdent(syntax.Pos{}, "main"), body, false); obj == nil {
		t.Error("Resolve of main from the body failed")
	}
}

func TestScopeMemoized(t *testing.T) {
	decls := zoo()
	expr := st.Bin(syntax.Add, st.IntLit(1), st.IntLit(2))
	prog := withMain(decls, nil, st.Print(expr))

	c := NewChecker(prog, nil, nil)
	c.checkProgram()

	for _, n := range []syntax.Node{prog, decls[1], decls[2]} {
		if s1, s2 := c.Scope(n), c.Scope(n); s1 != s2 || s1 != c.Info().Scopes[n] {
			t.Errorf("Scope(%T) not memoized", n)
		}
	}
	first := c.expr(expr)
	if again := c.expr(expr); again != first {
		t.Errorf("expr type changed from %s to %s", first, again)
	}
}

func TestClassScopeMerge(t *testing.T) {
	decls := zoo()
	prog := withMain(decls, nil)
	info := expectNoErrors(t, prog)

	dog := info.ClassOf(decls[2].(*syntax.ClassDecl))
	animal := info.ClassOf(decls[1].(*syntax.ClassDecl))
	s := dog.Scope()

	// Inherited names first, then interface names, in declaration order.
	if got := fmt.Sprint(s.Names()); got != "[legs speak getLegs name]" {
		t.Errorf("Dog names = %s", got)
	}
	if f := s.Lookup("speak").(*types.Func); f.Class() != dog {
		t.Errorf("speak in Dog comes from %s", f.Class().Name())
	}
	if f := s.Lookup("getLegs").(*types.Func); f.Class() != animal {
		t.Errorf("getLegs in Dog comes from %s", f.Class().Name())
	}
	if f := s.Lookup("name").(*types.Func); f.Class() != dog || f.Parent() != s {
		t.Error("name in Dog is not Dog's own method")
	}
	if v := s.Lookup("legs").(*types.Var); v.Kind() != types.FieldVar || v.Parent() != animal.Scope() {
		t.Error("legs in Dog is not Animal's field")
	}
	if dog.Super() != animal {
		t.Errorf("Dog's superclass is %v", dog.Super())
	}
	if len(dog.Interfaces()) != 1 || dog.Interfaces()[0].Name() != "Pet" {
		t.Errorf("Dog implements %v", dog.Interfaces())
	}

	// The program scope is the parent of every class scope.
	if s.Parent() != info.Scopes[prog] {
		t.Error("class scope is not nested in the program scope")
	}
}

func TestCyclicClassesStillResolve(t *testing.T) {
	a := st.Class("A", "B", nil, st.Var("x", st.Int()))
	b := st.Class("B", "A", nil, st.Var("y", st.Int()))
	prog := withMain([]syntax.Decl{a, b}, nil)
	info, errs := check(prog)
	if len(errs) != 1 || errs[0].Kind != CyclicInheritance {
		t.Fatalf("got errors:\n%s", errorText(errs))
	}
	// B was completed first and lost its superclass; A kept B.
	if info.ClassOf(b).Super() != nil {
		t.Error("B still has a superclass")
	}
	if info.ClassOf(a).Super() != info.ClassOf(b) {
		t.Error("A lost its superclass")
	}
	if got := fmt.Sprint(info.ClassOf(a).Scope().Names()); got != "[y x]" {
		t.Errorf("A names = %s", got)
	}
}

func TestRecordedTypesAndUses(t *testing.T) {
	decls := zoo()
	newDog := st.New("Dog")
	legs := st.Call(st.Ref("d"), "getLegs")
	length := st.Call(st.Ref("xs"), "length")
	elem := st.Index(st.Ref("xs"), st.IntLit(0))
	cmp := st.Bin(syntax.Leq, st.IntLit(1), st.IntLit(2))
	postfix := st.Dec(st.Ref("i"))
	prog := withMain(decls,
		st.Vars(
			st.Var("d", st.Named("Dog")),
			st.Var("xs", st.ArrayOf(st.ArrayOf(st.Double()))),
			st.Var("i", st.Int()),
		),
		st.Do(st.Assign(st.Ref("d"), newDog)),
		st.Print(legs, length, cmp),
		st.Do(elem),
		st.Do(postfix),
	)
	info := expectNoErrors(t, prog)

	tests := []struct {
		expr syntax.Expr
		want string
	}{
		{newDog, "Dog"},
		{legs, "int"},
		{length, "int"},
		{elem, "double[]"},
		{cmp, "bool"},
		{postfix, "int"},
	}
	for _, tt := range tests {
		if got := info.TypeOf(tt.expr).String(); got != tt.want {
			t.Errorf("type of %T = %s, want %s", tt.expr, got, tt.want)
		}
	}

	if !info.IsLength(length) || info.IsLength(legs) {
		t.Error("IsLength misclassifies calls")
	}
	if info.Use(length.Field) != nil {
		t.Error("length() should have no object")
	}
	f, ok := info.Use(legs.Field).(*types.Func)
	if !ok || f.Class() != info.ClassOf(decls[1].(*syntax.ClassDecl)) {
		t.Errorf("getLegs resolved to %v", info.Use(legs.Field))
	}
	if info.Use(newDog.Class.Name) != info.ClassOf(decls[2].(*syntax.ClassDecl)) {
		t.Error("new Dog does not refer to class Dog")
	}
}

func TestThisAndImplicitMembers(t *testing.T) {
	// class Counter { int n; void bump() { n = n + 1; this.n++; reset(); } void reset() { n = 0; } }
	implicit := st.Ref("n")
	explicit := st.Field(st.This(), "n")
	call := st.Call(nil, "reset")
	bump := st.Func("bump", st.Void(), nil, st.Block(nil,
		st.Do(st.Assign(implicit, st.Bin(syntax.Add, st.Ref("n"), st.IntLit(1)))),
		st.Do(st.Inc(explicit)),
		st.Do(call),
	))
	counter := st.Class("Counter", "", nil,
		st.Var("n", st.Int()),
		bump,
		st.Func("reset", st.Void(), nil, st.Block(nil, st.Do(st.Assign(st.Ref("n"), st.IntLit(0))))),
	)
	info := expectNoErrors(t, withMain([]syntax.Decl{counter}, nil))

	cls := info.ClassOf(counter)
	if v := info.Use(implicit.Field).(*types.Var); v != cls.Fields()[0] {
		t.Error("n does not resolve to the field")
	}
	if v := info.Use(explicit.Field).(*types.Var); v != cls.Fields()[0] {
		t.Error("this.n does not resolve to the field")
	}
	if got := info.TypeOf(explicit.X); got != cls.Named() {
		t.Errorf("this has type %s", got)
	}
	if f := info.Use(call.Field).(*types.Func); f != cls.Methods()[1] {
		t.Error("reset() does not resolve to the method")
	}
}

func TestMainSignature(t *testing.T) {
	main := st.Main(nil)
	info := expectNoErrors(t, st.Prog(main))
	f := info.FuncOf(main)
	if f.IsMethod() || f.Signature().String() != "() void" {
		t.Errorf("main = %s method=%v", f.Signature(), f.IsMethod())
	}
}
