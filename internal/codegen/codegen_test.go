package codegen_test

import (
	"strconv"
	"testing"

	"github.com/nalgeon/be"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/codegen"
	"github.com/you-not-fish/decafc/internal/layout"
	"github.com/you-not-fish/decafc/internal/rtabi"
	"github.com/you-not-fish/decafc/internal/syntax"
	st "github.com/you-not-fish/decafc/internal/syntax/syntaxtest"
	"github.com/you-not-fish/decafc/internal/tac"
	"github.com/you-not-fish/decafc/internal/types2"
)

// generate checks, lays out and emits prog, which must be valid, and
// verifies the result.
func generate(t *testing.T, prog *syntax.Program) *tac.Program {
	t.Helper()
	info := &types2.Info{}
	be.Err(t, types2.Check(prog, nil, info), nil)
	plan, err := layout.Plan(prog, info, nil)
	be.Err(t, err, nil)
	e := tac.NewEmitter()
	be.Err(t, codegen.Generate(prog, info, plan, e), nil)
	be.Err(t, tac.Verify(e.Program()), nil)
	return e.Program()
}

// lines returns the instructions of a routine as text.
func lines(p *tac.Program, label string) []string {
	var s []string
	for _, in := range p.Func(label) {
		s = append(s, in.String())
	}
	return s
}

// body returns the instructions of a routine without its
// BeginFunc and EndFunc.
func body(p *tac.Program, label string) []string {
	s := lines(p, label)
	if len(s) < 2 {
		return nil
	}
	return s[1 : len(s)-1]
}

func TestNoEntry(t *testing.T) {
	prog := st.Prog(st.Func("f", st.Void(), nil, st.Block(nil)))
	info := &types2.Info{}
	be.Err(t, types2.Check(prog, nil, info), nil)
	plan, err := layout.Plan(prog, info, nil)
	be.Err(t, err, nil)

	e := tac.NewEmitter()
	err = codegen.Generate(prog, info, plan, e)
	diag, ok := err.(*types2.Error)
	be.True(t, ok)
	be.Equal(t, diag.Kind, types2.NoEntryRoutineFound)
	be.Equal(t, len(e.Program().Code), 0)
	be.True(t, !codegen.HasEntry(prog))
}

func TestOverrideDispatch(t *testing.T) {
	// class Animal { void speak() {} }
	// class Dog extends Animal { void speak() {} }
	// void main() { Animal a; a = new Dog; a.speak(); }
	animal := st.Class("Animal", "", nil, st.Func("speak", st.Void(), nil, st.Block(nil)))
	dog := st.Class("Dog", "Animal", nil, st.Func("speak", st.Void(), nil, st.Block(nil)))
	main := st.Main(st.Vars(st.Var("a", st.Named("Animal"))),
		st.Do(st.Assign(st.Ref("a"), st.New("Dog"))),
		st.Do(st.Call(st.Ref("a"), "speak")),
	)
	p := generate(t, st.Prog(animal, dog, main))

	be.Equal(t, p.VTable("Dog"), []string{"_Dog.speak"})
	be.Equal(t, p.VTable("Animal"), []string{"_Animal.speak"})
	be.Equal(t, p.Labels(), []string{"_Animal.speak", "_Dog.speak", "main"})
	be.Equal(t, lines(p, "main"), []string{
		"BeginFunc 24",
		"_tmp0 = 4",
		"PushParam _tmp0",
		"_tmp1 = LCall _Alloc",
		"PopParams 4",
		"_tmp2 = Dog",
		"*(_tmp1) = _tmp2",
		"a = _tmp1",
		"_tmp3 = *(a)",
		"_tmp4 = *(_tmp3)",
		"PushParam a",
		"ACall _tmp4",
		"PopParams 4",
		"EndFunc",
	})
}

func TestFieldAssignmentOrder(t *testing.T) {
	// class P {
	//   int v;
	//   P make() { return this; }
	//   void set() { make().v = 7; v = 3; }
	// }
	set := st.Func("set", st.Void(), nil, st.Block(nil,
		st.Do(st.Assign(st.Field(st.Call(nil, "make"), "v"), st.IntLit(7))),
		st.Do(st.Assign(st.Ref("v"), st.IntLit(3))),
	))
	p := generate(t, st.Prog(
		st.Class("P", "", nil,
			st.Var("v", st.Int()),
			st.Func("make", st.Named("P"), nil, st.Block(nil, st.Return(st.This()))),
			set,
		),
		st.Main(nil),
	))

	be.Equal(t, body(p, "_P.make"), []string{"Return this"})
	be.Equal(t, lines(p, "_P.set"), []string{
		"BeginFunc 20",
		"_tmp0 = *(this)",
		"_tmp1 = *(_tmp0)",
		"PushParam this",
		"_tmp2 = ACall _tmp1",
		"PopParams 4",
		"_tmp3 = 7",
		"*(_tmp2 + 4) = _tmp3",
		"_tmp4 = 3",
		"*(this + 4) = _tmp4",
		"EndFunc",
	})
}

func TestArrays(t *testing.T) {
	// void main() { int[] xs; xs = NewArray(3, int); xs[1] = 5; Print(xs.length()); }
	main := st.Main(st.Vars(st.Var("xs", st.ArrayOf(st.Int()))),
		st.Do(st.Assign(st.Ref("xs"), st.NewArray(st.IntLit(3), st.Int()))),
		st.Do(st.Assign(st.Index(st.Ref("xs"), st.IntLit(1)), st.IntLit(5))),
		st.Print(st.Call(st.Ref("xs"), "length")),
	)
	p := generate(t, st.Prog(main))

	badSize := "_tmp3 = " + strconv.Quote(rtabi.ErrArrayBadSize)
	outOfBounds := "_tmp18 = " + strconv.Quote(rtabi.ErrArrayOutOfBounds)
	be.Equal(t, lines(p, "main"), []string{
		"BeginFunc 96",
		// new array with size check
		"_tmp0 = 3",
		"_tmp1 = 1",
		"_tmp2 = _tmp0 < _tmp1",
		"IfZ _tmp2 Goto __L0",
		badSize,
		"PushParam _tmp3",
		"LCall _PrintString",
		"PopParams 4",
		"LCall _Halt",
		"__L0:",
		"_tmp4 = _tmp1 + _tmp0",
		"_tmp5 = 4",
		"_tmp6 = _tmp4 * _tmp5",
		"PushParam _tmp6",
		"_tmp7 = LCall _Alloc",
		"PopParams 4",
		"*(_tmp7) = _tmp0",
		"_tmp8 = 4",
		"_tmp9 = _tmp7 + _tmp8",
		"xs = _tmp9",
		// element store: value, subscript, bounds check, address
		"_tmp10 = 5",
		"_tmp11 = 1",
		"_tmp12 = 0",
		"_tmp13 = _tmp11 < _tmp12",
		"_tmp14 = *(xs + -4)",
		"_tmp15 = _tmp11 < _tmp14",
		"_tmp16 = _tmp15 == _tmp12",
		"_tmp17 = _tmp13 || _tmp16",
		"IfZ _tmp17 Goto __L1",
		outOfBounds,
		"PushParam _tmp18",
		"LCall _PrintString",
		"PopParams 4",
		"LCall _Halt",
		"__L1:",
		"_tmp19 = 4",
		"_tmp20 = _tmp19 * _tmp11",
		"_tmp21 = xs + _tmp20",
		"*(_tmp21) = _tmp10",
		// length
		"_tmp22 = *(xs + -4)",
		"PushParam _tmp22",
		"LCall _PrintInt",
		"PopParams 4",
		"EndFunc",
	})
}

func TestOperators(t *testing.T) {
	tests := []struct {
		name string
		expr syntax.Expr
		want []string
	}{
		{"gtr", st.Bin(syntax.Gtr, st.IntLit(1), st.IntLit(2)), []string{
			"_tmp0 = 1", "_tmp1 = 2", "_tmp2 = _tmp1 < _tmp0",
			"PushParam _tmp2", "LCall _PrintBool", "PopParams 4",
		}},
		{"leq", st.Bin(syntax.Leq, st.IntLit(1), st.IntLit(2)), []string{
			"_tmp0 = 1", "_tmp1 = 2", "_tmp2 = _tmp0 < _tmp1", "_tmp3 = _tmp0 == _tmp1", "_tmp4 = _tmp2 || _tmp3",
			"PushParam _tmp4", "LCall _PrintBool", "PopParams 4",
		}},
		{"geq", st.Bin(syntax.Geq, st.IntLit(1), st.IntLit(2)), []string{
			"_tmp0 = 1", "_tmp1 = 2", "_tmp2 = _tmp1 < _tmp0", "_tmp3 = _tmp0 == _tmp1", "_tmp4 = _tmp2 || _tmp3",
			"PushParam _tmp4", "LCall _PrintBool", "PopParams 4",
		}},
		{"neq", st.Bin(syntax.Neq, st.IntLit(1), st.IntLit(2)), []string{
			"_tmp0 = 1", "_tmp1 = 2", "_tmp2 = _tmp0 == _tmp1", "_tmp3 = 0", "_tmp4 = _tmp2 == _tmp3",
			"PushParam _tmp4", "LCall _PrintBool", "PopParams 4",
		}},
		{"string equality", st.Bin(syntax.Eql, st.StringLit("a"), st.StringLit("b")), []string{
			`_tmp0 = "a"`, `_tmp1 = "b"`,
			"PushParam _tmp1", "PushParam _tmp0", "_tmp2 = LCall _StringEqual", "PopParams 8",
			"PushParam _tmp2", "LCall _PrintBool", "PopParams 4",
		}},
		{"not", st.Not(st.BoolLit(true)), []string{
			"_tmp0 = 1", "_tmp1 = 0", "_tmp2 = _tmp0 == _tmp1",
			"PushParam _tmp2", "LCall _PrintBool", "PopParams 4",
		}},
		{"negate", st.Neg(st.IntLit(3)), []string{
			"_tmp0 = 3", "_tmp1 = 0", "_tmp2 = _tmp1 - _tmp0",
			"PushParam _tmp2", "LCall _PrintInt", "PopParams 4",
		}},
		{"arithmetic", st.Bin(syntax.Rem, st.IntLit(7), st.Bin(syntax.Mul, st.IntLit(2), st.IntLit(3))), []string{
			"_tmp0 = 7", "_tmp1 = 2", "_tmp2 = 3", "_tmp3 = _tmp1 * _tmp2", "_tmp4 = _tmp0 % _tmp3",
			"PushParam _tmp4", "LCall _PrintInt", "PopParams 4",
		}},
		{"logical", st.Bin(syntax.AndAnd, st.BoolLit(true), st.BoolLit(false)), []string{
			"_tmp0 = 1", "_tmp1 = 0", "_tmp2 = _tmp0 && _tmp1",
			"PushParam _tmp2", "LCall _PrintBool", "PopParams 4",
		}},
		{"read", st.ReadLine(), []string{
			"_tmp0 = LCall _ReadLine",
			"PushParam _tmp0", "LCall _PrintString", "PopParams 4",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := generate(t, st.Prog(st.Main(nil, st.Print(tt.expr))))
			be.Equal(t, body(p, "main"), tt.want)
		})
	}
}

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name string
		stmt syntax.Stmt
		want []string
	}{
		{"while with break", st.While(st.BoolLit(true), st.Break()), []string{
			"__L0:", "_tmp0 = 1", "IfZ _tmp0 Goto __L1", "Goto __L1", "Goto __L0", "__L1:",
		}},
		{"for with break", st.For(nil, st.BoolLit(true), nil, st.Break()), []string{
			"__L0:", "_tmp0 = 1", "IfZ _tmp0 Goto __L1", "Goto __L1", "Goto __L0", "__L1:",
		}},
		{"if", st.If(st.BoolLit(false), st.Print(st.IntLit(1)), nil), []string{
			"_tmp0 = 0", "IfZ _tmp0 Goto __L0",
			"_tmp1 = 1", "PushParam _tmp1", "LCall _PrintInt", "PopParams 4",
			"__L0:",
		}},
		{"if else", st.If(st.BoolLit(false), st.Print(st.IntLit(1)), st.Print(st.IntLit(2))), []string{
			"_tmp0 = 0", "IfZ _tmp0 Goto __L0",
			"_tmp1 = 1", "PushParam _tmp1", "LCall _PrintInt", "PopParams 4",
			"Goto __L1",
			"__L0:",
			"_tmp2 = 2", "PushParam _tmp2", "LCall _PrintInt", "PopParams 4",
			"__L1:",
		}},
		{"switch", st.Switch(st.IntLit(2),
			st.Case(1, st.Print(st.IntLit(10))),
			st.Default(st.Print(st.IntLit(30))),
			st.Case(2, st.Print(st.IntLit(20))),
		), []string{
			"_tmp0 = 2",
			"_tmp1 = 1", "_tmp2 = _tmp0 == _tmp1", "IfZ _tmp2 Goto __L1",
			"_tmp3 = 10", "PushParam _tmp3", "LCall _PrintInt", "PopParams 4",
			"Goto __L0",
			"__L1:",
			"_tmp4 = 2", "_tmp5 = _tmp0 == _tmp4", "IfZ _tmp5 Goto __L2",
			"_tmp6 = 20", "PushParam _tmp6", "LCall _PrintInt", "PopParams 4",
			"Goto __L0",
			"__L2:",
			"_tmp7 = 30", "PushParam _tmp7", "LCall _PrintInt", "PopParams 4",
			"__L0:",
		}},
		{"break leaves innermost loop", st.While(st.BoolLit(true), st.Block(nil,
			st.For(nil, st.BoolLit(true), nil, st.Break()),
			st.Break(),
		)), []string{
			"__L0:", "_tmp0 = 1", "IfZ _tmp0 Goto __L1",
			"__L2:", "_tmp1 = 1", "IfZ _tmp1 Goto __L3", "Goto __L3", "Goto __L2", "__L3:",
			"Goto __L1",
			"Goto __L0", "__L1:",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := generate(t, st.Prog(st.Main(nil, tt.stmt)))
			be.Equal(t, body(p, "main"), tt.want)
		})
	}
}

func TestCalls(t *testing.T) {
	// int add(int a, int b) { return a + b; }
	// class C { int m(int x) { return x; } }
	// void main() { Print(add(1, 2)); Print(new C.m(5)); }
	add := st.Func("add", st.Int(), st.Vars(st.Var("a", st.Int()), st.Var("b", st.Int())),
		st.Block(nil, st.Return(st.Bin(syntax.Add, st.Ref("a"), st.Ref("b")))))
	c := st.Class("C", "", nil,
		st.Func("m", st.Int(), st.Vars(st.Var("x", st.Int())), st.Block(nil, st.Return(st.Ref("x")))))
	main := st.Main(nil,
		st.Print(st.Call(nil, "add", st.IntLit(1), st.IntLit(2))),
		st.Print(st.Call(st.New("C"), "m", st.IntLit(5))),
	)
	p := generate(t, st.Prog(add, c, main))

	be.Equal(t, lines(p, "_add"), []string{"BeginFunc 4", "_tmp0 = a + b", "Return _tmp0", "EndFunc"})
	be.Equal(t, lines(p, "_C.m"), []string{"BeginFunc 0", "Return x", "EndFunc"})
	be.Equal(t, body(p, "main"), []string{
		"_tmp1 = 1",
		"_tmp2 = 2",
		"PushParam _tmp2",
		"PushParam _tmp1",
		"_tmp3 = LCall _add",
		"PopParams 8",
		"PushParam _tmp3",
		"LCall _PrintInt",
		"PopParams 4",
		// arguments before the receiver
		"_tmp4 = 5",
		"_tmp5 = 4",
		"PushParam _tmp5",
		"_tmp6 = LCall _Alloc",
		"PopParams 4",
		"_tmp7 = C",
		"*(_tmp6) = _tmp7",
		"_tmp8 = *(_tmp6)",
		"_tmp9 = *(_tmp8)",
		"PushParam _tmp4",
		"PushParam _tmp6",
		"_tmp10 = ACall _tmp9",
		"PopParams 8",
		"PushParam _tmp10",
		"LCall _PrintInt",
		"PopParams 4",
	})
}

func TestInterfaceDispatch(t *testing.T) {
	// interface Shape { int area(); }
	// class Sq implements Shape { int area() { return 4; } }
	// void main() { Shape s; s = new Sq; Print(s.area()); }
	shape := st.Interface("Shape", st.Proto("area", st.Int()))
	sq := st.Class("Sq", "", []string{"Shape"},
		st.Func("area", st.Int(), nil, st.Block(nil, st.Return(st.IntLit(4)))))
	main := st.Main(st.Vars(st.Var("s", st.Named("Shape"))),
		st.Do(st.Assign(st.Ref("s"), st.New("Sq"))),
		st.Print(st.Call(st.Ref("s"), "area")),
	)
	p := generate(t, st.Prog(shape, sq, main))

	be.Equal(t, p.VTable("Sq"), []string{"_Sq.area", "_Sq.area"})
	got := body(p, "main")
	be.Equal(t, got[len(got)-8:], []string{
		"_tmp4 = *(s)",
		"_tmp5 = *(_tmp4 + 4)",
		"PushParam s",
		"_tmp6 = ACall _tmp5",
		"PopParams 4",
		"PushParam _tmp6",
		"LCall _PrintInt",
		"PopParams 4",
	})
}

func TestPostfix(t *testing.T) {
	// void main() { int i; Print(i++); }
	main := st.Main(st.Vars(st.Var("i", st.Int())), st.Print(st.Inc(st.Ref("i"))))
	p := generate(t, st.Prog(main))
	be.Equal(t, body(p, "main"), []string{
		"_tmp0 = 1",
		"_tmp1 = i + _tmp0",
		"i = _tmp1",
		"_tmp2 = 1",
		"_tmp3 = _tmp1 - _tmp2",
		"PushParam _tmp3",
		"LCall _PrintInt",
		"PopParams 4",
	})
}

func TestGlobalsAndLabels(t *testing.T) {
	// int g; class A { void foo() {} } class B { void foo() {} } void main() { g = 1; }
	a := st.Class("A", "", nil, st.Func("foo", st.Void(), nil, st.Block(nil)))
	b := st.Class("B", "", nil, st.Func("foo", st.Void(), nil, st.Block(nil)))
	main := st.Main(nil, st.Do(st.Assign(st.Ref("g"), st.IntLit(1))), st.Return(nil))
	p := generate(t, st.Prog(st.Var("g", st.Int()), a, b, main))

	be.Equal(t, p.Labels(), []string{"_A.foo", "_B.foo", "main"})
	be.Equal(t, body(p, "main"), []string{"_tmp0 = 1", "g = _tmp0", "Return"})
	assign := p.Func("main")[2]
	be.Equal(t, assign.Dst.Segment, codegen.GPRelative)
	be.Equal(t, assign.Dst.Offset, 0)
}

func TestGenerateUnplannedIsInternal(t *testing.T) {
	prog := st.Prog(st.Main(nil))
	info := &types2.Info{}
	be.Err(t, types2.Check(prog, nil, info), nil)
	err := codegen.Generate(prog, info, &layout.Program{}, tac.NewEmitter())
	be.Err(t, err)
	be.True(t, base.IsInternal(err))
}
