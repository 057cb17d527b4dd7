package types

import (
	"strings"
	"testing"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/syntax"
)

func TestTypeString(t *testing.T) {
	pet, _, dog, _, _ := hierarchy()
	tests := []struct {
		typ  Type
		want string
	}{
		{Typ[Invalid], "error"},
		{Typ[Int], "int"},
		{Typ[Null], "null"},
		{dog.Named(), "Dog"},
		{pet.Named(), "Pet"},
		{NewArray(NewArray(Typ[String])), "string[][]"},
		{testFunc("f", Typ[Void], Typ[Int], dog.Named()).Signature(), "(int, Dog) void"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNamedObj(t *testing.T) {
	pet, _, dog, _, _ := hierarchy()
	if dog.Named().Class() != dog || dog.Named().Interface() != nil {
		t.Error("class named type does not resolve to its class")
	}
	if pet.Named().Interface() != pet || pet.Named().Class() != nil {
		t.Error("interface named type does not resolve to its interface")
	}
	if dog.Type() != dog.Named() {
		t.Error("class object type is not its named type")
	}
}

func catch(f func()) (err error) {
	defer base.Recover(&err, "types")
	f()
	return nil
}

func TestVarOffset(t *testing.T) {
	v := NewVar(syntax.NoPos, "x", LocalVar, Typ[Int])
	if v.HasOffset() {
		t.Fatal("new variable already placed")
	}
	if err := catch(func() { v.Offset() }); err == nil {
		t.Error("Offset() before layout should be fatal")
	}
	v.SetOffset(-8)
	if v.Offset() != -8 {
		t.Errorf("Offset() = %d, want -8", v.Offset())
	}
	err := catch(func() { v.SetOffset(-12) })
	if err == nil || !strings.Contains(err.Error(), "placed twice") {
		t.Errorf("second SetOffset: err = %v", err)
	}
}

func TestFuncLabelAndSlot(t *testing.T) {
	c := NewClass(syntax.NoPos, "Cow")
	f := NewFunc(syntax.NoPos, "moo", c)
	if !f.IsMethod() || f.Class() != c || f.Slot() != -1 {
		t.Fatalf("new method: IsMethod=%v Class=%v Slot=%d", f.IsMethod(), f.Class(), f.Slot())
	}
	f.SetLabel("_Cow.moo")
	f.SetSlot(2)
	if f.Label() != "_Cow.moo" || f.Slot() != 2 {
		t.Errorf("got label %q slot %d", f.Label(), f.Slot())
	}
	if err := catch(func() { f.SetLabel("_other") }); err == nil {
		t.Error("relabeling should be fatal")
	}
	if err := catch(func() { f.SetSlot(3) }); err == nil {
		t.Error("reassigning a slot should be fatal")
	}

	g := NewFunc(syntax.NoPos, "main", nil)
	if g.IsMethod() || g.Class() != nil || g.Signature() != nil {
		t.Error("top-level function misreported as a method")
	}
}

func TestVarKindString(t *testing.T) {
	if FieldVar.String() != "field" || GlobalVar.String() != "global" {
		t.Errorf("unexpected VarKind strings %s %s", FieldVar, GlobalVar)
	}
}
