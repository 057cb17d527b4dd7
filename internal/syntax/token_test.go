package syntax

import "testing"

func TestOperatorString(t *testing.T) {
	for op := Add; op < operatorCount; op++ {
		s := op.String()
		back, ok := LookupOperator(s)
		if !ok || back != op {
			t.Errorf("LookupOperator(%q) = %v, %v; want %v", s, back, ok, op)
		}
	}
	if got := Operator(99).String(); got != "Operator(99)" {
		t.Errorf("unknown operator prints %q", got)
	}
	if _, ok := LookupOperator("<<"); ok {
		t.Error("LookupOperator(<<) should fail")
	}
}

func TestOperatorCategories(t *testing.T) {
	tests := []struct {
		op                               Operator
		arith, rel, eq, logical, postfix bool
	}{
		{Add, true, false, false, false, false},
		{Rem, true, false, false, false, false},
		{Lss, false, true, false, false, false},
		{Geq, false, true, false, false, false},
		{Eql, false, false, true, false, false},
		{Neq, false, false, true, false, false},
		{AndAnd, false, false, false, true, false},
		{Not, false, false, false, true, false},
		{Inc, false, false, false, false, true},
	}
	for _, tt := range tests {
		if tt.op.IsArithmetic() != tt.arith ||
			tt.op.IsRelational() != tt.rel ||
			tt.op.IsEquality() != tt.eq ||
			tt.op.IsLogical() != tt.logical ||
			tt.op.IsPostfix() != tt.postfix {
			t.Errorf("wrong category for %s", tt.op)
		}
	}
}
