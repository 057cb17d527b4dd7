package syntax

import "fmt"

// Operator identifies the operator of an Operation or PostfixExpr.
type Operator uint

const (
	_ Operator = iota

	// Arithmetic
	Add // +
	Sub // - (binary, or unary negation when X is nil)
	Mul // *
	Div // /
	Rem // %

	// Relational
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Equality
	Eql // ==
	Neq // !=

	// Logical
	AndAnd // &&
	OrOr   // ||
	Not    // ! (unary)

	// Postfix
	Inc // ++
	Dec // --

	operatorCount
)

var operatorStrings = [...]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Rem:    "%",
	Lss:    "<",
	Leq:    "<=",
	Gtr:    ">",
	Geq:    ">=",
	Eql:    "==",
	Neq:    "!=",
	AndAnd: "&&",
	OrOr:   "||",
	Not:    "!",
	Inc:    "++",
	Dec:    "--",
}

// String returns the source spelling of the operator.
func (op Operator) String() string {
	if op > 0 && op < operatorCount {
		return operatorStrings[op]
	}
	return fmt.Sprintf("Operator(%d)", uint(op))
}

// LookupOperator returns the operator spelled s.
func LookupOperator(s string) (Operator, bool) {
	for op := Add; op < operatorCount; op++ {
		if operatorStrings[op] == s {
			return op, true
		}
	}
	return 0, false
}

// IsArithmetic reports whether op is one of + - * / %.
func (op Operator) IsArithmetic() bool { return op >= Add && op <= Rem }

// IsRelational reports whether op is one of < <= > >=.
func (op Operator) IsRelational() bool { return op >= Lss && op <= Geq }

// IsEquality reports whether op is == or !=.
func (op Operator) IsEquality() bool { return op == Eql || op == Neq }

// IsLogical reports whether op is &&, || or !.
func (op Operator) IsLogical() bool { return op >= AndAnd && op <= Not }

// IsPostfix reports whether op is ++ or --.
func (op Operator) IsPostfix() bool { return op == Inc || op == Dec }
