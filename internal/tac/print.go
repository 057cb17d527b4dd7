package tac

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Fprint writes p to w in Decaf TAC text.
//
// Format:
//
//	_f:
//		BeginFunc 12 ;
//		_tmp0 = 5 ;
//		x = _tmp0 ;
//		IfZ _tmp1 Goto __L0 ;
//	__L0:
//		EndFunc ;
//	VTable Dog =
//		_Dog.speak,
//	;
func Fprint(w io.Writer, p *Program) error {
	pr := &printer{w: w}
	for _, in := range p.Code {
		pr.instr(in)
	}
	return pr.err
}

// Sprint returns p in TAC text.
func Sprint(p *Program) string {
	var sb strings.Builder
	Fprint(&sb, p)
	return sb.String()
}

// Print writes p to stdout.
func Print(p *Program) {
	Fprint(os.Stdout, p)
}

// printer wraps an io.Writer and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

// emit writes a formatted line without indentation.
func (pr *printer) emit(format string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = fmt.Fprintf(pr.w, format+"\n", args...)
}

// emitInst writes an indented instruction line.
func (pr *printer) emitInst(format string, args ...interface{}) {
	pr.emit("\t"+format+" ;", args...)
}

func (pr *printer) instr(in *Instr) {
	switch in.Op {
	case OpLabel:
		pr.emit("%s:", in.Label)
	case OpBeginFunc:
		pr.emit("%s:", in.Label)
		pr.emitInst("BeginFunc %d", in.Int)
	case OpVTable:
		pr.emit("VTable %s =", in.Label)
		for _, l := range in.Labels {
			pr.emit("\t%s,", l)
		}
		pr.emit(";")
	default:
		pr.emitInst("%s", formatInstr(in))
	}
}

// String returns the instruction as it appears in a listing, without
// indentation and terminator.
func (in *Instr) String() string {
	switch in.Op {
	case OpLabel:
		return in.Label + ":"
	case OpVTable:
		return fmt.Sprintf("VTable %s = %s", in.Label, strings.Join(in.Labels, ", "))
	}
	return formatInstr(in)
}

// formatInstr formats a single-line instruction.
func formatInstr(in *Instr) string {
	switch in.Op {
	case OpLoadConst:
		return fmt.Sprintf("%s = %d", in.Dst, in.Int)
	case OpLoadDouble:
		return fmt.Sprintf("%s = %s", in.Dst, strconv.FormatFloat(in.Float, 'g', -1, 64))
	case OpLoadString:
		return fmt.Sprintf("%s = %s", in.Dst, strconv.Quote(in.Str))
	case OpLoadLabel:
		return fmt.Sprintf("%s = %s", in.Dst, in.Label)
	case OpAssign:
		return fmt.Sprintf("%s = %s", in.Dst, arg(in, 0))
	case OpLoad:
		return fmt.Sprintf("%s = %s", in.Dst, deref(arg(in, 0), in.Int))
	case OpStore:
		return fmt.Sprintf("%s = %s", deref(arg(in, 0), in.Int), arg(in, 1))
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", in.Dst, arg(in, 0), in.Str, arg(in, 1))
	case OpGoto:
		return "Goto " + in.Label
	case OpIfZ:
		return fmt.Sprintf("IfZ %s Goto %s", arg(in, 0), in.Label)
	case OpBeginFunc:
		return fmt.Sprintf("BeginFunc %d", in.Int)
	case OpEndFunc:
		return "EndFunc"
	case OpReturn:
		if len(in.Args) == 0 {
			return "Return"
		}
		return "Return " + arg(in, 0)
	case OpPushParam:
		return "PushParam " + arg(in, 0)
	case OpPopParams:
		return fmt.Sprintf("PopParams %d", in.Int)
	case OpLCall:
		return call(in, "LCall "+in.Label)
	case OpACall:
		return call(in, "ACall "+arg(in, 0))
	}
	return in.Op.String()
}

func arg(in *Instr, i int) string {
	if i >= len(in.Args) || in.Args[i] == nil {
		return "<nil>"
	}
	return in.Args[i].String()
}

func deref(ref string, offset int) string {
	if offset == 0 {
		return fmt.Sprintf("*(%s)", ref)
	}
	return fmt.Sprintf("*(%s + %d)", ref, offset)
}

func call(in *Instr, s string) string {
	if in.Dst == nil {
		return s
	}
	return fmt.Sprintf("%s = %s", in.Dst, s)
}
