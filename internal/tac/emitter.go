package tac

import (
	"fmt"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/codegen"
	"github.com/you-not-fish/decafc/internal/rtabi"
)

// Emitter records codegen output as a Program. Temporaries are numbered
// across the whole program and placed in the current frame below the
// locals; the frame size of each routine is patched when it ends.
type Emitter struct {
	prog   *Program
	labels int
	temps  int

	begin *Instr // BeginFunc of the open routine
	frame int    // bytes of locals and temporaries so far
}

var _ codegen.Emitter = (*Emitter)(nil)

// NewEmitter returns an emitter recording into an empty program.
func NewEmitter() *Emitter {
	return &Emitter{prog: &Program{}}
}

// Program returns the recorded program.
func (e *Emitter) Program() *Program {
	return e.prog
}

func (e *Emitter) add(in *Instr) *Instr {
	e.prog.Code = append(e.prog.Code, in)
	return in
}

// temp allocates a temporary in the open routine.
func (e *Emitter) temp() *codegen.Location {
	base.Assert(e.begin != nil, "temporary requested outside a routine")
	loc := &codegen.Location{
		Name:    fmt.Sprintf("_tmp%d", e.temps),
		Segment: codegen.FPRelative,
		Offset:  rtabi.OffsetToFirstLocal - e.frame,
	}
	e.temps++
	e.frame += rtabi.WordSize
	return loc
}

func (e *Emitter) LoadConstant(v int) *codegen.Location {
	return e.add(&Instr{Op: OpLoadConst, Dst: e.temp(), Int: v}).Dst
}

func (e *Emitter) LoadDouble(v float64) *codegen.Location {
	return e.add(&Instr{Op: OpLoadDouble, Dst: e.temp(), Float: v}).Dst
}

func (e *Emitter) LoadString(s string) *codegen.Location {
	return e.add(&Instr{Op: OpLoadString, Dst: e.temp(), Str: s}).Dst
}

func (e *Emitter) LoadLabel(label string) *codegen.Location {
	return e.add(&Instr{Op: OpLoadLabel, Dst: e.temp(), Label: label}).Dst
}

func (e *Emitter) Assign(dst, src *codegen.Location) {
	e.add(&Instr{Op: OpAssign, Dst: dst, Args: []*codegen.Location{src}})
}

func (e *Emitter) Load(ref *codegen.Location, offset int) *codegen.Location {
	return e.add(&Instr{Op: OpLoad, Dst: e.temp(), Args: []*codegen.Location{ref}, Int: offset}).Dst
}

func (e *Emitter) Store(ref *codegen.Location, offset int, val *codegen.Location) {
	e.add(&Instr{Op: OpStore, Args: []*codegen.Location{ref, val}, Int: offset})
}

func (e *Emitter) BinaryOp(op string, x, y *codegen.Location) *codegen.Location {
	return e.add(&Instr{Op: OpBinary, Dst: e.temp(), Args: []*codegen.Location{x, y}, Str: op}).Dst
}

func (e *Emitter) Label(label string) {
	e.add(&Instr{Op: OpLabel, Label: label})
}

// NewLabel returns a fresh label. No routine label has the form __L<n>.
func (e *Emitter) NewLabel() string {
	label := fmt.Sprintf("__L%d", e.labels)
	e.labels++
	return label
}

func (e *Emitter) IfZ(test *codegen.Location, label string) {
	e.add(&Instr{Op: OpIfZ, Args: []*codegen.Location{test}, Label: label})
}

func (e *Emitter) Goto(label string) {
	e.add(&Instr{Op: OpGoto, Label: label})
}

func (e *Emitter) BeginFunc(label string, frameSize int) {
	base.Assert(e.begin == nil, "routine %s begins inside another routine", label)
	e.begin = e.add(&Instr{Op: OpBeginFunc, Label: label, Int: frameSize})
	e.frame = frameSize
}

func (e *Emitter) EndFunc() {
	base.Assert(e.begin != nil, "EndFunc outside a routine")
	e.begin.Int = e.frame
	e.add(&Instr{Op: OpEndFunc})
	e.begin = nil
}

func (e *Emitter) Return(val *codegen.Location) {
	in := &Instr{Op: OpReturn}
	if val != nil {
		in.Args = []*codegen.Location{val}
	}
	e.add(in)
}

func (e *Emitter) PushParam(v *codegen.Location) {
	e.add(&Instr{Op: OpPushParam, Args: []*codegen.Location{v}})
}

// PopParams removes bytes of arguments; nothing is recorded for zero.
func (e *Emitter) PopParams(bytes int) {
	if bytes > 0 {
		e.add(&Instr{Op: OpPopParams, Int: bytes})
	}
}

func (e *Emitter) LCall(label string, hasResult bool) *codegen.Location {
	in := &Instr{Op: OpLCall, Label: label}
	if hasResult {
		in.Dst = e.temp()
	}
	return e.add(in).Dst
}

func (e *Emitter) ACall(addr *codegen.Location, hasResult bool) *codegen.Location {
	in := &Instr{Op: OpACall, Args: []*codegen.Location{addr}}
	if hasResult {
		in.Dst = e.temp()
	}
	return e.add(in).Dst
}

// Builtin calls a runtime routine like any other label.
func (e *Emitter) Builtin(name string, args ...*codegen.Location) *codegen.Location {
	sig, ok := rtabi.LookupSignature(name)
	base.Assert(ok, "unknown runtime routine %s", name)
	base.Assert(len(args) == sig.NumArgs, "%s takes %d arguments, got %d", name, sig.NumArgs, len(args))
	for i := len(args) - 1; i >= 0; i-- {
		e.PushParam(args[i])
	}
	res := e.LCall(name, sig.HasResult)
	e.PopParams(len(args) * rtabi.WordSize)
	return res
}

func (e *Emitter) VTable(class string, labels []string) {
	e.add(&Instr{Op: OpVTable, Label: class, Labels: labels})
}
