package tac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/you-not-fish/decafc/internal/codegen"
	"github.com/you-not-fish/decafc/internal/rtabi"
)

// Limits of Run.
const (
	MaxSteps = 1 << 24
	MaxDepth = 1 << 12

	heapStart = 0x10000
)

var errHalt = errors.New("halt")

// Run executes p starting at its entry routine. The runtime routines
// read from in and write to out. Run returns when the entry routine
// returns or _Halt is called.
func Run(p *Program, in io.Reader, out io.Writer) error {
	m := &machine{
		routines: make(map[string]*routine),
		vtables:  make(map[string][]string),
		globals:  make(map[int]value),
		heap:     make(map[int]value),
		next:     heapStart,
		in:       bufio.NewReader(in),
		out:      bufio.NewWriter(out),
	}
	if err := m.load(p); err != nil {
		return err
	}

	_, err := m.call(rtabi.EntryName, nil)
	if errors.Is(err, errHalt) {
		err = nil
	}
	if ferr := m.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

type valueKind uint8

const (
	intValue valueKind = iota
	floatValue
	stringValue
	labelValue
)

// value is the contents of one word.
type value struct {
	kind valueKind
	i    int
	f    float64
	s    string
}

func intv(i int) value { return value{kind: intValue, i: i} }

func boolv(b bool) value {
	if b {
		return intv(1)
	}
	return intv(0)
}

func (v value) truth() bool {
	switch v.kind {
	case intValue:
		return v.i != 0
	case floatValue:
		return v.f != 0
	}
	return true
}

func (v value) float() float64 {
	if v.kind == floatValue {
		return v.f
	}
	return float64(v.i)
}

func (v value) String() string {
	switch v.kind {
	case floatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case stringValue:
		return strconv.Quote(v.s)
	case labelValue:
		return v.s
	}
	return strconv.Itoa(v.i)
}

type routine struct {
	code   []*Instr
	labels map[string]int
}

type machine struct {
	routines map[string]*routine
	vtables  map[string][]string
	globals  map[int]value
	heap     map[int]value
	next     int

	in  *bufio.Reader
	out *bufio.Writer

	steps int
	depth int
}

// frame is one activation: its fp-relative words and the parameters
// pushed for the next call.
type frame struct {
	words  map[int]value
	params []value
}

func (m *machine) load(p *Program) error {
	var r *routine
	for _, in := range p.Code {
		switch in.Op {
		case OpBeginFunc:
			r = &routine{labels: make(map[string]int)}
			m.routines[in.Label] = r
		case OpVTable:
			m.vtables[in.Label] = in.Labels
			continue
		case OpLabel:
			if r != nil {
				r.labels[in.Label] = len(r.code)
			}
		}
		if r == nil {
			return errors.Errorf("%s outside a routine", in)
		}
		r.code = append(r.code, in)
		if in.Op == OpEndFunc {
			r = nil
		}
	}
	return nil
}

// call runs the routine label with the given actuals, first actual
// first.
func (m *machine) call(label string, args []value) (value, error) {
	if _, ok := rtabi.LookupSignature(label); ok {
		return m.builtin(label, args)
	}
	r := m.routines[label]
	if r == nil {
		return value{}, errors.Errorf("call to undefined routine %s", label)
	}
	if m.depth >= MaxDepth {
		return value{}, errors.Errorf("%s: call stack exhausted", label)
	}
	m.depth++
	defer func() { m.depth-- }()

	fr := &frame{words: make(map[int]value)}
	for k, a := range args {
		fr.words[rtabi.OffsetToFirstParam+k*rtabi.WordSize] = a
	}

	for pc := 0; pc < len(r.code); pc++ {
		in := r.code[pc]
		m.steps++
		if m.steps > MaxSteps {
			return value{}, errors.Errorf("%s: step limit exceeded", label)
		}

		switch in.Op {
		case OpBeginFunc, OpLabel:
		case OpEndFunc:
			return value{}, nil
		case OpLoadConst:
			m.set(fr, in.Dst, intv(in.Int))
		case OpLoadDouble:
			m.set(fr, in.Dst, value{kind: floatValue, f: in.Float})
		case OpLoadString:
			m.set(fr, in.Dst, value{kind: stringValue, s: in.Str})
		case OpLoadLabel:
			m.set(fr, in.Dst, value{kind: labelValue, s: in.Label})
		case OpAssign:
			m.set(fr, in.Dst, m.get(fr, in.Args[0]))
		case OpLoad:
			v, err := m.loadWord(m.get(fr, in.Args[0]), in.Int)
			if err != nil {
				return value{}, errors.Wrapf(err, "%s: %s", label, in)
			}
			m.set(fr, in.Dst, v)
		case OpStore:
			if err := m.storeWord(m.get(fr, in.Args[0]), in.Int, m.get(fr, in.Args[1])); err != nil {
				return value{}, errors.Wrapf(err, "%s: %s", label, in)
			}
		case OpBinary:
			v, err := binary(in.Str, m.get(fr, in.Args[0]), m.get(fr, in.Args[1]))
			if err != nil {
				return value{}, errors.Wrapf(err, "%s: %s", label, in)
			}
			m.set(fr, in.Dst, v)
		case OpGoto:
			pc = r.labels[in.Label]
		case OpIfZ:
			if !m.get(fr, in.Args[0]).truth() {
				pc = r.labels[in.Label]
			}
		case OpReturn:
			if len(in.Args) == 0 {
				return value{}, nil
			}
			return m.get(fr, in.Args[0]), nil
		case OpPushParam:
			fr.params = append(fr.params, m.get(fr, in.Args[0]))
		case OpPopParams:
			n := in.Int / rtabi.WordSize
			if n > len(fr.params) {
				return value{}, errors.Errorf("%s: %s with %d parameters pushed", label, in, len(fr.params))
			}
			fr.params = fr.params[:len(fr.params)-n]
		case OpLCall, OpACall:
			target := in.Label
			if in.Op == OpACall {
				addr := m.get(fr, in.Args[0])
				if addr.kind != labelValue {
					return value{}, errors.Errorf("%s: %s: %v is not a routine", label, in, addr)
				}
				target = addr.s
			}
			res, err := m.call(target, actuals(fr.params))
			if err != nil {
				return value{}, err
			}
			if in.Dst != nil {
				m.set(fr, in.Dst, res)
			}
		default:
			return value{}, errors.Errorf("%s: cannot execute %s", label, in.Op)
		}
	}
	return value{}, nil
}

// actuals returns the pushed parameters in declaration order. They are
// pushed last to first.
func actuals(pushed []value) []value {
	args := make([]value, len(pushed))
	for k := range pushed {
		args[k] = pushed[len(pushed)-1-k]
	}
	return args
}

func (m *machine) get(fr *frame, l *codegen.Location) value {
	if l.Segment == codegen.GPRelative {
		return m.globals[l.Offset]
	}
	return fr.words[l.Offset]
}

func (m *machine) set(fr *frame, l *codegen.Location, v value) {
	if l.Segment == codegen.GPRelative {
		m.globals[l.Offset] = v
		return
	}
	fr.words[l.Offset] = v
}

// loadWord reads the word at ref+offset. A dispatch table is addressed
// through its label.
func (m *machine) loadWord(ref value, offset int) (value, error) {
	if ref.kind == labelValue {
		vt, ok := m.vtables[ref.s]
		slot := offset / rtabi.WordSize
		if !ok || slot < 0 || slot >= len(vt) {
			return value{}, errors.Errorf("no slot %d in dispatch table %s", slot, ref.s)
		}
		return value{kind: labelValue, s: vt[slot]}, nil
	}
	addr, err := address(ref, offset)
	if err != nil {
		return value{}, err
	}
	return m.heap[addr], nil
}

func (m *machine) storeWord(ref value, offset int, v value) error {
	addr, err := address(ref, offset)
	if err != nil {
		return err
	}
	m.heap[addr] = v
	return nil
}

func address(ref value, offset int) (int, error) {
	if ref.kind != intValue {
		return 0, errors.Errorf("%v is not an address", ref)
	}
	if ref.i == 0 {
		return 0, errors.New("null pointer dereference")
	}
	return ref.i + offset, nil
}

func binary(op string, x, y value) (value, error) {
	if x.kind == floatValue || y.kind == floatValue {
		a, b := x.float(), y.float()
		switch op {
		case "+":
			return value{kind: floatValue, f: a + b}, nil
		case "-":
			return value{kind: floatValue, f: a - b}, nil
		case "*":
			return value{kind: floatValue, f: a * b}, nil
		case "/":
			return value{kind: floatValue, f: a / b}, nil
		case "<":
			return boolv(a < b), nil
		case "==":
			return boolv(a == b), nil
		}
		return value{}, errors.Errorf("bad double operator %s", op)
	}

	switch op {
	case "&&":
		return boolv(x.truth() && y.truth()), nil
	case "||":
		return boolv(x.truth() || y.truth()), nil
	case "==":
		return boolv(x == y), nil
	}
	if x.kind != intValue || y.kind != intValue {
		return value{}, errors.Errorf("operands of %s are not integers: %v, %v", op, x, y)
	}
	a, b := x.i, y.i
	switch op {
	case "+":
		return intv(a + b), nil
	case "-":
		return intv(a - b), nil
	case "*":
		return intv(a * b), nil
	case "/", "%":
		if b == 0 {
			return value{}, errors.New("division by zero")
		}
		if op == "/" {
			return intv(a / b), nil
		}
		return intv(a % b), nil
	case "<":
		return boolv(a < b), nil
	}
	return value{}, errors.Errorf("bad operator %s", op)
}

func (m *machine) builtin(name string, args []value) (value, error) {
	switch name {
	case rtabi.FnAlloc:
		n := args[0].i
		if n < 0 {
			return value{}, errors.Errorf("%s: negative size %d", name, n)
		}
		addr := m.next
		m.next += (n + rtabi.WordSize - 1) / rtabi.WordSize * rtabi.WordSize
		if n == 0 {
			m.next += rtabi.WordSize
		}
		return intv(addr), nil
	case rtabi.FnPrintInt:
		fmt.Fprint(m.out, args[0].i)
	case rtabi.FnPrintBool:
		fmt.Fprint(m.out, args[0].truth())
	case rtabi.FnPrintString:
		if args[0].kind != stringValue {
			return value{}, errors.Errorf("%s: %v is not a string", name, args[0])
		}
		m.out.WriteString(args[0].s)
	case rtabi.FnReadLine:
		line, err := m.readLine()
		return value{kind: stringValue, s: line}, err
	case rtabi.FnReadInteger:
		line, err := m.readLine()
		n, _ := strconv.Atoi(strings.TrimSpace(line))
		return intv(n), err
	case rtabi.FnStringEqual:
		return boolv(args[0].s == args[1].s), nil
	case rtabi.FnHalt:
		return value{}, errHalt
	}
	return value{}, nil
}

func (m *machine) readLine() (string, error) {
	if err := m.out.Flush(); err != nil {
		return "", err
	}
	line, err := m.in.ReadString('\n')
	if err == io.EOF {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}
