package tac

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/decafc/internal/codegen"
	"github.com/you-not-fish/decafc/internal/rtabi"
)

// Verify checks the structural integrity of a program.
// It returns an error describing all violations found, or nil if valid.
func Verify(p *Program) error {
	var errs []string

	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	// Routine labels, for calls and dispatch tables.
	routines := make(map[string]bool)
	for _, in := range p.Code {
		if in.Op == OpBeginFunc {
			if routines[in.Label] {
				add("routine %s defined twice", in.Label)
			}
			routines[in.Label] = true
		}
	}
	callable := func(label string) bool {
		if routines[label] {
			return true
		}
		_, ok := rtabi.LookupSignature(label)
		return ok
	}

	var fn *function
	for i, in := range p.Code {
		where := fmt.Sprintf("%d (%s)", i, in.Op)
		if fn != nil {
			where = fmt.Sprintf("routine %s, %s", fn.label, where)
		}

		if fn == nil && !in.Op.Info().Global {
			add("%s: instruction outside a routine", where)
			continue
		}

		switch in.Op {
		case OpInvalid:
			add("%s: invalid op", where)
			continue

		case OpBeginFunc:
			if fn != nil {
				add("%s: routine %s not ended", where, fn.label)
				errs = append(errs, fn.check()...)
			}
			fn = newFunction(in)
			if in.Int < 0 || in.Int%rtabi.WordSize != 0 {
				add("%s: bad frame size %d", where, in.Int)
			}
			continue

		case OpEndFunc:
			if fn.pending != 0 {
				add("%s: %d parameters pushed but not popped", where, fn.pending)
			}
			errs = append(errs, fn.check()...)
			fn = nil
			continue

		case OpVTable:
			if fn != nil {
				add("%s: dispatch table inside a routine", where)
			}
			for _, l := range in.Labels {
				if !callable(l) {
					add("%s: dispatch table %s refers to unknown routine %s", where, in.Label, l)
				}
			}
			continue
		}

		// 1. Arguments are set and temporaries are defined before use.
		for j, a := range in.Args {
			if a == nil {
				add("%s: arg[%d] is nil", where, j)
				continue
			}
			if isTemp(a) && !fn.defined[a] {
				add("%s: temporary %s used before definition", where, a)
			}
		}

		// 2. Results are fresh temporaries inside the frame.
		if in.Dst != nil && in.Op != OpAssign {
			if !isTemp(in.Dst) {
				add("%s: result %s is not a temporary", where, in.Dst)
			} else if fn.defined[in.Dst] {
				add("%s: temporary %s defined twice", where, in.Dst)
			}
			fn.defined[in.Dst] = true
			if lowest := rtabi.OffsetToFirstLocal - fn.begin.Int; in.Dst.Offset <= lowest {
				add("%s: temporary %s at fp%+d is outside the frame", where, in.Dst, in.Dst.Offset)
			}
		}

		// 3. Op-specific checks.
		switch in.Op {
		case OpAssign:
			if in.Dst == nil {
				add("%s: assignment without target", where)
			}
		case OpLabel:
			if fn.labels[in.Label] {
				add("%s: label %s defined twice", where, in.Label)
			}
			fn.labels[in.Label] = true
		case OpGoto, OpIfZ:
			fn.targets = append(fn.targets, in.Label)
		case OpPushParam:
			fn.pending++
		case OpPopParams:
			if in.Int != fn.pending*rtabi.WordSize {
				add("%s: pops %d bytes, %d parameters pushed", where, in.Int, fn.pending)
			}
			fn.pending = 0
		case OpLCall:
			if !callable(in.Label) {
				add("%s: call to unknown routine %s", where, in.Label)
			}
		}
	}
	if fn != nil {
		add("routine %s not ended", fn.label)
		errs = append(errs, fn.check()...)
	}

	return combineErrors(errs)
}

// function is the verification state of one routine.
type function struct {
	label   string
	begin   *Instr
	labels  map[string]bool
	targets []string
	defined map[*codegen.Location]bool
	pending int // parameters pushed since the last pop
}

func newFunction(begin *Instr) *function {
	return &function{
		label:   begin.Label,
		begin:   begin,
		labels:  make(map[string]bool),
		defined: make(map[*codegen.Location]bool),
	}
}

// check reports branches to labels the routine does not define.
func (fn *function) check() []string {
	var errs []string
	for _, t := range fn.targets {
		if !fn.labels[t] {
			errs = append(errs, fmt.Sprintf("routine %s: branch to undefined label %s", fn.label, t))
		}
	}
	return errs
}

func isTemp(l *codegen.Location) bool {
	return strings.HasPrefix(l.Name, "_tmp")
}

// combineErrors creates an error from a list of error strings, or returns nil.
func combineErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("TAC verification failed:\n  %s", strings.Join(errs, "\n  "))
}
