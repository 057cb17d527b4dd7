package tac

import (
	"github.com/you-not-fish/decafc/internal/codegen"
)

// Instr is one three-address instruction.
type Instr struct {
	Op   Op
	Dst  *codegen.Location
	Args []*codegen.Location

	Label  string
	Labels []string
	Int    int
	Float  float64
	Str    string
}

// Program is the instruction sequence of a whole program in emission
// order: routines, each opened by BeginFunc and closed by EndFunc, and
// dispatch tables between them.
type Program struct {
	Code []*Instr
}

// Func returns the instructions of the routine labeled label, from its
// BeginFunc to its EndFunc, or nil.
func (p *Program) Func(label string) []*Instr {
	for i, in := range p.Code {
		if in.Op != OpBeginFunc || in.Label != label {
			continue
		}
		for j := i + 1; j < len(p.Code); j++ {
			if p.Code[j].Op == OpEndFunc {
				return p.Code[i : j+1]
			}
		}
		return p.Code[i:]
	}
	return nil
}

// Labels returns the labels of all routines in order.
func (p *Program) Labels() []string {
	var labels []string
	for _, in := range p.Code {
		if in.Op == OpBeginFunc {
			labels = append(labels, in.Label)
		}
	}
	return labels
}

// VTable returns the entries of the dispatch table of class, or nil.
func (p *Program) VTable(class string) []string {
	for _, in := range p.Code {
		if in.Op == OpVTable && in.Label == class {
			return in.Labels
		}
	}
	return nil
}
