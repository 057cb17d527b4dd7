// Package compiler runs the semantic phases of decafc over a parsed
// program: checking, layout, and emission into three-address code.
package compiler

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/codegen"
	"github.com/you-not-fish/decafc/internal/layout"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/tac"
	"github.com/you-not-fish/decafc/internal/types"
	"github.com/you-not-fish/decafc/internal/types2"
)

// Config controls a compilation. The zero value is usable.
type Config struct {
	// Sizes provides value size information.
	// If nil, types.DefaultSizes is used.
	Sizes *types.Sizes

	// Error, if set, is called for each diagnosis as it is found.
	Error types2.ErrorHandler

	// Trace, if set, receives the duration of each phase.
	Trace io.Writer
}

// Result holds what a compilation produced. Later fields are nil when
// an earlier phase reported diagnoses.
type Result struct {
	Diagnoses []*types2.Error
	Info      *types2.Info
	Layout    *layout.Program
	TAC       *tac.Program
}

// OK reports whether the program compiled without diagnoses.
func (r *Result) OK() bool {
	return len(r.Diagnoses) == 0 && r.TAC != nil
}

// Compile checks prog and, if it has no diagnoses, lays it out and
// emits it. Diagnoses are collected in the result. The returned error
// is reserved for internal failures of the compiler itself.
func Compile(prog *syntax.Program, conf *Config) (*Result, error) {
	if conf == nil {
		conf = new(Config)
	}
	c := &compilation{
		prog: prog,
		conf: conf,
		res:  &Result{Info: new(types2.Info)},
	}

	phases := []struct {
		name string
		run  func() error
	}{
		{"check", c.check},
		{"layout", c.layout},
		{"codegen", c.generate},
		{"verify", c.verify},
	}
	for _, ph := range phases {
		start := time.Now()
		err := ph.run()
		if conf.Trace != nil {
			fmt.Fprintf(conf.Trace, "%-8s %v\n", ph.name, time.Since(start))
		}
		if err != nil {
			return c.res, err
		}
		if len(c.res.Diagnoses) > 0 {
			return c.res, nil
		}
	}
	return c.res, nil
}

type compilation struct {
	prog *syntax.Program
	conf *Config
	res  *Result
}

func (c *compilation) report(err *types2.Error) {
	c.res.Diagnoses = append(c.res.Diagnoses, err)
	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}

func (c *compilation) check() (err error) {
	defer base.Recover(&err, "check")
	conf := &types2.Config{Error: c.report, Sizes: c.conf.Sizes}
	// report already collects every diagnosis.
	_ = types2.Check(c.prog, conf, c.res.Info)
	return nil
}

func (c *compilation) layout() error {
	p, err := layout.Plan(c.prog, c.res.Info, c.conf.Sizes)
	if err != nil {
		return err
	}
	c.res.Layout = p
	return nil
}

func (c *compilation) generate() error {
	e := tac.NewEmitter()
	err := codegen.Generate(c.prog, c.res.Info, c.res.Layout, e)

	var diag *types2.Error
	if errors.As(err, &diag) {
		c.report(diag)
		return nil
	}
	if err != nil {
		return err
	}
	c.res.TAC = e.Program()
	return nil
}

func (c *compilation) verify() error {
	return errors.Wrap(tac.Verify(c.res.TAC), "verify")
}
