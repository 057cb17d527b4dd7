// Package main implements the Decaf compiler entry point.
//
// decafc reads a parsed program in the JSON AST format and writes its
// three-address code.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/decafc/internal/base"
	"github.com/you-not-fish/decafc/internal/compiler"
	"github.com/you-not-fish/decafc/internal/layout"
	"github.com/you-not-fish/decafc/internal/syntax"
	"github.com/you-not-fish/decafc/internal/tac"
	"github.com/you-not-fish/decafc/internal/types2"
)

// Compiler flags
var (
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	astFormat    = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTypedAST = flag.Bool("emit-typed-ast", false, "Output expression types")
	emitLayout   = flag.Bool("emit-layout", false, "Output class layouts and frames")
	output       = flag.String("o", "", "Output file")
	version      = flag.Bool("version", false, "Print version")
	trace        = flag.Bool("trace", false, "Output timing trace")
	dumpFunc     = flag.String("dump-func", "", "Only dump specific routine")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Decaf Compiler %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: decafc [options] <file.json>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("decafc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: decafc [options] <file.json>")
		os.Exit(1)
	}

	filename := args[0]

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	// Handle -emit-typed-ast
	if *emitTypedAST {
		os.Exit(runEmitTypedAST(filename))
	}

	// Handle -emit-layout
	if *emitLayout {
		os.Exit(runEmitLayout(filename))
	}

	os.Exit(runCompile(filename))
}

// readProgram decodes the AST in filename.
func readProgram(filename string) (*syntax.Program, bool) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	defer f.Close()

	prog, err := syntax.ReadJSON(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		return nil, false
	}
	return prog, true
}

// compile runs the pipeline on filename, printing diagnoses to stderr.
// It returns nil if the program did not compile.
func compile(filename string) *compiler.Result {
	prog, ok := readProgram(filename)
	if !ok {
		return nil
	}

	conf := &compiler.Config{
		Error: func(err *types2.Error) {
			fmt.Fprintln(os.Stderr, err)
		},
	}
	if *trace {
		conf.Trace = os.Stderr
	}

	res, err := compiler.Compile(prog, conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		return nil
	}
	return res
}

// runEmitAST decodes the input file and outputs the AST.
func runEmitAST(filename string) int {
	prog, ok := readProgram(filename)
	if !ok {
		return 1
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, prog)
	}
	return 0
}

// runCompile compiles the input file and writes its TAC.
func runCompile(filename string) int {
	res := compile(filename)
	if res == nil || !res.OK() {
		return 1
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	if *dumpFunc != "" {
		code := res.TAC.Func(*dumpFunc)
		if code == nil {
			fmt.Fprintf(os.Stderr, "error: no routine %s\n", *dumpFunc)
			return 1
		}
		res.TAC = &tac.Program{Code: code}
	}

	if err := tac.Fprint(w, res.TAC); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runEmitTypedAST checks the input file and lists every expression
// with its type, in source order.
func runEmitTypedAST(filename string) int {
	prog, ok := readProgram(filename)
	if !ok {
		return 1
	}

	var errs []string
	conf := &types2.Config{
		Error: func(err *types2.Error) {
			errs = append(errs, err.Error())
		},
	}
	info := &types2.Info{}
	if err := checkProgram(prog, conf, info); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	syntax.Walk(prog, func(n syntax.Node) bool {
		e, ok := n.(syntax.Expr)
		if !ok {
			return true
		}
		if t, ok := info.Types[e]; ok {
			fmt.Printf("%-12s %-16s %s\n", e.Pos(), exprKind(e), t)
		}
		return true
	})

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// checkProgram runs the checker alone, turning internal failures
// into an error.
func checkProgram(prog *syntax.Program, conf *types2.Config, info *types2.Info) (err error) {
	defer base.Recover(&err, "check")
	_ = types2.Check(prog, conf, info)
	return nil
}

func exprKind(e syntax.Expr) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", e), "*syntax.")
}

// runEmitLayout compiles the input file and outputs class layouts,
// dispatch tables and routine frames.
func runEmitLayout(filename string) int {
	res := compile(filename)
	if res == nil || res.Layout == nil {
		return 1
	}
	printLayout(os.Stdout, res.Layout)
	if !res.OK() {
		return 1
	}
	return 0
}

func printLayout(w io.Writer, p *layout.Program) {
	fmt.Fprintln(w, "=== Class Layouts ===")
	fmt.Fprintln(w)

	for _, c := range p.Classes {
		fmt.Fprintf(w, "class %s {\n", c.Obj.Name())
		for _, f := range c.Fields {
			fmt.Fprintf(w, "    %-10s %-15s // offset: %d\n", f.Name(), f.Type(), f.Offset())
		}
		fmt.Fprintf(w, "}\n")
		fmt.Fprintf(w, "// size: %d\n", c.Size)
		for i, l := range p.VTable(c) {
			fmt.Fprintf(w, "// slot %d: %s\n", i, l)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Frames ===")
	fmt.Fprintln(w)

	for _, g := range p.Globals {
		fmt.Fprintf(w, "global %-10s // gp%+d\n", g.Name(), g.Offset())
	}
	for _, fn := range p.Funcs {
		fmt.Fprintf(w, "%s // locals: %d bytes\n", fn.Label, fn.FrameSize)
		for _, v := range fn.Params {
			fmt.Fprintf(w, "    param %-10s // fp%+d\n", v.Name(), v.Offset())
		}
		for _, v := range fn.Locals {
			fmt.Fprintf(w, "    local %-10s // fp%+d\n", v.Name(), v.Offset())
		}
	}
}
