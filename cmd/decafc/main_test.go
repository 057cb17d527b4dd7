package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/decafc/internal/syntax"
	st "github.com/you-not-fish/decafc/internal/syntax/syntaxtest"
)

func animals() *syntax.Program {
	return st.Prog(
		st.Class("Animal", "", nil,
			st.Var("legs", st.Int()),
			st.Func("speak", st.Void(), nil, st.Block(nil, st.Print(st.StringLit("...")))),
		),
		st.Class("Dog", "Animal", nil,
			st.Func("speak", st.Void(), nil, st.Block(nil, st.Print(st.StringLit("woof")))),
		),
		st.Main(st.Vars(st.Var("a", st.Named("Animal"))),
			st.Do(st.Assign(st.Ref("a"), st.New("Dog"))),
			st.Do(st.Call(st.Ref("a"), "speak")),
		),
	)
}

func TestRunCompileOutputsTAC(t *testing.T) {
	filename := writeTempAST(t, animals())
	code, out, errOut := captureOutput(t, func() int {
		return runCompile(filename)
	})

	if code != 0 {
		t.Fatalf("runCompile exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	for _, want := range []string{
		"_Animal.speak:\n",
		"_Dog.speak:\n",
		"main:\n",
		"VTable Dog =\n\t_Dog.speak,\n;\n",
		"\t_tmp3 = LCall _Alloc ;\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("TAC missing %q:\n%s", want, out)
		}
	}
}

func TestRunCompileReportsDiagnoses(t *testing.T) {
	prog := st.Prog(st.Main(
		st.Vars(st.Var("x", st.Int())),
		st.Do(st.Assign(st.Ref("x"), st.StringLit("hi"))),
		st.Print(st.Ref("y")),
	))
	filename := writeTempAST(t, prog)
	code, out, errOut := captureOutput(t, func() int {
		return runCompile(filename)
	})

	if code != 1 {
		t.Fatalf("runCompile exit=%d, want 1", code)
	}
	if out != "" {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 diagnoses, got:\n%s", errOut)
	}
	if !strings.Contains(lines[0], "Incompatible operands: int = string") {
		t.Errorf("first diagnosis = %q", lines[0])
	}
	if !strings.Contains(lines[1], "No declaration found for variable 'y'") {
		t.Errorf("second diagnosis = %q", lines[1])
	}
}

func TestRunCompileNoEntry(t *testing.T) {
	prog := st.Prog(st.Func("f", st.Void(), nil, st.Block(nil)))
	filename := writeTempAST(t, prog)
	code, _, errOut := captureOutput(t, func() int {
		return runCompile(filename)
	})

	if code != 1 {
		t.Fatalf("runCompile exit=%d, want 1", code)
	}
	if strings.TrimSpace(errOut) != "-: function 'main' not defined" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
}

func TestRunCompileBadInput(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.json")
	if err := os.WriteFile(filename, []byte(`{"kind": "Block"}`), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	code, _, errOut := captureOutput(t, func() int {
		return runCompile(filename)
	})

	if code != 1 {
		t.Fatalf("runCompile exit=%d, want 1", code)
	}
	if !strings.Contains(errOut, `root node is "Block", want Program`) {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
}

func TestRunEmitTypedAST(t *testing.T) {
	filename := writeTempAST(t, animals())
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTypedAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitTypedAST exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	for _, want := range []string{"AssignExpr", "NewExpr", "Dog", "CallExpr", "void"} {
		if !strings.Contains(out, want) {
			t.Errorf("typed AST missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitLayout(t *testing.T) {
	filename := writeTempAST(t, animals())
	code, out, errOut := captureOutput(t, func() int {
		return runEmitLayout(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitLayout exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	for _, want := range []string{
		"=== Class Layouts ===",
		"class Dog {\n    legs       int             // offset: 4\n}\n// size: 8\n// slot 0: _Dog.speak\n",
		"main // locals: 4 bytes\n    local a          // fp-8\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitAST(t *testing.T) {
	prog := animals()
	filename := writeTempAST(t, prog)
	code, out, _ := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d", code)
	}
	var want bytes.Buffer
	syntax.Fprint(&want, prog)
	if out != want.String() {
		t.Fatalf("AST changed on the way through JSON:\n--- got\n%s\n--- want\n%s", out, want.String())
	}
}

func writeTempAST(t *testing.T, prog *syntax.Program) string {
	t.Helper()
	var buf bytes.Buffer
	if err := syntax.FprintJSON(&buf, prog); err != nil {
		t.Fatalf("encode AST: %v", err)
	}
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.json")
	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
