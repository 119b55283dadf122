package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wbroach/luca1/lang"
	"github.com/wbroach/luca1/runtime"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.luca")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LUCA_CONFIG", "")
	var stdout, stderr strings.Builder
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunScriptExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   int
		stdout string
		stderr string
	}{
		{"success", "print 1 + 2;", exitOK, "3\n", ""},
		{"syntax error", "print 1;\nprint (;", exitStatic, "", "[line 2] Error at ';': Expect expression."},
		{"scope error", "print 1;\nreturn 2;", exitStatic, "", "Can't return from top-level code."},
		{"runtime error", "print 1;\nprint nil + 1;", exitRuntime, "1\n", "[line 2] Runtime error: Operands must be two numbers or two strings."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", writeScript(t, tt.src))
			if code != tt.code {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tt.code, code, stderr)
			}
			if stdout != tt.stdout {
				t.Fatalf("expected stdout %q, got %q", tt.stdout, stdout)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Fatalf("expected stderr to contain %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "", filepath.Join(t.TempDir(), "missing.luca"))
	if code != exitNoInput {
		t.Fatalf("expected exit %d, got %d", exitNoInput, code)
	}
	if !strings.Contains(stderr, "missing.luca") {
		t.Fatalf("expected file name in error, got %q", stderr)
	}
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"a.luca", "b.luca"},
		{"-emit-ast"},
		{"-no-such-flag"},
	} {
		if code, _, _ := runCLI(t, "", args...); code != exitUsage {
			t.Errorf("%v: expected exit %d, got %d", args, exitUsage, code)
		}
	}
}

func TestRunScriptFromStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, "var a = \"std\"; print a + \"in\";", "-")
	if code != exitOK || stdout != "stdin\n" {
		t.Fatalf("unexpected result: code=%d stdout=%q", code, stdout)
	}
}

func TestRunEmitTokens(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-emit-tokens", writeScript(t, "print 1;"))
	if code != exitOK {
		t.Fatalf("expected success, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 tokens, got %q", stdout)
	}
	if !strings.Contains(lines[0], "print") || !strings.Contains(lines[3], "EOF") {
		t.Fatalf("unexpected token listing %q", stdout)
	}

	code, _, stderr := runCLI(t, "", "-emit-tokens", writeScript(t, "print @;"))
	if code != exitStatic || !strings.Contains(stderr, "Unexpected character") {
		t.Fatalf("expected scan error, got code=%d stderr=%q", code, stderr)
	}
}

func TestRunEmitAST(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-emit-ast", writeScript(t, "print 1 + 2 * 3;"))
	if code != exitOK || stdout != "(print (+ 1 (* 2 3)))\n" {
		t.Fatalf("unexpected result: code=%d stdout=%q", code, stdout)
	}
}

func TestBufferedREPL(t *testing.T) {
	input := strings.Join([]string{
		"var a = 1;",
		"fun add(x) {",
		"  return x + a;",
		"}",
		"print add(2);",
		"print missing;",
		"print \"still running\";",
		"print (;",
		"print \"multi",
		"line\";",
		"",
	}, "\n")
	var stdout, stderr strings.Builder
	in := runtime.NewInterpreter(lang.WithOutput(&stdout))
	runBufferedREPL(in, bufio.NewReader(strings.NewReader(input)), &stderr)

	if stdout.String() != "3\nstill running\nmulti\nline\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	errs := stderr.String()
	if !strings.Contains(errs, "Undefined variable 'missing'.") || !strings.Contains(errs, "Expect expression.") {
		t.Fatalf("expected both errors reported, got %q", errs)
	}
}

func TestBufferedREPLReportsIncompleteAtEOF(t *testing.T) {
	var stdout, stderr strings.Builder
	in := runtime.NewInterpreter(lang.WithOutput(&stdout))
	runBufferedREPL(in, bufio.NewReader(strings.NewReader("print 1;\n{ print 2;")), &stderr)
	if stdout.String() != "1\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Error at end: Expect '}' after block.") {
		t.Fatalf("expected unterminated block reported, got %q", stderr.String())
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print 1;", false},
		{"fun f() {", true},
		{"print \"open", true},
		{"print 1", true},
		{"print );", false},
	}
	for _, tt := range tests {
		if got := needsMoreInput(tt.src); got != tt.want {
			t.Errorf("needsMoreInput(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestReplFromPipeUsesBufferedMode(t *testing.T) {
	code, stdout, stderr := runCLI(t, "print 40 + 2;\n")
	if code != exitOK || stdout != "42\n" || stderr != "" {
		t.Fatalf("unexpected result: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}
