package sexpr

import (
	"testing"

	"github.com/wbroach/luca1/parser"
)

func TestPrintCases(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Precedence",
			input: "print 1 + 2 * 3;",
			want:  "(print (+ 1 (* 2 3)))\n",
		},
		{
			name:  "GroupingAndUnary",
			input: "-(1.5 - x) == !true;",
			want:  "(expr (== (- (group (- 1.5 x))) (! true)))\n",
		},
		{
			name:  "Literals",
			input: "print nil; print \"a b\";",
			want:  "(print nil)\n(print \"a b\")\n",
		},
		{
			name:  "LogicalAndAssign",
			input: "a = b or c and d;",
			want:  "(expr (= a (or b (and c d))))\n",
		},
		{
			name:  "VarDeclarations",
			input: "var a; var b = 1;",
			want:  "(var a)\n(var b 1)\n",
		},
		{
			name:  "ForDesugars",
			input: "for (var i = 0; i < 3; i = i + 1) print i;",
			want:  "(block (var i 0) (while (< i 3) (block (print i) (expr (= i (+ i 1))))))\n",
		},
		{
			name:  "IfElse",
			input: "if (x) print 1; else { print 2; }",
			want:  "(if x (print 1) (block (print 2)))\n",
		},
		{
			name:  "FunctionAndCall",
			input: "fun add(a, b) { return a + b; } add(1, 2)(); fun f() { return; }",
			want:  "(fun add (a b) (return (+ a b)))\n(expr (call (call add 1 2)))\n(fun f () (return))\n",
		},
		{
			name:  "Class",
			input: "class P { init(x) { this.x = x; } get() { return this.x; } } P(1).x;",
			want:  "(class P (fun init (x) (expr (=. this x x))) (fun get () (return (. this x))))\n(expr (. (call P 1) x))\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmts, errs := parser.ParseString(tc.input)
			if len(errs) != 0 {
				t.Fatalf("parse %q: %v", tc.input, errs)
			}
			if got := Print(stmts); got != tc.want {
				t.Fatalf("expected\n%s\ngot\n%s", tc.want, got)
			}
		})
	}
}

func TestExprAndStmtHelpers(t *testing.T) {
	stmts, errs := parser.ParseString("while (true) x = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := Stmt(stmts[0]); got != "(while true (expr (= x 1)))" {
		t.Fatalf("unexpected statement rendering %q", got)
	}
	cond := stmts[0].(*parser.WhileStmt).Cond
	if got := Expr(cond); got != "true" {
		t.Fatalf("unexpected expression rendering %q", got)
	}
	if got := Print(nil); got != "" {
		t.Fatalf("expected empty program to render empty, got %q", got)
	}
}
