// Package sexpr renders parsed luca programs as parenthesized prefix
// expressions. The output is meant for inspection and tests, not for
// reading back.
package sexpr

import (
	"strconv"
	"strings"

	"github.com/wbroach/luca1/parser"
)

// Print renders each statement on its own line.
func Print(stmts []parser.Stmt) string {
	var b strings.Builder
	for _, stmt := range stmts {
		writeStmt(&b, stmt)
		b.WriteByte('\n')
	}
	return b.String()
}

// Stmt renders a single statement.
func Stmt(stmt parser.Stmt) string {
	var b strings.Builder
	writeStmt(&b, stmt)
	return b.String()
}

// Expr renders a single expression.
func Expr(expr parser.Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

func writeStmt(b *strings.Builder, stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		b.WriteString("(expr ")
		writeExpr(b, s.Expr)
		b.WriteByte(')')
	case *parser.PrintStmt:
		b.WriteString("(print ")
		writeExpr(b, s.Expr)
		b.WriteByte(')')
	case *parser.VarStmt:
		b.WriteString("(var ")
		b.WriteString(s.Name.Lexeme)
		if s.Init != nil {
			b.WriteByte(' ')
			writeExpr(b, s.Init)
		}
		b.WriteByte(')')
	case *parser.BlockStmt:
		b.WriteString("(block")
		for _, inner := range s.Stmts {
			b.WriteByte(' ')
			writeStmt(b, inner)
		}
		b.WriteByte(')')
	case *parser.IfStmt:
		b.WriteString("(if ")
		writeExpr(b, s.Cond)
		b.WriteByte(' ')
		writeStmt(b, s.Then)
		if s.Else != nil {
			b.WriteByte(' ')
			writeStmt(b, s.Else)
		}
		b.WriteByte(')')
	case *parser.WhileStmt:
		b.WriteString("(while ")
		writeExpr(b, s.Cond)
		b.WriteByte(' ')
		writeStmt(b, s.Body)
		b.WriteByte(')')
	case *parser.FunctionStmt:
		writeFunction(b, s)
	case *parser.ReturnStmt:
		b.WriteString("(return")
		if s.Value != nil {
			b.WriteByte(' ')
			writeExpr(b, s.Value)
		}
		b.WriteByte(')')
	case *parser.ClassStmt:
		b.WriteString("(class ")
		b.WriteString(s.Name.Lexeme)
		for _, m := range s.Methods {
			b.WriteByte(' ')
			writeFunction(b, m)
		}
		b.WriteByte(')')
	default:
		b.WriteString("<unknown>")
	}
}

func writeFunction(b *strings.Builder, fn *parser.FunctionStmt) {
	b.WriteString("(fun ")
	b.WriteString(fn.Name.Lexeme)
	b.WriteString(" (")
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Lexeme)
	}
	b.WriteByte(')')
	for _, stmt := range fn.Body {
		b.WriteByte(' ')
		writeStmt(b, stmt)
	}
	b.WriteByte(')')
}

func writeExpr(b *strings.Builder, expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		writeLiteral(b, e.Value)
	case *parser.GroupingExpr:
		parenthesize(b, "group", e.Inner)
	case *parser.UnaryExpr:
		parenthesize(b, e.Op.Lexeme, e.Operand)
	case *parser.BinaryExpr:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *parser.LogicalExpr:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *parser.VariableExpr:
		b.WriteString(e.Name.Lexeme)
	case *parser.AssignExpr:
		b.WriteString("(= ")
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Value)
		b.WriteByte(')')
	case *parser.CallExpr:
		parenthesize(b, "call", append([]parser.Expr{e.Callee}, e.Args...)...)
	case *parser.GetExpr:
		b.WriteString("(. ")
		writeExpr(b, e.Object)
		b.WriteByte(' ')
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(')')
	case *parser.SetExpr:
		b.WriteString("(=. ")
		writeExpr(b, e.Object)
		b.WriteByte(' ')
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Value)
		b.WriteByte(')')
	case *parser.ThisExpr:
		b.WriteString("this")
	default:
		b.WriteString("<unknown>")
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...parser.Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		writeExpr(b, e)
	}
	b.WriteByte(')')
}

func writeLiteral(b *strings.Builder, v interface{}) {
	switch lit := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(lit))
	case float64:
		b.WriteString(strconv.FormatFloat(lit, 'f', -1, 64))
	case string:
		b.WriteString(strconv.Quote(lit))
	default:
		b.WriteString("<unknown>")
	}
}
