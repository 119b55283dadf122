package lang

import (
	"fmt"

	"github.com/wbroach/luca1/parser"
)

// Locals maps each resolved local variable, assignment or `this` expression
// to the number of scopes between its use and its declaration. Expressions
// absent from the table are globals.
type Locals map[parser.Expr]int

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
)

// Resolver performs the static scope pass. A Resolver carries no state
// between Resolve calls.
type Resolver struct {
	scopes       []map[string]bool
	locals       Locals
	errs         parser.ErrorList
	currentFunc  functionType
	currentClass classType
}

// NewResolver constructs a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve computes scope distances for stmts and reports every scope error.
func (r *Resolver) Resolve(stmts []parser.Stmt) (Locals, parser.ErrorList) {
	r.scopes = nil
	r.locals = make(Locals)
	r.errs = nil
	r.currentFunc = funcNone
	r.currentClass = classNone
	r.resolveStmts(stmts)
	return r.locals, r.errs
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *parser.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *parser.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *parser.ClassStmt:
		enclosing := r.currentClass
		r.currentClass = classClass
		r.declare(s.Name)
		r.define(s.Name)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true
		for _, method := range s.Methods {
			kind := funcMethod
			if method.Name.Lexeme == "init" {
				kind = funcInitializer
			}
			r.resolveFunction(method, kind)
		}
		r.endScope()
		r.currentClass = enclosing
	case *parser.ExprStmt:
		r.resolveExpr(s.Expr)
	case *parser.PrintStmt:
		r.resolveExpr(s.Expr)
	case *parser.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *parser.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *parser.ReturnStmt:
		if r.currentFunc == funcNone {
			r.errs.Add(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.errs.Add(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", stmt))
	}
}

func (r *Resolver) resolveExpr(expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
	case *parser.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *parser.UnaryExpr:
		r.resolveExpr(e.Operand)
	case *parser.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errs.Add(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *parser.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *parser.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *parser.GetExpr:
		r.resolveExpr(e.Object)
	case *parser.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *parser.ThisExpr:
		if r.currentClass == classNone {
			r.errs.Add(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", expr))
	}
}

// resolveFunction resolves parameters and body in a single scope, the same
// frame the interpreter creates for a call.
func (r *Resolver) resolveFunction(fn *parser.FunctionStmt, kind functionType) {
	enclosing := r.currentFunc
	r.currentFunc = kind
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.currentFunc = enclosing
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errs.Add(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr parser.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
