package parser

// Expr is an expression node. Nodes are always handled through pointers, so
// the interface value itself is a stable identity usable as a map key.
type Expr interface {
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

// LiteralExpr is a number, string, boolean or nil literal.
type LiteralExpr struct {
	Value interface{} // nil, bool, float64 or string
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
}

// UnaryExpr applies a prefix operator.
type UnaryExpr struct {
	Op      Token
	Operand Expr
}

// BinaryExpr applies an arithmetic, comparison or equality operator.
type BinaryExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

// LogicalExpr is a short-circuiting `and` / `or`.
type LogicalExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

// VariableExpr reads a variable.
type VariableExpr struct {
	Name Token
}

// AssignExpr writes a variable.
type AssignExpr struct {
	Name  Token
	Value Expr
}

// CallExpr invokes a callee. Paren is the closing parenthesis, used to
// locate runtime errors.
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

// GetExpr reads a property of an instance.
type GetExpr struct {
	Object Expr
	Name   Token
}

// SetExpr writes a property of an instance.
type SetExpr struct {
	Object Expr
	Name   Token
	Value  Expr
}

// ThisExpr refers to the receiver inside a method.
type ThisExpr struct {
	Keyword Token
}

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*GetExpr) exprNode()      {}
func (*SetExpr) exprNode()      {}
func (*ThisExpr) exprNode()     {}

// ExprStmt evaluates an expression for side-effects.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt writes the display text of a value.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares a variable, optionally initialised.
type VarStmt struct {
	Name Token
	Init Expr // may be nil
}

// BlockStmt is a braced block introducing a new scope.
type BlockStmt struct {
	Stmts []Stmt
}

// IfStmt conditionally executes branches.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

// WhileStmt repeats while condition is truthy. `for` loops are desugared
// into a WhileStmt wrapped in a BlockStmt.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function or, inside a class, a method.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt exits the current function, optionally with a value.
type ReturnStmt struct {
	Keyword Token
	Value   Expr // may be nil
}

// ClassStmt declares a class and its methods.
type ClassStmt struct {
	Name    Token
	Methods []*FunctionStmt
}

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*VarStmt) stmtNode()      {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*FunctionStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*ClassStmt) stmtNode()    {}
