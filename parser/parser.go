package parser

const maxArgs = 255

// maxNesting bounds how deeply groupings, unary operators and blocks nest.
const maxNesting = 1000

// Parse builds statements from a token slice ending in EOF. Syntax errors
// are collected; after each one the parser skips to the next statement
// boundary and keeps going, so one run reports as many problems as it can.
func Parse(tokens []Token) ([]Stmt, ErrorList) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Type: EOF, Line: line})
	}
	p := &parser{tokens: tokens}
	return p.parseProgram(), p.errs
}

type parser struct {
	tokens  []Token
	current int
	errs    ErrorList
	depth   int
}

// syntaxError marks a parse failure that has already been recorded.
type syntaxError struct{}

func (syntaxError) Error() string { return "syntax error" }

func (p *parser) parseProgram() []Stmt {
	var stmts []Stmt
	for !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) atEnd() bool {
	return p.peek().Type == EOF
}

func (p *parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), msg)
}

func (p *parser) errorAt(tok Token, msg string) error {
	p.errs.Add(tok, msg)
	return syntaxError{}
}

// nest records one more level of nesting at the token just consumed. The
// returned func must run when the construct is done.
func (p *parser) nest() (func(), error) {
	if p.depth >= maxNesting {
		return nil, p.errorAt(p.previous(), "Too much nesting.")
	}
	p.depth++
	return func() { p.depth-- }, nil
}

// synchronize discards tokens until it is probably at the start of the next
// statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}
		p.advance()
	}
}

func (p *parser) parseDeclaration() (Stmt, error) {
	switch {
	case p.match(Class):
		return p.parseClassDecl()
	case p.match(Fun):
		return p.parseFunction("function")
	case p.match(Var):
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseClassDecl() (Stmt, error) {
	name, err := p.expect(Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*FunctionStmt
	for !p.check(RightBrace) && !p.atEnd() {
		method, err := p.parseFunction("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.expect(RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name, Methods: methods}, nil
}

func (p *parser) parseFunction(kind string) (*FunctionStmt, error) {
	name, err := p.expect(Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.expect(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(Comma) {
				break
			}
		}
	}
	if _, err := p.expect(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.expect(LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseVarDecl() (Stmt, error) {
	name, err := p.expect(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initExpr Expr
	if p.match(Equal) {
		initExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: initExpr}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch {
	case p.match(For):
		return p.parseForStmt()
	case p.match(If):
		return p.parseIfStmt()
	case p.match(Print):
		return p.parsePrintStmt()
	case p.match(Return):
		return p.parseReturnStmt()
	case p.match(While):
		return p.parseWhileStmt()
	case p.match(LeftBrace):
		stmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Stmts: stmts}, nil
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses the statements of a block whose '{' was consumed.
// Errors inside the block are recovered here so the rest of the block, and
// its closing brace, still parse.
func (p *parser) parseBlock() ([]Stmt, error) {
	leave, err := p.nest()
	if err != nil {
		return nil, err
	}
	defer leave()

	var stmts []Stmt
	for !p.check(RightBrace) && !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseForStmt desugars a for loop into a while loop inside a block.
func (p *parser) parseForStmt() (Stmt, error) {
	if _, err := p.expect(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initStmt Stmt
	var err error
	switch {
	case p.match(Semicolon):
	case p.match(Var):
		initStmt, err = p.parseVarDecl()
	default:
		initStmt, err = p.parseExprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(Semicolon) {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RightParen) {
		if incr, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if incr != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: true}
	}
	body = &WhileStmt{Cond: cond, Body: body}
	if initStmt != nil {
		body = &BlockStmt{Stmts: []Stmt{initStmt, body}}
	}
	return body, nil
}

func (p *parser) parseIfStmt() (Stmt, error) {
	if _, err := p.expect(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(Else) {
		if elseBranch, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *parser) parsePrintStmt() (Stmt, error) {
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: value}, nil
}

func (p *parser) parseReturnStmt() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	if !p.check(Semicolon) {
		var err error
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *parser) parseWhileStmt() (Stmt, error) {
	if _, err := p.expect(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

func (p *parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: target.Name, Value: value}, nil
	case *GetExpr:
		return &SetExpr{Object: target.Object, Name: target.Name, Value: value}, nil
	}
	// Reported but not fatal: the parser is not confused about where it is.
	p.errorAt(equals, "Invalid assignment target.")
	return value, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(Or) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(And) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// parseBinary parses one left-associative precedence level.
func (p *parser) parseBinary(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseComparison, BangEqual, EqualEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseAddition, Greater, GreaterEqual, Less, LessEqual)
}

func (p *parser) parseAddition() (Expr, error) {
	return p.parseBinary(p.parseMultiplication, Minus, Plus)
}

func (p *parser) parseMultiplication() (Expr, error) {
	return p.parseBinary(p.parseUnary, Slash, Star)
}

func (p *parser) parseUnary() (Expr, error) {
	if p.match(Bang, Minus) {
		op := p.previous()
		leave, err := p.nest()
		if err != nil {
			return nil, err
		}
		defer leave()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parseCall()
}

func (p *parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(Dot):
			name, err := p.expect(Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &GetExpr{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(Comma) {
				break
			}
		}
	}
	paren, err := p.expect(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch {
	case p.match(False):
		return &LiteralExpr{Value: false}, nil
	case p.match(True):
		return &LiteralExpr{Value: true}, nil
	case p.match(Nil):
		return &LiteralExpr{Value: nil}, nil
	case p.match(Number, String):
		return &LiteralExpr{Value: p.previous().Literal}, nil
	case p.match(This):
		return &ThisExpr{Keyword: p.previous()}, nil
	case p.match(Identifier):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(LeftParen):
		leave, err := p.nest()
		if err != nil {
			return nil, err
		}
		defer leave()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: expr}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
