package parser

import "fmt"

// TokenType enumerates lexical categories recognised by the luca scanner.
type TokenType int

const (
	// Single-character tokens
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	This
	True
	Var
	While

	EOF
)

var tokenNames = [...]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	EOF:          "EOF",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "unknown"
}

var keywords = map[string]TokenType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is a single lexical unit produced by the scanner. Tokens are
// immutable once produced.
type Token struct {
	Type    TokenType
	Lexeme  string      // exact source text
	Literal interface{} // float64 for numbers, string for strings
	Line    int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%d %s %q %v", t.Line, t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%d %s %q", t.Line, t.Type, t.Lexeme)
}
