package parser

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	tokens, errs := Scan(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("expected token stream to end in EOF, got %v", tokens)
	}
	return tokens
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	src := "and class else false for fun if nil or print return this true var while foo _bar baz123 classy"
	tokens := scanAll(t, src)
	tokens = tokens[:len(tokens)-1] // drop EOF

	want := []struct {
		typ    TokenType
		lexeme string
	}{
		{And, "and"},
		{Class, "class"},
		{Else, "else"},
		{False, "false"},
		{For, "for"},
		{Fun, "fun"},
		{If, "if"},
		{Nil, "nil"},
		{Or, "or"},
		{Print, "print"},
		{Return, "return"},
		{This, "this"},
		{True, "true"},
		{Var, "var"},
		{While, "while"},
		{Identifier, "foo"},
		{Identifier, "_bar"},
		{Identifier, "baz123"},
		{Identifier, "classy"},
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tt := range want {
		tok := tokens[i]
		if tok.Type != tt.typ {
			t.Errorf("token %d: expected type %v, got %v", i, tt.typ, tok.Type)
		}
		if tok.Lexeme != tt.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestLexerNumberLiteralsRoundTrip(t *testing.T) {
	for _, lexeme := range []string{"0", "7", "123", "3.14", "0.5", "1000000", "12.000", "98765.4321"} {
		t.Run(lexeme, func(t *testing.T) {
			tokens := scanAll(t, lexeme)
			if len(tokens) != 2 {
				t.Fatalf("expected number and EOF, got %v", tokens)
			}
			tok := tokens[0]
			if tok.Type != Number {
				t.Fatalf("expected number type, got %v", tok.Type)
			}
			want, _ := strconv.ParseFloat(lexeme, 64)
			got, ok := tok.Literal.(float64)
			if !ok {
				t.Fatalf("expected float64 literal, got %T", tok.Literal)
			}
			if got != want {
				t.Fatalf("expected literal %v, got %v", want, got)
			}
			if tok.Lexeme != lexeme {
				t.Fatalf("expected lexeme %q, got %q", lexeme, tok.Lexeme)
			}
		})
	}
}

func TestLexerTrailingDotIsSeparateToken(t *testing.T) {
	tokens := scanAll(t, "10.foo")
	want := []TokenType{Number, Dot, Identifier, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), tokens)
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Fatalf("token %d: expected %v, got %v", i, tt, tokens[i].Type)
		}
	}
	if tokens[0].Literal.(float64) != 10 {
		t.Fatalf("expected literal 10, got %v", tokens[0].Literal)
	}
}

func TestLexerStringLiterals(t *testing.T) {
	tokens := scanAll(t, "\"hello\" \"\" \"two\nlines\" after")
	if tokens[0].Type != String || tokens[0].Literal != "hello" {
		t.Fatalf("expected string hello, got %v", tokens[0])
	}
	if tokens[0].Lexeme != "\"hello\"" {
		t.Fatalf("expected lexeme to keep quotes, got %q", tokens[0].Lexeme)
	}
	if tokens[1].Literal != "" {
		t.Fatalf("expected empty string literal, got %v", tokens[1].Literal)
	}
	if tokens[2].Literal != "two\nlines" {
		t.Fatalf("expected multi-line string, got %q", tokens[2].Literal)
	}
	if tokens[3].Line != 2 {
		t.Fatalf("expected identifier after multi-line string on line 2, got %d", tokens[3].Line)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens, errs := Scan("print \"open\nstill open")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Msg != "Unterminated string." || !errs[0].Incomplete {
		t.Fatalf("expected incomplete unterminated string error, got %+v", errs[0])
	}
	if errs[0].Line != 2 {
		t.Fatalf("expected error on line 2, got %d", errs[0].Line)
	}
	if len(tokens) != 2 || tokens[0].Type != Print || tokens[1].Type != EOF {
		t.Fatalf("expected print and EOF tokens, got %v", tokens)
	}
	if tokens[1].Line != 2 {
		t.Fatalf("expected EOF on final line 2, got %d", tokens[1].Line)
	}
}

func TestLexerUnexpectedCharacterContinues(t *testing.T) {
	tokens, errs := Scan("a @ b # c")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if !strings.Contains(errs[0].Msg, "Unexpected character '@'") {
		t.Fatalf("unexpected error message: %v", errs[0])
	}
	if errs[0].Incomplete {
		t.Fatalf("unexpected character must not be treated as incomplete input")
	}
	var names []string
	for _, tok := range tokens {
		if tok.Type == Identifier {
			names = append(names, tok.Lexeme)
		}
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Fatalf("expected scanning to continue past bad characters, got %v", names)
	}
}

func TestLexerSkipWhitespaceAndComments(t *testing.T) {
	tokens := scanAll(t, " \t\r\n// comment / with * stuff\n\nfoo // trailing")
	if len(tokens) != 2 {
		t.Fatalf("expected identifier and EOF, got %v", tokens)
	}
	if tokens[0].Lexeme != "foo" || tokens[0].Line != 4 {
		t.Fatalf("expected foo on line 4, got %v", tokens[0])
	}
	if tokens[1].Line != 4 {
		t.Fatalf("expected EOF on line 4, got %d", tokens[1].Line)
	}
}

func TestLexerOperatorAndPunctuationTokens(t *testing.T) {
	src := "( ) { } , . - + ; / * ! != = == > >= < <= !== <=>"
	tokens := scanAll(t, src)

	want := []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace,
		Comma, Dot, Minus, Plus, Semicolon, Slash, Star,
		Bang, BangEqual, Equal, EqualEqual,
		Greater, GreaterEqual, Less, LessEqual,
		BangEqual, Equal,
		LessEqual, Greater,
		EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Fatalf("token %d: expected %v, got %v", i, typ, tokens[i].Type)
		}
	}
}

func TestLexerEmptySource(t *testing.T) {
	tokens := scanAll(t, "")
	if len(tokens) != 1 || tokens[0].Line != 1 {
		t.Fatalf("expected lone EOF on line 1, got %v", tokens)
	}
}

func TestLexerNumberBeyondFloatRange(t *testing.T) {
	lexeme := strings.Repeat("9", 400)
	tokens := scanAll(t, lexeme+" 1")
	if tokens[0].Type != Number || tokens[0].Lexeme != lexeme {
		t.Fatalf("expected one number token, got %v", tokens[0])
	}
	if got, ok := tokens[0].Literal.(float64); !ok || !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf literal, got %v", tokens[0].Literal)
	}
	if tokens[1].Literal.(float64) != 1 {
		t.Fatalf("expected scanning to continue after the long literal, got %v", tokens[1])
	}
}
