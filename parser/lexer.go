package parser

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Scan converts source text into tokens. Lexical errors are collected and
// scanning carries on past the offending lexeme, so the token slice is
// always terminated by an EOF token carrying the final line number.
func Scan(src string) ([]Token, ErrorList) {
	lx := newLexer(src)
	for !lx.atEnd() {
		lx.start = lx.pos
		lx.scanToken()
	}
	lx.tokens = append(lx.tokens, Token{Type: EOF, Line: lx.line})
	return lx.tokens, lx.errs
}

type lexer struct {
	src    string
	start  int // first byte of the lexeme being scanned
	pos    int // next unread byte
	line   int
	tokens []Token
	errs   ErrorList
}

func newLexer(src string) *lexer {
	return &lexer{
		src:  src,
		line: 1,
	}
}

func (lx *lexer) atEnd() bool {
	return lx.pos >= len(lx.src)
}

func (lx *lexer) readRune() rune {
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	if r == '\n' {
		lx.line++
	}
	return r
}

func (lx *lexer) peekRune() rune {
	if lx.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r
}

func (lx *lexer) peekNextRune() rune {
	if lx.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if lx.pos+w >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos+w:])
	return r
}

func (lx *lexer) match(expected rune) bool {
	if lx.peekRune() != expected || lx.atEnd() {
		return false
	}
	lx.readRune()
	return true
}

func (lx *lexer) scanToken() {
	r := lx.readRune()
	switch r {
	case '(':
		lx.emit(LeftParen, nil)
	case ')':
		lx.emit(RightParen, nil)
	case '{':
		lx.emit(LeftBrace, nil)
	case '}':
		lx.emit(RightBrace, nil)
	case ',':
		lx.emit(Comma, nil)
	case '.':
		lx.emit(Dot, nil)
	case '-':
		lx.emit(Minus, nil)
	case '+':
		lx.emit(Plus, nil)
	case ';':
		lx.emit(Semicolon, nil)
	case '*':
		lx.emit(Star, nil)
	case '!':
		lx.emitEither('=', BangEqual, Bang)
	case '=':
		lx.emitEither('=', EqualEqual, Equal)
	case '<':
		lx.emitEither('=', LessEqual, Less)
	case '>':
		lx.emitEither('=', GreaterEqual, Greater)
	case '/':
		if lx.match('/') {
			lx.skipLine()
			return
		}
		lx.emit(Slash, nil)
	case ' ', '\r', '\t', '\n':
	case '"':
		lx.scanString()
	default:
		switch {
		case isDigit(r):
			lx.scanNumber()
		case isIdentifierStart(r):
			lx.scanIdentifier()
		default:
			lx.errs.AddLine(lx.line, fmt.Sprintf("Unexpected character %q.", r))
		}
	}
}

func (lx *lexer) emitEither(next rune, long, short TokenType) {
	if lx.match(next) {
		lx.emit(long, nil)
		return
	}
	lx.emit(short, nil)
}

func (lx *lexer) emit(tt TokenType, literal interface{}) {
	lx.tokens = append(lx.tokens, Token{
		Type:    tt,
		Lexeme:  lx.src[lx.start:lx.pos],
		Literal: literal,
		Line:    lx.line,
	})
}

// skipLine consumes a comment up to, but not including, the newline so the
// line counter is bumped by the main loop.
func (lx *lexer) skipLine() {
	for !lx.atEnd() && lx.peekRune() != '\n' {
		lx.readRune()
	}
}

func (lx *lexer) scanString() {
	for !lx.atEnd() && lx.peekRune() != '"' {
		lx.readRune()
	}
	if lx.atEnd() {
		lx.errs = append(lx.errs, &Error{
			Line:       lx.line,
			Msg:        "Unterminated string.",
			Incomplete: true,
		})
		return
	}
	lx.readRune() // closing quote
	lx.emit(String, lx.src[lx.start+1:lx.pos-1])
}

func (lx *lexer) scanNumber() {
	for isDigit(lx.peekRune()) {
		lx.readRune()
	}
	if lx.peekRune() == '.' && isDigit(lx.peekNextRune()) {
		lx.readRune()
		for isDigit(lx.peekRune()) {
			lx.readRune()
		}
	}
	// Literals beyond float64 range scan as +Inf.
	value, err := strconv.ParseFloat(lx.src[lx.start:lx.pos], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		lx.errs.AddLine(lx.line, fmt.Sprintf("Invalid number literal %q.", lx.src[lx.start:lx.pos]))
		return
	}
	lx.emit(Number, value)
}

func (lx *lexer) scanIdentifier() {
	for isIdentifierPart(lx.peekRune()) && !lx.atEnd() {
		lx.readRune()
	}
	if tt, ok := keywords[lx.src[lx.start:lx.pos]]; ok {
		lx.emit(tt, nil)
		return
	}
	lx.emit(Identifier, nil)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
