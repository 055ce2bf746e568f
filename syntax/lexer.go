package syntax

import (
	"strings"

	"hydroc/report"
)

// Lexer is responsible for tokenizing a source text.  The entire source is held
// in memory and lexed in a single left-to-right pass without backtracking.
type Lexer struct {
	src []rune
	pos int

	tokBuff *strings.Builder

	// line and col are the one-indexed position of the next rune.
	line, col           int
	startLine, startCol int

	// warnings collects the source text the lexer silently dropped.
	warnings []*report.LocalCompileError
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     []rune(src),
		tokBuff: &strings.Builder{},
		line:    1,
		col:     1,
	}
}

// Tokenize lexes src into its complete token sequence.
func Tokenize(src string) ([]*Token, error) {
	return NewLexer(src).Tokenize()
}

// Tokenize lexes the whole source text and returns its tokens in order.  No
// end-of-file token is appended.  Unrecognized characters and unterminated
// block comments are not errors: they are recorded as warnings.
func (l *Lexer) Tokenize() (toks []*Token, err error) {
	defer report.CatchErrors(&err)

	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch {
		case isSpace(c):
			l.skip()
		case isLetter(c):
			toks = append(toks, l.lexIdentOrKeyword())
		case isDecimalDigit(c):
			toks = append(toks, l.lexIntLit())
		case c == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()
		default:
			l.mark()
			l.skip()

			if kind, ok := symbolPatterns[c]; ok {
				toks = append(toks, l.makeToken(kind))
			} else {
				l.warn("unrecognized character `%c` ignored", c)
			}
		}
	}

	return toks, nil
}

// Warnings returns the warnings produced by the last call to Tokenize.
func (l *Lexer) Warnings() []*report.LocalCompileError {
	return l.warnings
}

// -----------------------------------------------------------------------------

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()

	for c := l.peek(); isLetter(c) || isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_IDENT)
}

// lexIntLit lexes a decimal integer literal.
func (l *Lexer) lexIntLit() *Token {
	l.mark()

	for isDecimalDigit(l.peek()) {
		l.eat()
	}

	return l.makeToken(TOK_INTLIT)
}

// skipLineComment skips a `//` comment up to but not including the newline.
func (l *Lexer) skipLineComment() {
	for c := l.peek(); c != '\n' && c != -1; c = l.peek() {
		l.skip()
	}
}

// skipBlockComment skips a `/* ... */` comment.  An unclosed comment runs to
// the end of the source.
func (l *Lexer) skipBlockComment() {
	l.mark()
	l.skip()
	l.skip()

	for {
		switch l.peek() {
		case -1:
			l.warn("unclosed block comment runs to end of file")
			return
		case '*':
			if l.peekAt(1) == '/' {
				l.skip()
				l.skip()
				return
			}
		}

		l.skip()
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	if kind != TOK_IDENT && kind != TOK_INTLIT {
		value = ""
	}

	return &Token{
		Kind:  kind,
		Value: value,
		Line:  l.startLine,
		Col:   l.startCol,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span from the marked start to the current
// position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine - 1,
		StartCol:  l.startCol - 1,
		EndLine:   l.line - 1,
		EndCol:    l.col - 1,
	}
}

// warn records a warning over the text since the last mark.
func (l *Lexer) warn(msg string, args ...interface{}) {
	l.tokBuff.Reset()
	l.warnings = append(l.warnings, report.Raise(l.getSpan(), msg, args...))
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
func (l *Lexer) eat() rune {
	c := l.advance()
	l.tokBuff.WriteRune(c)
	return c
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.
func (l *Lexer) skip() rune {
	return l.advance()
}

// advance consumes the current rune and updates the line and column.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		panic(l.invalidPosition(l.pos))
	}

	c := l.src[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c
}

// peek returns the current rune without consuming it.  At the end of the
// source, -1 is returned.
func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune n positions ahead of the current one or -1 if that
// is past the end of the source.
func (l *Lexer) peekAt(n int) rune {
	if l.pos > len(l.src) {
		panic(l.invalidPosition(l.pos))
	}

	if l.pos+n >= len(l.src) {
		return -1
	}

	return l.src[l.pos+n]
}

func (l *Lexer) invalidPosition(pos int) *report.LocalCompileError {
	return report.Raise(&report.TextSpan{
		StartLine: l.line - 1,
		StartCol:  l.col - 1,
		EndLine:   l.line - 1,
		EndCol:    l.col,
	}, "invalid character position %d (source length %d)", pos, len(l.src))
}

// -----------------------------------------------------------------------------

// isSpace returns whether c is whitespace.
func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isLetter returns whether c is an ASCII letter.
func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
