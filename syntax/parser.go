package syntax

import (
	"hydroc/ast"
	"hydroc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser over a fully materialized token
// sequence.  All parsing functions assume that they begin with the parser
// positioned on the first token of their production and must consume all
// tokens (including the last) of their production, leaving the parser on the
// next token.  The parser never backtracks.  Syntax errors are raised as
// panics of *report.LocalCompileError and caught by Parse.
type Parser struct {
	// tokens is the token sequence being parsed.
	tokens []*Token

	// ndx is the index of the current token.
	ndx int

	// tok is the current token the parser is positioned on.  Past the end of
	// the token sequence, this is an EOF token.
	tok *Token

	// lookbehind is the token most recently consumed.
	lookbehind *Token

	// arena owns all the AST nodes produced by this parser.
	arena *ast.Arena
}

// NewParser creates a new parser for the given tokens.  The parser allocates
// its AST nodes from a new arena.
func NewParser(tokens []*Token) *Parser {
	p := &Parser{
		tokens: tokens,
		ndx:    -1,
		arena:  ast.NewArena(),
	}

	p.next()
	return p
}

// Parse parses a complete token sequence into a program.
func Parse(tokens []*Token) (*ast.Program, error) {
	return NewParser(tokens).Parse()
}

// Parse runs the parser.  It fails on the first syntax error.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer report.CatchErrors(&err)

	return p.parseProgram(), nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if p.ndx < len(p.tokens) {
		p.ndx++
	}

	if p.ndx < len(p.tokens) {
		p.tok = p.tokens[p.ndx]
	} else {
		p.tok = p.eofToken()
	}
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind, moves past it,
// and returns the token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.rejectWithMsg("expected `%s` but got %s", TokenKindName(kind), describe(p.tok))
	}

	p.next()
	return p.lookbehind
}

// eofToken returns a token marking the position just past the last token.
func (p *Parser) eofToken() *Token {
	if len(p.tokens) == 0 {
		return &Token{
			Kind: TOK_EOF,
			Line: 1,
			Col:  1,
			Span: &report.TextSpan{},
		}
	}

	last := p.tokens[len(p.tokens)-1]
	return &Token{
		Kind: TOK_EOF,
		Line: last.Span.EndLine + 1,
		Col:  last.Span.EndCol + 1,
		Span: &report.TextSpan{
			StartLine: last.Span.EndLine,
			StartCol:  last.Span.EndCol,
			EndLine:   last.Span.EndLine,
			EndCol:    last.Span.EndCol + 1,
		},
	}
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	p.rejectWithMsg("unexpected %s", describe(p.tok))
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, args ...interface{}) {
	panic(report.Raise(p.tok.Span, msg, args...))
}

// describe returns a short description of a token for error messages.
func describe(tok *Token) string {
	switch tok.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_IDENT:
		return "identifier `" + tok.Value + "`"
	case TOK_INTLIT:
		return "integer literal `" + tok.Value + "`"
	default:
		return "token `" + TokenKindName(tok.Kind) + "`"
	}
}
