package syntax

import (
	"fmt"

	"hydroc/report"
)

// Token represents a single lexical token.  Tokens are never modified once the
// lexer has produced them.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  This is only set for identifiers and
	// integer literals.
	Value string

	// The one-indexed line and column of the first character of the token.
	Line, Col int

	// The text span over which the token exists.
	Span *report.TextSpan
}

func (t *Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%s) %d:%d", TokenKindName(t.Kind), t.Value, t.Line, t.Col)
	}

	return fmt.Sprintf("%s %d:%d", TokenKindName(t.Kind), t.Line, t.Col)
}

// Enumeration of token kinds.
const (
	TOK_EXIT = iota
	TOK_LET
	TOK_IF
	TOK_ELSE

	TOK_IDENT
	TOK_INTLIT

	TOK_ASSIGN

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_SEMI

	// TOK_EOF is never produced by the lexer: the parser uses it to mark the
	// position past the last token.
	TOK_EOF
)

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"exit": TOK_EXIT,
	"let":  TOK_LET,
	"if":   TOK_IF,
	"else": TOK_ELSE,
}

// symbolPatterns maps single-character symbols to their punctuation/operator
// token kind.
var symbolPatterns = map[rune]int{
	';': TOK_SEMI,
	'=': TOK_ASSIGN,
	'+': TOK_PLUS,
	'-': TOK_MINUS,
	'*': TOK_STAR,
	'/': TOK_DIV,
	'(': TOK_LPAREN,
	')': TOK_RPAREN,
	'{': TOK_LBRACE,
	'}': TOK_RBRACE,
}

var tokenKindNames = [...]string{
	TOK_EXIT:   "exit",
	TOK_LET:    "let",
	TOK_IF:     "if",
	TOK_ELSE:   "else",
	TOK_IDENT:  "identifier",
	TOK_INTLIT: "integer literal",
	TOK_ASSIGN: "=",
	TOK_PLUS:   "+",
	TOK_MINUS:  "-",
	TOK_STAR:   "*",
	TOK_DIV:    "/",
	TOK_LPAREN: "(",
	TOK_RPAREN: ")",
	TOK_LBRACE: "{",
	TOK_RBRACE: "}",
	TOK_SEMI:   ";",
	TOK_EOF:    "end of file",
}

// TokenKindName returns the display name of a token kind.
func TokenKindName(kind int) string {
	if 0 <= kind && kind < len(tokenKindNames) {
		return tokenKindNames[kind]
	}

	return fmt.Sprintf("<token %d>", kind)
}
