package syntax

import (
	"hydroc/ast"
	"hydroc/report"
)

// minPrecedence is the precedence every full expression is parsed at.
const minPrecedence = 1

// binOpTable maps binary operator tokens to their precedence and AST operator.
// All binary operators are left associative.
var binOpTable = map[int]struct {
	prec int
	op   int
}{
	TOK_PLUS:  {1, ast.OpAdd},
	TOK_MINUS: {1, ast.OpSub},
	TOK_STAR:  {2, ast.OpMul},
	TOK_DIV:   {2, ast.OpDiv},
}

// expr := primary_expr {bin_op expr} ;
//
// Binary operators are parsed by precedence climbing: an operator is only
// consumed if its precedence is at least minPrec, and its right operand is
// parsed with a minimum of one above the operator's precedence so operators of
// equal precedence fold to the left.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	lhs := p.parsePrimaryExpr()

	for {
		entry, ok := binOpTable[p.tok.Kind]
		if !ok || entry.prec < minPrec {
			break
		}

		p.next()
		rhs := p.parseExpr(entry.prec + 1)

		lhs = p.arena.NewBinaryTerm(entry.op, lhs, rhs)
	}

	return lhs
}

// primary_expr := 'INTLIT' | 'IDENT' | '(' expr ')' ;
func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		p.next()
		return p.arena.NewIntLit(p.lookbehind.Span, p.lookbehind.Value)
	case TOK_IDENT:
		p.next()
		return p.arena.NewIdent(p.lookbehind.Span, p.lookbehind.Value)
	case TOK_LPAREN:
		start := p.want(TOK_LPAREN)
		inner := p.parseExpr(minPrecedence)
		end := p.want(TOK_RPAREN)

		return p.arena.NewParen(spanOver(start, end), inner)
	}

	p.rejectWithMsg("expected expression but got %s", describe(p.tok))
	return nil
}

// spanOver returns the span from the start of one token to the end of another.
func spanOver(start, end *Token) *report.TextSpan {
	return report.NewSpanOver(start.Span, end.Span)
}
