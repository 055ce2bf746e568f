package syntax

import "hydroc/ast"

// program := scope EOF ;
func (p *Parser) parseProgram() *ast.Program {
	scope := p.parseScope(p.tok)

	if !p.has(TOK_EOF) {
		p.reject()
	}

	return &ast.Program{Scope: scope, Arena: p.arena}
}

// scope := {stmt} ;
//
// A scope ends at `}` or at the end of the token sequence.  start is the token
// the scope's span begins at.
func (p *Parser) parseScope(start *Token) *ast.Scope {
	scope := p.arena.NewScope(start.Span)

	for !p.has(TOK_RBRACE) && !p.has(TOK_EOF) {
		scope.Stmts = append(scope.Stmts, p.parseStmt())
	}

	if len(scope.Stmts) > 0 {
		scope.ASTBase = ast.NewASTBaseOver(start.Span, scope.Stmts[len(scope.Stmts)-1].Span())
	}

	return scope
}

// stmt := exit_stmt | let_stmt | assign_stmt | if_stmt | block ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_EXIT:
		return p.parseExitStmt()
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_IDENT:
		return p.parseAssignStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_EOF:
		p.rejectWithMsg("expected statement but got end of file")
	}

	p.reject()
	return nil
}

// exit_stmt := 'exit' expr ';' ;
func (p *Parser) parseExitStmt() ast.Stmt {
	start := p.want(TOK_EXIT)

	value := p.parseExpr(minPrecedence)
	end := p.want(TOK_SEMI)

	return p.arena.NewExit(spanOver(start, end), value)
}

// let_stmt := 'let' 'IDENT' '=' expr ';' ;
func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.want(TOK_LET)

	nameTok := p.want(TOK_IDENT)
	name := p.arena.NewIdent(nameTok.Span, nameTok.Value)

	p.want(TOK_ASSIGN)
	init := p.parseExpr(minPrecedence)
	end := p.want(TOK_SEMI)

	return p.arena.NewLet(spanOver(start, end), name, init)
}

// assign_stmt := 'IDENT' '=' expr ';' ;
func (p *Parser) parseAssignStmt() ast.Stmt {
	nameTok := p.want(TOK_IDENT)
	name := p.arena.NewIdent(nameTok.Span, nameTok.Value)

	p.want(TOK_ASSIGN)
	value := p.parseExpr(minPrecedence)
	end := p.want(TOK_SEMI)

	return p.arena.NewAssign(spanOver(nameTok, end), name, value)
}

// if_stmt := 'if' expr stmt ['else' stmt] ;
func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.want(TOK_IF)

	cond := p.parseExpr(minPrecedence)
	then := p.parseStmt()

	var elseStmt ast.Stmt
	if p.has(TOK_ELSE) {
		p.next()
		elseStmt = p.parseStmt()
	}

	end := p.lookbehind
	return p.arena.NewIf(spanOver(start, end), cond, then, elseStmt)
}

// block := '{' scope '}' ;
func (p *Parser) parseBlock() ast.Stmt {
	start := p.want(TOK_LBRACE)

	scope := p.parseScope(start)
	end := p.want(TOK_RBRACE)

	scope.ASTBase = ast.NewASTBaseOver(start.Span, end.Span)
	return scope
}
