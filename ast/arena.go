package ast

import "hydroc/report"

// chunkSize is the number of nodes in each chunk of an arena slab.
const chunkSize = 128

// slab is a bump allocator for a single node type.  Nodes are stored in fixed
// capacity chunks which are never grown so pointers into them stay valid.
type slab[T any] struct {
	chunks [][]T
}

func (s *slab[T]) alloc() *T {
	n := len(s.chunks)
	if n == 0 || len(s.chunks[n-1]) == cap(s.chunks[n-1]) {
		s.chunks = append(s.chunks, make([]T, 0, chunkSize))
		n++
	}

	var zero T
	chunk := append(s.chunks[n-1], zero)
	s.chunks[n-1] = chunk

	return &chunk[len(chunk)-1]
}

// Arena owns every node of a single AST.  Nodes are never freed individually:
// the whole arena is released at once.  References between nodes always point
// into the same arena.
type Arena struct {
	scopes  slab[Scope]
	exits   slab[ExitStmt]
	lets    slab[LetStmt]
	assigns slab[AssignStmt]
	ifs     slab[IfStmt]

	intLits slab[IntLit]
	idents  slab[Ident]
	parens  slab[ParenExpr]
	terms   slab[BinaryTerm]

	count int
}

// NewArena creates a new, empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of nodes allocated from the arena.
func (a *Arena) Len() int {
	return a.count
}

// Release drops every node allocated from the arena.  The arena can be reused
// afterwards.
func (a *Arena) Release() {
	*a = Arena{}
}

// -----------------------------------------------------------------------------

// NewScope allocates an empty scope.  Its statements are appended by the
// caller.
func (a *Arena) NewScope(span *report.TextSpan) *Scope {
	a.count++
	s := a.scopes.alloc()
	s.ASTBase = NewASTBaseOn(span)
	return s
}

// NewExit allocates an exit statement.
func (a *Arena) NewExit(span *report.TextSpan, value Expr) *ExitStmt {
	a.count++
	s := a.exits.alloc()
	s.ASTBase = NewASTBaseOn(span)
	s.Value = value
	return s
}

// NewLet allocates a variable declaration.
func (a *Arena) NewLet(span *report.TextSpan, name *Ident, init Expr) *LetStmt {
	a.count++
	s := a.lets.alloc()
	s.ASTBase = NewASTBaseOn(span)
	s.Name = name
	s.Init = init
	return s
}

// NewAssign allocates an assignment.
func (a *Arena) NewAssign(span *report.TextSpan, name *Ident, value Expr) *AssignStmt {
	a.count++
	s := a.assigns.alloc()
	s.ASTBase = NewASTBaseOn(span)
	s.Name = name
	s.Value = value
	return s
}

// NewIf allocates an if statement.  elseStmt may be nil.
func (a *Arena) NewIf(span *report.TextSpan, cond Expr, then, elseStmt Stmt) *IfStmt {
	a.count++
	s := a.ifs.alloc()
	s.ASTBase = NewASTBaseOn(span)
	s.Cond = cond
	s.Then = then
	s.Else = elseStmt
	return s
}

// NewIntLit allocates an integer literal.
func (a *Arena) NewIntLit(span *report.TextSpan, value string) *IntLit {
	a.count++
	e := a.intLits.alloc()
	e.ASTBase = NewASTBaseOn(span)
	e.Value = value
	return e
}

// NewIdent allocates an identifier.
func (a *Arena) NewIdent(span *report.TextSpan, name string) *Ident {
	a.count++
	e := a.idents.alloc()
	e.ASTBase = NewASTBaseOn(span)
	e.Name = name
	return e
}

// NewParen allocates a parenthesized expression.
func (a *Arena) NewParen(span *report.TextSpan, inner Expr) *ParenExpr {
	a.count++
	e := a.parens.alloc()
	e.ASTBase = NewASTBaseOn(span)
	e.Inner = inner
	return e
}

// NewBinaryTerm allocates a binary operation spanning both operands.
func (a *Arena) NewBinaryTerm(op int, lhs, rhs Expr) *BinaryTerm {
	a.count++
	e := a.terms.alloc()
	e.ASTBase = NewASTBaseOver(lhs.Span(), rhs.Span())
	e.Op = op
	e.Lhs = lhs
	e.Rhs = rhs
	return e
}
