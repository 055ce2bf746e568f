package ast

import "hydroc/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Stmt is implemented by every statement node: ExitStmt, LetStmt, AssignStmt,
// IfStmt and Scope.
type Stmt interface {
	ASTNode
	stmtNode()
}

// Expr is implemented by every expression node: IntLit, Ident, ParenExpr and
// BinaryTerm.
type Expr interface {
	ASTNode
	exprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	// The top level scope.
	Scope *Scope

	// The arena owning every node reachable from Scope.
	Arena *Arena
}

// Scope is an ordered sequence of statements.  Scopes nest: a scope is itself
// a statement.
type Scope struct {
	ASTBase

	Stmts []Stmt
}

// ExitStmt terminates the process with the value of its expression.
type ExitStmt struct {
	ASTBase

	Value Expr
}

// LetStmt declares a new variable in the enclosing scope.
type LetStmt struct {
	ASTBase

	Name *Ident
	Init Expr
}

// AssignStmt stores a new value into an already declared variable.
type AssignStmt struct {
	ASTBase

	Name  *Ident
	Value Expr
}

// IfStmt runs Then if Cond is non-zero and Else (if present) otherwise.
type IfStmt struct {
	ASTBase

	Cond Expr
	Then Stmt

	// Else may be nil.
	Else Stmt
}

func (*Scope) stmtNode()      {}
func (*ExitStmt) stmtNode()   {}
func (*LetStmt) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}

// -----------------------------------------------------------------------------

// IntLit is an unsigned decimal integer literal.  The value is kept as source
// text.
type IntLit struct {
	ASTBase

	Value string
}

// Ident is a variable reference.
type Ident struct {
	ASTBase

	Name string
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	ASTBase

	Inner Expr
}

// Enumeration of binary operators.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
)

// OpNames maps binary operators to their source symbol.
var OpNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

// BinaryTerm is a binary arithmetic operation.
type BinaryTerm struct {
	ASTBase

	// Op must be one of the enumerated binary operators.
	Op int

	Lhs, Rhs Expr
}

func (*IntLit) exprNode()     {}
func (*Ident) exprNode()      {}
func (*ParenExpr) exprNode()  {}
func (*BinaryTerm) exprNode() {}
