package generate

import (
	"fmt"
	"strconv"

	"hydroc/ast"
	"hydroc/report"
)

// genExpr generates an expression, leaving its value on top of the stack.
func (g *Generator) genExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.IntLit:
		if _, err := strconv.ParseInt(v.Value, 10, 64); err != nil {
			panic(report.Raise(v.Span(), "integer literal `%s` does not fit in 64 bits", v.Value))
		}

		g.out.emitInst("mov rax, %s", v.Value)
		g.push("rax")
	case *ast.Ident:
		variable := g.lookup(v)
		g.push(fmt.Sprintf("QWORD [rsp + %d]", g.stackOffset(variable.slot)))
	case *ast.ParenExpr:
		g.genExpr(v.Inner)
	case *ast.BinaryTerm:
		g.genBinaryTerm(v)
	default:
		panic(fmt.Sprintf("unknown expression node %T", expr))
	}
}

// genBinaryTerm evaluates the left then the right operand and replaces them on
// the stack with the result.  Division is truncating signed division.
func (g *Generator) genBinaryTerm(term *ast.BinaryTerm) {
	g.genExpr(term.Lhs)
	g.genExpr(term.Rhs)

	g.pop("rbx")
	g.pop("rax")

	switch term.Op {
	case ast.OpAdd:
		g.out.emitInst("add rax, rbx")
	case ast.OpSub:
		g.out.emitInst("sub rax, rbx")
	case ast.OpMul:
		g.out.emitInst("imul rax, rbx")
	case ast.OpDiv:
		g.out.emitInst("cqo")
		g.out.emitInst("idiv rbx")
	}

	g.push("rax")
}
