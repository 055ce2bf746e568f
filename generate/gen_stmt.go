package generate

import (
	"fmt"

	"hydroc/ast"
)

// genScopeBody generates each statement of a scope in order.
func (g *Generator) genScopeBody(scope *ast.Scope) {
	for _, stmt := range scope.Stmts {
		g.genStmt(stmt)
	}
}

// genStmt generates a single statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ExitStmt:
		g.genExpr(v.Value)

		g.out.emitInst("mov rax, 60")
		g.pop("rdi")
		g.out.emitInst("syscall")
	case *ast.LetStmt:
		// The initializer's pushed value becomes the variable's slot.
		g.genExpr(v.Init)
		g.declare(v.Name)
	case *ast.AssignStmt:
		target := g.lookup(v.Name)

		g.genExpr(v.Value)
		g.pop("rax")
		g.out.emitInst("mov QWORD [rsp + %d], rax", g.stackOffset(target.slot))
	case *ast.IfStmt:
		g.genIfStmt(v)
	case *ast.Scope:
		g.beginScope()
		g.genScopeBody(v)
		g.endScope()
	default:
		panic(fmt.Sprintf("unknown statement node %T", stmt))
	}
}

// genIfStmt generates an if statement.  A zero condition jumps past the guarded
// statement: to the else branch if there is one and to the end otherwise.
func (g *Generator) genIfStmt(ifStmt *ast.IfStmt) {
	g.genExpr(ifStmt.Cond)
	g.pop("rax")
	g.out.emitInst("test rax, rax")

	if ifStmt.Else == nil {
		endLabel := g.newLabel()

		g.out.emitInst("jz %s", endLabel)
		g.genBranch(ifStmt.Then)
		g.out.emitLabel(endLabel)
		return
	}

	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.out.emitInst("jz %s", elseLabel)
	g.genBranch(ifStmt.Then)
	g.out.emitInst("jmp %s", endLabel)

	g.out.emitLabel(elseLabel)
	g.genBranch(ifStmt.Else)
	g.out.emitLabel(endLabel)
}

// genBranch generates the statement guarded by an if or else.  A bare `let`
// is given its own scope so that the stack has the same depth whichever way
// the branch goes.
func (g *Generator) genBranch(stmt ast.Stmt) {
	if _, ok := stmt.(*ast.LetStmt); ok {
		g.beginScope()
		g.genStmt(stmt)
		g.endScope()
	} else {
		g.genStmt(stmt)
	}
}
