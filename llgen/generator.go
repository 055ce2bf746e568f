package llgen

import (
	"fmt"
	"strconv"

	"hydroc/ast"
	"hydroc/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator converts a Hydro AST into an LLVM module containing a single
// `main` function.  Variables are stack allocated `i64` slots which LLVM is
// free to promote to registers.  `exit` is lowered to a call to the C
// library's `exit`.
type Generator struct {
	// prog is the program being generated.
	prog *ast.Program

	// mod is the LLVM module being generated.
	mod *ir.Module

	// mainFunc is the generated `main` function.
	mainFunc *ir.Func

	// exitFunc is the declaration of the C `exit` function.
	exitFunc *ir.Func

	// block stores the current block being generated.
	block *ir.Block

	// localScopes is the stack of local scopes used during generation.
	localScopes []map[string]*ir.InstAlloca

	// blockCounter and slotCounter are used to give each generated block and
	// variable slot a unique name.
	blockCounter, slotCounter int
}

// NewGenerator creates a new LLVM generator for the given program.
func NewGenerator(prog *ast.Program) *Generator {
	return &Generator{
		prog: prog,
		mod:  ir.NewModule(),
	}
}

// Generate generates the LLVM module for a program.
func Generate(prog *ast.Program) (*ir.Module, error) {
	return NewGenerator(prog).Generate()
}

// Generate runs the generator.  It reports the same semantic errors as the
// assembly generator.
func (g *Generator) Generate() (mod *ir.Module, err error) {
	defer report.CatchErrors(&err)

	g.exitFunc = g.mod.NewFunc("exit", types.Void, ir.NewParam("status", types.I32))

	g.mainFunc = g.mod.NewFunc("main", types.I32)
	g.block = g.mainFunc.NewBlock("entry")

	g.pushScope()
	g.genScopeBody(g.prog.Scope)
	g.popScope()

	g.block.NewRet(constant.NewInt(types.I32, 0))

	return g.mod, nil
}

// -----------------------------------------------------------------------------

// appendBlock adds a new block to the main function.
func (g *Generator) appendBlock(kind string) *ir.Block {
	g.blockCounter++
	return g.mainFunc.NewBlock(fmt.Sprintf("%s.%d", kind, g.blockCounter))
}

// pushScope pushes a new local scope.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]*ir.InstAlloca))
}

// popScope pops the innermost local scope.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// lookup returns the slot of the innermost visible variable named by ident.
func (g *Generator) lookup(ident *ast.Ident) *ir.InstAlloca {
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if slot, ok := g.localScopes[i][ident.Name]; ok {
			return slot
		}
	}

	panic(report.Raise(ident.Span(), "undeclared variable `%s`", ident.Name))
}

// -----------------------------------------------------------------------------

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
		code := g.genExpr(v.Value)
		g.block.NewCall(g.exitFunc, g.block.NewTrunc(code, types.I32))
		g.block.NewUnreachable()

		// Anything after an exit is dead but still needs a block.
		g.block = g.appendBlock("dead")
	case *ast.LetStmt:
		init := g.genExpr(v.Init)

		scope := g.localScopes[len(g.localScopes)-1]
		if _, ok := scope[v.Name.Name]; ok {
			panic(report.Raise(v.Name.Span(), "variable `%s` is already declared in this scope", v.Name.Name))
		}

		slot := g.block.NewAlloca(types.I64)
		g.slotCounter++
		slot.SetName(fmt.Sprintf("%s.%d", v.Name.Name, g.slotCounter))
		g.block.NewStore(init, slot)
		scope[v.Name.Name] = slot
	case *ast.AssignStmt:
		slot := g.lookup(v.Name)
		g.block.NewStore(g.genExpr(v.Value), slot)
	case *ast.IfStmt:
		g.genIfStmt(v)
	case *ast.Scope:
		g.pushScope()
		g.genScopeBody(v)
		g.popScope()
	default:
		panic(fmt.Sprintf("unknown statement node %T", stmt))
	}
}

// genIfStmt generates an if statement with an optional else branch.
func (g *Generator) genIfStmt(ifStmt *ast.IfStmt) {
	cond := g.block.NewICmp(enum.IPredNE, g.genExpr(ifStmt.Cond), constant.NewInt(types.I64, 0))

	thenBlock := g.appendBlock("if.then")
	endBlock := g.appendBlock("if.end")

	// if there is no else, then the final "else" block is the ending block.
	elseBlock := endBlock
	if ifStmt.Else != nil {
		elseBlock = g.appendBlock("if.else")
	}

	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.block = thenBlock
	g.genBranch(ifStmt.Then)
	g.block.NewBr(endBlock)

	if ifStmt.Else != nil {
		g.block = elseBlock
		g.genBranch(ifStmt.Else)
		g.block.NewBr(endBlock)
	}

	g.block = endBlock
}

// genBranch generates a statement guarded by an if or else in its own scope.
func (g *Generator) genBranch(stmt ast.Stmt) {
	g.pushScope()
	g.genStmt(stmt)
	g.popScope()
}

// -----------------------------------------------------------------------------

// genExpr generates an expression and returns its `i64` value.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		n, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			panic(report.Raise(v.Span(), "integer literal `%s` does not fit in 64 bits", v.Value))
		}

		return constant.NewInt(types.I64, n)
	case *ast.Ident:
		return g.block.NewLoad(types.I64, g.lookup(v))
	case *ast.ParenExpr:
		return g.genExpr(v.Inner)
	case *ast.BinaryTerm:
		lhs := g.genExpr(v.Lhs)
		rhs := g.genExpr(v.Rhs)

		switch v.Op {
		case ast.OpAdd:
			return g.block.NewAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewSDiv(lhs, rhs)
		}
	}

	panic(fmt.Sprintf("unknown expression node %T", expr))
}
