package generate

import (
	"strings"

	"hydroc/ast"
	"hydroc/common"
	"hydroc/report"
)

// Generator converts a Hydro AST into x86-64 NASM assembly for Linux.  The
// generated code is a stack machine: every expression pushes exactly one word
// onto the machine stack and variables live in the stack slots their
// initializers were pushed to.  A generator is used for exactly one program
// and owns all of its state, so separate compilations never interfere.
type Generator struct {
	// prog is the program being generated.
	prog *ast.Program

	// out is the assembly text being built.
	out emitter

	// stackSize is the number of words currently on the stack.
	stackSize int

	// vars is the table of visible variables in declaration order.
	vars []variable

	// scopeMarks is the stack of variable table lengths recorded on entry to
	// each open scope.
	scopeMarks []int

	// labelCounter is the number of labels created so far.
	labelCounter int
}

// variable is a declared variable and the stack slot it occupies.
type variable struct {
	name string

	// slot is the stack depth (in words) at which the variable was pushed.
	slot int
}

// NewGenerator creates a new generator for the given program.
func NewGenerator(prog *ast.Program) *Generator {
	return &Generator{
		prog: prog,
		out:  emitter{b: &strings.Builder{}},
	}
}

// Generate generates the assembly text for a program.
func Generate(prog *ast.Program) (string, error) {
	return NewGenerator(prog).Generate()
}

// Generate runs the generator.  Semantic errors (redeclared or undeclared
// variables) stop generation and are returned.
func (g *Generator) Generate() (asm string, err error) {
	defer report.CatchErrors(&err)

	g.out.emit("global _start")
	g.out.emit("_start:")

	g.genScopeBody(g.prog.Scope)

	// Falling off the end of the program exits with code 0.
	g.out.emitInst("mov rax, 60")
	g.out.emitInst("mov rdi, 0")
	g.out.emitInst("syscall")

	return g.out.String(), nil
}

// -----------------------------------------------------------------------------

// push pushes an operand onto the stack.
func (g *Generator) push(operand string) {
	g.out.emitInst("push %s", operand)
	g.stackSize++
}

// pop pops the top of the stack into a register.
func (g *Generator) pop(reg string) {
	g.out.emitInst("pop %s", reg)
	g.stackSize--
}

// stackOffset returns the byte offset from the stack pointer of a slot.
func (g *Generator) stackOffset(slot int) int {
	return (g.stackSize - slot - 1) * common.WordSize
}

// newLabel creates a new, unique label.
func (g *Generator) newLabel() string {
	g.labelCounter++
	return labelName(g.labelCounter)
}

// -----------------------------------------------------------------------------

// beginScope opens a new lexical scope.
func (g *Generator) beginScope() {
	g.scopeMarks = append(g.scopeMarks, len(g.vars))
}

// endScope closes the innermost scope and deallocates the stack slots of every
// variable declared directly within it.
func (g *Generator) endScope() {
	mark := g.scopeMarks[len(g.scopeMarks)-1]
	g.scopeMarks = g.scopeMarks[:len(g.scopeMarks)-1]

	popCount := len(g.vars) - mark
	g.out.emitInst("add rsp, %d", popCount*common.WordSize)

	g.stackSize -= popCount
	g.vars = g.vars[:mark]
}

// currentScopeMark returns the length of the variable table when the innermost
// scope was entered.
func (g *Generator) currentScopeMark() int {
	if len(g.scopeMarks) == 0 {
		return 0
	}

	return g.scopeMarks[len(g.scopeMarks)-1]
}

// declare binds name to the slot on top of the stack.  It is an error to
// declare a name twice in the same scope.
func (g *Generator) declare(name *ast.Ident) {
	if g.lookupInScope(name.Name) {
		panic(report.Raise(name.Span(), "variable `%s` is already declared in this scope", name.Name))
	}

	g.vars = append(g.vars, variable{name: name.Name, slot: g.stackSize - 1})
}

// lookupInScope returns whether name is declared in the innermost scope.
func (g *Generator) lookupInScope(name string) bool {
	for _, v := range g.vars[g.currentScopeMark():] {
		if v.name == name {
			return true
		}
	}

	return false
}

// lookup returns the innermost visible variable with the given name.
func (g *Generator) lookup(name *ast.Ident) variable {
	for i := len(g.vars) - 1; i >= 0; i-- {
		if g.vars[i].name == name.Name {
			return g.vars[i]
		}
	}

	panic(report.Raise(name.Span(), "undeclared variable `%s`", name.Name))
}
