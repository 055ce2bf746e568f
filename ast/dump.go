package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual form of prog to w.
func Dump(w io.Writer, prog *Program) {
	d := dumper{w: w}
	d.line("Program")
	d.depth++
	d.stmt(prog.Scope)
}

type dumper struct {
	w     io.Writer
	depth int
}

func (d *dumper) line(format string, args ...interface{}) {
	fmt.Fprint(d.w, strings.Repeat("  ", d.depth))
	fmt.Fprintf(d.w, format+"\n", args...)
}

func (d *dumper) stmt(stmt Stmt) {
	switch v := stmt.(type) {
	case *Scope:
		d.line("Scope")
		d.depth++
		for _, s := range v.Stmts {
			d.stmt(s)
		}
		d.depth--
	case *ExitStmt:
		d.line("Exit")
		d.nested(v.Value)
	case *LetStmt:
		d.line("Let %s", v.Name.Name)
		d.nested(v.Init)
	case *AssignStmt:
		d.line("Assign %s", v.Name.Name)
		d.nested(v.Value)
	case *IfStmt:
		d.line("If")
		d.depth++
		d.expr(v.Cond)
		d.stmt(v.Then)
		if v.Else != nil {
			d.line("Else")
			d.depth++
			d.stmt(v.Else)
			d.depth--
		}
		d.depth--
	}
}

func (d *dumper) nested(expr Expr) {
	d.depth++
	d.expr(expr)
	d.depth--
}

func (d *dumper) expr(expr Expr) {
	switch v := expr.(type) {
	case *IntLit:
		d.line("IntLit %s", v.Value)
	case *Ident:
		d.line("Ident %s", v.Name)
	case *ParenExpr:
		d.line("Paren")
		d.nested(v.Inner)
	case *BinaryTerm:
		d.line("BinaryTerm %s", OpNames[v.Op])
		d.depth++
		d.expr(v.Lhs)
		d.expr(v.Rhs)
		d.depth--
	}
}
