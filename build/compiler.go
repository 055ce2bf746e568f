package build

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"hydroc/ast"
	"hydroc/generate"
	"hydroc/llgen"
	"hydroc/mods"
	"hydroc/report"
	"hydroc/syntax"
)

// TargetName is the name of the only target the compiler supports.
const TargetName = "linux/amd64"

// Compiler is the data structure responsible for maintaining all high-level
// state of a single compilation.
type Compiler struct {
	// srcPath is the path to the source file being compiled.
	srcPath string

	// profile is the build profile used to produce output.
	profile *mods.BuildProfile

	// ctx is the compilation context of the source file.
	ctx *report.CompilationContext

	// dumpOut is where the tokens and the syntax tree are dumped.  It is nil
	// if no dump was requested.
	dumpOut io.Writer
}

// NewCompiler creates a new compiler for a given source file and build profile.
func NewCompiler(srcPath string, profile *mods.BuildProfile) *Compiler {
	return &Compiler{
		srcPath: srcPath,
		profile: profile,
	}
}

// DumpTo makes the compiler dump the token stream and syntax tree to w after
// parsing.
func (c *Compiler) DumpTo(w io.Writer) {
	c.dumpOut = w
}

// Compile runs the full compilation pipeline and writes the output file.  All
// errors are reported: it returns whether or not compilation succeeded.  No
// output is written if any phase fails.
func (c *Compiler) Compile() bool {
	startTime := time.Now()
	report.ReportCompileHeader(TargetName, mods.FormatName(c.profile.OutputFormat))

	ok := c.compile()

	report.ReportCompilationFinished(c.profile.OutputPath, time.Since(startTime))
	return ok && !report.AnyErrors()
}

// compile runs each phase in turn stopping at the first that fails.
func (c *Compiler) compile() bool {
	src, err := os.ReadFile(c.srcPath)
	if err != nil {
		report.ReportFatal("failed to read source file: %s", err)
		return false
	}

	c.ctx = &report.CompilationContext{
		ReprPath: filepath.Base(c.srcPath),
		Source:   string(src),
	}

	// lexing
	report.ReportBeginPhase("Lexing")

	l := syntax.NewLexer(c.ctx.Source)
	tokens, err := l.Tokenize()
	for _, warning := range l.Warnings() {
		report.ReportCompileWarning(c.ctx, warning.Span, "%s", warning.Message)
	}

	if err != nil {
		report.ReportError(c.ctx, err)
		return false
	}

	report.ReportEndPhase()

	// parsing
	report.ReportBeginPhase("Parsing")

	prog, err := syntax.Parse(tokens)
	if err != nil {
		report.ReportError(c.ctx, err)
		return false
	}
	defer prog.Arena.Release()

	report.ReportEndPhase()

	if c.dumpOut != nil {
		c.dump(tokens, prog)
	}

	// generation
	report.ReportBeginPhase("Generating")

	var output string
	if c.profile.OutputFormat == mods.FormatLLVM {
		mod, err := llgen.Generate(prog)
		if err != nil {
			report.ReportError(c.ctx, err)
			return false
		}

		output = mod.String()
	} else {
		output, err = generate.Generate(prog)
		if err != nil {
			report.ReportError(c.ctx, err)
			return false
		}
	}

	report.ReportEndPhase()

	switch c.profile.OutputFormat {
	case mods.FormatASM, mods.FormatLLVM:
		return writeOutputFile(c.profile.OutputPath, output)
	default:
		return c.assembleAndLink(output)
	}
}

// dump writes the token stream and the syntax tree to the dump writer.
func (c *Compiler) dump(tokens []*syntax.Token, prog *ast.Program) {
	for _, tok := range tokens {
		io.WriteString(c.dumpOut, tok.String()+"\n")
	}

	io.WriteString(c.dumpOut, "\n")
	ast.Dump(c.dumpOut, prog)
}

// -----------------------------------------------------------------------------

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) bool {
	if dir := filepath.Dir(fpath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			report.ReportFatal("failed to create output directory `%s`: %s", dir, err.Error())
			return false
		}
	}

	// open or create the file
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		report.ReportFatal("failed to open output file `%s`: %s", fpath, err.Error())
		return false
	}
	defer file.Close()

	// write the data
	_, err = file.WriteString(content)
	if err != nil {
		report.ReportFatal("failed to write output to file `%s`: %s", fpath, err.Error())
		return false
	}

	return true
}
