package build

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"hydroc/common"
	"hydroc/mods"
	"hydroc/report"

	"github.com/stretchr/testify/require"
)

// writeSource writes a source file to a new temporary directory.
func writeSource(t *testing.T, src string) string {
	t.Helper()

	srcPath := filepath.Join(t.TempDir(), "main"+common.SrcFileExtension)
	require.NoError(t, os.WriteFile(srcPath, []byte(src), 0644))

	return srcPath
}

// profileFor creates a profile writing the given format next to srcPath.
func profileFor(srcPath string, format int) *mods.BuildProfile {
	prof := mods.DefaultProfile(srcPath)
	prof.OutputFormat = format
	prof.OutputPath = strings.TrimSuffix(srcPath, common.SrcFileExtension) + mods.FormatExtension(format)

	if format == mods.FormatBin {
		prof.OutputPath += ".out"
	}

	return prof
}

func TestCompileAsm(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	srcPath := writeSource(t, "let a = 6; exit a * 7;")
	prof := profileFor(srcPath, mods.FormatASM)

	require.True(t, NewCompiler(srcPath, prof).Compile())

	asm, err := os.ReadFile(prof.OutputPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(asm), "global _start\n_start:\n"))
	require.Contains(t, string(asm), "    imul rax, rbx\n")
}

func TestCompileLLVM(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	srcPath := writeSource(t, "exit 3;")
	prof := profileFor(srcPath, mods.FormatLLVM)

	require.True(t, NewCompiler(srcPath, prof).Compile())

	ir, err := os.ReadFile(prof.OutputPath)
	require.NoError(t, err)
	require.Contains(t, string(ir), "define i32 @main()")
}

func TestCompileFailureWritesNothing(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"syntax error", "exit 1"},
		{"semantic error", "exit b;"},
		{"redeclaration", "let a = 1; let a = 2;"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report.InitReporter(report.LogLevelSilent)

			srcPath := writeSource(t, tc.src)
			prof := profileFor(srcPath, mods.FormatASM)

			require.False(t, NewCompiler(srcPath, prof).Compile())
			require.True(t, report.AnyErrors())

			_, err := os.Stat(prof.OutputPath)
			require.True(t, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestCompileMissingSource(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	srcPath := filepath.Join(t.TempDir(), "missing.hy")
	require.False(t, NewCompiler(srcPath, profileFor(srcPath, mods.FormatASM)).Compile())
}

func TestCompileReportsErrors(t *testing.T) {
	out := &bytes.Buffer{}
	report.SetOutput(out)
	defer report.SetOutput(os.Stdout)
	report.InitReporter(report.LogLevelError)

	srcPath := writeSource(t, "let a = 1;\nexit a +;")
	require.False(t, NewCompiler(srcPath, profileFor(srcPath, mods.FormatASM)).Compile())

	require.Contains(t, out.String(), "main.hy:2:9:")
	require.Contains(t, out.String(), "expected expression but got token `;`")
}

func TestCompileWarningsDoNotFail(t *testing.T) {
	out := &bytes.Buffer{}
	report.SetOutput(out)
	defer report.SetOutput(os.Stdout)
	report.InitReporter(report.LogLevelWarn)

	srcPath := writeSource(t, "exit 0; @")
	require.True(t, NewCompiler(srcPath, profileFor(srcPath, mods.FormatASM)).Compile())

	require.Contains(t, out.String(), "unrecognized character `@` ignored")
}

func TestCompileDump(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	srcPath := writeSource(t, "exit 1 + 2;")
	c := NewCompiler(srcPath, profileFor(srcPath, mods.FormatASM))

	dump := &bytes.Buffer{}
	c.DumpTo(dump)
	require.True(t, c.Compile())

	require.Contains(t, dump.String(), "exit 1:1\n")
	require.Contains(t, dump.String(), "integer literal(2) 1:10\n")
	require.Contains(t, dump.String(), "      BinaryTerm +\n")
}

func TestCompileExecutable(t *testing.T) {
	if _, err := exec.LookPath("nasm"); err != nil {
		t.Skip("nasm is not installed")
	}

	if _, err := exec.LookPath("ld"); err != nil {
		t.Skip("ld is not installed")
	}

	testCases := []struct {
		name string
		src  string
		code int
	}{
		{"exit literal", "exit 7;", 7},
		{"precedence", "exit 1 + 2 * 3;", 7},
		{"left associative", "exit 10 - 4 - 3;", 3},
		{"shadowing", "let a = 5; { let a = 6; exit a; }", 6},
		{"if else", "let x = 0; if x exit 1; else exit 42;", 42},
		{"fall through", "let x = 1;", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report.InitReporter(report.LogLevelSilent)

			srcPath := writeSource(t, tc.src)
			prof := profileFor(srcPath, mods.FormatBin)
			require.True(t, NewCompiler(srcPath, prof).Compile())

			// intermediates are cleaned up unless kept
			_, err := os.Stat(strings.TrimSuffix(srcPath, common.SrcFileExtension) + ".o")
			require.True(t, errors.Is(err, os.ErrNotExist))

			err = exec.Command(prof.OutputPath).Run()
			if tc.code == 0 {
				require.NoError(t, err)
			} else {
				var exitErr *exec.ExitError
				require.True(t, errors.As(err, &exitErr))
				require.Equal(t, tc.code, exitErr.ExitCode())
			}
		})
	}
}

func TestCompileKeepsIntermediates(t *testing.T) {
	if _, err := exec.LookPath("nasm"); err != nil {
		t.Skip("nasm is not installed")
	}

	report.InitReporter(report.LogLevelSilent)

	srcPath := writeSource(t, "exit 0;")
	prof := profileFor(srcPath, mods.FormatObject)
	prof.OutputPath = filepath.Join(filepath.Dir(srcPath), "prog.o")
	prof.KeepIntermediates = true

	require.True(t, NewCompiler(srcPath, prof).Compile())

	_, err := os.Stat(prof.OutputPath)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(filepath.Dir(srcPath), "main.asm"))
	require.NoError(t, err)
}

func TestCompileMissingAssembler(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	srcPath := writeSource(t, "exit 0;")
	prof := profileFor(srcPath, mods.FormatObject)
	prof.Assembler = filepath.Join(t.TempDir(), "no-such-assembler")

	require.False(t, NewCompiler(srcPath, prof).Compile())

	_, err := os.Stat(prof.OutputPath)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
