package generate

import (
	"strings"
	"testing"

	"hydroc/ast"
	"hydroc/report"
	"hydroc/syntax"

	"github.com/stretchr/testify/require"
)

// parseProgram tokenizes and parses src, failing the test on any error.
func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()

	toks, err := syntax.Tokenize(src)
	require.NoError(t, err)

	prog, err := syntax.Parse(toks)
	require.NoError(t, err)

	return prog
}

// generateSource compiles src to assembly.
func generateSource(t *testing.T, src string) string {
	t.Helper()

	asm, err := Generate(parseProgram(t, src))
	require.NoError(t, err)

	return asm
}

func TestGenerateExitLiteral(t *testing.T) {
	expected := strings.Join([]string{
		"global _start",
		"_start:",
		"    mov rax, 7",
		"    push rax",
		"    mov rax, 60",
		"    pop rdi",
		"    syscall",
		"    mov rax, 60",
		"    mov rdi, 0",
		"    syscall",
	}, "\n") + "\n"

	require.Equal(t, expected, generateSource(t, "exit 7;"))
}

func TestGenerateEmptyProgram(t *testing.T) {
	asm := generateSource(t, "// nothing here")
	require.Equal(t, "global _start\n_start:\n    mov rax, 60\n    mov rdi, 0\n    syscall\n", asm)
}

func TestGenerateVariableRead(t *testing.T) {
	asm := generateSource(t, "let a = 1; let b = 2; exit a;")

	// a is one word below b
	require.Contains(t, asm, "    push QWORD [rsp + 8]\n")
}

func TestGenerateExitCodes(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		code int
	}{
		{"literal", "exit 7;", 7},
		{"fall through", "let a = 3;", 0},
		{"empty", "", 0},
		{"precedence", "exit 1 + 2 * 3;", 7},
		{"parentheses", "exit (1 + 2) * 3;", 9},
		{"left associative subtraction", "exit 10 - 4 - 3;", 3},
		{"left associative division", "exit 8 / 4 / 2;", 1},
		{"truncating division", "exit 7 / 2;", 3},
		{"negative division truncates toward zero", "let n = 0 - 7; exit n / 2 + 10;", 7},
		{"variables", "let a = 3; let b = 4; exit a * b - b;", 8},
		{"assignment", "let x = 1; x = x + 41; exit x;", 42},
		{"assign outer from inner scope", "let x = 1; { let y = 5; x = y * 2; } exit x;", 10},
		{"shadowing", "let a = 5; { let a = 6; exit a; }", 6},
		{"shadow ends with scope", "let a = 5; { let a = 6; } exit a;", 5},
		{"scope teardown keeps outer slots", "let a = 1; { let b = 2; let c = 3; } let d = 4; exit a + d;", 5},
		{"false if skips", "let x = 0; if x exit 1; exit 2;", 2},
		{"true if runs", "if 3 - 2 { exit 4; } exit 5;", 4},
		{"else branch", "if 0 exit 1; else exit 3;", 3},
		{"then branch", "if 1 exit 1; else exit 3;", 1},
		{"if block updates variable", "let a = 2; let b = 3; if a { let c = a * b; a = c; } exit a + b;", 9},
		{"bare let branch", "let a = 1; if a let y = 3; exit a + 3;", 4},
		{"bare let else branch", "let a = 0; if a exit 9; else let z = 2; exit a + 6;", 6},
		{"nested if else", "let a = 2; if a - 2 exit 1; else if a exit 2; else exit 3;", 2},
		{"exit code wraps", "exit 256 + 1;", 1},
		{"comments", "let a = 1; /* a = 2; */ // a = 3;\nexit a;", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := runAsm(generateSource(t, tc.src))
			require.NoError(t, err)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestGenerateScopeTeardown(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		teardown []string
	}{
		{"empty scope", "{ }", []string{"add rsp, 0"}},
		{"two lets", "{ let a = 1; let b = 2; }", []string{"add rsp, 16"}},
		{"nested", "{ let a = 1; { let b = 2; let c = 3; let d = 4; } }", []string{"add rsp, 24", "add rsp, 8"}},
		{"exit does not leave a slot", "{ let a = 1; exit a; }", []string{"add rsp, 8"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var teardown []string
			for _, line := range strings.Split(generateSource(t, tc.src), "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "add rsp, ") {
					teardown = append(teardown, line)
				}
			}

			require.Equal(t, tc.teardown, teardown)
		})
	}
}

func TestGenerateLabels(t *testing.T) {
	asm := generateSource(t, "if 1 exit 1; if 0 exit 2; else exit 3;")

	require.Contains(t, asm, "    jz label1\n")
	require.Contains(t, asm, "label1:\n")
	require.Contains(t, asm, "    jz label2\n")
	require.Contains(t, asm, "    jmp label3\n")
	require.Contains(t, asm, "label2:\n")
	require.Contains(t, asm, "label3:\n")
}

func TestGenerateIsIndependent(t *testing.T) {
	src := "let a = 1; if a { let b = 2; exit b; } else exit 3;"

	// label numbering and stack bookkeeping start over for every program
	first := generateSource(t, src)
	second := generateSource(t, src)
	require.Equal(t, first, second)
}

func TestGenerateErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		message string
		pos     string
	}{
		{"redeclaration", "let a = 1; let a = 2;", "variable `a` is already declared in this scope", "1:16"},
		{"redeclaration in nested scope", "{ let b = 1;\n  let b = 2; }", "variable `b` is already declared in this scope", "2:7"},
		{"undeclared read", "exit b;", "undeclared variable `b`", "1:6"},
		{"undeclared assign", "x = 1;", "undeclared variable `x`", "1:1"},
		{"read after scope ends", "{ let a = 1; } exit a;", "undeclared variable `a`", "1:21"},
		{"self reference", "let a = a;", "undeclared variable `a`", "1:9"},
		{"literal too large", "exit 9223372036854775808;", "integer literal `9223372036854775808` does not fit in 64 bits", "1:6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(parseProgram(t, tc.src))
			require.Error(t, err)

			cerr, ok := err.(*report.LocalCompileError)
			require.True(t, ok, "error should be a compile error: %v", err)
			require.Equal(t, tc.message, cerr.Message)
			require.Equal(t, tc.pos, cerr.Span.String())
		})
	}
}
