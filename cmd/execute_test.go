package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"hydroc/common"
	"hydroc/mods"
	"hydroc/report"

	"github.com/stretchr/testify/require"
)

const testModuleFile = `
[module]
name = "calc"

[[module.profiles]]
name = "debug"
output = "bin/calc"
format = "exe"
default = true

[[module.profiles]]
name = "ir"
output = "calc.ll"
format = "llvm"
`

func TestResolveProfileWithoutModule(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.hy")

	testCases := []struct {
		name       string
		format     string
		output     string
		wantFormat int
		wantOutput string
	}{
		{"default", "", "", mods.FormatASM, filepath.Join(dir, "main.asm")},
		{"format override", "obj", "", mods.FormatObject, filepath.Join(dir, "main.o")},
		{"executable", "exe", "", mods.FormatBin, filepath.Join(dir, "main")},
		{"output override", "llvm", filepath.Join(dir, "out.ll"), mods.FormatLLVM, filepath.Join(dir, "out.ll")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prof, err := resolveProfile(srcPath, "", "", tc.format, tc.output)
			require.NoError(t, err)
			require.Equal(t, tc.wantFormat, prof.OutputFormat)
			require.Equal(t, tc.wantOutput, prof.OutputPath)
		})
	}
}

func TestResolveProfileWithModule(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.hy")
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ModuleFileName), []byte(testModuleFile), 0644))

	// found next to the source file
	prof, err := resolveProfile(srcPath, "", "", "", "")
	require.NoError(t, err)
	require.Equal(t, "debug", prof.Name)
	require.Equal(t, filepath.Join(dir, "bin", "calc"), prof.OutputPath)

	// the format override keeps the profile's output path
	prof, err = resolveProfile(srcPath, "", "", "asm", "")
	require.NoError(t, err)
	require.Equal(t, mods.FormatASM, prof.OutputFormat)
	require.Equal(t, filepath.Join(dir, "bin", "calc"), prof.OutputPath)

	// an explicit config path and profile
	otherSrc := filepath.Join(t.TempDir(), "other.hy")
	prof, err = resolveProfile(otherSrc, filepath.Join(dir, common.ModuleFileName), "ir", "", "")
	require.NoError(t, err)
	require.Equal(t, mods.FormatLLVM, prof.OutputFormat)
}

func TestResolveProfileErrors(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	srcPath := filepath.Join(t.TempDir(), "main.hy")

	_, err := resolveProfile(srcPath, "", "debug", "", "")
	require.Error(t, err)

	_, err = resolveProfile(srcPath, "", "", "wasm", "")
	require.Error(t, err)

	_, err = resolveProfile(srcPath, filepath.Join(t.TempDir(), common.ModuleFileName), "", "", "")
	require.Error(t, err)
}
