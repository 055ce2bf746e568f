package build

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"hydroc/mods"
	"hydroc/report"
)

// assembleAndLink assembles the generated assembly into an object file and,
// for executable output, links it.  Intermediate files are placed next to the
// output when the profile keeps them and in a temporary directory otherwise.
func (c *Compiler) assembleAndLink(asm string) bool {
	var intermDir string
	if c.profile.KeepIntermediates {
		intermDir = filepath.Dir(c.profile.OutputPath)
	} else {
		tempDir, err := os.MkdirTemp("", "hydroc-build-")
		if err != nil {
			report.ReportFatal("failed to create temporary directory: %s", err)
			return false
		}
		defer os.RemoveAll(tempDir)

		intermDir = tempDir
	}

	baseName := strings.TrimSuffix(filepath.Base(c.srcPath), filepath.Ext(c.srcPath))
	asmPath := filepath.Join(intermDir, baseName+mods.FormatExtension(mods.FormatASM))
	if !writeOutputFile(asmPath, asm) {
		return false
	}

	// the object file only goes to the output path if it is the final output
	objPath := filepath.Join(intermDir, baseName+mods.FormatExtension(mods.FormatObject))
	if c.profile.OutputFormat == mods.FormatObject {
		objPath = c.profile.OutputPath
	}

	report.ReportBeginPhase("Assembling")

	if !runTool("assembler", c.profile.Assembler, "-felf64", "-o", objPath, asmPath) {
		return false
	}

	report.ReportEndPhase()

	if c.profile.OutputFormat != mods.FormatBin {
		return true
	}

	report.ReportBeginPhase("Linking")

	if !runTool("linker", c.profile.Linker, "-o", c.profile.OutputPath, objPath) {
		return false
	}

	report.ReportEndPhase()
	return true
}

// runTool runs an external build tool and reports its failure.  The kind is
// the name of the tool displayed to the user: eg. "linker".
func runTool(kind, toolPath string, args ...string) bool {
	cmd := exec.Command(toolPath, args...)
	stderrBuff := bytes.Buffer{}
	cmd.Stderr = &stderrBuff

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Exit error => we were able to find the tool, but it rejected
			// its input.  We can just output its errors to the user.
			report.ReportFatal("%s error:\n%s", kind, stderrBuff.String())
		} else {
			// Some other error: probably couldn't find the tool.
			report.ReportFatal("failed to run %s: %s", kind, err)
		}

		return false
	}

	return true
}
