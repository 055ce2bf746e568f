package report

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"hydroc/common"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightBlue
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightBlue, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Fprint(rep.out, ErrorStyleBG.Sprint("internal compiler error"), " ", ErrorColorFG.Sprint(message), "\n")
	fmt.Fprint(rep.out, "This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Fprint(rep.out, ErrorStyleBG.Sprint("fatal error"), " ", ErrorColorFG.Sprint(message), "\n\n")
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label string, ctx *CompilationContext, span *TextSpan, message string) {
	var labelStr string
	if label == "error" {
		labelStr = ErrorColorFG.Sprint(label)
	} else {
		labelStr = WarnColorFG.Sprint(label)
	}

	if span == nil {
		fmt.Fprintf(rep.out, "%s: %s: %s\n\n", ctx.ReprPath, labelStr, message)
	} else {
		fmt.Fprintf(rep.out, "%s:%d:%d: %s: %s\n\n", ctx.ReprPath, span.StartLine+1, span.StartCol+1, labelStr, message)
		displaySourceText(ctx.Source, span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Fprintf(rep.out, "%s: %s: %s\n\n", reprPath, ErrorColorFG.Sprint("error"), err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays the lines of src covered by span with the spanned
// text underlined.
func displaySourceText(src string, span *TextSpan) {
	srcLines := strings.Split(src, "\n")

	// Collect all the source lines containing the given source text.
	var lines []string
	for ln := span.StartLine; ln <= span.EndLine && ln < len(srcLines); ln++ {
		lines = append(lines, strings.TrimRight(srcLines[ln], "\r"))
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprint(rep.out, InfoColorFG.Sprint(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1)))
		fmt.Fprintln(rep.out, line[minIndent:])

		fmt.Fprint(rep.out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining begins at the start column on the first line and at the
		// trimmed indent on every following line.  It ends at the end column on
		// the last line and at the end of the line otherwise.
		start := minIndent
		if i == 0 {
			start = span.StartCol
		}

		end := len(line)
		if i == len(lines)-1 {
			end = span.EndCol
		}

		if start < minIndent {
			start = minIndent
		}

		if end > len(line) {
			end = len(line)
		}

		// Spans at the end of a line (eg. end of file) still get one carret.
		carrets := end - start
		if carrets < 1 {
			carrets = 1
		}

		fmt.Fprint(rep.out, strings.Repeat(" ", start-minIndent))
		fmt.Fprintln(rep.out, ErrorColorFG.Sprint(strings.Repeat("^", carrets)))
	}

	fmt.Fprintln(rep.out)
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays all the compiler information before starting
// compilation.
func displayCompileHeader(target, format string) {
	fmt.Fprint(rep.out, "hydroc ", InfoColorFG.Sprint("v"+common.HydroVersion), " -- target: ", InfoColorFG.Sprint(target))
	fmt.Fprint(rep.out, " -- format: ", InfoColorFG.Sprint(format), "\n")
}

// phaseSpinner stores the current phase spinner.  It is only used when the
// reporter writes to the terminal.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Assembling")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	displayEndPhase(true)

	currentPhase = phase
	phaseStartTime = time.Now()

	if rep.out != os.Stdout {
		return
	}

	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if currentPhase == "" {
		return
	}

	padding := strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(currentPhase+padding, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
		} else {
			phaseSpinner.Fail(currentPhase + padding)
		}

		phaseSpinner = nil
	} else if success {
		fmt.Fprintf(rep.out, "%s %s%s(%.3fs)\n", SuccessStyleBG.Sprint("Done"), currentPhase, padding, time.Since(phaseStartTime).Seconds())
	} else {
		fmt.Fprintf(rep.out, "%s %s\n", ErrorStyleBG.Sprint("Fail"), currentPhase)
	}

	currentPhase = ""
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, warnCount int, outputPath string, elapsed time.Duration) {
	displayEndPhase(success)
	fmt.Fprint(rep.out, "\n")

	if success {
		fmt.Fprint(rep.out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(rep.out, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprintf(rep.out, "(%.3fs, ", elapsed.Seconds())
	switch warnCount {
	case 0:
		fmt.Fprint(rep.out, SuccessColorFG.Sprint(0), " warnings)\n")
	case 1:
		fmt.Fprint(rep.out, WarnColorFG.Sprint(1), " warning)\n")
	default:
		fmt.Fprint(rep.out, WarnColorFG.Sprint(warnCount), " warnings)\n")
	}

	if success && outputPath != "" {
		fmt.Fprintln(rep.out, "output written to", InfoColorFG.Sprint(outputPath))
	}
}

// displayModuleMessage displays a message about loading a module.
func displayModuleMessage(label, modName, message string) {
	fmt.Fprintf(rep.out, "module %s: %s: %s\n\n", modName, WarnColorFG.Sprint(label), message)
}
