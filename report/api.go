package report

import (
	"fmt"
	"time"
)

// CompilationContext identifies the source file a compile message refers to.
type CompilationContext struct {
	// ReprPath is the path displayed to the user.
	ReprPath string

	// Source is the full source text of the file.  It is used to display the
	// erroneous source text.
	Source string
}

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	displayICE(fmt.Sprintf(message, args...))
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing source
// file, an assembler that can't be found, etc.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// span may be nil in which case no position information will be printed.
func ReportCompileError(ctx *CompilationContext, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayCompileMessage("error", ctx, span, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of the
// same form as those to ReportCompileError.
func ReportCompileWarning(ctx *CompilationContext, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		rep.warnCount++
		displayCompileMessage("warning", ctx, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// ReportError reports any error produced by a compilation phase: local compile
// errors are displayed with their source text and everything else is treated
// as a standard error.
func ReportError(ctx *CompilationContext, err error) {
	if cerr, ok := err.(*LocalCompileError); ok {
		ReportCompileError(ctx, cerr.Span, "%s", cerr.Message)
	} else {
		ReportStdError(ctx.ReprPath, err)
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.isErr
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// compilation process to the user so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: information about the
// compiler's current configuration (version, target, output format).
func ReportCompileHeader(target, format string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(target, format)
	}
}

// ReportBeginPhase reports the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the successful end of the current compilation phase.
func ReportEndPhase() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(!rep.isErr)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string, elapsed time.Duration) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(!rep.isErr, rep.warnCount, outputPath, elapsed)
	}
}

// DisplayInfoMessage prints a tagged informational message regardless of log
// level.
func DisplayInfoMessage(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	fmt.Fprintln(rep.out, InfoStyleBG.Sprint(tag), InfoColorFG.Sprint(msg))
}

// ReportModuleWarning reports a warning from loading a module.
func ReportModuleWarning(modName string, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		rep.warnCount++
		displayModuleMessage("warning", modName, msg)
	}
}
