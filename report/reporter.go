package report

import (
	"io"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The number of warnings that have been displayed.
	warnCount int

	// out is where all messages are written.
	out io.Writer
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps the command-line names of the log levels to their values.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// rep is the global reporter instance.
var rep = &Reporter{
	m:        &sync.Mutex{},
	logLevel: LogLevelVerbose,
	out:      os.Stdout,
}

// InitReporter initializes the global error reporter to the given log level.
// Any previously recorded errors are cleared.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.isErr = false
	rep.warnCount = 0
}

// SetOutput redirects all reporter output to w.
func SetOutput(w io.Writer) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.out = w
}

// LogLevel returns the current log level of the reporter.
func LogLevel() int {
	return rep.logLevel
}
