package report

import "fmt"

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in a Hydro program.  The line
// and column numbers are zero-indexed.  The starting position is the position
// of the first character in the span and the ending column is one past the
// last character in the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// String returns the one-indexed `line:col` form of the span's start.
func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	if lce.Span == nil {
		return lce.Message
	}

	return lce.Span.String() + ": " + lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// CatchErrors catches any compile errors thrown by a `panic` during a stage of
// compilation and stores them in `errp`.  It determines where errors
// "unrecoverable" within a phase of the compiler stop bubbling.  Any other
// panic value is propagated.
// NB: This function must ALWAYS be deferred.
func CatchErrors(errp *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*LocalCompileError); ok {
			*errp = cerr
		} else {
			panic(x)
		}
	}
}
