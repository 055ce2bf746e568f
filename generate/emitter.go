package generate

import (
	"fmt"
	"strings"
)

// emitter wraps a string builder with helpers for emitting assembly text.
type emitter struct {
	b *strings.Builder
}

// emit writes a formatted line to the output (no indentation).
func (e *emitter) emit(format string, args ...interface{}) {
	fmt.Fprintf(e.b, format+"\n", args...)
}

// emitInst writes an indented instruction line.
func (e *emitter) emitInst(format string, args ...interface{}) {
	fmt.Fprintf(e.b, "    "+format+"\n", args...)
}

// emitLabel writes a label definition.
func (e *emitter) emitLabel(label string) {
	e.emit("%s:", label)
}

func (e *emitter) String() string {
	return e.b.String()
}

// labelName returns the name of the nth label.
func labelName(n int) string {
	return fmt.Sprintf("label%d", n)
}
