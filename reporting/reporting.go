// Package reporting is the engine's output side channel. The engine never
// prints directly; it hands messages to whichever Reporter is currently
// installed, so a harness can capture them per test.
package reporting

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives one message from the engine. Messages are usually
// strings but may be any printable value.
type Reporter func(msg any)

// DefaultWriter is where the Default reporter writes. Tests swap it out.
var DefaultWriter io.Writer = os.Stdout

// Default writes the textual form of msg to DefaultWriter, one message per
// line.
func Default(msg any) {
	fmt.Fprintln(DefaultWriter, ToText(msg))
}

// ToText coerces a message to its textual form.
func ToText(msg any) string {
	if s, ok := msg.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", msg)
}

// current is the active reporter. Access is single-goroutine: the harness
// runs one test at a time per process.
var current Reporter = Default

// Current returns the active reporter.
func Current() Reporter {
	return current
}

// Scoped installs r as the active reporter and returns a restore function.
// Callers must defer the restore so the previous reporter comes back on
// every exit path, including panics.
func Scoped(r Reporter) (restore func()) {
	prev := current
	current = r
	return func() { current = prev }
}

// Report sends a message to the active reporter.
func Report(msg any) {
	current(msg)
}
