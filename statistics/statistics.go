// Package statistics is the engine's statistics side channel. After a
// property run the engine builds a Summary and hands it to whichever
// Callback is currently installed; with no callback installed summaries are
// dropped.
package statistics

import (
	"fmt"
	"time"
)

// Summary describes one property run in printable form.
type Summary interface {
	Description() []string
}

// Callback receives the summary for one property run.
type Callback func(Summary)

// current is the installed callback, nil when nobody is listening.
// Single-goroutine access, same model as the reporting channel.
var current Callback

// Scoped installs cb and returns a restore function. Callers must defer the
// restore so the previous callback comes back on every exit path.
func Scoped(cb Callback) (restore func()) {
	prev := current
	current = cb
	return func() { current = prev }
}

// Note delivers a summary to the installed callback, if any.
func Note(s Summary) {
	if current != nil {
		current(s)
	}
}

// RunStats is the concrete summary the engine produces for one run.
type RunStats struct {
	ExamplesTried int
	Discards      int
	Shrinks       int
	Seed          int64
	Runtime       time.Duration
	Falsified     bool
}

// Description renders the run in printable lines.
func (r RunStats) Description() []string {
	lines := []string{
		fmt.Sprintf("  - %d passing examples, %d discarded", r.ExamplesTried, r.Discards),
		fmt.Sprintf("  - Run took %s with seed %d", r.Runtime.Round(time.Millisecond), r.Seed),
	}
	if r.Falsified {
		lines = append(lines, fmt.Sprintf("  - Falsified after %d shrinks", r.Shrinks))
	}
	return lines
}
