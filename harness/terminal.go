package harness

import (
	"fmt"
	"io"
	"strings"
)

// TerminalReporter is the surface terminal-summary hooks write to. It also
// exposes the run's collected reports and the runner's capability flags.
type TerminalReporter struct {
	Config *RunConfig

	w                  io.Writer
	reports            []*Report
	userPropertySupport bool
}

// NewTerminalReporter wraps a writer for terminal summaries.
// supportsUserProperties is false only for legacy runners that predate
// per-report user properties; summarizers then fall back to their own
// process-wide state.
func NewTerminalReporter(w io.Writer, cfg *RunConfig, reports []*Report, supportsUserProperties bool) *TerminalReporter {
	return &TerminalReporter{
		Config:              cfg,
		w:                   w,
		reports:             reports,
		userPropertySupport: supportsUserProperties,
	}
}

// Section writes a titled separator bar.
func (tr *TerminalReporter) Section(title string) {
	fmt.Fprintf(tr.w, "%s %s %s\n", strings.Repeat("=", 10), title, strings.Repeat("=", 10))
}

// WriteLine writes one line to the terminal.
func (tr *TerminalReporter) WriteLine(s string) {
	fmt.Fprintln(tr.w, s)
}

// Reports returns every report built during the run, in execution order.
func (tr *TerminalReporter) Reports() []*Report {
	return tr.reports
}

// SupportsUserProperties reports whether per-report user properties are
// propagated by this runner.
func (tr *TerminalReporter) SupportsUserProperties() bool {
	return tr.userPropertySupport
}
