// Package harness is the test-runner side of the plugin protocol. It owns
// the per-run object model (RunConfig, Item, Report, TerminalReporter) and
// drives registered plugins through fixed lifecycle points: option
// registration, configuration, report header, collection modification, a
// wrapper around every test invocation, report post-processing, and a
// terminal summary.
package harness

import "context"

// CallFunc invokes the wrapped portion of a test call.
type CallFunc func(ctx context.Context) error

// Each lifecycle point is its own interface; plugins implement only the
// hooks they care about and the runner discovers them by type assertion.

// OptionProvider declares command-line options before parsing.
type OptionProvider interface {
	AddOptions(p *OptionParser)
}

// Configurer reacts to the parsed run configuration before any test runs.
type Configurer interface {
	Configure(cfg *RunConfig) error
}

// ReportHeaderProvider contributes one line to the run header. An empty
// string contributes nothing.
type ReportHeaderProvider interface {
	ReportHeader(cfg *RunConfig) string
}

// CollectionModifier observes and mutates the collected items before
// execution.
type CollectionModifier interface {
	ModifyCollection(items []*Item)
}

// TestCallWrapper wraps one test invocation. Implementations decide whether
// and when to invoke next; the runner guarantees the item's reports are
// built afterwards either way.
type TestCallWrapper interface {
	WrapTestCall(ctx context.Context, item *Item, next CallFunc) error
}

// ReportWrapper post-processes a freshly built report.
type ReportWrapper interface {
	MakeReport(item *Item, report *Report)
}

// TerminalSummarizer writes to the end-of-run terminal summary.
type TerminalSummarizer interface {
	TerminalSummary(tr *TerminalReporter)
}

// Loader is the plugin-loader entry point. Most plugins have nothing to do
// here; the hook exists for loader compatibility.
type Loader interface {
	Load()
}
