package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/robertknight/hypothesis/core"
	"github.com/robertknight/hypothesis/metrics"
	"github.com/robertknight/hypothesis/settings"
)

// ErrSkip is returned by a test body to mark the test as skipped.
var ErrSkip = errors.New("test skipped")

// Config holds runner construction options.
type Config struct {
	Log      log.Logger
	Session  *core.Session
	Settings *settings.Registry

	// Out receives the header and terminal summary. Defaults to stdout.
	Out io.Writer

	// LogDir, when set, receives per-run output files for failing tests.
	LogDir string

	// LegacyUserProperties disables per-report user-property propagation,
	// emulating runners that predate it. Summarizers fall back to their
	// own state.
	LegacyUserProperties bool
}

// TestOutcome records the result of one item.
type TestOutcome struct {
	NodeID   string
	Status   Status
	Err      error
	Duration time.Duration
	Markers  []string
}

// ResultStats tracks per-status counts for a run.
type ResultStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// RunResult captures one complete run.
type RunResult struct {
	RunID    string
	Status   Status
	Duration time.Duration
	Stats    ResultStats
	Tests    []*TestOutcome
}

// String summarizes the run in one line.
func (r *RunResult) String() string {
	return fmt.Sprintf("%d/%d tests passed (%d failed, %d skipped) in %.1fs [%s]",
		r.Stats.Passed, r.Stats.Total, r.Stats.Failed, r.Stats.Skipped,
		r.Duration.Seconds(), r.Status)
}

// Runner drives registered plugins through the test lifecycle.
type Runner struct {
	cfg     Config
	plugins []any
	tracer  trace.Tracer
}

// NewRunner creates a runner. Session and Settings are required; the
// default invoker needs them to execute property tests.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Session == nil {
		return nil, errors.New("session is required")
	}
	if cfg.Settings == nil {
		return nil, errors.New("settings registry is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &Runner{
		cfg:    cfg,
		tracer: otel.Tracer("github.com/robertknight/hypothesis/harness"),
	}, nil
}

// Register adds a plugin. Hooks are discovered by type assertion at each
// lifecycle point.
func (r *Runner) Register(p any) {
	r.plugins = append(r.plugins, p)
	if l, ok := p.(Loader); ok {
		l.Load()
	}
}

// AddOptions lets every plugin declare its options.
func (r *Runner) AddOptions(parser *OptionParser) {
	for _, p := range r.plugins {
		if op, ok := p.(OptionProvider); ok {
			op.AddOptions(parser)
		}
	}
}

// Run executes a suite through the full lifecycle and returns the
// aggregated result. Configuration errors abort the run; individual test
// failures do not.
func (r *Runner) Run(ctx context.Context, cfg *RunConfig, suite *Suite) (*RunResult, error) {
	runID := uuid.New().String()
	r.cfg.Log.Info("Starting test run", "run_id", runID, "suite", suite.Name, "tests", len(suite.Items))

	for _, p := range r.plugins {
		if c, ok := p.(Configurer); ok {
			if err := c.Configure(cfg); err != nil {
				return nil, fmt.Errorf("plugin configuration failed: %w", err)
			}
		}
	}

	for _, p := range r.plugins {
		if h, ok := p.(ReportHeaderProvider); ok {
			if line := h.ReportHeader(cfg); line != "" {
				fmt.Fprintln(r.cfg.Out, line)
			}
		}
	}

	items := append([]*Item(nil), suite.Items...)
	for _, p := range r.plugins {
		if m, ok := p.(CollectionModifier); ok {
			m.ModifyCollection(items)
		}
	}
	if cfg.MarkerFilter != "" {
		items = filterByMarker(items, cfg.MarkerFilter)
		r.cfg.Log.Debug("Applied marker filter", "marker", cfg.MarkerFilter, "remaining", len(items))
	}

	var fileLogger *FileLogger
	if r.cfg.LogDir != "" {
		fl, err := NewFileLogger(r.cfg.LogDir, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		fileLogger = fl
	}

	result := &RunResult{RunID: runID}
	start := time.Now()
	var reports []*Report

	for _, item := range items {
		outcome, itemReports := r.runItem(ctx, cfg, item)
		reports = append(reports, itemReports...)
		result.Tests = append(result.Tests, outcome)
		result.Stats.Total++
		switch outcome.Status {
		case StatusPass:
			result.Stats.Passed++
		case StatusSkip:
			result.Stats.Skipped++
		default:
			result.Stats.Failed++
		}
		metrics.RecordTest(runID, item.NodeID, string(outcome.Status))

		if fileLogger != nil && (outcome.Status == StatusFail || len(item.ReportMessages) > 0) {
			if err := fileLogger.WriteTestOutput(item.NodeID, outcome, item.ReportMessages); err != nil {
				r.cfg.Log.Warn("Failed to write test output file", "test", item.NodeID, "error", err)
			}
		}
	}

	result.Duration = time.Since(start)
	result.Status = overallStatus(result.Stats)

	tr := NewTerminalReporter(r.cfg.Out, cfg, reports, !r.cfg.LegacyUserProperties)
	for _, p := range r.plugins {
		if s, ok := p.(TerminalSummarizer); ok {
			s.TerminalSummary(tr)
		}
	}

	metrics.RecordRun(runID, string(result.Status),
		result.Stats.Total, result.Stats.Passed, result.Stats.Failed, result.Duration)
	r.cfg.Log.Info("Test run completed", "run_id", runID, "status", result.Status,
		"passed", result.Stats.Passed, "failed", result.Stats.Failed, "skipped", result.Stats.Skipped)
	return result, nil
}

// runItem executes one item through the wrapper chain and builds its call
// and teardown reports, dispatching each to the report hooks.
func (r *Runner) runItem(ctx context.Context, cfg *RunConfig, item *Item) (*TestOutcome, []*Report) {
	ctx, span := r.tracer.Start(ctx, "test", trace.WithAttributes(
		attribute.String("test.node_id", item.NodeID),
	))
	defer span.End()

	start := time.Now()
	err := r.callWithRecover(ctx, item)
	duration := time.Since(start)

	status := StatusPass
	switch {
	case errors.Is(err, ErrSkip):
		status = StatusSkip
		err = nil
	case err != nil:
		status = StatusFail
		r.cfg.Log.Error("Test failed", "test", item.NodeID, "error", err)
		metrics.RecordErrorDetails("test_failure", err)
	}

	outcome := &TestOutcome{
		NodeID:   item.NodeID,
		Status:   status,
		Err:      err,
		Duration: duration,
		Markers:  item.Markers(),
	}

	callReport := &Report{NodeID: item.NodeID, When: PhaseCall, Status: status, Err: err, Duration: duration}
	teardownReport := &Report{NodeID: item.NodeID, When: PhaseTeardown, Status: StatusPass}
	for _, report := range []*Report{callReport, teardownReport} {
		for _, p := range r.plugins {
			if w, ok := p.(ReportWrapper); ok {
				w.MakeReport(item, report)
			}
		}
	}
	return outcome, []*Report{callReport, teardownReport}
}

// callWithRecover runs the wrapper chain around the item's body and turns a
// panicking test into a failure. Recovery sits outside the chain so plugin
// defers run during unwind.
func (r *Runner) callWithRecover(ctx context.Context, item *Item) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("test panicked: %v", p)
		}
	}()

	next := func(ctx context.Context) error {
		return r.invoke(ctx, item)
	}
	// Wrap in reverse registration order so the first-registered plugin is
	// outermost.
	for i := len(r.plugins) - 1; i >= 0; i-- {
		if w, ok := r.plugins[i].(TestCallWrapper); ok {
			wrapper, inner := w, next
			next = func(ctx context.Context) error {
				return wrapper.WrapTestCall(ctx, item, inner)
			}
		}
	}
	return next(ctx)
}

// invoke executes the item's underlying test object.
func (r *Runner) invoke(_ context.Context, item *Item) error {
	switch obj := item.Obj.(type) {
	case nil:
		return nil
	case *core.PropertyTest:
		return obj.Run(r.cfg.Session, r.cfg.Settings)
	case func() error:
		return obj()
	case func():
		obj()
		return nil
	default:
		return fmt.Errorf("cannot invoke test object of type %T for %s", obj, item.NodeID)
	}
}

func filterByMarker(items []*Item, marker string) []*Item {
	var out []*Item
	for _, item := range items {
		if item.HasMarker(marker) {
			out = append(out, item)
		}
	}
	return out
}

func overallStatus(stats ResultStats) Status {
	switch {
	case stats.Failed > 0:
		return StatusFail
	case stats.Total > 0 && stats.Passed == 0 && stats.Skipped > 0:
		return StatusSkip
	default:
		return StatusPass
	}
}
