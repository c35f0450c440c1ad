package hypothesis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"

	"github.com/robertknight/hypothesis/core"
	"github.com/robertknight/hypothesis/flags"
	"github.com/robertknight/hypothesis/harness"
	"github.com/robertknight/hypothesis/plugin"
	"github.com/robertknight/hypothesis/settings"
)

// Service ties the engine session, the settings registry, the lifecycle
// bridge, and the harness runner together for one process.
type Service struct {
	session  *core.Session
	settings *settings.Registry
	bridge   *plugin.Bridge
	parser   *harness.OptionParser
	result   *harness.RunResult
}

// NewService creates the session-scoped state and registers the bridge's
// options.
func NewService() *Service {
	sess := core.NewSession()
	reg := settings.NewRegistry()
	bridge := plugin.New(sess, reg, nil)

	parser := harness.NewOptionParser()
	bridge.AddOptions(parser)

	return &Service{
		session:  sess,
		settings: reg,
		bridge:   bridge,
		parser:   parser,
	}
}

// CLIFlags returns the harness flags plus every option the bridge declared.
func (s *Service) CLIFlags() []cli.Flag {
	return append(append([]cli.Flag{}, flags.Flags...), s.parser.Flags()...)
}

// Result returns the most recent run result.
func (s *Service) Result() *harness.RunResult {
	return s.result
}

// Run executes the suite once and prints the results table. Test failures
// come back as a TestFailureError so the caller can map them to exit code
// 1; everything else that goes wrong is a RuntimeError (exit code 2).
func (s *Service) Run(ctx context.Context, cliCtx *cli.Context, suite *harness.Suite) error {
	cfg, err := NewConfig(cliCtx, logFromCLI(cliCtx))
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	if cfg.ProfilesFile != "" {
		if err := settings.LoadProfilesFile(s.settings, cfg.ProfilesFile); err != nil {
			return NewRuntimeError(err)
		}
	}

	runner, err := harness.NewRunner(harness.Config{
		Log:      cfg.Log,
		Session:  s.session,
		Settings: s.settings,
		LogDir:   cfg.LogDir,
	})
	if err != nil {
		return NewRuntimeError(err)
	}
	runner.Register(s.bridge)

	runCfg := harness.NewRunConfig(cfg.Log)
	runCfg.CaptureMode = cfg.CaptureMode
	runCfg.MarkerFilter = cfg.MarkerFilter
	s.parser.Populate(cliCtx, runCfg)

	result, err := runner.Run(ctx, runCfg, suite)
	if err != nil {
		return NewRuntimeError(err)
	}
	s.result = result

	s.printResultsTable(result)
	fmt.Println(result.String())

	if result.Status == harness.StatusFail {
		return NewTestFailureError(result.String())
	}
	return nil
}

// printResultsTable prints the per-test results to the console.
func (s *Service) printResultsTable(result *harness.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Property Test Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{"ID", "Duration", "Markers", "Status", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "ID", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, test := range result.Tests {
		errMsg := ""
		if test.Err != nil {
			errMsg = firstLine(test.Err.Error())
		}
		t.AppendRow(table.Row{
			test.NodeID,
			formatDuration(test.Duration),
			joinMarkers(test.Markers),
			getResultString(test.Status),
			errMsg,
		})
	}

	switch result.Status {
	case harness.StatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case harness.StatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(result.Duration),
		fmt.Sprintf("%d tests", result.Stats.Total),
		getResultString(result.Status),
		fmt.Sprintf("%d failed, %d skipped", result.Stats.Failed, result.Stats.Skipped),
	})

	t.Render()
}

// logFromCLI builds the process logger from the --log-level flag and makes
// it the default.
func logFromCLI(ctx *cli.Context) log.Logger {
	lvl, err := log.LvlFromString(ctx.String(flags.LogLevel.Name))
	if err != nil {
		lvl = log.LevelInfo
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false))
	log.SetDefault(logger)
	return logger
}

// getResultString returns a symbol-prefixed string for the test result
func getResultString(status harness.Status) string {
	switch status {
	case harness.StatusPass:
		return "✓ pass"
	case harness.StatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

// formatDuration formats to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func joinMarkers(markers []string) string {
	out := ""
	for i, m := range markers {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
