// Package plugin bridges the property-testing engine into the harness
// lifecycle. The bridge never initiates action: the harness calls it at
// fixed lifecycle points and it reacts by reading and writing attributes on
// the objects it is handed, capturing engine output and statistics per test
// and surfacing them through reports and the terminal summary.
package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/robertknight/hypothesis/core"
	"github.com/robertknight/hypothesis/harness"
	"github.com/robertknight/hypothesis/reporting"
	"github.com/robertknight/hypothesis/settings"
	"github.com/robertknight/hypothesis/statistics"
)

// Option names declared by the bridge.
const (
	LoadProfileOption     = "hypothesis-profile"
	VerbosityOption       = "hypothesis-verbosity"
	PrintStatisticsOption = "hypothesis-show-statistics"
	SeedOption            = "hypothesis-seed"
)

// MarkerName is attached to every collected property test so marker-based
// filtering can select them.
const MarkerName = "hypothesis"

// StatsPropertyName is the user property carrying a test's statistics lines
// on its teardown report.
const StatsPropertyName = "hypothesis-stats"

// Bridge implements the harness lifecycle hooks for the property-testing
// engine.
type Bridge struct {
	log      log.Logger
	session  *core.Session
	settings *settings.Registry
	ledger   *statsLedger

	// cfg is remembered at configure time; the storing reporter consults
	// its capture mode on every message.
	cfg *harness.RunConfig
}

// New returns a bridge bound to a session and settings registry.
func New(sess *core.Session, reg *settings.Registry, logger log.Logger) *Bridge {
	if logger == nil {
		logger = log.Root()
	}
	return &Bridge{
		log:      logger,
		session:  sess,
		settings: reg,
		ledger:   newStatsLedger(),
	}
}

// AddOptions declares the bridge's four options.
func (b *Bridge) AddOptions(p *harness.OptionParser) {
	p.StringOption(LoadProfileOption, "Load in a registered settings profile")
	p.StringOption(VerbosityOption, "Override profile with verbosity setting specified",
		settings.VerbosityNames()...)
	p.BoolOption(PrintStatisticsOption, "Configure when statistics are printed")
	p.StringOption(SeedOption, "Set a seed to use for all property tests")
}

// Configure marks the session as harness-driven, applies the profile,
// verbosity and seed options, and declares the hypothesis marker.
func (b *Bridge) Configure(cfg *harness.RunConfig) error {
	b.cfg = cfg
	b.session.RunningUnderHarness = true

	if profile := cfg.Option(LoadProfileOption); profile != "" {
		if err := b.settings.Load(profile); err != nil {
			return err
		}
	}

	if verbosityName := cfg.Option(VerbosityOption); verbosityName != "" {
		v, err := settings.VerbosityByName(verbosityName)
		if err != nil {
			return err
		}
		base := b.settings.CurrentName()
		profileName := fmt.Sprintf("%s-with-%s-verbosity", base, verbosityName)
		// RegisterOverrides creates a new profile, exactly like the current
		// one, with the extra value given (in this case the verbosity).
		if err := b.settings.RegisterOverrides(profileName, base, settings.Overrides{Verbosity: &v}); err != nil {
			return err
		}
		if err := b.settings.Load(profileName); err != nil {
			return err
		}
	}

	if token := cfg.Option(SeedOption); token != "" {
		seed := core.ParseSeed(token)
		b.session.ForcedSeed = &seed
	}

	cfg.AddMarkerLine("hypothesis: Tests which use hypothesis.")
	return nil
}

// ReportHeader contributes the active profile and its non-default settings.
func (b *Bridge) ReportHeader(cfg *harness.RunConfig) string {
	name := cfg.Option(LoadProfileOption)
	if name == "" {
		name = b.settings.CurrentName()
	}
	profile, err := b.settings.Get(name)
	if err != nil {
		name = b.settings.CurrentName()
		profile = b.settings.Current()
	}
	if changed := profile.ShowChanged(); changed != "" {
		return fmt.Sprintf("hypothesis profile '%s' -> %s", name, changed)
	}
	return fmt.Sprintf("hypothesis profile '%s'", name)
}

// WrapTestCall wraps one test invocation. For property tests it installs
// the storing reporter and the statistics callback for the duration of the
// call; both are restored on every exit path, including panics. A settings
// profile on a non-property test fails before the body runs.
func (b *Bridge) WrapTestCall(ctx context.Context, item *harness.Item, next harness.CallFunc) error {
	if item.Obj == nil {
		return next(ctx)
	}

	if !core.IsPropertyTest(item.Obj) {
		// No property was given; check whether a settings profile was
		// applied anyway and fail if so.
		if core.HasSettingsApplied(item.Obj) {
			return core.NewInvalidArgument(
				"applying a settings profile to a test without a property is completely pointless")
		}
		return next(ctx)
	}

	pt := item.Obj.(*core.PropertyTest)
	if item.ClosestMarker(harness.MarkerParametrize) != "" {
		// Give every parametrized test invocation a unique database key.
		pt.DatabaseKey = []byte(item.NodeID)
	}

	store := newStoringReporter(b.cfg)

	noteStatistics := func(sum statistics.Summary) {
		lines := append([]string{item.NodeID + ":", ""}, sum.Description()...)
		lines = append(lines, "")
		b.ledger.Set(item.NodeID, lines)
		item.StatsLines = lines
	}

	err := func() error {
		restoreStats := statistics.Scoped(noteStatistics)
		defer restoreStats()
		restoreReporter := reporting.Scoped(store.report)
		defer restoreReporter()
		return next(ctx)
	}()

	if len(store.results) > 0 {
		item.ReportMessages = append([]string(nil), store.results...)
	}
	return err
}

// MakeReport attaches the captured output as a report section and, on the
// teardown report, the statistics lines as a user property.
func (b *Bridge) MakeReport(item *harness.Item, report *harness.Report) {
	if len(item.ReportMessages) > 0 {
		report.AddSection("Hypothesis", strings.Join(item.ReportMessages, "\n"))
	}
	if len(item.StatsLines) > 0 && report.When == harness.PhaseTeardown {
		report.AddUserProperty(StatsPropertyName, item.StatsLines)
	}
}

// TerminalSummary prints gathered statistics when the show-statistics
// option is set.
func (b *Bridge) TerminalSummary(tr *harness.TerminalReporter) {
	if !tr.Config.BoolOption(PrintStatisticsOption) {
		return
	}
	tr.Section("Hypothesis Statistics")

	if !tr.SupportsUserProperties() {
		// Runner predates per-report user properties; fall back on the
		// process-wide ledger, which breaks under distributed execution.
		tr.WriteLine("Reporting statistics from process-local state; " +
			"results are incomplete when tests are distributed across workers")
		b.ledger.Each(func(_ string, lines []string) {
			for _, li := range lines {
				tr.WriteLine(li)
			}
		})
		return
	}

	for _, report := range tr.Reports() {
		if report.When != harness.PhaseTeardown {
			continue
		}
		if lines, ok := report.UserProperty(StatsPropertyName); ok {
			for _, li := range lines {
				tr.WriteLine(li)
			}
		}
	}
}

// ModifyCollection marks property tests and defuses strategy factories
// mistakenly collected as tests.
func (b *Bridge) ModifyCollection(items []*harness.Item) {
	for _, item := range items {
		if core.IsPropertyTest(item.Obj) {
			item.AddMarker(MarkerName)
		}
		if core.IsStrategyFunction(item.Obj) {
			nodeID := item.NodeID
			logger := b.log
			item.Obj = func() {
				settings.NoteDeprecation(logger, fmt.Sprintf(
					"%s is a function that returns a generation strategy, but it was "+
						"collected as a test. This is useless as the function body builds a "+
						"generator and asserts nothing. Define a property with core.Given "+
						"instead of collecting the output of core.Composite.", nodeID),
					"2018-11-02")
			}
		}
	}
}

// Load implements the plugin-loader entry point. Nothing to do.
func (b *Bridge) Load() {}
