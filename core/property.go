package core

import (
	"fmt"
	"time"

	"github.com/leanovate/gopter"

	"github.com/robertknight/hypothesis/reporting"
	"github.com/robertknight/hypothesis/settings"
	"github.com/robertknight/hypothesis/statistics"
)

// PropertyTest is a test whose body is a property checked against generated
// inputs. Constructing one through Given is what marks a test object as
// property-based; harness integrations classify collected objects by
// asserting on this type.
type PropertyTest struct {
	Name string

	// DatabaseKey distinguishes parametrized variants of one underlying
	// property in the example persistence layer. Set by the harness
	// integration, consumed elsewhere.
	DatabaseKey []byte

	prop            gopter.Prop
	settings        *settings.Settings
	settingsApplied bool
}

// Given wraps a gopter property as a runnable property test.
func Given(name string, prop gopter.Prop) *PropertyTest {
	return &PropertyTest{Name: name, prop: prop}
}

// Settings returns the settings applied to this test, or ok=false when the
// test runs on the session's current profile.
func (pt *PropertyTest) Settings() (settings.Settings, bool) {
	if pt.settings == nil {
		return settings.Settings{}, false
	}
	return *pt.settings, pt.settingsApplied
}

// Run checks the property with parameters derived from the applied settings
// (falling back to the registry's current profile) and the session's forced
// seed. Output goes through the reporting channel and a statistics summary
// is delivered to the statistics channel. Returns a non-nil error when the
// property is falsified or errors.
func (pt *PropertyTest) Run(sess *Session, reg *settings.Registry) error {
	s := reg.Current()
	if pt.settingsApplied && pt.settings != nil {
		s = *pt.settings
	}

	var seed int64
	if sess != nil && sess.ForcedSeed != nil {
		seed = sess.ForcedSeed.Int64()
	} else {
		seed = time.Now().UnixNano()
	}

	params := gopter.DefaultTestParametersWithSeed(seed)
	params.MinSuccessfulTests = s.MaxExamples
	params.MaxShrinkCount = s.MaxShrinkCount
	params.MaxDiscardRatio = float64(s.MaxDiscardRatio)

	start := time.Now()
	result := pt.prop.Check(params)
	runtime := time.Since(start)

	passed := result.Passed()

	if s.Verbosity >= settings.VerbosityVerbose && passed {
		reporting.Report(fmt.Sprintf("OK, passed %d tests.", result.Succeeded))
	}
	if !passed {
		pt.reportFailure(sess, s, result, seed)
	}

	statistics.Note(statistics.RunStats{
		ExamplesTried: result.Succeeded,
		Discards:      result.Discarded,
		Shrinks:       totalShrinks(result),
		Seed:          seed,
		Runtime:       runtime,
		Falsified:     !passed,
	})

	switch result.Status {
	case gopter.TestPassed, gopter.TestProved:
		return nil
	case gopter.TestExhausted:
		return fmt.Errorf("property %s exhausted after %d passed and %d discarded examples",
			pt.Name, result.Succeeded, result.Discarded)
	case gopter.TestError:
		return fmt.Errorf("property %s errored: %w", pt.Name, result.Error)
	default:
		return fmt.Errorf("property %s falsified after %d passed examples", pt.Name, result.Succeeded)
	}
}

func (pt *PropertyTest) reportFailure(sess *Session, s settings.Settings, result *gopter.TestResult, seed int64) {
	reporting.Report(fmt.Sprintf("Falsifying example for %s:", pt.Name))
	for _, arg := range result.Args {
		if arg == nil {
			continue
		}
		label := arg.Label
		if label == "" {
			label = "arg"
		}
		reporting.Report(fmt.Sprintf("  %s = %v (after %d shrinks, originally %v)",
			label, arg.Arg, arg.Shrinks, arg.OrigArg))
	}
	if result.Error != nil {
		reporting.Report(fmt.Sprintf("  error: %v", result.Error))
	}
	// Standalone runs get a replay hint; under a harness the forced-seed
	// option already covers replay and the hint would duplicate per test.
	if s.PrintBlob && (sess == nil || !sess.RunningUnderHarness) {
		reporting.Report(fmt.Sprintf("You can reproduce this failure by rerunning with seed=%d", seed))
	}
}

func totalShrinks(result *gopter.TestResult) int {
	n := 0
	for _, arg := range result.Args {
		if arg != nil {
			n += arg.Shrinks
		}
	}
	return n
}

// SettingsOnly marks an object that had a settings profile applied without
// being a property test. Running one is a usage error the harness
// integration surfaces before the body executes.
type SettingsOnly struct {
	Fn       any
	Settings settings.Settings
}

// WithSettings applies a settings profile to a test object. On a property
// test the settings are recorded for its runs; on anything else the result
// is a SettingsOnly wrapper, kept so the misuse can be detected later
// rather than silently ignored.
func WithSettings(s settings.Settings, obj any) any {
	if pt, ok := obj.(*PropertyTest); ok {
		cp := s
		pt.settings = &cp
		pt.settingsApplied = true
		return pt
	}
	return &SettingsOnly{Fn: obj, Settings: s}
}
