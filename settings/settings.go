// Package settings holds the configuration model for the property-testing
// engine: a Settings value bundles the knobs one run consults, and a Registry
// manages named profiles of those knobs.
package settings

import (
	"fmt"
	"strings"
	"time"
)

// Settings is one bundle of engine configuration. The zero value is not
// meaningful; start from Default().
type Settings struct {
	// MaxExamples is how many passing examples a property needs before it
	// is considered to hold.
	MaxExamples int `yaml:"max_examples"`
	// MaxShrinkCount bounds the shrinking search after a falsification.
	MaxShrinkCount int `yaml:"max_shrink_count"`
	// MaxDiscardRatio is the ratio of discarded to successful examples
	// tolerated before a run gives up.
	MaxDiscardRatio int `yaml:"max_discard_ratio"`
	// Verbosity controls engine output while the property runs.
	Verbosity Verbosity `yaml:"-"`
	// Deadline is the per-example time budget. Zero disables it.
	Deadline time.Duration `yaml:"deadline"`
	// StatefulStepCount is the command-sequence length for stateful tests.
	StatefulStepCount int `yaml:"stateful_step_count"`
	// PrintBlob controls whether a replay token is printed on failure.
	PrintBlob bool `yaml:"print_blob"`
}

// Default returns the library defaults, the baseline every profile is
// compared against.
func Default() Settings {
	return Settings{
		MaxExamples:       100,
		MaxShrinkCount:    500,
		MaxDiscardRatio:   10,
		Verbosity:         VerbosityNormal,
		Deadline:          200 * time.Millisecond,
		StatefulStepCount: 50,
		PrintBlob:         false,
	}
}

// ShowChanged renders the fields that differ from Default, in a fixed field
// order. Returns "" when nothing differs.
func (s Settings) ShowChanged() string {
	def := Default()
	var parts []string
	if s.MaxExamples != def.MaxExamples {
		parts = append(parts, fmt.Sprintf("max_examples=%d", s.MaxExamples))
	}
	if s.MaxShrinkCount != def.MaxShrinkCount {
		parts = append(parts, fmt.Sprintf("max_shrink_count=%d", s.MaxShrinkCount))
	}
	if s.MaxDiscardRatio != def.MaxDiscardRatio {
		parts = append(parts, fmt.Sprintf("max_discard_ratio=%d", s.MaxDiscardRatio))
	}
	if s.Verbosity != def.Verbosity {
		parts = append(parts, fmt.Sprintf("verbosity=%s", s.Verbosity))
	}
	if s.Deadline != def.Deadline {
		parts = append(parts, fmt.Sprintf("deadline=%s", s.Deadline))
	}
	if s.StatefulStepCount != def.StatefulStepCount {
		parts = append(parts, fmt.Sprintf("stateful_step_count=%d", s.StatefulStepCount))
	}
	if s.PrintBlob != def.PrintBlob {
		parts = append(parts, fmt.Sprintf("print_blob=%t", s.PrintBlob))
	}
	return strings.Join(parts, ", ")
}

// Overrides is a partial Settings: only the non-nil fields are applied on
// top of a base profile.
type Overrides struct {
	MaxExamples       *int
	MaxShrinkCount    *int
	MaxDiscardRatio   *int
	Verbosity         *Verbosity
	Deadline          *time.Duration
	StatefulStepCount *int
	PrintBlob         *bool
}

func (o Overrides) applyTo(s Settings) Settings {
	if o.MaxExamples != nil {
		s.MaxExamples = *o.MaxExamples
	}
	if o.MaxShrinkCount != nil {
		s.MaxShrinkCount = *o.MaxShrinkCount
	}
	if o.MaxDiscardRatio != nil {
		s.MaxDiscardRatio = *o.MaxDiscardRatio
	}
	if o.Verbosity != nil {
		s.Verbosity = *o.Verbosity
	}
	if o.Deadline != nil {
		s.Deadline = *o.Deadline
	}
	if o.StatefulStepCount != nil {
		s.StatefulStepCount = *o.StatefulStepCount
	}
	if o.PrintBlob != nil {
		s.PrintBlob = *o.PrintBlob
	}
	return s
}
