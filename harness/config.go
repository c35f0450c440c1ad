package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

// EnvVarPrefix is prepended to option names for environment variable
// lookups, e.g. hypothesis-seed -> HYPOTHESIS_SEED.
const EnvVarPrefix = "HYPOTHESIS"

func envVars(name string) []string {
	v := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return []string{EnvVarPrefix + "_" + strings.TrimPrefix(v, "HYPOTHESIS_")}
}

// OptionParser collects option declarations from plugins and renders them
// as urfave/cli flags. Choice-constrained options are validated at parse
// time, before Configure runs.
type OptionParser struct {
	flags     []cli.Flag
	boolNames map[string]struct{}
}

// NewOptionParser returns an empty parser.
func NewOptionParser() *OptionParser {
	return &OptionParser{boolNames: make(map[string]struct{})}
}

// StringOption declares a string option. When choices are given, any other
// value is rejected during flag parsing.
func (p *OptionParser) StringOption(name, usage string, choices ...string) {
	f := &cli.StringFlag{
		Name:    name,
		Usage:   usage,
		EnvVars: envVars(name),
	}
	if len(choices) > 0 {
		f.Action = func(_ *cli.Context, v string) error {
			if !slices.Contains(choices, v) {
				return fmt.Errorf("invalid value %q for --%s (valid: %s)",
					v, name, strings.Join(choices, ", "))
			}
			return nil
		}
	}
	p.flags = append(p.flags, f)
}

// BoolOption declares a boolean option defaulting to false.
func (p *OptionParser) BoolOption(name, usage string) {
	p.flags = append(p.flags, &cli.BoolFlag{
		Name:    name,
		Usage:   usage,
		EnvVars: envVars(name),
	})
	p.boolNames[name] = struct{}{}
}

// Flags returns the declared options as cli flags.
func (p *OptionParser) Flags() []cli.Flag {
	return p.flags
}

// Populate copies parsed option values from a cli context into a RunConfig.
func (p *OptionParser) Populate(ctx *cli.Context, cfg *RunConfig) {
	for _, f := range p.flags {
		name := f.Names()[0]
		if _, isBool := p.boolNames[name]; isBool {
			cfg.SetBoolOption(name, ctx.Bool(name))
		} else {
			cfg.SetOption(name, ctx.String(name))
		}
	}
}

// CaptureFD routes test output to per-test buffers; CaptureNo disables
// capturing so output also reaches the terminal.
const (
	CaptureFD = "fd"
	CaptureNo = "no"
)

// RunConfig is the configuration object handed to every configuration-time
// hook. Plugins read options from it and may append marker declarations.
type RunConfig struct {
	Log log.Logger

	// CaptureMode controls output capturing for the whole run.
	CaptureMode string

	// MarkerFilter restricts the run to items carrying the named marker.
	// Empty runs everything.
	MarkerFilter string

	opts        map[string]string
	boolOpts    map[string]bool
	markerLines []string
}

// NewRunConfig returns a config with capturing enabled.
func NewRunConfig(logger log.Logger) *RunConfig {
	if logger == nil {
		logger = log.Root()
	}
	return &RunConfig{
		Log:         logger,
		CaptureMode: CaptureFD,
		opts:        make(map[string]string),
		boolOpts:    make(map[string]bool),
	}
}

// SetOption stores a string option value.
func (c *RunConfig) SetOption(name, value string) {
	c.opts[name] = value
}

// SetBoolOption stores a boolean option value.
func (c *RunConfig) SetBoolOption(name string, value bool) {
	c.boolOpts[name] = value
}

// Option returns a string option, "" when unset.
func (c *RunConfig) Option(name string) string {
	return c.opts[name]
}

// BoolOption returns a boolean option, false when unset.
func (c *RunConfig) BoolOption(name string) bool {
	return c.boolOpts[name]
}

// AddMarkerLine declares a marker in "name: description" form so marker
// names used during collection are documented on the run.
func (c *RunConfig) AddMarkerLine(line string) {
	c.markerLines = append(c.markerLines, line)
}

// MarkerLines returns the declared markers.
func (c *RunConfig) MarkerLines() []string {
	out := make([]string, len(c.markerLines))
	copy(out, c.markerLines)
	return out
}
