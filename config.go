// Package hypothesis wires the property-testing engine, its harness
// integration, and the CLI surface into a runnable service.
package hypothesis

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/robertknight/hypothesis/flags"
)

// Config holds the application configuration
type Config struct {
	ProfilesFile string // Optional YAML settings-profile bundle
	MarkerFilter string // Only run tests carrying this marker
	CaptureMode  string // Output capture mode ("fd" or "no")
	LogDir       string // Directory for per-run output files, "" disables
	Log          log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	profilesFile := ctx.String(flags.ProfilesFile.Name)
	if profilesFile != "" {
		abs, err := filepath.Abs(profilesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for profiles file '%s': %w", profilesFile, err)
		}
		profilesFile = abs
	}

	logDir := ctx.String(flags.LogDir.Name)
	if logDir != "" {
		abs, err := filepath.Abs(logDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", logDir, err)
		}
		logDir = abs
	}

	return &Config{
		ProfilesFile: profilesFile,
		MarkerFilter: ctx.String(flags.Markers.Name),
		CaptureMode:  ctx.String(flags.Capture.Name),
		LogDir:       logDir,
		Log:          logger,
	}, nil
}
