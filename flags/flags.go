package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/robertknight/hypothesis/harness"
)

const EnvVarPrefix = "HYPOTHESIS"

func prefixEnvVar(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	ProfilesFile = &cli.StringFlag{
		Name:    "profiles",
		Value:   "",
		EnvVars: prefixEnvVar("PROFILES"),
		Usage:   "Path to a YAML settings-profile bundle to register before the run",
	}
	Markers = &cli.StringFlag{
		Name:    "markers",
		Value:   "",
		EnvVars: prefixEnvVar("MARKERS"),
		Usage:   "Only run tests carrying the given marker (eg. 'hypothesis')",
	}
	Capture = &cli.StringFlag{
		Name:    "capture",
		Value:   harness.CaptureFD,
		EnvVars: prefixEnvVar("CAPTURE"),
		Usage:   "Output capture mode: 'fd' captures per test, 'no' mirrors to the terminal",
		Action: func(_ *cli.Context, v string) error {
			if v != harness.CaptureFD && v != harness.CaptureNo {
				return fmt.Errorf("invalid capture mode %q (valid: %s, %s)",
					v, harness.CaptureFD, harness.CaptureNo)
			}
			return nil
		},
	}
	LogDir = &cli.StringFlag{
		Name:    "logdir",
		Value:   "",
		EnvVars: prefixEnvVar("LOGDIR"),
		Usage:   "Directory to store per-run test output files. Empty disables file output.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVar("LOG_LEVEL"),
		Usage:   "Log level: trace, debug, info, warn, error, crit",
	}
)

var Flags = []cli.Flag{
	ProfilesFile,
	Markers,
	Capture,
	LogDir,
	LogLevel,
}
