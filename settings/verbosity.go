package settings

import (
	"fmt"
	"strings"
)

// Verbosity controls how much the engine reports while a property runs.
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	VerbosityNormal
	VerbosityVerbose
	VerbosityDebug
)

var verbosityNames = []string{"quiet", "normal", "verbose", "debug"}

func (v Verbosity) String() string {
	if v < VerbosityQuiet || v > VerbosityDebug {
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// VerbosityNames returns the closed set of valid verbosity names, in
// increasing order of verbosity. Used for CLI option validation.
func VerbosityNames() []string {
	out := make([]string, len(verbosityNames))
	copy(out, verbosityNames)
	return out
}

// VerbosityByName resolves a verbosity name to its value.
func VerbosityByName(name string) (Verbosity, error) {
	for i, n := range verbosityNames {
		if n == name {
			return Verbosity(i), nil
		}
	}
	return VerbosityNormal, fmt.Errorf("invalid verbosity %q (valid: %s)",
		name, strings.Join(verbosityNames, ", "))
}
