package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acarl005/stripansi"
)

// FileLogger writes per-test output files under a per-run directory.
// Captured output is ANSI-stripped so the files stay readable in editors
// and CI artifact viewers.
type FileLogger struct {
	runDir string
}

// NewFileLogger creates the run directory under baseDir.
func NewFileLogger(baseDir, runID string) (*FileLogger, error) {
	runDir := filepath.Join(baseDir, "run-"+runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &FileLogger{runDir: runDir}, nil
}

// RunDir returns the directory output files are written to.
func (l *FileLogger) RunDir() string {
	return l.runDir
}

// WriteTestOutput writes one test's outcome and captured messages to its
// own file.
func (l *FileLogger) WriteTestOutput(nodeID string, outcome *TestOutcome, messages []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Test: %s\n", nodeID)
	fmt.Fprintf(&b, "Status: %s\n", outcome.Status)
	fmt.Fprintf(&b, "Duration: %s\n", outcome.Duration)
	if outcome.Err != nil {
		fmt.Fprintf(&b, "Error: %s\n", stripansi.Strip(outcome.Err.Error()))
	}
	if len(messages) > 0 {
		b.WriteString("\nOutput:\n")
		for _, msg := range messages {
			fmt.Fprintf(&b, "%s\n", stripansi.Strip(msg))
		}
	}

	path := filepath.Join(l.runDir, safeFilename(nodeID)+".log")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write test output: %w", err)
	}
	return nil
}

// safeFilename converts a node ID to a safe filename by replacing
// problematic characters.
func safeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
		"[", "_", "]", "_",
	)
	return replacer.Replace(s)
}
