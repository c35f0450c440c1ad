package plugin

import (
	"github.com/robertknight/hypothesis/harness"
	"github.com/robertknight/hypothesis/reporting"
)

// storingReporter buffers every message the engine reports during one test
// invocation. When output capturing is disabled each message is also
// mirrored to the default reporter so it still reaches the terminal.
type storingReporter struct {
	cfg     *harness.RunConfig
	results []string
}

func newStoringReporter(cfg *harness.RunConfig) *storingReporter {
	return &storingReporter{cfg: cfg}
}

func (s *storingReporter) report(msg any) {
	if s.cfg != nil && s.cfg.CaptureMode == harness.CaptureNo {
		reporting.Default(msg)
	}
	s.results = append(s.results, reporting.ToText(msg))
}
