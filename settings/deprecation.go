package settings

import "github.com/ethereum/go-ethereum/log"

// NoteDeprecation emits a structured deprecation warning. The since date
// records when the behaviour was first deprecated.
func NoteDeprecation(logger log.Logger, msg string, since string) {
	if logger == nil {
		logger = log.Root()
	}
	logger.Warn("Deprecation warning", "message", msg, "since", since)
}
