package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedCallback(t *testing.T) {
	var got []Summary
	restore := Scoped(func(s Summary) { got = append(got, s) })
	Note(RunStats{ExamplesTried: 100})
	restore()

	// After restore, notes are dropped again.
	Note(RunStats{ExamplesTried: 1})
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].(RunStats).ExamplesTried)
}

func TestNoteWithoutCallbackIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { Note(RunStats{}) })
}

func TestRunStatsDescription(t *testing.T) {
	stats := RunStats{
		ExamplesTried: 100,
		Discards:      3,
		Seed:          1234,
		Runtime:       1503 * time.Millisecond,
	}
	lines := stats.Description()
	require.Len(t, lines, 2)
	assert.Equal(t, "  - 100 passing examples, 3 discarded", lines[0])
	assert.Contains(t, lines[1], "seed 1234")
}

func TestRunStatsDescriptionFalsified(t *testing.T) {
	stats := RunStats{ExamplesTried: 17, Shrinks: 5, Falsified: true}
	lines := stats.Description()
	require.Len(t, lines, 3)
	assert.Equal(t, "  - Falsified after 5 shrinks", lines[2])
}
