package core

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertknight/hypothesis/reporting"
	"github.com/robertknight/hypothesis/settings"
	"github.com/robertknight/hypothesis/statistics"
)

func passingProperty() gopter.Prop {
	return prop.ForAll(
		func(n int) bool { return n+0 == n },
		gen.IntRange(-1000, 1000),
	)
}

func failingProperty() gopter.Prop {
	return prop.ForAll(
		func(n int) bool { return n < 50 },
		gen.IntRange(0, 1000),
	)
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		token       string
		wantNumeric bool
		wantValue   int64
	}{
		{"12345", true, 12345},
		{"-7", true, -7},
		{"abc", false, 0},
		{"12.5", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			s := ParseSeed(tt.token)
			assert.Equal(t, tt.wantNumeric, s.IsNumeric())
			assert.Equal(t, tt.token, s.String(), "raw token must be retained verbatim")
			if tt.wantNumeric {
				assert.Equal(t, tt.wantValue, s.Int64())
			}
		})
	}
}

func TestOpaqueSeedHashesDeterministically(t *testing.T) {
	a := ParseSeed("deadbeef")
	b := ParseSeed("deadbeef")
	c := ParseSeed("livebeef")
	assert.Equal(t, a.Int64(), b.Int64())
	assert.NotEqual(t, a.Int64(), c.Int64())
}

func TestPropertyTestRunPasses(t *testing.T) {
	pt := Given("addition identity", passingProperty())
	sess := NewSession()
	reg := settings.NewRegistry()

	var stats []statistics.Summary
	restore := statistics.Scoped(func(s statistics.Summary) { stats = append(stats, s) })
	defer restore()

	err := pt.Run(sess, reg)
	require.NoError(t, err)
	require.Len(t, stats, 1, "exactly one statistics summary per run")

	rs := stats[0].(statistics.RunStats)
	assert.Equal(t, 100, rs.ExamplesTried)
	assert.False(t, rs.Falsified)
}

func TestPropertyTestRunFalsified(t *testing.T) {
	pt := Given("everything below fifty", failingProperty())
	sess := NewSession()
	sess.ForcedSeed = seedPtr(ParseSeed("1234"))
	reg := settings.NewRegistry()

	var msgs []string
	restoreRep := reporting.Scoped(func(m any) { msgs = append(msgs, reporting.ToText(m)) })
	defer restoreRep()

	var stats []statistics.Summary
	restoreStats := statistics.Scoped(func(s statistics.Summary) { stats = append(stats, s) })
	defer restoreStats()

	err := pt.Run(sess, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "everything below fifty")

	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "Falsifying example")

	require.Len(t, stats, 1)
	assert.True(t, stats[0].(statistics.RunStats).Falsified)
}

func TestForcedSeedIsDeterministic(t *testing.T) {
	reg := settings.NewRegistry()

	run := func() []string {
		sess := NewSession()
		sess.ForcedSeed = seedPtr(ParseSeed("42"))
		var msgs []string
		restore := reporting.Scoped(func(m any) { msgs = append(msgs, reporting.ToText(m)) })
		defer restore()
		pt := Given("deterministic failure", failingProperty())
		_ = pt.Run(sess, reg)
		return msgs
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "same forced seed must produce the same shrunk example")
}

func TestWithSettingsOnPropertyTest(t *testing.T) {
	s := settings.Default()
	s.MaxExamples = 7

	obj := WithSettings(s, Given("small run", passingProperty()))
	pt, ok := obj.(*PropertyTest)
	require.True(t, ok, "WithSettings on a property test returns the test itself")
	assert.True(t, HasSettingsApplied(pt))

	var stats []statistics.Summary
	restore := statistics.Scoped(func(sum statistics.Summary) { stats = append(stats, sum) })
	defer restore()

	require.NoError(t, pt.Run(NewSession(), settings.NewRegistry()))
	require.Len(t, stats, 1)
	assert.Equal(t, 7, stats[0].(statistics.RunStats).ExamplesTried)
}

func TestWithSettingsOnPlainFunction(t *testing.T) {
	fn := func() {}
	obj := WithSettings(settings.Default(), fn)

	wrapped, ok := obj.(*SettingsOnly)
	require.True(t, ok)
	assert.True(t, HasSettingsApplied(wrapped))
	assert.False(t, IsPropertyTest(wrapped))
}

func TestClassificationPredicates(t *testing.T) {
	pt := Given("p", passingProperty())
	sf := Composite("ints", func() gopter.Gen { return gen.Int() })

	assert.True(t, IsPropertyTest(pt))
	assert.False(t, IsPropertyTest(sf))
	assert.False(t, IsPropertyTest(func() {}))

	assert.True(t, IsStrategyFunction(sf))
	assert.False(t, IsStrategyFunction(pt))

	assert.False(t, HasSettingsApplied(pt))
	assert.False(t, HasSettingsApplied(func() {}))
}

func TestInvalidArgumentError(t *testing.T) {
	err := NewInvalidArgument("completely pointless")
	assert.True(t, IsInvalidArgument(err))
	assert.False(t, IsInvalidArgument(assert.AnError))
	assert.True(t, strings.Contains(err.Error(), "pointless"))
}

func seedPtr(s Seed) *Seed { return &s }
