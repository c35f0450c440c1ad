// Package core holds the execution side of the property-testing engine: the
// session state consulted during generation, the capability types that mark
// what a collected test object actually is, and the property runner itself.
package core

import (
	"hash/fnv"
	"strconv"
)

// Session is the engine state for one test session. A harness integration
// sets RunningUnderHarness at configure time; the generation engine consults
// it to adjust its failure output.
type Session struct {
	// RunningUnderHarness is true when a test harness drives execution
	// instead of a standalone property check.
	RunningUnderHarness bool

	// ForcedSeed overrides the random seed for every property run in the
	// session. Nil means each run picks its own seed.
	ForcedSeed *Seed
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Seed is a seed token supplied by the user. Numeric tokens are used
// directly; opaque tokens are retained verbatim and hashed when a numeric
// seed is needed.
type Seed struct {
	raw     string
	value   int64
	numeric bool
}

// ParseSeed coerces a token to an integer seed when possible. Non-numeric
// tokens are not an error; the raw token is kept as-is.
func ParseSeed(token string) Seed {
	if v, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Seed{raw: token, value: v, numeric: true}
	}
	return Seed{raw: token}
}

// Int64 returns the numeric seed, hashing opaque tokens so the engine
// always has a usable value.
func (s Seed) Int64() int64 {
	if s.numeric {
		return s.value
	}
	h := fnv.New64a()
	h.Write([]byte(s.raw))
	return int64(h.Sum64())
}

// IsNumeric reports whether the token parsed as an integer.
func (s Seed) IsNumeric() bool { return s.numeric }

func (s Seed) String() string { return s.raw }
