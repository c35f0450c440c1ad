package core

import "github.com/leanovate/gopter"

// StrategyFactory is a helper that builds a generator. It is not a test:
// collecting one as a test and running it would construct the generator and
// silently do nothing else.
type StrategyFactory struct {
	Name  string
	Build func() gopter.Gen
}

// Composite wraps a generator-building function as a named strategy factory.
func Composite(name string, build func() gopter.Gen) *StrategyFactory {
	return &StrategyFactory{Name: name, Build: build}
}

// IsPropertyTest reports whether obj is a property-based test.
func IsPropertyTest(obj any) bool {
	_, ok := obj.(*PropertyTest)
	return ok
}

// HasSettingsApplied reports whether a settings profile was applied to obj,
// whether or not obj is a property test.
func HasSettingsApplied(obj any) bool {
	switch v := obj.(type) {
	case *PropertyTest:
		return v.settingsApplied
	case *SettingsOnly:
		return true
	default:
		return false
	}
}

// IsStrategyFunction reports whether obj is a strategy factory mistakenly
// shaped like a test.
func IsStrategyFunction(obj any) bool {
	_, ok := obj.(*StrategyFactory)
	return ok
}
