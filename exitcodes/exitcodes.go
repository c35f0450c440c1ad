// Package exitcodes defines the standard exit codes used by the hypothesis
// runner.
//
// * Success (0): all tests pass
// * TestFailure (1): one or more properties were falsified or tests failed
// * RuntimeErr (2): runtime errors such as bad configuration or panics
package exitcodes

const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
