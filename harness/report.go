package harness

import "time"

// Phase names the lifecycle moment a report describes.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// Status is the outcome of one test phase.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Section is a titled block of text attached to a report.
type Section struct {
	Title string
	Body  string
}

// Property is a named value attached to a report for downstream consumers.
type Property struct {
	Name  string
	Value []string
}

// Report is the runner-built result object for one phase of one test.
// Plugins post-process it in their MakeReport hook.
type Report struct {
	NodeID   string
	When     Phase
	Status   Status
	Err      error
	Duration time.Duration

	Sections       []Section
	UserProperties []Property
}

// AddSection appends a titled section.
func (r *Report) AddSection(title, body string) {
	r.Sections = append(r.Sections, Section{Title: title, Body: body})
}

// AddUserProperty appends a named property.
func (r *Report) AddUserProperty(name string, value []string) {
	r.UserProperties = append(r.UserProperties, Property{Name: name, Value: value})
}

// UserProperty returns the value of the named property, ok=false when
// absent.
func (r *Report) UserProperty(name string) ([]string, bool) {
	for _, p := range r.UserProperties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
