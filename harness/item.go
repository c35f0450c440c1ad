package harness

import "slices"

// MarkerParametrize is attached to every item that is one invocation of a
// parametrized family.
const MarkerParametrize = "parametrize"

// Item is one collected test. The runner owns its lifecycle; plugins may
// attach transient attributes that live for the duration of one invocation
// and the report generation that follows it.
type Item struct {
	// NodeID uniquely names this collected test, including any
	// parametrization suffix.
	NodeID string

	// Obj is the underlying test object. Nil means the item has no
	// executable body.
	Obj any

	// ReportMessages holds output captured from the test's reporting
	// channel, attached after the invocation for report generation.
	ReportMessages []string

	// StatsLines holds the rendered statistics for the last invocation.
	StatsLines []string

	markers []string
}

// NewItem returns an item for a test object.
func NewItem(nodeID string, obj any) *Item {
	return &Item{NodeID: nodeID, Obj: obj}
}

// AddMarker attaches a marker. Adding the same marker twice is a no-op.
func (i *Item) AddMarker(name string) {
	if !slices.Contains(i.markers, name) {
		i.markers = append(i.markers, name)
	}
}

// HasMarker reports whether the item carries the named marker.
func (i *Item) HasMarker(name string) bool {
	return slices.Contains(i.markers, name)
}

// ClosestMarker returns the marker name when attached, "" otherwise.
// Mirrors marker lookup in hierarchical runners; items here are flat so the
// closest marker is the item's own.
func (i *Item) ClosestMarker(name string) string {
	if i.HasMarker(name) {
		return name
	}
	return ""
}

// Markers returns the attached markers in attachment order.
func (i *Item) Markers() []string {
	out := make([]string, len(i.markers))
	copy(out, i.markers)
	return out
}

// Suite is an ordered collection of items presented to the runner.
type Suite struct {
	Name  string
	Items []*Item
}

// NewSuite returns an empty suite.
func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

// Add collects a test object under the given node ID and returns its item.
func (s *Suite) Add(nodeID string, obj any) *Item {
	item := NewItem(nodeID, obj)
	s.Items = append(s.Items, item)
	return item
}

// AddParametrized collects one variant of a parametrized family. The node
// ID gains the variant suffix and the item is marked parametrize.
func (s *Suite) AddParametrized(nodeID, variant string, obj any) *Item {
	item := s.Add(nodeID+"["+variant+"]", obj)
	item.AddMarker(MarkerParametrize)
	return item
}
