package plugin

// statsLedger is a process-wide ordered mapping from node ID to rendered
// statistics lines. Insertion order is preserved; re-setting an existing
// key overwrites in place. It only grows: one process runs one session, so
// entries are never cleared.
//
// Accessed only from the goroutine executing tests, so no locking. Under
// distributed execution each worker holds its own ledger and the aggregate
// view is incomplete; the terminal summary warns when it has to rely on it.
type statsLedger struct {
	order []string
	lines map[string][]string
}

func newStatsLedger() *statsLedger {
	return &statsLedger{lines: make(map[string][]string)}
}

func (l *statsLedger) Set(nodeID string, lines []string) {
	if _, ok := l.lines[nodeID]; !ok {
		l.order = append(l.order, nodeID)
	}
	l.lines[nodeID] = lines
}

func (l *statsLedger) Get(nodeID string) ([]string, bool) {
	lines, ok := l.lines[nodeID]
	return lines, ok
}

func (l *statsLedger) Len() int {
	return len(l.order)
}

// Each calls fn for every entry in insertion order.
func (l *statsLedger) Each(fn func(nodeID string, lines []string)) {
	for _, id := range l.order {
		fn(id, l.lines[id])
	}
}
