package journal

import "context"

// MultiJournal tees entries to several sinks. All sinks are attempted even
// when one fails; the first error is returned.
type MultiJournal struct {
	sinks []Sink
}

// NewMultiJournal combines the given sinks into one.
func NewMultiJournal(sinks ...Sink) *MultiJournal {
	return &MultiJournal{sinks: sinks}
}

// Append forwards the entries to every sink.
func (m *MultiJournal) Append(ctx context.Context, entries ...Entry) error {
	var first error
	for _, s := range m.sinks {
		if err := s.Append(ctx, entries...); err != nil && first == nil {
			first = err
		}
	}
	return first
}
