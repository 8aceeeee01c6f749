package journal

import (
	"context"
	"sync"
)

// MemoryJournal keeps entries in memory. It backs tests and serves as the
// local replay source when no durable sink is configured.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryJournal creates an empty in-memory journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Append stores the entries in order.
func (m *MemoryJournal) Append(ctx context.Context, entries ...Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entries...)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryJournal) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Entries returns a copy of all stored entries in append order.
func (m *MemoryJournal) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Replay invokes fn for every entry with Seq >= fromSeq, in order. It stops
// and returns fn's error on the first failure.
func (m *MemoryJournal) Replay(ctx context.Context, fromSeq uint64, fn func(Entry) error) error {
	for _, e := range m.Entries() {
		if e.Seq < fromSeq {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
