// Package store holds the in-memory snapshot of parsed feed data that the
// query API reads. A snapshot is immutable once published; ingestion swaps
// in a replacement atomically, so readers always see a consistent batch and
// never block writers.
package store

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// Snapshot is one published view of the feed: the surviving earthquake
// events plus the tally of records dropped during parsing. Treat as
// read-only.
type Snapshot struct {
	Events      []domain.SeismicEvent
	ParseErrors int
	LoadedAt    time.Time
}

// Store publishes snapshots with a single atomic pointer swap.
type Store struct {
	current atomic.Pointer[Snapshot]
	clock   clockwork.Clock
}

// New creates an empty store. Pass a fake clock in tests for deterministic
// LoadedAt stamps.
func New(clock clockwork.Clock) *Store {
	s := &Store{clock: clock}
	s.current.Store(&Snapshot{})
	return s
}

// Replace publishes a new snapshot from a full parsed batch, discarding the
// previous one.
func (s *Store) Replace(events []domain.SeismicEvent, parseErrors int) *Snapshot {
	snap := &Snapshot{
		Events:      events,
		ParseErrors: parseErrors,
		LoadedAt:    s.clock.Now(),
	}
	s.current.Store(snap)
	return snap
}

// Append publishes a new snapshot extending the current one with additional
// events, for incremental topic ingestion. The current snapshot's slice is
// never mutated; the extension copies into fresh backing storage.
func (s *Store) Append(events []domain.SeismicEvent, parseErrors int) *Snapshot {
	cur := s.current.Load()
	merged := make([]domain.SeismicEvent, 0, len(cur.Events)+len(events))
	merged = append(merged, cur.Events...)
	merged = append(merged, events...)

	snap := &Snapshot{
		Events:      merged,
		ParseErrors: cur.ParseErrors + parseErrors,
		LoadedAt:    s.clock.Now(),
	}
	s.current.Store(snap)
	return snap
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Ready reports whether at least one batch has been published.
func (s *Store) Ready() bool {
	return !s.current.Load().LoadedAt.IsZero()
}
