package datasources

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jbeshir/badge-desk/internal/domain"
)

// ErrRosterNotLoaded is returned when a roster is required but none has been loaded yet.
var ErrRosterNotLoaded = errors.New("roster not loaded")

// RosterGetter returns the current roster snapshot, or nil when none has been loaded.
type RosterGetter interface {
	Roster() *domain.Roster
}

// RosterReplacer swaps in a new roster snapshot.
type RosterReplacer interface {
	ReplaceRoster(roster *domain.Roster)
}

// RosterLoader reads a complete roster from its source.
type RosterLoader interface {
	LoadRoster(ctx context.Context) (*domain.Roster, error)
}

// RosterStore holds the current roster snapshot.
// Readers always see a complete roster; a reload replaces the reference and never
// mutates a snapshot that is already in use.
type RosterStore struct {
	current atomic.Pointer[domain.Roster]
}

var _ RosterGetter = (*RosterStore)(nil)
var _ RosterReplacer = (*RosterStore)(nil)

func NewRosterStore() *RosterStore {
	return &RosterStore{}
}

func (s *RosterStore) Roster() *domain.Roster {
	return s.current.Load()
}

func (s *RosterStore) ReplaceRoster(roster *domain.Roster) {
	s.current.Store(roster)
}
