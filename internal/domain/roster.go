package domain

import "time"

// RosterColumns records which optional columns were present in the source.
// A missing column is distinct from a column whose values are all empty.
type RosterColumns struct {
	VIP              bool `json:"vip"`
	DeactivationDate bool `json:"deactivation_date"`
	Type             bool `json:"type"`
}

// Roster is an immutable, ordered snapshot of badges.
// Reloading builds a new Roster rather than modifying an existing one.
type Roster struct {
	badges   []Badge
	columns  RosterColumns
	loadedAt time.Time
}

// NewRoster copies badges into a new snapshot.
func NewRoster(badges []Badge, columns RosterColumns, loadedAt time.Time) *Roster {
	return &Roster{
		badges:   append([]Badge(nil), badges...),
		columns:  columns,
		loadedAt: loadedAt.UTC(),
	}
}

// Badges returns a copy of the roster's badges in source order.
func (r *Roster) Badges() []Badge {
	if r == nil {
		return nil
	}
	return append([]Badge(nil), r.badges...)
}

// Len is the number of badges; a nil roster has none.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.badges)
}

// At returns the i-th badge in source order.
func (r *Roster) At(i int) Badge {
	return r.badges[i]
}

func (r *Roster) Columns() RosterColumns {
	if r == nil {
		return RosterColumns{}
	}
	return r.columns
}

func (r *Roster) LoadedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.loadedAt
}

// FindByIdentifier returns the first badge whose external ID or internal number equals id.
func (r *Roster) FindByIdentifier(id string) (Badge, bool) {
	if r == nil {
		return Badge{}, false
	}
	for _, b := range r.badges {
		if b.HasIdentifier(id) {
			return b, true
		}
	}
	return Badge{}, false
}
