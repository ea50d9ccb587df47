package achievements

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("achievement state not found")

// State is the mutable unlock record of one catalog definition.
// Unlocked only ever goes from false to true, and UnlockedAt is set exactly once.
type State struct {
	ID         string     `json:"id" db:"id"`
	Unlocked   bool       `json:"unlocked" db:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty" db:"unlocked_at"`
}

// Achievement joins a definition with its current state.
type Achievement struct {
	Definition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Join pairs every catalog definition with its state, in catalog order.
// Definitions without a state are reported as locked.
func Join(catalog *Catalog, states []State) []Achievement {
	byID := make(map[string]State, len(states))
	for _, s := range states {
		byID[s.ID] = s
	}

	list := make([]Achievement, 0, catalog.Len())
	for _, def := range catalog.Definitions() {
		a := Achievement{Definition: def}
		if s, ok := byID[def.ID]; ok {
			a.Unlocked = s.Unlocked
			a.UnlockedAt = s.UnlockedAt
		}
		list = append(list, a)
	}
	return list
}
