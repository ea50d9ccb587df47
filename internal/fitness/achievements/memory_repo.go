package achievements

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		states: make(map[string]State),
	}
}

func (r *MemoryRepo) Seed(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if _, ok := r.states[id]; !ok {
			r.states[id] = State{ID: id}
		}
	}
	return nil
}

func (r *MemoryRepo) List(_ context.Context) ([]State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.states) == 0 {
		return nil, nil
	}
	states := make([]State, 0, len(r.states))
	for _, s := range r.states {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].ID < states[j].ID
	})
	return states, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.states[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepo) Unlock(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[id]
	if !ok || s.Unlocked {
		return false, nil
	}
	s.Unlocked = true
	s.UnlockedAt = &at
	r.states[id] = s
	return true, nil
}

func (r *MemoryRepo) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states = make(map[string]State)
	return nil
}
