package workouts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps the history in process memory. It backs the "memory"
// storage mode and is the fake store used across package tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions []Session
	ids      map[int64]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		ids: make(map[int64]struct{}),
	}
}

func (r *MemoryRepo) Add(_ context.Context, session Session) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[session.ID]; ok {
		return nil, ErrDuplicateID
	}
	r.ids[session.ID] = struct{}{}
	r.sessions = append(r.sessions, session)

	return &session, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Session, error) {
	return r.List(ctx, -1)
}

// List returns sessions most recent first; a negative limit returns all.
func (r *MemoryRepo) List(_ context.Context, limit int) ([]Session, error) {
	r.mu.RLock()
	sorted := make([]Session, len(r.sessions))
	copy(sorted, r.sessions)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})

	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	if len(sorted) == 0 {
		return nil, nil
	}
	return sorted, nil
}

func (r *MemoryRepo) Latest(ctx context.Context) (*Session, error) {
	sessions, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}
	return &sessions[0], nil
}

func (r *MemoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

func (r *MemoryRepo) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := int64(len(r.sessions))
	r.sessions = nil
	r.ids = make(map[int64]struct{})
	return removed, nil
}
