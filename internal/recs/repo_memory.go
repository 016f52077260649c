package recs

import (
	"context"
	"errors"
	"sync"
	"time"

	"watchfinder-backend/internal/filters"
)

// MemoryRepo stores sessions in memory and is safe for concurrent use.
// It is the only repo implementation: nothing in this system is written to
// durable storage.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Session)}
}

// Create stores the session.
func (r *MemoryRepo) Create(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = s
	return nil
}

// GetByID returns a session by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(s), nil
}

// UpdateSelection applies fn to the stored selection under the lock.
func (r *MemoryRepo) UpdateSelection(ctx context.Context, id string, fn func(*filters.Selection) error) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	sel := s.Selection.Clone()
	if err := fn(&sel); err != nil {
		return Session{}, err
	}
	s.Selection = sel
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return cloneSession(s), nil
}

// StartSearch transitions to pending unless a search is already in flight.
func (r *MemoryRepo) StartSearch(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.Status == StatusPending {
		return Session{}, ErrSearchInFlight
	}
	s.Status = StatusPending
	s.Generation++
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return cloneSession(s), nil
}

// CompleteSearch commits an outcome if the generation still matches.
func (r *MemoryRepo) CompleteSearch(ctx context.Context, id string, generation int64, status string, watches []Suggestion, errCode, errMsg string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if status != StatusReady && status != StatusFailed {
		return false, errors.New("complete requires ready or failed status")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if s.Generation != generation || s.Status != StatusPending {
		// A newer search or a reset superseded this completion.
		return false, nil
	}
	s.Status = status
	s.Watches = watches
	s.ErrorCode = errCode
	s.ErrorMessage = errMsg
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return true, nil
}

// ResetSession returns the session to idle, discarding result state.
func (r *MemoryRepo) ResetSession(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	s.Status = StatusIdle
	s.Generation++
	s.Watches = nil
	s.ErrorCode = ""
	s.ErrorMessage = ""
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return cloneSession(s), nil
}

// DeleteInactiveBefore evicts sessions whose last update precedes cutoff.
func (r *MemoryRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) int {
	if ctx.Err() != nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.byID {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.byID, id)
			removed++
		}
	}
	return removed
}

func cloneSession(s Session) Session {
	out := s
	out.Selection = s.Selection.Clone()
	if s.Watches != nil {
		out.Watches = make([]Suggestion, len(s.Watches))
		copy(out.Watches, s.Watches)
	}
	return out
}
