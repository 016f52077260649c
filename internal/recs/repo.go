package recs

import (
	"context"
	"time"

	"watchfinder-backend/internal/filters"
)

// Repo stores sessions and enforces the search state machine atomically.
type Repo interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	// UpdateSelection applies fn to the session's selection under the store
	// lock so observers always see atomic filter updates.
	UpdateSelection(ctx context.Context, id string, fn func(*filters.Selection) error) (Session, error)
	// StartSearch transitions the session to pending and bumps its
	// generation. It fails with ErrSearchInFlight while a search is pending.
	StartSearch(ctx context.Context, id string) (Session, error)
	// CompleteSearch commits a search outcome. The commit is dropped (false,
	// nil) when the generation no longer matches or the session left pending,
	// so a stale in-flight result can never overwrite newer state.
	CompleteSearch(ctx context.Context, id string, generation int64, status string, watches []Suggestion, errCode, errMsg string) (bool, error)
	// ResetSession returns the state machine to idle from any state,
	// discarding any in-flight search and stored result. The selection is
	// left untouched.
	ResetSession(ctx context.Context, id string) (Session, error)
	// DeleteInactiveBefore evicts sessions not updated since cutoff.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) int
}
