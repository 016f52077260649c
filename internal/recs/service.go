package recs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"watchfinder-backend/internal/filters"
	"watchfinder-backend/internal/llm"
	"watchfinder-backend/internal/shared/metrics"
	"watchfinder-backend/internal/shared/telemetry"
)

const defaultSearchTimeout = 60 * time.Second

// Service contains the recommendation session business logic.
type Service struct {
	Repo            Repo
	LLM             llm.Client
	Provider        string
	Model           string
	ContractVersion string
	SearchTimeout   time.Duration
}

// CreateSession stores a fresh session with default filter state.
func (s *Service) CreateSession(ctx context.Context) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Status:    StatusIdle,
		Selection: filters.NewSelection(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// GetSession returns a session by ID.
func (s *Service) GetSession(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errors.New("session id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// Toggle flips value membership in the facet's selected set.
func (s *Service) Toggle(ctx context.Context, id, facetID, value string) (Session, error) {
	return s.Repo.UpdateSelection(ctx, id, func(sel *filters.Selection) error {
		return sel.Toggle(facetID, value)
	})
}

// AddCustom appends a free-text value to the facet's selected set.
func (s *Service) AddCustom(ctx context.Context, id, facetID, raw string) (Session, error) {
	return s.Repo.UpdateSelection(ctx, id, func(sel *filters.Selection) error {
		return sel.AddCustom(facetID, raw)
	})
}

// RemoveValue drops a value from the facet's selected set.
func (s *Service) RemoveValue(ctx context.Context, id, facetID, value string) (Session, error) {
	return s.Repo.UpdateSelection(ctx, id, func(sel *filters.Selection) error {
		return sel.RemoveValue(facetID, value)
	})
}

// SetRange replaces a numeric range pair.
func (s *Service) SetRange(ctx context.Context, id, rangeID string, min, max float64) (Session, error) {
	return s.Repo.UpdateSelection(ctx, id, func(sel *filters.Selection) error {
		return sel.SetRange(rangeID, min, max)
	})
}

// ResetFilters restores the default selection without touching the state
// machine or any stored result.
func (s *Service) ResetFilters(ctx context.Context, id string) (Session, error) {
	return s.Repo.UpdateSelection(ctx, id, func(sel *filters.Selection) error {
		sel.Reset()
		return nil
	})
}

// ResetSession returns the session to idle from any state. An in-flight
// search keeps running but its completion is discarded by the generation
// guard.
func (s *Service) ResetSession(ctx context.Context, id string) (Session, error) {
	return s.Repo.ResetSession(ctx, id)
}

// StartSearch snapshots the current selection, transitions to pending and
// completes asynchronously. At most one search may be in flight per session.
func (s *Service) StartSearch(ctx context.Context, id string) (Session, error) {
	if s.LLM == nil {
		return Session{}, errors.New("missing llm client")
	}
	sess, err := s.Repo.StartSearch(ctx, id)
	if err != nil {
		return Session{}, err
	}
	metrics.IncSearchStarted()
	telemetry.Info("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"session_id":        sess.ID,
		"status":            StatusPending,
		"status_transition": "accepted->pending",
		"contract_version":  llm.NormalizeContractVersion(s.ContractVersion),
		"provider":          s.Provider,
		"model":             s.Model,
	})

	snapshot := sess.Selection.Clone()
	go s.completeAsync(backgroundWithRequestID(ctx), sess.ID, sess.Generation, snapshot)
	return sess, nil
}

func (s *Service) completeAsync(ctx context.Context, id string, generation int64, snapshot filters.Selection) {
	defer func() {
		if r := recover(); r != nil {
			s.failSearch(ctx, id, generation, ErrorCodeInternal, fmt.Errorf("panic: %v", r), time.Now().UTC())
		}
	}()
	startedAt := time.Now().UTC()

	contract := llm.NormalizeContractVersion(s.ContractVersion)
	prompt := llm.BuildSearchPrompt(contract, filters.Normalize(snapshot))

	timeout := s.SearchTimeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.LLM.Suggest(callCtx, llm.SuggestInput{Prompt: prompt, ContractVersion: contract})
	if err != nil {
		code := ErrorCodeProvider
		if isTimeout(err) {
			code = ErrorCodeTimeout
		}
		s.failSearch(ctx, id, generation, code, fmt.Errorf("llm suggest: %w", err), startedAt)
		return
	}

	watches, err := ValidateSuggestions(contract, raw)
	if err != nil {
		s.failSearch(ctx, id, generation, ErrorCodeSchemaMismatch, fmt.Errorf("validate suggestions: %w", err), startedAt)
		return
	}

	committed, err := s.Repo.CompleteSearch(ctx, id, generation, StatusReady, watches, "", "")
	if err != nil {
		telemetry.Error("search.commit", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"session_id": id,
			"error":      sanitizeError(err),
		})
		return
	}
	durationMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	if !committed {
		telemetry.Info("search.discarded", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"session_id":  id,
			"generation":  generation,
			"duration_ms": durationMs,
		})
		return
	}
	metrics.IncSearchCompleted()
	metrics.ObserveSearchDurationMs(durationMs)
	telemetry.Info("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"session_id":        id,
		"status":            StatusReady,
		"status_transition": "pending->ready",
		"suggestions":       len(watches),
		"duration_ms":       durationMs,
	})
}

func (s *Service) failSearch(ctx context.Context, id string, generation int64, code string, cause error, startedAt time.Time) {
	durationMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	committed, err := s.Repo.CompleteSearch(ctx, id, generation, StatusFailed, nil, code, userMessageFor(code))
	if err != nil {
		telemetry.Error("search.commit", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"session_id": id,
			"error":      sanitizeError(err),
		})
		return
	}
	if !committed {
		telemetry.Info("search.discarded", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"session_id": id,
			"generation": generation,
		})
		return
	}
	metrics.IncSearchFailed()
	telemetry.Error("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"session_id":        id,
		"status":            StatusFailed,
		"status_transition": "pending->failed",
		"error_code":        code,
		"error":             sanitizeError(cause),
		"duration_ms":       durationMs,
	})
}

// userMessageFor maps internal error codes to short retryable messages.
// Provider payloads and stack detail never cross into presentation.
func userMessageFor(code string) string {
	switch code {
	case ErrorCodeTimeout:
		return "The recommendation service took too long to respond. Please try again."
	case ErrorCodeSchemaMismatch:
		return "The recommendation service returned an unexpected response. Please try again."
	case ErrorCodeProvider:
		return "The recommendation service is currently unavailable. Please try again."
	default:
		return "Something went wrong while finding watches. Please try again."
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

// StartJanitor evicts inactive sessions on a fixed interval until ctx ends.
func (s *Service) StartJanitor(ctx context.Context, ttl, interval time.Duration) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Repo.DeleteInactiveBefore(ctx, time.Now().UTC().Add(-ttl)); removed > 0 {
					telemetry.Info("session.evicted", map[string]any{"count": removed})
				}
			}
		}
	}()
}
