package recs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"watchfinder-backend/internal/llm"
	"watchfinder-backend/internal/shared/telemetry"
)

// QuizResult is the validated WatchMatch quiz outcome.
type QuizResult struct {
	SuggestedWatches string `json:"suggestedWatches"`
	Reasoning        string `json:"reasoning"`
}

// QuizError carries the failure code for a quiz call so the presentation
// layer can map it to a status without parsing messages.
type QuizError struct {
	Code  string
	Cause error
}

func (e *QuizError) Error() string {
	return fmt.Sprintf("quiz %s: %v", e.Code, e.Cause)
}

func (e *QuizError) Unwrap() error {
	return e.Cause
}

// MatchQuiz compiles the quiz answers into a prompt, calls the provider
// synchronously and validates the result. Unlike search there is no session
// and no state machine: the quiz is a one-shot call.
func (s *Service) MatchQuiz(ctx context.Context, req llm.QuizRequest) (QuizResult, error) {
	if s.LLM == nil {
		return QuizResult{}, &QuizError{Code: ErrorCodeInternal, Cause: errors.New("missing llm client")}
	}

	startedAt := time.Now().UTC()
	prompt := llm.BuildQuizPrompt(req)

	timeout := s.SearchTimeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.LLM.Suggest(callCtx, llm.SuggestInput{Prompt: prompt, ContractVersion: llm.ContractQuiz})
	if err != nil {
		code := ErrorCodeProvider
		if isTimeout(err) {
			code = ErrorCodeTimeout
		}
		s.logQuizFailure(ctx, code, err, startedAt)
		return QuizResult{}, &QuizError{Code: code, Cause: err}
	}

	result, err := ValidateQuizResult(raw)
	if err != nil {
		s.logQuizFailure(ctx, ErrorCodeSchemaMismatch, err, startedAt)
		return QuizResult{}, &QuizError{Code: ErrorCodeSchemaMismatch, Cause: err}
	}

	telemetry.Info("quiz.complete", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"provider":    s.Provider,
		"model":       s.Model,
		"duration_ms": float64(time.Since(startedAt).Microseconds()) / 1000.0,
	})
	return result, nil
}

func (s *Service) logQuizFailure(ctx context.Context, code string, cause error, startedAt time.Time) {
	telemetry.Error("quiz.failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"error_code":  code,
		"error":       sanitizeError(cause),
		"duration_ms": float64(time.Since(startedAt).Microseconds()) / 1000.0,
	})
}

// ValidateQuizResult parses raw provider output against the quiz contract.
// Both fields are required and must be non-blank.
func ValidateQuizResult(raw json.RawMessage) (QuizResult, error) {
	var parsed quizResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return QuizResult{}, fmt.Errorf("unmarshal: %v: %w", err, ErrSchemaMismatch)
	}
	if parsed.SuggestedWatches == nil || strings.TrimSpace(*parsed.SuggestedWatches) == "" {
		return QuizResult{}, fmt.Errorf(`missing required field "suggestedWatches": %w`, ErrSchemaMismatch)
	}
	if parsed.Reasoning == nil || strings.TrimSpace(*parsed.Reasoning) == "" {
		return QuizResult{}, fmt.Errorf(`missing required field "reasoning": %w`, ErrSchemaMismatch)
	}
	return QuizResult{
		SuggestedWatches: strings.TrimSpace(*parsed.SuggestedWatches),
		Reasoning:        strings.TrimSpace(*parsed.Reasoning),
	}, nil
}
