package recs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"watchfinder-backend/internal/llm"
)

func TestValidateQuizResult(t *testing.T) {
	raw := json.RawMessage(`{
		"suggestedWatches": "Seiko SKX007, Orient Kamasu",
		"reasoning": "Both are rugged automatic divers within budget."
	}`)
	result, err := ValidateQuizResult(raw)
	if err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}
	if result.SuggestedWatches != "Seiko SKX007, Orient Kamasu" {
		t.Fatalf("unexpected suggestions: %q", result.SuggestedWatches)
	}
	if result.Reasoning == "" {
		t.Fatalf("expected reasoning")
	}
}

func TestValidateQuizResultSchemaMismatch(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `here are some watches`},
		{"missing suggestedWatches", `{"reasoning":"because"}`},
		{"missing reasoning", `{"suggestedWatches":"Seiko SKX007"}`},
		{"blank suggestedWatches", `{"suggestedWatches":"  ","reasoning":"because"}`},
		{"wrong field type", `{"suggestedWatches":["Seiko"],"reasoning":"because"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateQuizResult(json.RawMessage(tc.raw)); !errors.Is(err, ErrSchemaMismatch) {
				t.Fatalf("expected ErrSchemaMismatch, got %v", err)
			}
		})
	}
}

func TestServiceMatchQuiz(t *testing.T) {
	response := json.RawMessage(`{"suggestedWatches":"Tudor Black Bay 58, Omega Seamaster","reasoning":"Dressy divers fit an office-to-ocean lifestyle."}`)
	client := &fakeLLM{respond: func(llm.SuggestInput) (json.RawMessage, error) {
		return response, nil
	}}
	svc := newTestService(client)

	result, err := svc.MatchQuiz(context.Background(), llm.QuizRequest{
		Lifestyle:        "Office work, weekend swimming",
		StylePreferences: "classic",
		Budget:           "under 5000",
	})
	if err != nil {
		t.Fatalf("match quiz: %v", err)
	}
	if !strings.Contains(result.SuggestedWatches, "Tudor") {
		t.Fatalf("unexpected result: %+v", result)
	}

	input := client.lastInput(t)
	if input.ContractVersion != llm.ContractQuiz {
		t.Fatalf("expected quiz contract, got %q", input.ContractVersion)
	}
	if !strings.Contains(input.Prompt, "weekend swimming") || !strings.Contains(input.Prompt, "under 5000") {
		t.Fatalf("expected quiz answers in prompt:\n%s", input.Prompt)
	}
	if !strings.Contains(input.Prompt, "Desired Features: Any") {
		t.Fatalf("expected blank answer rendered as no-preference marker:\n%s", input.Prompt)
	}
}

func TestServiceMatchQuizErrorCodes(t *testing.T) {
	cases := []struct {
		name     string
		respond  func(llm.SuggestInput) (json.RawMessage, error)
		wantCode string
	}{
		{
			"provider failure",
			func(llm.SuggestInput) (json.RawMessage, error) { return nil, errors.New("upstream exploded") },
			ErrorCodeProvider,
		},
		{
			"timeout",
			func(llm.SuggestInput) (json.RawMessage, error) { return nil, context.DeadlineExceeded },
			ErrorCodeTimeout,
		},
		{
			"schema mismatch",
			func(llm.SuggestInput) (json.RawMessage, error) { return json.RawMessage(`{"watches":[]}`), nil },
			ErrorCodeSchemaMismatch,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&fakeLLM{respond: tc.respond})
			_, err := svc.MatchQuiz(context.Background(), llm.QuizRequest{Lifestyle: "hiking"})
			var qe *QuizError
			if !errors.As(err, &qe) {
				t.Fatalf("expected QuizError, got %v", err)
			}
			if qe.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, qe.Code)
			}
		})
	}
}

func TestHandlerMatchQuiz(t *testing.T) {
	response := `{"suggestedWatches":"Casio G-Shock GA-2100","reasoning":"Tough enough for field work."}`
	client := &fakeLLM{respond: func(llm.SuggestInput) (json.RawMessage, error) {
		return json.RawMessage(response), nil
	}}
	r, _ := newTestRouter(client)

	resp, payload := doJSON(t, r, http.MethodPost, "/api/v1/quiz",
		`{"lifestyle":"field work","stylePreferences":"sporty","budget":"cheap","desiredFeatures":"water resistance"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("quiz expected 200, got %d", resp.Code)
	}
	if payload["suggestedWatches"] != "Casio G-Shock GA-2100" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["reasoning"] == "" {
		t.Fatalf("expected reasoning in payload")
	}

	resp, payload = doJSON(t, r, http.MethodPost, "/api/v1/quiz", `not json`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("bad body expected 400, got %d", resp.Code)
	}
	if errorCodeOf(payload) != "validation_error" {
		t.Fatalf("expected validation_error, got %v", payload)
	}
}

func TestHandlerMatchQuizProviderFailure(t *testing.T) {
	client := &fakeLLM{respond: func(llm.SuggestInput) (json.RawMessage, error) {
		return nil, errors.New("upstream exploded")
	}}
	r, _ := newTestRouter(client)

	resp, payload := doJSON(t, r, http.MethodPost, "/api/v1/quiz", `{"lifestyle":"hiking"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	if errorCodeOf(payload) != "provider_error" {
		t.Fatalf("expected provider_error, got %v", payload)
	}
	errObj, _ := payload["error"].(map[string]any)
	msg, _ := errObj["message"].(string)
	if msg == "" || strings.Contains(msg, "exploded") {
		t.Fatalf("expected a user-safe message, got %q", msg)
	}
}
