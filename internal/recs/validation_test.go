package recs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidateSuggestionsV2Valid(t *testing.T) {
	raw := json.RawMessage(`{"watches":[
		{"brand":"Seiko","name":"SKX007","style":"Dive","reason":"Rugged and affordable.","purchaseUrl":"https://example.com/skx007"},
		{"brand":"Orient","name":"Bambino","style":"Dress","reason":"Clean dial under budget.","purchaseUrl":"https://example.com/bambino"}
	]}`)

	watches, err := ValidateSuggestions("v2", raw)
	if err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}
	if len(watches) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(watches))
	}
	if watches[0].Brand != "Seiko" || watches[1].Brand != "Orient" {
		t.Fatalf("expected provider order preserved, got %v", watches)
	}
	if watches[0].PurchaseURL != "https://example.com/skx007" {
		t.Fatalf("expected purchase url passed through, got %q", watches[0].PurchaseURL)
	}
	if watches[0].ImageURL != "" {
		t.Fatalf("v2 contract must not set imageUrl, got %q", watches[0].ImageURL)
	}
}

func TestValidateSuggestionsV1OverwritesImageURL(t *testing.T) {
	raw := json.RawMessage(`{"watches":[
		{"brand":"Casio","name":"F-91W","style":"Field","reason":"Cheap and reliable.","imageUrl":"https://broken.example/hallucinated.png"}
	]}`)

	watches, err := ValidateSuggestions("v1", raw)
	if err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}
	if len(watches) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(watches))
	}
	if watches[0].ImageURL != PlaceholderImageURL {
		t.Fatalf("expected placeholder image url, got %q", watches[0].ImageURL)
	}
	if watches[0].PurchaseURL != "" {
		t.Fatalf("v1 contract must not set purchaseUrl, got %q", watches[0].PurchaseURL)
	}
}

func TestValidateSuggestionsEmptyListIsValid(t *testing.T) {
	watches, err := ValidateSuggestions("v2", json.RawMessage(`{"watches":[]}`))
	if err != nil {
		t.Fatalf("empty list should be a valid no-matches result, got %v", err)
	}
	if len(watches) != 0 {
		t.Fatalf("expected 0 suggestions, got %d", len(watches))
	}
}

func TestValidateSuggestionsSchemaMismatch(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `watches: sure, here are some watches`},
		{"missing watches field", `{"results":[]}`},
		{"watches not an array", `{"watches":"none"}`},
		{"missing reason", `{"watches":[{"brand":"Seiko","name":"SKX007","style":"Dive","purchaseUrl":"https://example.com"}]}`},
		{"blank brand", `{"watches":[{"brand":"  ","name":"SKX007","style":"Dive","reason":"ok","purchaseUrl":"https://example.com"}]}`},
		{"wrong field type", `{"watches":[{"brand":1,"name":"SKX007","style":"Dive","reason":"ok","purchaseUrl":"https://example.com"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateSuggestions("v2", json.RawMessage(tc.raw))
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Fatalf("expected ErrSchemaMismatch, got %v", err)
			}
		})
	}
}

func TestValidateSuggestionsV1MissingPurchaseURLIsFine(t *testing.T) {
	raw := json.RawMessage(`{"watches":[
		{"brand":"Casio","name":"F-91W","style":"Field","reason":"Cheap and reliable."}
	]}`)
	if _, err := ValidateSuggestions("v1", raw); err != nil {
		t.Fatalf("purchaseUrl is not part of the v1 contract, got %v", err)
	}
}

func TestValidateSuggestionsDedupesCaseFolded(t *testing.T) {
	raw := json.RawMessage(`{"watches":[
		{"brand":"Omega","name":"Speedmaster","style":"Racing","reason":"First pick.","purchaseUrl":"https://example.com/1"},
		{"brand":"OMEGA","name":"speedmaster","style":"Racing","reason":"Duplicate.","purchaseUrl":"https://example.com/2"},
		{"brand":"Omega","name":"Seamaster","style":"Dive","reason":"Different model.","purchaseUrl":"https://example.com/3"}
	]}`)

	watches, err := ValidateSuggestions("v2", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watches) != 2 {
		t.Fatalf("expected duplicate collapsed to 2 suggestions, got %d", len(watches))
	}
	if watches[0].Reason != "First pick." {
		t.Fatalf("expected first occurrence kept, got %q", watches[0].Reason)
	}
	if watches[1].Name != "Seamaster" {
		t.Fatalf("expected Seamaster second, got %q", watches[1].Name)
	}
}

func TestValidateSuggestionsTruncatesToMax(t *testing.T) {
	var items []string
	for i := 0; i < 12; i++ {
		items = append(items, fmt.Sprintf(
			`{"brand":"Brand%d","name":"Model%d","style":"Dive","reason":"Entry %d.","purchaseUrl":"https://example.com/%d"}`,
			i, i, i, i))
	}
	raw := json.RawMessage(`{"watches":[` + strings.Join(items, ",") + `]}`)

	watches, err := ValidateSuggestions("v2", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watches) != 8 {
		t.Fatalf("expected truncation to 8, got %d", len(watches))
	}
	for i, w := range watches {
		if w.Brand != fmt.Sprintf("Brand%d", i) {
			t.Fatalf("expected first 8 in provider order, got %q at %d", w.Brand, i)
		}
	}
}

func TestValidateSuggestionsUnknownVersionUsesV2(t *testing.T) {
	raw := json.RawMessage(`{"watches":[
		{"brand":"Seiko","name":"SKX007","style":"Dive","reason":"ok","purchaseUrl":"https://example.com"}
	]}`)
	watches, err := ValidateSuggestions("v99", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if watches[0].PurchaseURL == "" {
		t.Fatalf("expected v2 behavior for unknown version")
	}
}
