package recs

import (
	"encoding/json"
	"fmt"
	"strings"

	"watchfinder-backend/internal/llm"
)

// PlaceholderImageURL replaces every provider-supplied image reference under
// the v1 contract; the provider is known to hallucinate broken links.
const PlaceholderImageURL = "https://placehold.co/400x400.png"

// ValidateSuggestions parses raw provider output against the active contract
// version. It deduplicates by case-folded (brand, name) keeping the first
// occurrence, truncates to llm.MaxSuggestions, and preserves provider order
// throughout: the order is the provider's relevance ranking. A valid empty
// list is a legitimate no-matches result, not an error.
func ValidateSuggestions(contractVersion string, raw json.RawMessage) ([]Suggestion, error) {
	switch llm.NormalizeContractVersion(contractVersion) {
	case llm.ContractV1:
		return validateV1(raw)
	default:
		return validateV2(raw)
	}
}

func validateV1(raw json.RawMessage) ([]Suggestion, error) {
	var parsed suggestionResponseV1
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal: %v: %w", err, ErrSchemaMismatch)
	}
	if parsed.Watches == nil {
		return nil, fmt.Errorf(`missing "watches" field: %w`, ErrSchemaMismatch)
	}
	out := make([]Suggestion, 0, len(*parsed.Watches))
	for i, w := range *parsed.Watches {
		if err := requireFields(i, map[string]string{
			"brand":  w.Brand,
			"name":   w.Name,
			"style":  w.Style,
			"reason": w.Reason,
		}); err != nil {
			return nil, err
		}
		out = append(out, Suggestion{
			Brand:    strings.TrimSpace(w.Brand),
			Name:     strings.TrimSpace(w.Name),
			Style:    strings.TrimSpace(w.Style),
			Reason:   strings.TrimSpace(w.Reason),
			ImageURL: PlaceholderImageURL,
		})
	}
	return dedupeAndCap(out), nil
}

func validateV2(raw json.RawMessage) ([]Suggestion, error) {
	var parsed suggestionResponseV2
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal: %v: %w", err, ErrSchemaMismatch)
	}
	if parsed.Watches == nil {
		return nil, fmt.Errorf(`missing "watches" field: %w`, ErrSchemaMismatch)
	}
	out := make([]Suggestion, 0, len(*parsed.Watches))
	for i, w := range *parsed.Watches {
		if err := requireFields(i, map[string]string{
			"brand":       w.Brand,
			"name":        w.Name,
			"style":       w.Style,
			"reason":      w.Reason,
			"purchaseUrl": w.PurchaseURL,
		}); err != nil {
			return nil, err
		}
		out = append(out, Suggestion{
			Brand:       strings.TrimSpace(w.Brand),
			Name:        strings.TrimSpace(w.Name),
			Style:       strings.TrimSpace(w.Style),
			Reason:      strings.TrimSpace(w.Reason),
			PurchaseURL: strings.TrimSpace(w.PurchaseURL),
		})
	}
	return dedupeAndCap(out), nil
}

func requireFields(index int, fields map[string]string) error {
	for _, name := range []string{"brand", "name", "style", "reason", "purchaseUrl"} {
		value, tracked := fields[name]
		if !tracked {
			continue
		}
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("watches[%d]: missing required field %q: %w", index, name, ErrSchemaMismatch)
		}
	}
	return nil
}

func dedupeAndCap(in []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(in))
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s.Brand) + "\x00" + strings.ToLower(s.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == llm.MaxSuggestions {
			break
		}
	}
	return out
}
