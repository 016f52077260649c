package filters

import (
	"errors"
	"strings"

	"watchfinder-backend/internal/catalog"
)

var (
	// ErrInvalidFacet reports an unknown facet ID, or a custom add against a
	// facet that only accepts preset values.
	ErrInvalidFacet = errors.New("invalid facet")
	// ErrInvalidRange reports an inverted or out-of-bounds range pair.
	ErrInvalidRange = errors.New("invalid range")
)

// Range holds one (min, max) pair with Min <= Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Selection is the per-session filter state: one value set per facet plus
// both numeric ranges. Values keep insertion order; membership, not
// provenance, is what is tracked once a value is in a set.
type Selection struct {
	Values map[string][]string `json:"values"`
	Ranges map[string]Range    `json:"ranges"`
}

// NewSelection returns the default state: empty sets, full-span ranges.
func NewSelection() Selection {
	sel := Selection{
		Values: make(map[string][]string, len(catalog.Facets())),
		Ranges: make(map[string]Range, len(catalog.Ranges())),
	}
	for _, f := range catalog.Facets() {
		sel.Values[f.ID] = nil
	}
	for _, r := range catalog.Ranges() {
		sel.Ranges[r.ID] = Range{Min: r.Floor, Max: r.Ceiling}
	}
	return sel
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s Selection) Clone() Selection {
	out := Selection{
		Values: make(map[string][]string, len(s.Values)),
		Ranges: make(map[string]Range, len(s.Ranges)),
	}
	for id, vals := range s.Values {
		if len(vals) == 0 {
			out.Values[id] = nil
			continue
		}
		cp := make([]string, len(vals))
		copy(cp, vals)
		out.Values[id] = cp
	}
	for id, r := range s.Ranges {
		out.Ranges[id] = r
	}
	return out
}

// Toggle adds value to the facet's set if absent, removes it if present.
// Adding is held to the same preset rule as AddCustom: a facet that does not
// accept custom values only ever takes presets.
func (s *Selection) Toggle(facetID, value string) error {
	f, ok := catalog.FacetByID(facetID)
	if !ok {
		return ErrInvalidFacet
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	vals := s.Values[facetID]
	for i, v := range vals {
		if v == value {
			s.Values[facetID] = append(vals[:i:i], vals[i+1:]...)
			return nil
		}
	}
	if !f.AllowsCustom && !catalog.IsPreset(facetID, value) {
		return ErrInvalidFacet
	}
	s.Values[facetID] = append(vals, value)
	return nil
}

// AddCustom appends a trimmed free-text value to the facet's set. Empty
// input after trimming is a no-op; duplicates are ignored.
func (s *Selection) AddCustom(facetID, raw string) error {
	f, ok := catalog.FacetByID(facetID)
	if !ok {
		return ErrInvalidFacet
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if !f.AllowsCustom && !catalog.IsPreset(facetID, value) {
		return ErrInvalidFacet
	}
	for _, v := range s.Values[facetID] {
		if v == value {
			return nil
		}
	}
	s.Values[facetID] = append(s.Values[facetID], value)
	return nil
}

// RemoveValue drops value from the facet's set whether it was preset or custom.
func (s *Selection) RemoveValue(facetID, value string) error {
	if _, ok := catalog.FacetByID(facetID); !ok {
		return ErrInvalidFacet
	}
	vals := s.Values[facetID]
	for i, v := range vals {
		if v == value {
			s.Values[facetID] = append(vals[:i:i], vals[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetRange replaces the pair for rangeID after bounds checks.
func (s *Selection) SetRange(rangeID string, min, max float64) error {
	r, ok := catalog.RangeByID(rangeID)
	if !ok {
		return ErrInvalidRange
	}
	if min > max || min < r.Floor || max > r.Ceiling {
		return ErrInvalidRange
	}
	s.Ranges[rangeID] = Range{Min: min, Max: max}
	return nil
}

// Reset restores all facets to empty sets and both ranges to full span.
func (s *Selection) Reset() {
	*s = NewSelection()
}
