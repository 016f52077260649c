package filters

import (
	"errors"
	"testing"

	"watchfinder-backend/internal/catalog"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	sel := NewSelection()
	if err := sel.Toggle(catalog.FacetMovement, "Automatic"); err != nil {
		t.Fatalf("toggle add: %v", err)
	}
	if got := sel.Values[catalog.FacetMovement]; len(got) != 1 || got[0] != "Automatic" {
		t.Fatalf("expected [Automatic], got %v", got)
	}
	if err := sel.Toggle(catalog.FacetMovement, "Automatic"); err != nil {
		t.Fatalf("toggle remove: %v", err)
	}
	if got := sel.Values[catalog.FacetMovement]; len(got) != 0 {
		t.Fatalf("expected empty set after second toggle, got %v", got)
	}
}

func TestToggleUnknownFacet(t *testing.T) {
	sel := NewSelection()
	if err := sel.Toggle("bezel", "Ceramic"); !errors.Is(err, ErrInvalidFacet) {
		t.Fatalf("expected ErrInvalidFacet, got %v", err)
	}
}

func TestAddCustomTrimsAndDedupes(t *testing.T) {
	sel := NewSelection()
	if err := sel.AddCustom(catalog.FacetMovement, "  Kinetic "); err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if err := sel.AddCustom(catalog.FacetMovement, "Kinetic"); err != nil {
		t.Fatalf("add duplicate custom: %v", err)
	}
	if got := sel.Values[catalog.FacetMovement]; len(got) != 1 || got[0] != "Kinetic" {
		t.Fatalf("expected single trimmed value, got %v", got)
	}
}

func TestAddCustomEmptyIsNoop(t *testing.T) {
	sel := NewSelection()
	if err := sel.AddCustom(catalog.FacetStyle, "   "); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if got := sel.Values[catalog.FacetStyle]; len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestAddCustomRejectedWhenFacetDisallowsCustom(t *testing.T) {
	sel := NewSelection()
	if err := sel.AddCustom(catalog.FacetGlassType, "Hesalite"); !errors.Is(err, ErrInvalidFacet) {
		t.Fatalf("expected ErrInvalidFacet, got %v", err)
	}
	// Preset values are still accepted through AddCustom.
	if err := sel.AddCustom(catalog.FacetGlassType, "Sapphire"); err != nil {
		t.Fatalf("preset via AddCustom: %v", err)
	}
}

func TestToggleRejectedWhenFacetDisallowsCustom(t *testing.T) {
	sel := NewSelection()
	if err := sel.Toggle(catalog.FacetGlassType, "Hesalite"); !errors.Is(err, ErrInvalidFacet) {
		t.Fatalf("expected ErrInvalidFacet, got %v", err)
	}
	if got := sel.Values[catalog.FacetGlassType]; len(got) != 0 {
		t.Fatalf("expected no values after rejected toggle, got %v", got)
	}
	// Preset values toggle on and off as usual.
	if err := sel.Toggle(catalog.FacetGlassType, "Sapphire"); err != nil {
		t.Fatalf("preset toggle: %v", err)
	}
	if err := sel.Toggle(catalog.FacetGlassType, "Sapphire"); err != nil {
		t.Fatalf("preset toggle off: %v", err)
	}
	if got := sel.Values[catalog.FacetGlassType]; len(got) != 0 {
		t.Fatalf("expected value toggled off, got %v", got)
	}
	// A custom-friendly facet keeps accepting free values through Toggle.
	if err := sel.Toggle(catalog.FacetMovement, "Kinetic"); err != nil {
		t.Fatalf("custom toggle on movement: %v", err)
	}
}

func TestRemoveValueIgnoresProvenance(t *testing.T) {
	sel := NewSelection()
	if err := sel.Toggle(catalog.FacetStyle, "Dive"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sel.AddCustom(catalog.FacetStyle, "Skeleton"); err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if err := sel.RemoveValue(catalog.FacetStyle, "Dive"); err != nil {
		t.Fatalf("remove preset: %v", err)
	}
	if err := sel.RemoveValue(catalog.FacetStyle, "Skeleton"); err != nil {
		t.Fatalf("remove custom: %v", err)
	}
	if got := sel.Values[catalog.FacetStyle]; len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestSetRangeBounds(t *testing.T) {
	cases := []struct {
		name     string
		rangeID  string
		min, max float64
		wantErr  bool
	}{
		{name: "valid", rangeID: catalog.RangePrice, min: 0, max: 5000},
		{name: "below floor", rangeID: catalog.RangePrice, min: -10, max: 100, wantErr: true},
		{name: "inverted", rangeID: catalog.RangePrice, min: 100, max: 50, wantErr: true},
		{name: "above ceiling", rangeID: catalog.RangeCaseSize, min: 40, max: 60, wantErr: true},
		{name: "unknown range", rangeID: "lugWidth", min: 18, max: 22, wantErr: true},
		{name: "narrow", rangeID: catalog.RangeCaseSize, min: 38, max: 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := NewSelection()
			err := sel.SetRange(tc.rangeID, tc.min, tc.max)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r := sel.Ranges[tc.rangeID]; r.Min != tc.min || r.Max != tc.max {
				t.Fatalf("range not stored: %v", r)
			}
		})
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	sel := NewSelection()
	_ = sel.Toggle(catalog.FacetStyle, "Dive")
	_ = sel.SetRange(catalog.RangePrice, 100, 2000)
	sel.Reset()
	if got := sel.Values[catalog.FacetStyle]; len(got) != 0 {
		t.Fatalf("expected style cleared, got %v", got)
	}
	if r := sel.Ranges[catalog.RangePrice]; r.Min != 0 || r.Max != 5000 {
		t.Fatalf("expected full price span, got %v", r)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	sel := NewSelection()
	_ = sel.Toggle(catalog.FacetStyle, "Dive")
	cp := sel.Clone()
	_ = sel.Toggle(catalog.FacetStyle, "Dress")
	if got := cp.Values[catalog.FacetStyle]; len(got) != 1 || got[0] != "Dive" {
		t.Fatalf("clone mutated by original: %v", got)
	}
}
