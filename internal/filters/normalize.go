package filters

import (
	"strings"

	"watchfinder-backend/internal/catalog"
)

// Request is the canonical encoding of a selection: one ordered value list
// per facet (empty list = no preference) plus both ranges. Built fresh on
// each search and never mutated afterwards.
type Request struct {
	Facets map[string][]string `json:"facets"`
	Ranges map[string]Range    `json:"ranges"`
}

// Normalize converts a selection into a Request. Per facet: empties dropped,
// duplicates removed, values ordered as registry presets first (in registry
// order) followed by customs in insertion order. Ranges are copied verbatim
// since Selection already enforces bounds.
func Normalize(sel Selection) Request {
	req := Request{
		Facets: make(map[string][]string, len(catalog.Facets())),
		Ranges: make(map[string]Range, len(sel.Ranges)),
	}
	for _, f := range catalog.Facets() {
		req.Facets[f.ID] = normalizeFacet(f, sel.Values[f.ID])
	}
	for id, r := range sel.Ranges {
		req.Ranges[id] = r
	}
	return req
}

func normalizeFacet(f catalog.Facet, selected []string) []string {
	seen := make(map[string]struct{}, len(selected))
	members := make([]string, 0, len(selected))
	for _, v := range selected {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		members = append(members, v)
	}
	if len(members) == 0 {
		return nil
	}

	out := make([]string, 0, len(members))
	inPreset := make(map[string]struct{}, len(f.Presets))
	for _, p := range f.Presets {
		if _, ok := seen[p]; ok {
			out = append(out, p)
			inPreset[p] = struct{}{}
		}
	}
	for _, v := range members {
		if _, ok := inPreset[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
