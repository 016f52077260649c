package recs

import (
	"time"

	"watchfinder-backend/internal/filters"
)

const (
	StatusIdle    = "idle"
	StatusPending = "pending"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Suggestion is one validated watch recommendation. Exactly one of
// PurchaseURL and ImageURL is populated, depending on the active contract.
type Suggestion struct {
	Brand       string `json:"brand"`
	Name        string `json:"name"`
	Style       string `json:"style"`
	Reason      string `json:"reason"`
	PurchaseURL string `json:"purchaseUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Session holds one user's filter selection and the latest search result.
// Generation increments on every search start and reset so stale in-flight
// completions can be detected and discarded.
type Session struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Selection    filters.Selection `json:"selection"`
	Watches      []Suggestion      `json:"watches,omitempty"`
	ErrorCode    string            `json:"errorCode,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Generation   int64             `json:"-"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
