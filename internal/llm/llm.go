package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts generative providers for watch suggestions.
type Client interface {
	Suggest(ctx context.Context, input SuggestInput) (json.RawMessage, error)
}

// SuggestInput carries the compiled prompt and the output contract version
// the provider is being held to.
type SuggestInput struct {
	Prompt          string
	ContractVersion string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Suggest returns ErrNotImplemented.
func (PlaceholderClient) Suggest(ctx context.Context, input SuggestInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
