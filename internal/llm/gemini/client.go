package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"watchfinder-backend/internal/llm"
)

// ErrEmptyResponse is returned when the model produces no candidates.
var ErrEmptyResponse = errors.New("gemini: empty response from model")

// Client implements llm.Client using the official genai SDK.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient constructs a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli, model: model}, nil
}

// Suggest sends the compiled prompt with a machine-readable response schema
// and returns the model's raw JSON output.
func (c *Client) Suggest(ctx context.Context, input llm.SuggestInput) (json.RawMessage, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: input.Prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(input.ContractVersion),
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	txt := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if txt == "" {
		return nil, ErrEmptyResponse
	}
	return json.RawMessage(txt), nil
}

// responseSchema mirrors the output contract the prompt states in prose.
func responseSchema(contractVersion string) *genai.Schema {
	if contractVersion == llm.ContractQuiz {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"suggestedWatches": {Type: genai.TypeString},
				"reasoning":        {Type: genai.TypeString},
			},
			Required: []string{"suggestedWatches", "reasoning"},
		}
	}
	urlField := "purchaseUrl"
	if llm.NormalizeContractVersion(contractVersion) == llm.ContractV1 {
		urlField = "imageUrl"
	}
	suggestion := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brand":  {Type: genai.TypeString},
			"name":   {Type: genai.TypeString},
			"style":  {Type: genai.TypeString},
			"reason": {Type: genai.TypeString},
			urlField: {Type: genai.TypeString},
		},
		Required: []string{"brand", "name", "style", "reason", urlField},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"watches": {
				Type:  genai.TypeArray,
				Items: suggestion,
			},
		},
		Required: []string{"watches"},
	}
}
