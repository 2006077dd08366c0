package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"claritydocs-backend/internal/analysis"
)

// Client implements analysis.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client. API key and model are required.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: cl, model: model}, nil
}

// Generate runs a single content generation call constrained to JSON output.
func (c *Client) Generate(ctx context.Context, prompt analysis.Prompt) (json.RawMessage, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt.User),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini response empty content")
	}
	// Some models still wrap JSON in a code fence despite the MIME hint.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("invalid JSON from Gemini")
	}
	return json.RawMessage(text), nil
}

var _ analysis.Client = (*Client)(nil)
