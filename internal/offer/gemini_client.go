package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// cashOfferSchema constrains Gemini output to the CashOffer shape.
var cashOfferSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"offerAmount": {
			Type:        genai.TypeNumber,
			Description: "The generated cash offer amount for the property, in whole US dollars.",
		},
		"marketAnalysis": {
			Type:        genai.TypeString,
			Description: "Brief market analysis justifying the offer amount.",
		},
	},
	Required: []string{"offerAmount", "marketAnalysis"},
}

// GeminiClient implements LLMClient using Google's Gemini API with a
// constrained JSON response schema.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a new Gemini client for offer generation.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("offer: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("offer: failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// GenerateJSON sends the prompt to Gemini and returns the raw JSON response.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = cashOfferSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("offer: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("offer: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("offer: gemini returned empty content")
	}

	var out strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}

	raw := strings.TrimSpace(out.String())
	if raw == "" {
		return nil, errors.New("offer: gemini returned no text parts")
	}
	return []byte(raw), nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ LLMClient = (*GeminiClient)(nil)
