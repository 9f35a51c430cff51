package offer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

// CashOffer is the structured result of AI offer generation. The amount is
// whatever the model produced; no bounds are enforced beyond basic shape.
type CashOffer struct {
	OfferAmount    float64 `json:"offerAmount"`
	MarketAnalysis string  `json:"marketAnalysis"`
}

// LLMClient produces schema-constrained JSON for a prompt.
// Implementations can be swapped (Gemini, fake) without changing the Generator.
type LLMClient interface {
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}

// Generator turns a validated submission into an illustrative cash offer by
// prompting an external model. Output is non-deterministic.
type Generator struct {
	llm    LLMClient
	logger *logging.Logger
}

// NewGenerator creates an offer generator backed by the given model client.
func NewGenerator(llm LLMClient, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{
		llm:    llm,
		logger: logger,
	}
}

// Generate prompts the model with every lead field and returns the parsed
// offer. Any model, network, or shape failure is a single generation error.
func (g *Generator) Generate(ctx context.Context, sub *lead.Submission) (*CashOffer, error) {
	if g.llm == nil {
		return nil, errors.New("offer: model client not configured")
	}

	raw, err := g.llm.GenerateJSON(ctx, buildPrompt(sub))
	if err != nil {
		return nil, fmt.Errorf("offer: generation failed: %w", err)
	}

	var result CashOffer
	if err := json.Unmarshal(raw, &result); err != nil {
		g.logger.Error("offer: model returned malformed JSON", "error", err)
		return nil, fmt.Errorf("offer: generation failed: %w", err)
	}
	if err := result.validate(); err != nil {
		g.logger.Error("offer: model output failed shape check", "error", err)
		return nil, fmt.Errorf("offer: generation failed: %w", err)
	}

	g.logger.Info("cash offer generated", "address", sub.PropertyAddress(), "offer_amount", result.OfferAmount)
	return &result, nil
}

func (o *CashOffer) validate() error {
	if o.OfferAmount <= 0 {
		return fmt.Errorf("offer amount must be positive, got %v", o.OfferAmount)
	}
	if strings.TrimSpace(o.MarketAnalysis) == "" {
		return errors.New("market analysis is empty")
	}
	return nil
}

func buildPrompt(sub *lead.Submission) string {
	details := sub.PropertyDetails
	if details == "" {
		details = "None provided"
	}

	return fmt.Sprintf(`You are an AI assistant specialized in generating fair cash offers for properties.

Based on the information provided, formulate a fair cash offer and a brief market analysis.

Consider the following information:
Full Name: %s
Email Address: %s
Phone Number: %s
Property Address: %s
Property Details: %s

Respond with a fair offerAmount and a brief marketAnalysis justifying your offer.
Ensure the offer is competitive and attractive to the seller, reflecting current market conditions.`,
		sub.FullName, sub.EmailAddress, sub.PhoneNumber, sub.PropertyAddress(), details)
}
