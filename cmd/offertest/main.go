package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/offer"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

// Exercises the Gemini offer generator against the live API with a sample
// lead. Requires GEMINI_API_KEY.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}
	modelID := os.Getenv("GEMINI_MODEL_ID")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := offer.NewGeminiClient(ctx, apiKey, modelID)
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}
	defer client.Close()

	sub, errs := lead.Parse(map[string]string{
		lead.FieldFullName:        "Sample Seller",
		lead.FieldEmailAddress:    "seller@example.com",
		lead.FieldPhoneNumber:     "512-555-0100",
		lead.FieldStreetAddress:   "100 Congress Ave",
		lead.FieldCity:            "Austin",
		lead.FieldState:           "TX",
		lead.FieldZipCode:         "73301",
		lead.FieldPropertyDetails: "3 bed / 2 bath, built 1978, original kitchen, large backyard",
	})
	if errs != nil {
		log.Fatalf("sample lead failed validation: %v", errs)
	}

	generator := offer.NewGenerator(client, logging.NewText("info"))

	fmt.Println("Generating cash offer for", sub.PropertyAddress(), "...")
	start := time.Now()
	result, err := generator.Generate(ctx, sub)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Printf("\nOffer amount:    $%.0f\n", result.OfferAmount)
	fmt.Printf("Market analysis: %s\n", result.MarketAnalysis)
	fmt.Printf("Elapsed:         %v\n", elapsed.Round(time.Millisecond))
}
