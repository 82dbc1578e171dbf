package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiReviewer suggests categories for transactions the heuristic rules
// left at SONSTIGE. It is an optional second opinion: any failure leaves the
// heuristic result untouched.
type GeminiReviewer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger

	// generate produces the raw model response for a prompt. Tests replace
	// it to exercise the review flow without the API.
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewGeminiReviewer creates a reviewer backed by the Gemini API.
func NewGeminiReviewer(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiReviewer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	r := &GeminiReviewer{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}
	r.generate = r.generateContent
	return r, nil
}

// Close releases the underlying API client.
func (r *GeminiReviewer) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *GeminiReviewer) generateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// ReviewUncategorized asks Gemini for a category for every SONSTIGE
// transaction and applies valid suggestions in place. Returns the number of
// transactions recategorized. Per-transaction failures are logged and
// skipped.
func (r *GeminiReviewer) ReviewUncategorized(ctx context.Context, transactions []models.Transaction) int {
	reviewed := 0
	for i := range transactions {
		if transactions[i].Category != models.CategorySonstige {
			continue
		}

		category, err := r.Review(ctx, &transactions[i])
		if err != nil {
			r.logger.WithError(err).Warn("Gemini review failed",
				logging.Field{Key: logging.FieldCounterpart, Value: transactions[i].Counterparty})
			continue
		}
		if category == "" || category == models.CategorySonstige {
			continue
		}

		r.logger.Debug("Transaction recategorized by Gemini review",
			logging.Field{Key: logging.FieldCategory, Value: category})
		transactions[i].Category = category
		reviewed++
	}
	return reviewed
}

// Review asks Gemini for the best-fitting category of a single transaction.
// Only categories from the fixed enumeration are accepted.
func (r *GeminiReviewer) Review(ctx context.Context, tx *models.Transaction) (string, error) {
	prompt := fmt.Sprintf(`Categorize the following bank statement transaction of a medical practice:
Description: %s
Counterparty: %s
Amount: %s EUR
Date: %s

Assign exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		tx.Description,
		tx.Counterparty,
		tx.Amount.StringFixed(2),
		tx.Date,
		strings.Join(models.Categories, ", "))

	responseText, err := r.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return extractCategoryFromResponse(responseText), nil
}

// extractCategoryFromResponse parses the model response and validates the
// category against the fixed enumeration. Unknown suggestions are discarded.
func extractCategoryFromResponse(response string) string {
	var suggested string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			suggested = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			break
		}
	}
	if suggested == "" {
		suggested = strings.TrimSpace(response)
	}

	suggested = strings.ToUpper(suggested)
	for _, known := range models.Categories {
		if suggested == known {
			return known
		}
	}
	return ""
}
