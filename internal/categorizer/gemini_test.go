package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCategoryFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "expected response format",
			response: "Category: PVS",
			expected: "PVS",
		},
		{
			name:     "category on a later line",
			response: "The transaction looks like private billing.\nCategory: PVS\n",
			expected: "PVS",
		},
		{
			name:     "lowercase suggestion is normalized",
			response: "Category: gutachten",
			expected: "GUTACHTEN",
		},
		{
			name:     "bare category without prefix",
			response: "HZV",
			expected: "HZV",
		},
		{
			name:     "unknown category is discarded",
			response: "Category: MIETE",
			expected: "",
		},
		{
			name:     "free text without category",
			response: "I cannot categorize this transaction.",
			expected: "",
		},
		{
			name:     "empty response",
			response: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCategoryFromResponse(tt.response))
		})
	}
}

func newStubReviewer(generate func(ctx context.Context, prompt string) (string, error)) (*GeminiReviewer, *logging.MockLogger) {
	logger := &logging.MockLogger{}
	return &GeminiReviewer{logger: logger, generate: generate}, logger
}

func TestReviewUncategorized(t *testing.T) {
	reviewer, _ := newStubReviewer(func(ctx context.Context, prompt string) (string, error) {
		return "Category: PVS", nil
	})

	transactions := []models.Transaction{
		{Description: "Erstattung Porto", Category: models.CategorySonstige},
		{Description: "HZV Abschlag", Category: models.CategoryHZV},
	}

	reviewed := reviewer.ReviewUncategorized(context.Background(), transactions)

	assert.Equal(t, 1, reviewed)
	assert.Equal(t, models.CategoryPVS, transactions[0].Category)
	// Transactions the rules already categorized are never sent for review.
	assert.Equal(t, models.CategoryHZV, transactions[1].Category)
}

func TestReviewUncategorizedFailureKeepsHeuristicResult(t *testing.T) {
	reviewer, logger := newStubReviewer(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("API quota exceeded")
	})

	transactions := []models.Transaction{
		{Description: "Erstattung Porto", Category: models.CategorySonstige},
	}

	reviewed := reviewer.ReviewUncategorized(context.Background(), transactions)

	assert.Zero(t, reviewed)
	assert.Equal(t, models.CategorySonstige, transactions[0].Category)
	assert.True(t, logger.HasEntry("WARN", "Gemini review failed"))
}

func TestReviewUncategorizedDiscardsUnknownSuggestion(t *testing.T) {
	reviewer, _ := newStubReviewer(func(ctx context.Context, prompt string) (string, error) {
		return "Category: MIETE", nil
	})

	transactions := []models.Transaction{
		{Description: "Erstattung Porto", Category: models.CategorySonstige},
	}

	reviewed := reviewer.ReviewUncategorized(context.Background(), transactions)

	assert.Zero(t, reviewed)
	assert.Equal(t, models.CategorySonstige, transactions[0].Category)
}

func TestReviewPromptCarriesTransactionFacts(t *testing.T) {
	var prompt string
	reviewer, _ := newStubReviewer(func(ctx context.Context, p string) (string, error) {
		prompt = p
		return "Category: GUTACHTEN", nil
	})

	tx := models.Transaction{
		Date:         "05.01.2026",
		Amount:       decimal.RequireFromString("120.50"),
		Description:  "Befundbericht AZ 42",
		Counterparty: "Kreis Mettmann",
		Category:     models.CategorySonstige,
	}

	category, err := reviewer.Review(context.Background(), &tx)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGutachten, category)

	assert.Contains(t, prompt, "Befundbericht AZ 42")
	assert.Contains(t, prompt, "Kreis Mettmann")
	assert.Contains(t, prompt, "120.50 EUR")
	assert.Contains(t, prompt, models.CategorySammelueberweisung)
}

func TestNewGeminiReviewerRequiresAPIKey(t *testing.T) {
	reviewer, err := NewGeminiReviewer(context.Background(), "", "gemini-1.0-pro", &logging.MockLogger{})
	assert.Nil(t, reviewer)
	assert.Error(t, err)
}
