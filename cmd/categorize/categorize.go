// Package categorize handles one-off transaction categorization
package categorize

import (
	"context"

	"github.com/dp-213/Inso-liquiplanung/cmd/root"
	"github.com/dp-213/Inso-liquiplanung/internal/categorizer"
	"github.com/dp-213/Inso-liquiplanung/internal/config"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single booking description",
	Long: `Run the classification rules against a single booking description and
print the resolved counterparty, category and practitioner code, if any.`,
	Run: categorizeFunc,
}

var useAI bool

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Booking description to categorize")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount in German format (optional)")
	Cmd.Flags().BoolVar(&useAI, "ai", false, "Ask Gemini for a second opinion when no rule matches")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	logger := root.GetLogrusAdapter()

	ruleStore := store.NewRuleStore(cfg.Rules.PractitionersFile, cfg.Rules.CounterpartiesFile)
	cat := categorizer.New(ruleStore, logger)

	tx := models.Transaction{
		Description: root.Description,
		Amount:      models.ParseGermanAmount(root.Amount),
	}
	cat.Apply(&tx)

	if useAI && tx.Category == models.CategorySonstige {
		reviewGemini(cfg, &tx)
	}

	if tx.Counterparty != "" {
		root.Log.Infof("Counterparty: %s", tx.Counterparty)
	}
	root.Log.Infof("Category: %s", tx.Category)
	if tx.Lanr != "" {
		root.Log.Infof("LANR: %s HAEVGID: %s", tx.Lanr, tx.Haevgid)
		if tx.Arzt != "" {
			root.Log.Infof("Arzt: %s (%s)", tx.Arzt, tx.Standort)
		}
	}
}

func reviewGemini(cfg *config.Config, tx *models.Transaction) {
	ctx := context.Background()
	apiKey := cfg.AI.APIKey
	if apiKey == "" {
		apiKey = config.GetGeminiAPIKey()
	}

	reviewer, err := categorizer.NewGeminiReviewer(ctx, apiKey, cfg.AI.Model, root.GetLogrusAdapter())
	if err != nil {
		root.Log.Warnf("Gemini review unavailable: %v", err)
		return
	}
	defer func() {
		if err := reviewer.Close(); err != nil {
			root.Log.Warnf("Failed to close Gemini client: %v", err)
		}
	}()

	category, err := reviewer.Review(ctx, tx)
	if err != nil {
		root.Log.Warnf("Gemini review failed: %v", err)
		return
	}
	if category != "" {
		tx.Category = category
	}
}
