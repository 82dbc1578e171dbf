// Package batch handles extraction across all configured accounts
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dp-213/Inso-liquiplanung/cmd/root"
	"github.com/dp-213/Inso-liquiplanung/internal/batch"
	"github.com/dp-213/Inso-liquiplanung/internal/categorizer"
	"github.com/dp-213/Inso-liquiplanung/internal/common"
	"github.com/dp-213/Inso-liquiplanung/internal/config"
	"github.com/dp-213/Inso-liquiplanung/internal/fileutils"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/pipeline"
	"github.com/dp-213/Inso-liquiplanung/internal/report"
	"github.com/dp-213/Inso-liquiplanung/internal/statement"
	"github.com/dp-213/Inso-liquiplanung/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract statements for every configured account",
	Long: `Walk the case directory, find the statement documents of every account
in the registry, and write monthly JSON extracts for all of them.

Example:
  isk-extract batch -i 01-raw/ -o 02-extracted/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	logger := root.GetLogrusAdapter()

	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		inputDir = cfg.Extraction.InputDir
	}
	outputDir := root.SharedFlags.Output
	if outputDir == "" {
		outputDir = cfg.Extraction.OutputDir
	}

	ruleStore := store.NewRuleStore(cfg.Rules.PractitionersFile, cfg.Rules.CounterpartiesFile)
	cat := categorizer.New(ruleStore, logger)
	parser := statement.NewParser(logger)
	processor := pipeline.NewProcessor(parser, cat, logger, cfg.Extraction.Workers)
	aggregator := batch.NewAggregator(logger)
	gen := report.NewGenerator(os.Stdout)

	ctx := context.Background()
	written := 0

	for _, account := range cfg.Accounts {
		files, err := findAccountFiles(inputDir, account)
		if err != nil {
			root.Log.Warnf("No statements for %s: %v", account.Name, err)
			continue
		}
		root.Log.Infof("%s: %d statement documents", account.Name, len(files))

		result := processor.ProcessAccount(ctx, account.Info(), files)

		if cfg.AI.Enabled {
			reviewUncategorized(ctx, cfg, result.Transactions)
		}

		gen.WriteAccountSummary(result)

		extracts := aggregator.BuildMonthlyExtracts(account.Info(), result.Transactions, time.Now())
		for _, extract := range extracts {
			path, err := batch.WriteExtractFile(extract, outputDir)
			if err != nil {
				root.Log.Errorf("Failed to write extract: %v", err)
				continue
			}
			root.Log.Infof("Wrote %s", path)
			gen.WriteMonthlySummary(extract)
			written++
		}

		if root.SharedFlags.CSV || cfg.Extraction.CSVExport {
			csvFile := filepath.Join(outputDir, fmt.Sprintf("%s_transactions.csv", account.Kontonummer))
			if err := common.WriteTransactionsToCSV(result.Transactions, csvFile); err != nil {
				root.Log.Errorf("Failed to write CSV export: %v", err)
			}
		}
	}

	root.Log.Infof("Batch extraction finished, %d monthly extracts written", written)
}

// reviewUncategorized asks Gemini for a second opinion on every transaction
// the rules left at SONSTIGE. Review failures only log; the heuristic result
// stands.
func reviewUncategorized(ctx context.Context, cfg *config.Config, transactions []models.Transaction) {
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

	reviewed := reviewer.ReviewUncategorized(ctx, transactions)
	root.Log.Infof("Gemini review recategorized %d transactions", reviewed)
}

// findAccountFiles locates the statement documents of one account below the
// case root. Statements live in a "Kontoauszüge" subfolder of the account
// folder; older cases keep them directly in the account folder.
func findAccountFiles(inputDir string, account config.Account) ([]string, error) {
	candidates := []string{
		filepath.Join(inputDir, account.Folder, "Kontoauszüge"),
		filepath.Join(inputDir, account.Folder),
	}
	for _, dir := range candidates {
		if fileutils.DirectoryExists(dir) {
			return fileutils.FindStatementFiles(dir)
		}
	}
	return nil, fmt.Errorf("folder not found under %s", inputDir)
}
