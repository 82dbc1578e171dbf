// Package extract handles single-account statement extraction
package extract

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

var accountNumber string

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from one account's statement documents",
	Long: `Extract transactions from a statement document or a directory of
statement documents, classify them, and write one JSON extract per month.

Example:
  isk-extract extract -i statements/ -o 02-extracted/ --account 400080156`,
	Run: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&accountNumber, "account", "a", "", "Kontonummer of the account the statements belong to")
}

func extractFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	logger := root.GetLogrusAdapter()

	inputPath := root.SharedFlags.Input
	if inputPath == "" {
		inputPath = cfg.Extraction.InputDir
	}
	outputDir := root.SharedFlags.Output
	if outputDir == "" {
		outputDir = cfg.Extraction.OutputDir
	}

	files, err := collectFiles(inputPath)
	if err != nil {
		root.Log.Fatalf("Failed to collect statement files: %v", err)
	}
	if len(files) == 0 {
		root.Log.Warnf("No statement files found in %s", inputPath)
		return
	}

	ruleStore := store.NewRuleStore(cfg.Rules.PractitionersFile, cfg.Rules.CounterpartiesFile)
	cat := categorizer.New(ruleStore, logger)
	parser := statement.NewParser(logger)
	processor := pipeline.NewProcessor(parser, cat, logger, cfg.Extraction.Workers)

	ctx := context.Background()
	account := resolveAccount(cfg, parser, files)
	result := processor.ProcessAccount(ctx, account, files)

	if cfg.AI.Enabled {
		reviewUncategorized(ctx, cfg, result.Transactions)
	}

	gen := report.NewGenerator(os.Stdout)
	gen.WriteAccountSummary(result)

	aggregator := batch.NewAggregator(logger)
	extracts := aggregator.BuildMonthlyExtracts(account, result.Transactions, time.Now())
	for _, extract := range extracts {
		path, err := batch.WriteExtractFile(extract, outputDir)
		if err != nil {
			root.Log.Errorf("Failed to write extract: %v", err)
			continue
		}
		root.Log.Infof("Wrote %s", path)
		gen.WriteMonthlySummary(extract)
	}

	if root.SharedFlags.CSV || cfg.Extraction.CSVExport {
		csvFile := filepath.Join(outputDir, fmt.Sprintf("%s_transactions.csv", account.Kontonummer))
		if err := common.WriteTransactionsToCSV(result.Transactions, csvFile); err != nil {
			root.Log.Errorf("Failed to write CSV export: %v", err)
		}
	}
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

// collectFiles accepts either a single document or a directory tree.
func collectFiles(inputPath string) ([]string, error) {
	if fileutils.FileExists(inputPath) {
		return []string{inputPath}, nil
	}
	return fileutils.FindStatementFiles(inputPath)
}

// resolveAccount determines the account identity: the --account flag against
// the registry first, then the Kontonummer found in the first document's
// header. An unrecognized account still extracts, with a bare identity.
func resolveAccount(cfg *config.Config, parser *statement.Parser, files []string) models.AccountInfo {
	if accountNumber != "" {
		if a, ok := cfg.AccountByKontonummer(accountNumber); ok {
			return a.Info()
		}
		root.Log.Warnf("Account %s not in registry, using bare identity", accountNumber)
		return models.AccountInfo{Kontonummer: accountNumber}
	}

	if result, err := parser.ParseFile(files[0]); err == nil {
		if nr := result.Metadata.Account.Kontonummer; nr != "" {
			if a, ok := cfg.AccountByKontonummer(nr); ok {
				return a.Info()
			}
			return models.AccountInfo{Kontonummer: nr, IBAN: result.Metadata.Account.IBAN}
		}
	}

	root.Log.Warn("Could not determine account, artifacts will carry an empty identity")
	return models.AccountInfo{}
}
