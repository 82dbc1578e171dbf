// Package batch groups classified transactions into monthly extract artifacts.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dp-213/Inso-liquiplanung/internal/dateutils"
	"github.com/dp-213/Inso-liquiplanung/internal/fileutils"
	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregator builds one MonthlyExtract per (account, month). Grouping and
// summation are commutative over transactions, so the result does not depend
// on the order documents were processed in.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// GroupByMonth groups transactions by the calendar month of their booking
// date. Transactions whose date does not parse are excluded from grouping
// (they stay in the caller's raw list) and logged.
func (a *Aggregator) GroupByMonth(transactions []models.Transaction) map[string][]models.Transaction {
	byMonth := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		date, err := dateutils.ParseGermanDate(tx.Date)
		if err != nil {
			a.logger.WithError(err).Warn("Transaction excluded from monthly grouping",
				logging.Field{Key: "date", Value: tx.Date},
				logging.Field{Key: logging.FieldFile, Value: tx.SourceFile})
			continue
		}
		key := dateutils.MonthKey(date)
		byMonth[key] = append(byMonth[key], tx)
	}
	return byMonth
}

// BuildMonthlyExtracts produces the monthly artifacts for one account,
// ordered by month. extractedAt is injected so re-runs differ only where the
// caller wants them to.
func (a *Aggregator) BuildMonthlyExtracts(account models.AccountInfo, transactions []models.Transaction, extractedAt time.Time) []models.MonthlyExtract {
	byMonth := a.GroupByMonth(transactions)

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	extracts := make([]models.MonthlyExtract, 0, len(months))
	for _, month := range months {
		extracts = append(extracts, a.buildExtract(account, month, byMonth[month], extractedAt))
	}

	a.logger.Info("Built monthly extracts",
		logging.Field{Key: logging.FieldAccount, Value: account.Kontonummer},
		logging.Field{Key: logging.FieldCount, Value: len(extracts)})

	return extracts
}

func (a *Aggregator) buildExtract(account models.AccountInfo, month string, transactions []models.Transaction, extractedAt time.Time) models.MonthlyExtract {
	sortTransactionsByDate(transactions)

	inflows := decimal.Zero
	outflows := decimal.Zero
	for _, tx := range transactions {
		if tx.Amount.IsPositive() {
			inflows = inflows.Add(tx.Amount)
		} else if tx.Amount.IsNegative() {
			outflows = outflows.Add(tx.Amount)
		}
	}
	inflows = inflows.Round(2)
	outflows = outflows.Round(2)

	from, to, err := dateutils.MonthBounds(month)
	if err != nil {
		a.logger.WithError(err).Warn("Invalid month key",
			logging.Field{Key: logging.FieldMonth, Value: month})
	}

	return models.MonthlyExtract{
		SourceFile:       extractFileName(account, month),
		ExtractedAt:      extractedAt.Format(time.RFC3339),
		ExtractionMethod: models.ExtractionMethodText,
		Account:          account,
		Period: models.Period{
			Month: month,
			From:  from,
			To:    to,
		},
		Summary: models.Summary{
			TransactionCount: len(transactions),
			TotalInflows:     inflows,
			TotalOutflows:    outflows,
			NetChange:        inflows.Add(outflows),
		},
		Transactions: transactions,
	}
}

// sortTransactionsByDate sorts chronologically by booking date, stable so
// transactions with equal dates keep their encounter order.
func sortTransactionsByDate(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		di, erri := dateutils.ParseGermanDate(transactions[i].Date)
		dj, errj := dateutils.ParseGermanDate(transactions[j].Date)
		if erri != nil || errj != nil {
			return false
		}
		return di.Before(dj)
	})
}

func extractFileName(account models.AccountInfo, month string) string {
	name := strings.ReplaceAll(account.Name, " ", "_")
	return fmt.Sprintf("%s_%s.json", name, month)
}

// WriteExtractFile writes one monthly extract as indented JSON into
// outputDir, creating the directory when needed. The file name is the
// artifact's own SourceFile.
func WriteExtractFile(extract models.MonthlyExtract, outputDir string) (string, error) {
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, extract.SourceFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create extract file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(extract); err != nil {
		return "", fmt.Errorf("failed to encode extract: %w", err)
	}
	return path, nil
}
