package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWriteAccountSummary(t *testing.T) {
	var buf bytes.Buffer
	gen := NewGenerator(&buf)

	result := &pipeline.AccountResult{
		Account: models.AccountInfo{Name: "ISK Uckerath", Kontonummer: "400080156"},
		Transactions: []models.Transaction{
			{SourceFile: "Auszug #1.txt", Amount: decimal.RequireFromString("100")},
			{SourceFile: "Auszug #1.txt", Amount: decimal.RequireFromString("-50")},
			{SourceFile: "Auszug #2.txt", Amount: decimal.RequireFromString("25")},
		},
		Dropped: 2,
		Failures: []pipeline.DocumentFailure{
			{File: "Auszug #3.pdf", Err: errors.New("error running pdftotext")},
		},
	}

	gen.WriteAccountSummary(result)
	out := buf.String()

	assert.Contains(t, out, "--- ISK Uckerath (400080156) ---")
	assert.Contains(t, out, "Auszug #1.txt: 2 transactions")
	assert.Contains(t, out, "Auszug #2.txt: 1 transactions")
	assert.Contains(t, out, "(2 zero-amount rows discarded)")
	assert.Contains(t, out, "SKIPPED Auszug #3.pdf: error running pdftotext")
}

func TestWriteAccountSummaryIncludesDocumentsWithoutTransactions(t *testing.T) {
	var buf bytes.Buffer
	gen := NewGenerator(&buf)

	result := &pipeline.AccountResult{
		Account: models.AccountInfo{Name: "ISK Uckerath", Kontonummer: "400080156"},
		Metadata: []models.StatementMetadata{
			{SourceFile: "Auszug #1.txt"},
			{SourceFile: "Auszug #2.txt"},
		},
		Transactions: []models.Transaction{
			{SourceFile: "Auszug #2.txt", Amount: decimal.RequireFromString("100")},
		},
	}

	gen.WriteAccountSummary(result)
	out := buf.String()

	// A parsed document with only dropped rows still shows up with its count.
	assert.Contains(t, out, "Auszug #1.txt: 0 transactions")
	assert.Contains(t, out, "Auszug #2.txt: 1 transactions")
}

func TestWriteAccountSummaryNoFailuresNoDropped(t *testing.T) {
	var buf bytes.Buffer
	gen := NewGenerator(&buf)

	gen.WriteAccountSummary(&pipeline.AccountResult{
		Account: models.AccountInfo{Name: "ISK Velbert", Kontonummer: "400080228"},
	})
	out := buf.String()

	assert.Contains(t, out, "--- ISK Velbert (400080228) ---")
	assert.NotContains(t, out, "SKIPPED")
	assert.NotContains(t, out, "discarded")
}

func TestWriteMonthlySummary(t *testing.T) {
	var buf bytes.Buffer
	gen := NewGenerator(&buf)

	gen.WriteMonthlySummary(models.MonthlyExtract{
		Account: models.AccountInfo{Name: "ISK Uckerath"},
		Period:  models.Period{Month: "2026-01"},
		Summary: models.Summary{
			TransactionCount: 2,
			TotalInflows:     decimal.RequireFromString("110000"),
			TotalOutflows:    decimal.RequireFromString("-88052.96"),
			NetChange:        decimal.RequireFromString("21947.04"),
		},
	})

	assert.Equal(t,
		"ISK Uckerath 2026-01: 2 transactions, in 110000.00 EUR, out -88052.96 EUR, net 21947.04 EUR\n",
		buf.String())
}
