// Package report renders the console summary of an extraction run.
package report

import (
	"fmt"
	"io"

	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/pipeline"
)

// Generator writes human-readable run summaries: per-document transaction
// counts, per-month totals and skipped documents with their reason.
type Generator struct {
	w io.Writer
}

// NewGenerator creates a Generator writing to w.
func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: w}
}

// WriteAccountSummary reports the outcome for one account: what each
// document yielded and which documents were skipped. Skipped documents do
// not change the exit status; they are informational.
func (g *Generator) WriteAccountSummary(result *pipeline.AccountResult) {
	fmt.Fprintf(g.w, "\n--- %s (%s) ---\n", result.Account.Name, result.Account.Kontonummer)

	// Every parsed document shows up, including ones that yielded nothing.
	perFile := make(map[string]int)
	var order []string
	for _, meta := range result.Metadata {
		if _, seen := perFile[meta.SourceFile]; !seen {
			perFile[meta.SourceFile] = 0
			order = append(order, meta.SourceFile)
		}
	}
	for _, tx := range result.Transactions {
		if _, seen := perFile[tx.SourceFile]; !seen {
			order = append(order, tx.SourceFile)
		}
		perFile[tx.SourceFile]++
	}
	for _, file := range order {
		fmt.Fprintf(g.w, "  %s: %d transactions\n", file, perFile[file])
	}

	if result.Dropped > 0 {
		fmt.Fprintf(g.w, "  (%d zero-amount rows discarded)\n", result.Dropped)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(g.w, "  SKIPPED %s: %v\n", failure.File, failure.Err)
	}
}

// WriteMonthlySummary reports the totals of one monthly extract.
func (g *Generator) WriteMonthlySummary(extract models.MonthlyExtract) {
	fmt.Fprintf(g.w, "%s %s: %d transactions, in %s EUR, out %s EUR, net %s EUR\n",
		extract.Account.Name,
		extract.Period.Month,
		extract.Summary.TransactionCount,
		extract.Summary.TotalInflows.StringFixed(2),
		extract.Summary.TotalOutflows.StringFixed(2),
		extract.Summary.NetChange.StringFixed(2))
}
