// Package pipeline runs the per-document extraction across all statement
// files of an account and merges the results deterministically.
package pipeline

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/dp-213/Inso-liquiplanung/internal/categorizer"
	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/statement"

	"github.com/shopspring/decimal"
)

// DocumentFailure records a document that could not be processed. Failures
// never abort the batch; they are reported alongside the merged results.
type DocumentFailure struct {
	File string
	Err  error
}

// AccountResult is the merged outcome of processing all documents of one
// account. Transactions carry full provenance and classification.
type AccountResult struct {
	Account      models.AccountInfo
	Transactions []models.Transaction
	Metadata     []models.StatementMetadata
	Failures     []DocumentFailure
	Dropped      int
}

// Processor extracts and classifies statement documents. Documents are
// independent, so they are fanned out to workers; the merge is ordered by
// file name so output never depends on scheduling.
type Processor struct {
	parser      *statement.Parser
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	workerCount int
}

// NewProcessor creates a Processor. workerCount <= 0 selects one worker per CPU.
func NewProcessor(parser *statement.Parser, cat *categorizer.Categorizer, logger logging.Logger, workerCount int) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &Processor{
		parser:      parser,
		categorizer: cat,
		logger:      logger,
		workerCount: workerCount,
	}
}

type documentOutcome struct {
	file   string
	result *statement.Result
	err    error
}

// ProcessAccount processes all statement files of one account.
func (p *Processor) ProcessAccount(ctx context.Context, account models.AccountInfo, files []string) *AccountResult {
	outcomes := p.processDocuments(ctx, files)

	// Deterministic merge order regardless of worker scheduling.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].file < outcomes[j].file })

	result := &AccountResult{Account: account}
	for _, o := range outcomes {
		if o.err != nil {
			p.logger.WithError(o.err).Error("Skipping document",
				logging.Field{Key: logging.FieldFile, Value: o.file})
			result.Failures = append(result.Failures, DocumentFailure{File: filepath.Base(o.file), Err: o.err})
			continue
		}

		for i := range o.result.Transactions {
			tx := &o.result.Transactions[i]
			p.categorizer.Apply(tx)
			tx.IskAccount = account.Kontonummer
			tx.IskName = account.Name
		}

		p.verifyBalances(o.file, o.result)

		result.Transactions = append(result.Transactions, o.result.Transactions...)
		result.Metadata = append(result.Metadata, o.result.Metadata)
		result.Dropped += o.result.Dropped
	}

	p.logger.Info("Processed account documents",
		logging.Field{Key: logging.FieldAccount, Value: account.Kontonummer},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "failed_documents", Value: len(result.Failures)})

	return result
}

// processDocuments fans the files out to a worker pool. Small batches run
// sequentially to avoid the pool overhead.
func (p *Processor) processDocuments(ctx context.Context, files []string) []documentOutcome {
	if len(files) <= 1 || p.workerCount == 1 {
		outcomes := make([]documentOutcome, 0, len(files))
		for _, file := range files {
			outcomes = append(outcomes, p.processOne(file))
		}
		return outcomes
	}

	fileChan := make(chan string, p.workerCount)
	outcomeChan := make(chan documentOutcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range fileChan {
				outcomeChan <- p.processOne(file)
			}
		}()
	}

	go func() {
		defer close(fileChan)
		for _, file := range files {
			select {
			case fileChan <- file:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomeChan)
	}()

	outcomes := make([]documentOutcome, 0, len(files))
	for o := range outcomeChan {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (p *Processor) processOne(file string) documentOutcome {
	result, err := p.parser.ParseFile(file)
	return documentOutcome{file: file, result: result, err: err}
}

// verifyBalances compares the statement's closing balance against opening
// balance plus booked amounts. A mismatch is surfaced as a warning only;
// statements spanning multiple extracts legitimately differ.
func (p *Processor) verifyBalances(file string, result *statement.Result) {
	if !result.Metadata.HasBalances() {
		return
	}

	computed := *result.Metadata.Balances.Opening
	for _, tx := range result.Transactions {
		computed = computed.Add(tx.Amount)
	}

	diff := result.Metadata.Balances.Closing.Sub(computed).Round(2)
	if !diff.Equal(decimal.Zero) {
		p.logger.Warn("Balance verification mismatch",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: "difference", Value: diff.StringFixed(2)})
	}
}
