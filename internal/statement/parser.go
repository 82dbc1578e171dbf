// Package statement parses page-extracted bank-statement text into
// transactions and header metadata.
package statement

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/parsererror"
	"github.com/dp-213/Inso-liquiplanung/internal/pdftext"
)

// Result is the outcome of parsing one source document.
type Result struct {
	Metadata     models.StatementMetadata
	Transactions []models.Transaction
	Dropped      int // zero-amount rows discarded as noise
}

// Parser turns one source document into a Result. It holds no state across
// documents, so a single instance may be shared by concurrent workers.
type Parser struct {
	logger logging.Logger
}

// NewParser creates a statement parser.
func NewParser(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{logger: logger}
}

// ParseFile extracts the text of a document with the extractor matching its
// file type and parses it.
func (p *Parser) ParseFile(path string) (*Result, error) {
	return p.ParseFileWithExtractor(path, pdftext.ForFile(path))
}

// ParseFileWithExtractor extracts the text of a document with the provided
// extractor and parses it.
func (p *Parser) ParseFileWithExtractor(path string, extractor pdftext.TextExtractor) (*Result, error) {
	text, err := extractor.ExtractText(path)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "statement",
			Field:  "text extraction",
			Value:  path,
			Err:    err,
		}
	}
	return p.ParseText(filepath.Base(path), text), nil
}

// Parse reads pre-extracted statement text from r and returns its
// transactions. Provided for callers that only deal in text streams.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "statement",
			Field:  "input",
			Value:  "reader",
			Err:    err,
		}
	}
	return p.ParseText("", string(data)).Transactions, nil
}

// ParseText runs metadata extraction and line segmentation over the full
// page text of one document. Both work on the same text; neither depends on
// the other's matches.
func (p *Parser) ParseText(sourceFile, text string) *Result {
	meta := ExtractMetadata(sourceFile, text)

	seg := NewSegmenter()
	for _, line := range strings.Split(text, "\n") {
		seg.Feed(line)
	}
	transactions := seg.Finish()

	for i := range transactions {
		transactions[i].SourceFile = sourceFile
	}

	p.logger.Debug("Parsed statement document",
		logging.Field{Key: logging.FieldFile, Value: sourceFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "dropped", Value: seg.Dropped()})

	return &Result{
		Metadata:     meta,
		Transactions: transactions,
		Dropped:      seg.Dropped(),
	}
}
