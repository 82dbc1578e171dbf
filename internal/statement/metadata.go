package statement

import (
	"regexp"
	"strconv"
	"time"

	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/shopspring/decimal"
)

// Header patterns of the daily BW-Bank statements. Each search is optional
// and independent: a miss leaves its field absent and never blocks the other
// fields or the transaction parsing.
var (
	kontonummerPattern   = regexp.MustCompile(`Kontonummer\s+(\d+)`)
	ibanPattern          = regexp.MustCompile(`IBAN\s+(DE\d{2}\s*\d{4}\s*\d{4}\s*\d{4}\s*\d{4}\s*\d{2})`)
	statementNrPattern   = regexp.MustCompile(`Auszug Nr\.\s*(\d+)`)
	statementDatePattern = regexp.MustCompile(`Kontoauszugsdatum\s+(\d{2}\.\d{2}\.\d{4})`)
	openingPattern       = regexp.MustCompile(`Anfangssaldo\s+([\d.,]+)\s*EUR`)
	closingPattern       = regexp.MustCompile(`Endsaldo\s+([\d.,]+)\s*EUR`)
)

// ExtractMetadata pulls the header-level statement facts out of the full
// concatenated document text.
func ExtractMetadata(sourceFile, text string) models.StatementMetadata {
	meta := models.StatementMetadata{
		SourceFile:  sourceFile,
		ExtractedAt: time.Now(),
	}

	if m := kontonummerPattern.FindStringSubmatch(text); m != nil {
		meta.Account.Kontonummer = m[1]
	}
	if m := ibanPattern.FindStringSubmatch(text); m != nil {
		meta.Account.IBAN = m[1]
	}
	if m := statementNrPattern.FindStringSubmatch(text); m != nil {
		if nr, err := strconv.Atoi(m[1]); err == nil {
			meta.StatementNumber = nr
		}
	}
	if m := statementDatePattern.FindStringSubmatch(text); m != nil {
		meta.StatementDate = m[1]
	}
	if m := openingPattern.FindStringSubmatch(text); m != nil {
		meta.Balances.Opening = amountPtr(m[1])
	}
	if m := closingPattern.FindStringSubmatch(text); m != nil {
		meta.Balances.Closing = amountPtr(m[1])
	}

	return meta
}

func amountPtr(amountStr string) *decimal.Decimal {
	d := models.ParseGermanAmount(amountStr)
	return &d
}
