package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balances holds the opening and closing balance printed in the statement
// header. Either may be absent when the header pattern did not match.
type Balances struct {
	Opening *decimal.Decimal `json:"opening,omitempty"`
	Closing *decimal.Decimal `json:"closing,omitempty"`
}

// StatementMetadata holds the header-level facts of one source document.
// It is created once per document and never mutated after extraction; a field
// stays at its zero value when its header pattern did not match.
type StatementMetadata struct {
	SourceFile      string      `json:"sourceFile"`
	ExtractedAt     time.Time   `json:"extractedAt"`
	Account         AccountInfo `json:"account"`
	StatementNumber int         `json:"statementNumber,omitempty"`
	StatementDate   string      `json:"statementDate,omitempty"`
	Balances        Balances    `json:"balances"`
}

// HasBalances reports whether both opening and closing balance were found,
// which is the precondition for the balance verification step.
func (m *StatementMetadata) HasBalances() bool {
	return m.Balances.Opening != nil && m.Balances.Closing != nil
}
