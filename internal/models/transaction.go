package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction represents a single booking parsed from a statement. The
// segmenter creates it, the categorizer fills Counterparty, Category and the
// practitioner fields, and provenance fields are attached before aggregation.
type Transaction struct {
	Date         string          `json:"date" csv:"Date"`                       // Booking date, DD.MM.YYYY as printed
	ValueDate    string          `json:"valueDate" csv:"ValueDate"`             // Value date, DD.MM.YYYY as printed
	Amount       decimal.Decimal `json:"amount" csv:"Amount"`                   // Signed; never zero in final output
	Description  string          `json:"description" csv:"Description"`         // All fragments joined, trimmed
	Counterparty string          `json:"counterparty,omitempty" csv:"Counterparty"`
	Category     string          `json:"category" csv:"Category"`
	Lanr         string          `json:"lanr,omitempty" csv:"LANR"`
	Haevgid      string          `json:"haevgid,omitempty" csv:"HAEVGID"`
	Arzt         string          `json:"arzt,omitempty" csv:"Arzt"`
	Standort     string          `json:"standort,omitempty" csv:"Standort"`
	IskAccount   string          `json:"iskAccount,omitempty" csv:"IskAccount"` // Kontonummer of the source account
	IskName      string          `json:"iskName,omitempty" csv:"IskName"`
	SourceFile   string          `json:"sourceFile,omitempty" csv:"SourceFile"`
}

// IsCredit returns true if the transaction is an inflow.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit returns true if the transaction is an outflow.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// ParseGermanAmount converts a German-locale amount string ("1.234,56",
// "-88.052,96") to a decimal value. Thousands dots are stripped and the
// decimal comma replaced before parsing. Empty or unparseable input yields
// decimal.Zero; callers treat zero as "no amount found", never as a
// legitimate zero-value booking.
func ParseGermanAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.TrimSuffix(amount, "EUR")
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, ".", "")
	amount = strings.ReplaceAll(amount, ",", ".")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
