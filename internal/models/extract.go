package models

import (
	"github.com/shopspring/decimal"
)

// Period describes the calendar month a monthly extract covers.
type Period struct {
	Month string `json:"month"` // "YYYY-MM"
	From  string `json:"from"`  // first day, "YYYY-MM-DD"
	To    string `json:"to"`    // last day, "YYYY-MM-DD"
}

// Summary holds the aggregate figures of a monthly extract. The invariant
// NetChange == TotalInflows + TotalOutflows holds exactly, with all three
// rounded to two decimal places.
type Summary struct {
	TransactionCount int             `json:"transactionCount"`
	TotalInflows     decimal.Decimal `json:"totalInflows"`
	TotalOutflows    decimal.Decimal `json:"totalOutflows"`
	NetChange        decimal.Decimal `json:"netChange"`
}

// MonthlyExtract is the boundary artifact: one JSON document per
// (account, month) with all transactions of that month sorted by date.
type MonthlyExtract struct {
	SourceFile       string        `json:"sourceFile"`
	ExtractedAt      string        `json:"extractedAt"` // ISO-8601
	ExtractionMethod string        `json:"extractionMethod"`
	Account          AccountInfo   `json:"account"`
	Period           Period        `json:"period"`
	Summary          Summary       `json:"summary"`
	Transactions     []Transaction `json:"transactions"`
}
