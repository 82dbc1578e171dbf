// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Monthly extract artifacts carry amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountInfo identifies the bank account a statement belongs to,
// as it appears in the monthly extract artifact.
type AccountInfo struct {
	Name        string `json:"name" yaml:"name"`
	Kontonummer string `json:"kontonummer" yaml:"kontonummer"`
	IBAN        string `json:"iban" yaml:"iban"`
	Bank        string `json:"bank" yaml:"bank"`
}

// Practitioner is one entry of the static LANR lookup table: the physician
// behind a capitation payment and the site they work at.
type Practitioner struct {
	Name     string `yaml:"name"`
	Haevgid  string `yaml:"haevgid"`
	Standort string `yaml:"standort"`
}

// CounterpartyRule maps a description fragment to a resolved institution
// name. Rules are evaluated in order; the first fragment contained in the
// description wins.
type CounterpartyRule struct {
	Fragment string `yaml:"fragment"`
	Name     string `yaml:"name"`
}
