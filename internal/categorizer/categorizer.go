// Package categorizer classifies parsed transactions by counterparty and
// purpose using ordered heuristic text rules.
package categorizer

import (
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
)

// rule is one (predicate, category) pair. Rules are evaluated top-down
// against the lowercased description and resolved counterparty; the first
// match wins.
type rule struct {
	name     string
	category string
	matches  func(desc, counterparty string) bool
}

// The rule order encodes priority. The KV rule covers both the insurer-name
// match and the "Rate n/<year>" installment pattern the KV uses for
// deferred quarterly payouts.
var categoryRules = []rule{
	{
		name:     "capitation payment",
		category: models.CategoryHZV,
		matches: func(desc, cp string) bool {
			return strings.Contains(desc, "hzv") ||
				strings.Contains(cp, "havg") ||
				strings.Contains(desc, "havg")
		},
	},
	{
		name:     "statutory insurance billing",
		category: models.CategoryKV,
		matches: func(desc, cp string) bool {
			return strings.Contains(cp, "kassenärztliche") ||
				strings.Contains(cp, "kvno") ||
				(strings.Contains(desc, "rate") && strings.Contains(desc, "/20"))
		},
	},
	{
		name:     "private billing",
		category: models.CategoryPVS,
		matches: func(desc, cp string) bool {
			return strings.Contains(cp, "pvs") ||
				strings.Contains(desc, "pvs") ||
				strings.Contains(desc, "privatabrechnung") ||
				strings.Contains(desc, "igel")
		},
	},
	{
		name:     "pension insurer report fees",
		category: models.CategoryGutachten,
		matches: func(desc, cp string) bool {
			return strings.Contains(cp, "drv") ||
				strings.Contains(desc, "drv") ||
				strings.Contains(desc, "rentenversicherung") ||
				strings.Contains(desc, "befundberichtsko")
		},
	},
	{
		name:     "district office report fees",
		category: models.CategoryGutachten,
		matches: func(desc, cp string) bool {
			return strings.Contains(cp, "kreis") ||
				strings.Contains(cp, "landesoberkasse")
		},
	},
	{
		name:     "batch transfer",
		category: models.CategorySammelueberweisung,
		matches: func(desc, cp string) bool {
			return strings.Contains(desc, "sammelüberweisung")
		},
	},
	{
		name:     "estate payout",
		category: models.CategoryAuskehrungSpk,
		matches: func(desc, cp string) bool {
			return strings.Contains(desc, "auskehrung") ||
				strings.Contains(desc, "massekreditvereinbarung")
		},
	},
	{
		name:     "internal transfer",
		category: models.CategoryIntern,
		matches: func(desc, cp string) bool {
			return strings.Contains(desc, "umbuchung")
		},
	},
}

// Categorizer resolves counterparties and assigns categories. The lookup
// data is immutable after construction.
type Categorizer struct {
	counterparties []models.CounterpartyRule
	practitioners  map[string]models.Practitioner
	logger         logging.Logger
}

// RuleSource supplies the lookup data, typically a store.RuleStore.
type RuleSource interface {
	LoadPractitioners() (map[string]models.Practitioner, error)
	LoadCounterparties() ([]models.CounterpartyRule, error)
}

// New creates a Categorizer with lookup data from the given source. Load
// failures degrade to empty lookup data; classification still works, only
// counterparty/practitioner resolution goes quiet.
func New(source RuleSource, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	c := &Categorizer{logger: logger}

	counterparties, err := source.LoadCounterparties()
	if err != nil {
		logger.WithError(err).Warn("Failed to load counterparty rules")
	} else {
		c.counterparties = counterparties
	}

	practitioners, err := source.LoadPractitioners()
	if err != nil {
		logger.WithError(err).Warn("Failed to load practitioner table")
	} else {
		c.practitioners = practitioners
	}

	return c
}

// Apply enriches a transaction in place: counterparty, category and, when
// the description carries a practitioner code pair, the practitioner fields.
func (c *Categorizer) Apply(tx *models.Transaction) {
	tx.Counterparty = c.ResolveCounterparty(tx.Description)
	tx.Category = c.Categorize(tx.Description, tx.Counterparty)

	if code := c.ExtractPractitioner(tx.Description); code != nil {
		tx.Haevgid = code.Haevgid
		tx.Lanr = code.Lanr
		tx.Arzt = code.Arzt
		tx.Standort = code.Standort
	}
}

// Categorize returns the category for a description and resolved
// counterparty, CategorySonstige when no rule matches.
func (c *Categorizer) Categorize(description, counterparty string) string {
	desc := strings.ToLower(description)
	cp := strings.ToLower(counterparty)

	for _, r := range categoryRules {
		if r.matches(desc, cp) {
			c.logger.Debug("Transaction categorized",
				logging.Field{Key: "rule", Value: r.name},
				logging.Field{Key: logging.FieldCategory, Value: r.category})
			return r.category
		}
	}
	return models.CategorySonstige
}

// ResolveCounterparty returns the institution name of the first fragment
// rule contained in the description, or "" when none matches. Fragments are
// matched case-sensitively; the known institutions appear verbatim in the
// booking text.
func (c *Categorizer) ResolveCounterparty(description string) string {
	for _, r := range c.counterparties {
		if strings.Contains(description, r.Fragment) {
			return r.Name
		}
	}
	return ""
}
