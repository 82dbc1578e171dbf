package models

// Transaction categories. Classification is first-match-wins over an ordered
// rule list (see internal/categorizer); CategorySonstige is the fallback.
const (
	CategoryHZV                = "HZV"
	CategoryKV                 = "KV"
	CategoryPVS                = "PVS"
	CategoryGutachten          = "GUTACHTEN"
	CategorySammelueberweisung = "SAMMELUEBERWEISUNG"
	CategoryAuskehrungSpk      = "AUSKEHRUNG_SPK"
	CategoryIntern             = "INTERN"
	CategorySonstige           = "SONSTIGE"
)

// Categories lists all known categories in rule-priority order.
var Categories = []string{
	CategoryHZV,
	CategoryKV,
	CategoryPVS,
	CategoryGutachten,
	CategorySammelueberweisung,
	CategoryAuskehrungSpk,
	CategoryIntern,
	CategorySonstige,
}

// ExtractionMethodText is the free-text label recorded in artifacts produced
// by the line-based text extraction path.
const ExtractionMethodText = "pdftotext line extraction"
