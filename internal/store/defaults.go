package store

import (
	"github.com/dp-213/Inso-liquiplanung/internal/models"
)

// DefaultPractitioners is the built-in LANR lookup table of the practitioners
// billing through the ISK accounts.
func DefaultPractitioners() map[string]models.Practitioner {
	return map[string]models.Practitioner{
		"3892462": {Name: "Dr. van Suntum", Haevgid: "055425", Standort: "Velbert"},
		"8836735": {Name: "Dr. Beyer", Haevgid: "067026", Standort: "Velbert"},
		"7729639": {Name: "Dr. Kamler", Haevgid: "083974", Standort: "Velbert"},
		"8898288": {Name: "Dr. Rösing", Haevgid: "036131", Standort: "Eitorf"},
		"1445587": {Name: "Dr. Binas", Haevgid: "132025", Standort: "Uckerath"},
		"1203618": {Name: "Dr. Schweitzer", Haevgid: "132049", Standort: "Uckerath"},
		"3243603": {Name: "Anja Fischer", Haevgid: "132052", Standort: "Uckerath"},
		"4652451": {Name: "Verena Ludwig", Haevgid: "132064", Standort: "Uckerath"},
	}
}

// DefaultCounterparties is the built-in ordered list of institution name
// fragments. Order matters: the first fragment contained in a description
// resolves the counterparty.
func DefaultCounterparties() []models.CounterpartyRule {
	return []models.CounterpartyRule{
		{Fragment: "HAVG", Name: "HAVG Hausärztliche Vertragsgemeinschaft AG"},
		{Fragment: "PVS rhein-ruhr", Name: "PVS rhein-ruhr GmbH"},
		{Fragment: "DRV", Name: "Deutsche Rentenversicherung"},
		{Fragment: "Rentenversicherung", Name: "Deutsche Rentenversicherung"},
		{Fragment: "Kreis Mettmann", Name: "Kreis Mettmann"},
		{Fragment: "Landesoberkasse", Name: "Landesoberkasse"},
		{Fragment: "Sparkasse", Name: "Sparkasse Hilden-Ratingen-Velbert"},
		{Fragment: "WELADED1VEL", Name: "Sparkasse Hilden-Ratingen-Velbert"},
	}
}
