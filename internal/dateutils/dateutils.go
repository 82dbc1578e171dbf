// Package dateutils provides date handling for statement booking dates.
package dateutils

import (
	"fmt"
	"time"
)

// Date layouts encountered in statement text and artifacts.
const (
	DateLayoutGerman = "02.01.2006"
	DateLayoutISO    = "2006-01-02"
	DateLayoutMonth  = "2006-01"
)

// ParseGermanDate parses a DD.MM.YYYY booking date.
func ParseGermanDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutGerman, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a German date %q: %w", dateStr, err)
	}
	return t, nil
}

// MonthKey returns the "YYYY-MM" grouping key for a date.
func MonthKey(date time.Time) string {
	return date.Format(DateLayoutMonth)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month containing date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month containing date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// MonthBounds returns the ISO from/to bounds of the month identified by a
// "YYYY-MM" key. An invalid key yields an error instead of bogus bounds.
func MonthBounds(monthKey string) (from, to string, err error) {
	t, err := time.Parse(DateLayoutMonth, monthKey)
	if err != nil {
		return "", "", fmt.Errorf("not a month key %q: %w", monthKey, err)
	}
	return ToISODate(StartOfMonth(t)), ToISODate(EndOfMonth(t)), nil
}
