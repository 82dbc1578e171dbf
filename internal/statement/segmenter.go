package statement

import (
	"regexp"
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/models"
)

// The segmenter walks the line stream of one document as a two-state
// automaton. A line opening with a booking-date/value-date pair starts a
// transaction; all following lines extend its description until the next
// start line or end of input. The first trailing decimal amount seen for a
// transaction is claimed as its amount; after that claim no further line is
// probed. Transactions whose amount never resolves to a non-zero value are
// dropped as parse noise (a genuine 0,00 booking would be dropped too; all
// observed zero rows are balance-carry lines).
type segmenterState int

const (
	stateIdle segmenterState = iota
	stateAccumulating
)

var (
	// Start of a transaction: "DD.MM.YYYY DD.MM.YYYY remainder".
	txStartPattern = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})\s+(\d{2}\.\d{2}\.\d{4})\s+(.+)`)

	// Amount anchored at line end: "-?1.234,56" or "-?1234,56".
	trailingAmountPattern = regexp.MustCompile(`(-?[\d.]+,\d{2})$`)
)

// Header and footer boilerplate emitted by the banking frontend around and
// inside the transaction table. Lines containing any of these markers are
// discarded in either state.
var skipMarkers = []string{
	"Anfangsaldo (in EUR)",
	"Endsaldo (in EUR)",
	"Datum",
	"Valuta",
	"Buchungsinformationen",
	"Umsatz EUR",
	"Seite",
	"UC eBanking",
	"Version",
	"UniCredit",
	"Gedruckt",
	"Erzeugt",
	"Auszug Nr",
}

// Segmenter assembles transactions from a stream of statement text lines.
type Segmenter struct {
	state         segmenterState
	current       models.Transaction
	fragments     []string
	amountClaimed bool

	transactions []models.Transaction
	dropped      int
}

// NewSegmenter returns a segmenter in the idle state.
func NewSegmenter() *Segmenter {
	return &Segmenter{state: stateIdle}
}

// Feed processes a single input line.
func (s *Segmenter) Feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" || isBoilerplate(line) {
		return
	}

	if m := txStartPattern.FindStringSubmatch(line); m != nil {
		s.finalize()
		s.state = stateAccumulating
		s.current = models.Transaction{Date: m[1], ValueDate: m[2]}
		s.fragments = nil
		s.amountClaimed = false
		s.claimAmount(m[3])
		return
	}

	if s.state != stateAccumulating {
		return
	}

	if !s.amountClaimed {
		s.claimAmount(line)
		return
	}
	s.fragments = append(s.fragments, line)
}

// Finish closes any open transaction and returns all emitted transactions.
func (s *Segmenter) Finish() []models.Transaction {
	s.finalize()
	s.state = stateIdle
	return s.transactions
}

// Dropped returns the number of finalized transactions discarded because
// their amount never resolved.
func (s *Segmenter) Dropped() int {
	return s.dropped
}

// claimAmount scans text for a trailing amount. On a match the amount is
// consumed and the residual text before it becomes a description fragment;
// otherwise the whole text is a fragment. A claim is final once the parsed
// amount is non-zero; exactly one amount per transaction, first match wins.
func (s *Segmenter) claimAmount(text string) {
	m := trailingAmountPattern.FindStringIndex(text)
	if m == nil {
		if text != "" {
			s.fragments = append(s.fragments, text)
		}
		return
	}

	amountStr := text[m[0]:m[1]]
	residual := strings.TrimSpace(text[:m[0]])
	if residual != "" {
		s.fragments = append(s.fragments, residual)
	}
	s.current.Amount = models.ParseGermanAmount(amountStr)
	s.amountClaimed = !s.current.Amount.IsZero()
}

// finalize joins the accumulated fragments and emits the open transaction,
// discarding it when no amount was ever claimed.
func (s *Segmenter) finalize() {
	if s.state != stateAccumulating {
		return
	}
	s.current.Description = strings.TrimSpace(strings.Join(s.fragments, " "))
	if s.current.Amount.IsZero() {
		s.dropped++
		return
	}
	s.transactions = append(s.transactions, s.current)
}

func isBoilerplate(line string) bool {
	for _, marker := range skipMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
