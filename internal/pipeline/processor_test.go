package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dp-213/Inso-liquiplanung/internal/categorizer"
	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/models"
	"github.com/dp-213/Inso-liquiplanung/internal/statement"
	"github.com/dp-213/Inso-liquiplanung/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementJanuary = `Kontonummer  400080156
IBAN         DE91 6005 0101 0400 0801 56
Auszug Nr. 1

05.01.2026 05.01.2026 HAVG Hausärztliche
Vertragsgemeinschaft AG                 110.000,00
`

const statementFebruary = `Kontonummer  400080156
Auszug Nr. 2

03.02.2026 03.02.2026 Überweisung PVS rhein-ruhr GmbH
Privatabrechnung                        2.500,00
`

func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestProcessor(t *testing.T, workers int) (*Processor, *logging.MockLogger) {
	t.Helper()
	logger := &logging.MockLogger{}
	parser := statement.NewParser(logger)
	cat := categorizer.New(store.NewRuleStore("", ""), logger)
	return NewProcessor(parser, cat, logger, workers), logger
}

func uckerath() models.AccountInfo {
	return models.AccountInfo{Name: "ISK Uckerath", Kontonummer: "400080156"}
}

func TestProcessAccount(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeStatement(t, dir, "Auszug #1.txt", statementJanuary),
		writeStatement(t, dir, "Auszug #2.txt", statementFebruary),
	}

	proc, _ := newTestProcessor(t, 1)
	result := proc.ProcessAccount(context.Background(), uckerath(), files)

	require.Len(t, result.Transactions, 2)
	assert.Empty(t, result.Failures)
	assert.Len(t, result.Metadata, 2)

	first := result.Transactions[0]
	assert.Equal(t, models.CategoryHZV, first.Category)
	assert.Equal(t, "HAVG Hausärztliche Vertragsgemeinschaft AG", first.Counterparty)
	assert.Equal(t, "400080156", first.IskAccount)
	assert.Equal(t, "ISK Uckerath", first.IskName)
	assert.Equal(t, "Auszug #1.txt", first.SourceFile)

	second := result.Transactions[1]
	assert.Equal(t, models.CategoryPVS, second.Category)
	assert.Equal(t, "Auszug #2.txt", second.SourceFile)
}

func TestProcessAccountFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeStatement(t, dir, "Auszug #1.txt", statementJanuary),
		filepath.Join(dir, "Auszug #2.txt"), // never written
	}

	proc, logger := newTestProcessor(t, 1)
	result := proc.ProcessAccount(context.Background(), uckerath(), files)

	require.Len(t, result.Transactions, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Auszug #2.txt", result.Failures[0].File)
	assert.Error(t, result.Failures[0].Err)
	assert.True(t, logger.HasEntry("ERROR", "Skipping document"))
}

func TestProcessAccountDeterministicAcrossWorkerCounts(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 6; i++ {
		name := string(rune('a'+i)) + " Auszug #1.txt"
		files = append(files, writeStatement(t, dir, name, statementJanuary))
	}

	sequential, _ := newTestProcessor(t, 1)
	parallel, _ := newTestProcessor(t, 4)

	want := sequential.ProcessAccount(context.Background(), uckerath(), files)
	got := parallel.ProcessAccount(context.Background(), uckerath(), files)

	require.Equal(t, len(want.Transactions), len(got.Transactions))
	for i := range want.Transactions {
		assert.Equal(t, want.Transactions[i].SourceFile, got.Transactions[i].SourceFile)
	}
}

func TestProcessAccountEmptyFileList(t *testing.T) {
	proc, _ := newTestProcessor(t, 1)
	result := proc.ProcessAccount(context.Background(), uckerath(), nil)

	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Failures)
}

func TestVerifyBalancesMismatchIsWarnedNotFatal(t *testing.T) {
	dir := t.TempDir()
	text := `Kontonummer  400080156
Anfangssaldo  100,00 EUR

05.01.2026 05.01.2026 Gutschrift                 50,00

Endsaldo  999,99 EUR
`
	files := []string{writeStatement(t, dir, "Auszug #9.txt", text)}

	proc, logger := newTestProcessor(t, 1)
	result := proc.ProcessAccount(context.Background(), uckerath(), files)

	require.Len(t, result.Transactions, 1)
	assert.True(t, logger.HasEntry("WARN", "Balance verification mismatch"))
}
