package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dp-213/Inso-liquiplanung/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Short, "every configured account")
	assert.NotNil(t, Cmd.Run)
}

func TestFindAccountFilesPrefersKontoauszuegeSubfolder(t *testing.T) {
	inputDir := t.TempDir()
	account := config.Account{Name: "ISK Uckerath", Kontonummer: "400080156", Folder: "BW-Bank #400080156 (ISK) Uckerath"}

	sub := filepath.Join(inputDir, account.Folder, "Kontoauszüge")
	require.NoError(t, os.MkdirAll(sub, 0755))
	statement := filepath.Join(sub, "Auszug #1.pdf")
	require.NoError(t, os.WriteFile(statement, []byte("x"), 0644))

	files, err := findAccountFiles(inputDir, account)
	require.NoError(t, err)
	assert.Equal(t, []string{statement}, files)
}

func TestFindAccountFilesFallsBackToAccountFolder(t *testing.T) {
	inputDir := t.TempDir()
	account := config.Account{Name: "ISK Velbert", Kontonummer: "400080228", Folder: "BW-Bank #400080228 (ISK) Velbert"}

	folder := filepath.Join(inputDir, account.Folder)
	require.NoError(t, os.MkdirAll(folder, 0755))
	statement := filepath.Join(folder, "Auszug #2.pdf")
	require.NoError(t, os.WriteFile(statement, []byte("x"), 0644))

	files, err := findAccountFiles(inputDir, account)
	require.NoError(t, err)
	assert.Equal(t, []string{statement}, files)
}

func TestFindAccountFilesMissingFolder(t *testing.T) {
	account := config.Account{Name: "ISK Uckerath", Folder: "does-not-exist"}
	_, err := findAccountFiles(t.TempDir(), account)
	assert.Error(t, err)
}
