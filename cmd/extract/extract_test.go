package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommand_Metadata(t *testing.T) {
	assert.Equal(t, "extract", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Extract transactions")
	assert.NotNil(t, Cmd.Run)

	accountFlag := Cmd.Flags().Lookup("account")
	if assert.NotNil(t, accountFlag) {
		assert.Equal(t, "a", accountFlag.Shorthand)
	}
}

func TestCollectFilesSingleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Auszug #1.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	files, err := collectFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectFilesDirectory(t *testing.T) {
	dir := t.TempDir()
	statement := filepath.Join(dir, "Auszug #1.pdf")
	receipt := filepath.Join(dir, "Zahlbeleg #1.pdf")
	require.NoError(t, os.WriteFile(statement, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(receipt, []byte("x"), 0644))

	files, err := collectFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{statement}, files)
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := collectFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
