package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPractitionersFallsBackToDefaults(t *testing.T) {
	s := NewRuleStore(filepath.Join(t.TempDir(), "missing.yaml"), "")

	practitioners, err := s.LoadPractitioners()
	require.NoError(t, err)
	require.Len(t, practitioners, 8)

	p, ok := practitioners["3243603"]
	require.True(t, ok)
	assert.Equal(t, "Anja Fischer", p.Name)
	assert.Equal(t, "132052", p.Haevgid)
	assert.Equal(t, "Uckerath", p.Standort)
}

func TestLoadPractitionersFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practitioners.yaml")
	content := `practitioners:
  "1234567":
    name: Dr. Test
    haevgid: "999001"
    standort: Hilden
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := NewRuleStore(path, "")
	practitioners, err := s.LoadPractitioners()
	require.NoError(t, err)
	require.Len(t, practitioners, 1)
	assert.Equal(t, "Dr. Test", practitioners["1234567"].Name)
	assert.Equal(t, "Hilden", practitioners["1234567"].Standort)
}

func TestLoadPractitionersEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practitioners.yaml")
	require.NoError(t, os.WriteFile(path, []byte("practitioners: {}\n"), 0644))

	s := NewRuleStore(path, "")
	practitioners, err := s.LoadPractitioners()
	require.NoError(t, err)
	assert.Len(t, practitioners, 8)
}

func TestLoadPractitionersInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practitioners.yaml")
	require.NoError(t, os.WriteFile(path, []byte("practitioners: [not: a: map"), 0644))

	s := NewRuleStore(path, "")
	_, err := s.LoadPractitioners()
	assert.Error(t, err)
}

func TestLoadCounterpartiesFallsBackToDefaults(t *testing.T) {
	s := NewRuleStore("", filepath.Join(t.TempDir(), "missing.yaml"))

	rules, err := s.LoadCounterparties()
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	// Order matters: the HAVG fragment resolves before anything else.
	assert.Equal(t, "HAVG", rules[0].Fragment)
	assert.Equal(t, "HAVG Hausärztliche Vertragsgemeinschaft AG", rules[0].Name)
}

func TestLoadCounterpartiesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counterparties.yaml")
	content := `counterparties:
  - fragment: Testkasse
    name: Testkasse AG
  - fragment: Musterbank
    name: Musterbank eG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := NewRuleStore("", path)
	rules, err := s.LoadCounterparties()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Testkasse", rules[0].Fragment)
	assert.Equal(t, "Musterbank eG", rules[1].Name)
}

func TestFindConfigFileAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	s := NewRuleStore("", "")
	found, err := s.FindConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = s.FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
