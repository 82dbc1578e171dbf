// Package store provides loading of the static classification lookup data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dp-213/Inso-liquiplanung/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore manages loading of the practitioner table and the counterparty
// fragment rules. Both are process-wide constant lookup data: loaded once,
// never mutated. When no YAML file is found the built-in defaults apply.
type RuleStore struct {
	PractitionersFile  string
	CounterpartiesFile string
}

// NewRuleStore creates a store for classification lookup data.
func NewRuleStore(practitionersFile, counterpartiesFile string) *RuleStore {
	return &RuleStore{
		PractitionersFile:  practitionersFile,
		CounterpartiesFile: counterpartiesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "isk-extract", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

type practitionersConfig struct {
	Practitioners map[string]models.Practitioner `yaml:"practitioners"`
}

type counterpartiesConfig struct {
	Counterparties []models.CounterpartyRule `yaml:"counterparties"`
}

// LoadPractitioners returns the LANR lookup table, from YAML when a file is
// present, otherwise the built-in table.
func (s *RuleStore) LoadPractitioners() (map[string]models.Practitioner, error) {
	filename := s.PractitionersFile
	if filename == "" {
		filename = "practitioners.yaml"
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.Debugf("No practitioner file %s found, using built-in table", filename)
		return DefaultPractitioners(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read practitioner file %s: %w", path, err)
	}

	var cfg practitionersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse practitioner file %s: %w", path, err)
	}
	if len(cfg.Practitioners) == 0 {
		log.Warnf("Practitioner file %s is empty, using built-in table", path)
		return DefaultPractitioners(), nil
	}

	log.Debugf("Loaded %d practitioners from %s", len(cfg.Practitioners), path)
	return cfg.Practitioners, nil
}

// LoadCounterparties returns the ordered counterparty fragment rules, from
// YAML when a file is present, otherwise the built-in rules.
func (s *RuleStore) LoadCounterparties() ([]models.CounterpartyRule, error) {
	filename := s.CounterpartiesFile
	if filename == "" {
		filename = "counterparties.yaml"
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.Debugf("No counterparty file %s found, using built-in rules", filename)
		return DefaultCounterparties(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read counterparty file %s: %w", path, err)
	}

	var cfg counterpartiesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse counterparty file %s: %w", path, err)
	}
	if len(cfg.Counterparties) == 0 {
		log.Warnf("Counterparty file %s is empty, using built-in rules", path)
		return DefaultCounterparties(), nil
	}

	log.Debugf("Loaded %d counterparty rules from %s", len(cfg.Counterparties), path)
	return cfg.Counterparties, nil
}
