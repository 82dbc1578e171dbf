// Viper-based hierarchical configuration: defaults, then an optional config
// file, then ISK_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/models"

	"github.com/spf13/viper"
)

// Account describes one monitored bank account: the artifact identity plus
// the folder its statements live in.
type Account struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Kontonummer string `mapstructure:"kontonummer" yaml:"kontonummer"`
	IBAN        string `mapstructure:"iban" yaml:"iban"`
	Bank        string `mapstructure:"bank" yaml:"bank"`
	Folder      string `mapstructure:"folder" yaml:"folder"`
}

// Info returns the account identity as it appears in artifacts.
func (a Account) Info() models.AccountInfo {
	return models.AccountInfo{
		Name:        a.Name,
		Kontonummer: a.Kontonummer,
		IBAN:        a.IBAN,
		Bank:        a.Bank,
	}
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Extraction struct {
		InputDir  string `mapstructure:"input_dir" yaml:"input_dir"`
		OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
		Workers   int    `mapstructure:"workers" yaml:"workers"`
		CSVExport bool   `mapstructure:"csv_export" yaml:"csv_export"`
	} `mapstructure:"extraction" yaml:"extraction"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Rules struct {
		PractitionersFile  string `mapstructure:"practitioners_file" yaml:"practitioners_file"`
		CounterpartiesFile string `mapstructure:"counterparties_file" yaml:"counterparties_file"`
	} `mapstructure:"rules" yaml:"rules"`

	Accounts []Account `mapstructure:"accounts" yaml:"accounts"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.isk-extract")
	v.AddConfigPath(".isk-extract")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ISK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found is fine, defaults and env vars apply.
	}

	// The API key always comes from the unprefixed environment variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Accounts) == 0 {
		config.Accounts = DefaultAccounts()
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("extraction.input_dir", ".")
	v.SetDefault("extraction.output_dir", "02-extracted")
	v.SetDefault("extraction.workers", 0) // 0 selects one worker per CPU
	v.SetDefault("extraction.csv_export", false)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.0-pro")
}

// DefaultAccounts returns the built-in ISK account registry.
func DefaultAccounts() []Account {
	return []Account{
		{
			Name:        "ISK Uckerath",
			Kontonummer: "400080156",
			IBAN:        "DE91 6005 0101 0400 0801 56",
			Bank:        "BW Bank",
			Folder:      "BW-Bank #400080156 (ISK) Uckerath",
		},
		{
			Name:        "ISK Velbert",
			Kontonummer: "400080228",
			IBAN:        "DE87 6005 0101 0400 0802 28",
			Bank:        "BW Bank",
			Folder:      "BW-Bank #400080228 (ISK) Velbert",
		},
	}
}

// AccountByKontonummer finds an account in the registry by its number.
func (c *Config) AccountByKontonummer(kontonummer string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.Kontonummer == kontonummer {
			return a, true
		}
	}
	return Account{}, false
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "warning": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Extraction.Workers < 0 {
		return fmt.Errorf("extraction workers must not be negative")
	}

	for _, a := range config.Accounts {
		if a.Kontonummer == "" {
			return fmt.Errorf("account %q has no kontonummer", a.Name)
		}
	}

	return nil
}
