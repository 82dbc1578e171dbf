// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/dp-213/Inso-liquiplanung/internal/common"
	"github.com/dp-213/Inso-liquiplanung/internal/config"
	"github.com/dp-213/Inso-liquiplanung/internal/fileutils"
	"github.com/dp-213/Inso-liquiplanung/internal/logging"
	"github.com/dp-213/Inso-liquiplanung/internal/pdftext"
	"github.com/dp-213/Inso-liquiplanung/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	CSV    bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "isk-extract",
		Short: "Extract and categorize transactions from ISK bank statements.",
		Long: `isk-extract converts page-extracted ISK bank-statement text into
categorized transaction records and monthly JSON extracts per account.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to isk-extract!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			adapter := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetLogger(adapter)
			fileutils.SetLogger(Log)
			store.SetLogger(Log)
			common.SetLogger(adapter)
			pdftext.SetLogger(adapter)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags are the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific categorize command flags
	Description string
	Amount      string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory for monthly extracts")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.CSV, "csv", false, "Also export transactions as CSV")
}

// GetLogrusAdapter returns the shared command logger wrapped in the logging abstraction.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// LoadConfig loads the application configuration, exiting on invalid config.
func LoadConfig() *config.Config {
	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.Fatalf("Failed to initialize configuration: %v", err)
	}
	if len(cfg.CSV.Delimiter) == 1 {
		common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}
	return cfg
}
