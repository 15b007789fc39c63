// =============================================================================
// PWD Works Red Flag Analyzer - Root Command
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pwdaudit/redflag/internal/config"
	"github.com/pwdaudit/redflag/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pwdaudit",
	Short: "Red flag analysis for PWD works registers",
	Long: `pwdaudit reads public works contract registers (.xlsx), checks every
work against a catalogue of audit red flags (excess expenditure, delays,
overlapping works, contract splitting) and writes the findings as Excel,
HTML and JSON reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors print once, here, and set the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// setup loads the configuration and builds the logger shared by the
// subcommands.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile, verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
