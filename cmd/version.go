// =============================================================================
// PWD Works Red Flag Analyzer - Version Command
// =============================================================================

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// set at build time via -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("pwdaudit %s (built %s, %s)\n", Version, BuildDate, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
