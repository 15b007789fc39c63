// =============================================================================
// PWD Works Red Flag Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the pwdaudit CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   pwdaudit analyze        - Analyze works registers in the input directory
//   pwdaudit validate       - Check an input workbook against the expected schema
//   pwdaudit version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : core business logic (not for external import)
//   - pkg/           : shared utilities
//
// =============================================================================

package main

import (
	"github.com/pwdaudit/redflag/cmd"
)

func main() {
	cmd.Execute()
}
