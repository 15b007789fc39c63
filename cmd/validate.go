// =============================================================================
// PWD Works Red Flag Analyzer - Validate Command
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pwdaudit/redflag/internal/validation"
	"github.com/pwdaudit/redflag/internal/xlsxreader"
	"github.com/pwdaudit/redflag/pkg/utils"
)

var validateSheet string

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check works registers for structural and data problems",
	Long: `Parses the given workbooks (or everything in the configured input
directory) and reports column resolution, data quality, and record
consistency problems without running the analysis.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSheet, "sheet", "s", "", "worksheet to read (default: first sheet)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sheet := cfg.SheetName
	if validateSheet != "" {
		sheet = validateSheet
	}

	files := args
	if len(files) == 0 {
		fm := utils.NewFileManager(logger)
		files, err = fm.DiscoverWorkbooks(cfg.InputDir)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .xlsx files found in %s", cfg.InputDir)
	}

	var totalErrors int
	for _, path := range files {
		cmd.Printf("%s:\n", filepath.Base(path))

		parsed, err := xlsxreader.ReadFile(path, sheet)
		if err != nil {
			cmd.Printf("  FAILED: %v\n", err)
			totalErrors++
			continue
		}
		cmd.Printf("  %d records, quality score %.0f/100\n",
			len(parsed.Records), parsed.Quality.Score())
		for _, issue := range parsed.Quality.Issues {
			cmd.Printf("  [QUALITY] %s\n", issue)
		}

		rep := validation.Validate(parsed.Records)
		for _, issue := range rep.Issues {
			cmd.Printf("  %s\n", issue)
		}
		totalErrors += len(rep.Errors())
		if rep.Clean() && len(parsed.Quality.Issues) == 0 {
			cmd.Println("  OK")
		}
	}

	if totalErrors > 0 {
		return fmt.Errorf("validation found %d errors", totalErrors)
	}
	return nil
}
