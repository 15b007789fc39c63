// =============================================================================
// PWD Works Red Flag Analyzer - Analyze Command
// =============================================================================
//
// The analyze command is the main entry point: it discovers input
// workbooks (or takes one via --file), runs each through the read ->
// validate -> analyze -> report pipeline, and prints a batch summary.
// Files process concurrently up to the configured limit.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pwdaudit/redflag/internal/config"
	"github.com/pwdaudit/redflag/internal/engine"
	"github.com/pwdaudit/redflag/internal/report"
	"github.com/pwdaudit/redflag/internal/types"
	"github.com/pwdaudit/redflag/internal/validation"
	"github.com/pwdaudit/redflag/internal/xlsxreader"
	"github.com/pwdaudit/redflag/pkg/utils"
)

var (
	analyzeFile    string
	analyzeSheet   string
	analyzeFormats []string
	analyzeAsOf    string
	analyzeDryRun  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze works registers and generate red flag reports",
	Long: `Reads every .xlsx works register in the configured input directory
(or a single file given with --file), evaluates the red flag catalogue
against it, and writes reports in the configured formats.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "analyze a single workbook instead of the input directory")
	analyzeCmd.Flags().StringVarP(&analyzeSheet, "sheet", "s", "", "worksheet to read (default: first sheet)")
	analyzeCmd.Flags().StringSliceVar(&analyzeFormats, "formats", nil, "report formats to generate (excel, html, json)")
	analyzeCmd.Flags().StringVar(&analyzeAsOf, "as-of", "", "evaluation date for time-based checks (YYYY-MM-DD, default: today)")
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "analyze and print the summary without writing reports or archiving")
	rootCmd.AddCommand(analyzeCmd)
}

// fileOutcome is one file's result in the batch summary.
type fileOutcome struct {
	path   string
	result *types.AnalysisResult
	report []string
	err    error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	asOf := time.Now()
	if analyzeAsOf != "" {
		asOf, err = time.Parse("2006-01-02", analyzeAsOf)
		if err != nil {
			return fmt.Errorf("parsing --as-of: %w", err)
		}
	}

	sheet := cfg.SheetName
	if analyzeSheet != "" {
		sheet = analyzeSheet
	}
	formats := cfg.ReportFormats
	if len(analyzeFormats) > 0 {
		formats = analyzeFormats
	}

	fm := utils.NewFileManager(logger)
	var files []string
	if analyzeFile != "" {
		files = []string{analyzeFile}
	} else {
		files, err = fm.DiscoverWorkbooks(cfg.InputDir)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .xlsx files found in %s", cfg.InputDir)
	}
	if !analyzeDryRun {
		if err := fm.EnsureDir(cfg.ReportsDir); err != nil {
			return err
		}
	}

	logger.Info("starting batch",
		zap.Int("files", len(files)),
		zap.Strings("formats", formats),
		zap.Time("as_of", asOf))

	outcomes := processFiles(cmd.Context(), cfg, logger, fm, files, sheet, formats, asOf)

	printBatchSummary(cmd, outcomes)

	var failed int
	for _, o := range outcomes {
		if o.err != nil {
			failed++
		}
	}
	if failed > 0 && !cfg.ContinueOnError {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}

// processFiles fans the batch out over a bounded worker pool and returns
// the outcomes in input order.
func processFiles(ctx context.Context, cfg *config.Config, logger *zap.Logger, fm *utils.FileManager,
	files []string, sheet string, formats []string, asOf time.Time) []fileOutcome {

	outcomes := make([]fileOutcome, len(files))
	sem := make(chan struct{}, cfg.MaxConcurrency)
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = processFile(ctx, cfg, logger, fm, path, sheet, formats, asOf)
		}(i, path)
	}
	wg.Wait()
	return outcomes
}

func processFile(ctx context.Context, cfg *config.Config, logger *zap.Logger, fm *utils.FileManager,
	path, sheet string, formats []string, asOf time.Time) fileOutcome {

	log := logger.With(zap.String("file", filepath.Base(path)))
	out := fileOutcome{path: path}

	parsed, err := xlsxreader.ReadFile(path, sheet)
	if err != nil {
		out.err = err
		log.Error("read failed", zap.Error(err))
		return out
	}
	log.Info("parsed register",
		zap.Int("records", len(parsed.Records)),
		zap.Float64("quality_score", parsed.Quality.Score()))
	for _, issue := range parsed.Quality.Issues {
		log.Warn("data quality issue", zap.String("issue", issue))
	}

	vreport := validation.Validate(parsed.Records)
	for _, issue := range vreport.Issues {
		log.Warn("validation issue", zap.String("issue", issue.String()))
	}

	eng := engine.New(
		engine.WithLogger(log),
		engine.WithConcurrency(cfg.MaxConcurrency),
	)
	result, err := eng.Run(ctx, parsed.Records, asOf)
	if err != nil {
		out.err = err
		log.Error("analysis failed", zap.Error(err))
		return out
	}
	out.result = result

	if analyzeDryRun {
		return out
	}

	base := filepath.Join(cfg.ReportsDir, utils.ReportBaseName(path, asOf))
	gen := report.NewGenerator(log)
	out.report, err = gen.Generate(result, base, formats)
	if err != nil {
		out.err = err
		log.Error("report generation failed", zap.Error(err))
		return out
	}

	if cfg.ArchiveDir != "" {
		if _, err := fm.Archive(path, cfg.ArchiveDir); err != nil {
			log.Warn("archiving failed", zap.Error(err))
		}
	}
	return out
}

func printBatchSummary(cmd *cobra.Command, outcomes []fileOutcome) {
	cmd.Println()
	cmd.Println("=== Analysis Summary ===")
	for _, o := range outcomes {
		name := filepath.Base(o.path)
		if o.err != nil {
			cmd.Printf("  %-40s FAILED: %v\n", name, o.err)
			continue
		}
		r := o.result
		cmd.Printf("  %-40s %d records, %d red / %d green\n",
			name, r.TotalRecords, len(r.RedFlagged), len(r.GreenFlagged))
		for _, sev := range types.Severities {
			if n := r.FlagSummary.BySeverity[sev]; n > 0 {
				cmd.Printf("  %-40s   %s: %d\n", "", sev, n)
			}
		}
		if len(o.report) > 0 {
			cmd.Printf("  %-40s reports: %s\n", "", strings.Join(o.report, ", "))
		}
	}
}
