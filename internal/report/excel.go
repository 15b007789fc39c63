// =============================================================================
// PWD Works Red Flag Analyzer - Excel Report
// =============================================================================
//
// The Excel report is the primary audit deliverable: a workbook with a
// summary sheet, the red and green partitions, a per-flag-type rollup,
// and the full finding detail.
//
// =============================================================================

package report

import (
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pwdaudit/redflag/internal/types"
)

const (
	sheetSummary  = "Summary"
	sheetRed      = "Red Flagged Entries"
	sheetGreen    = "Green Flagged Entries"
	sheetFlagType = "Flag Type Summary"
	sheetDetail   = "Detailed Findings"
)

func writeExcel(result *types.AnalysisResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, styles, result); err != nil {
		return err
	}
	if err := writeEntriesSheet(f, styles, sheetRed, result.RedFlagged, true); err != nil {
		return err
	}
	if err := writeEntriesSheet(f, styles, sheetGreen, result.GreenFlagged, false); err != nil {
		return err
	}
	if err := writeFlagTypeSheet(f, styles, result); err != nil {
		return err
	}
	if err := writeDetailSheet(f, styles, result); err != nil {
		return err
	}

	// the default sheet is replaced by Summary
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.SaveAs(path)
}

// =============================================================================
// STYLES
// =============================================================================

type excelStyles struct {
	header int
	red    int
	green  int
	title  int
}

func newExcelStyles(f *excelize.File) (*excelStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, err
	}
	red, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
		Font: &excelize.Font{Color: "9C0006"},
	})
	if err != nil {
		return nil, err
	}
	green, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}},
		Font: &excelize.Font{Color: "006100"},
	})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	return &excelStyles{header: header, red: red, green: green, title: title}, nil
}

// =============================================================================
// SHEETS
// =============================================================================

func writeSummarySheet(f *excelize.File, styles *excelStyles, result *types.AnalysisResult) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]any{
		{"PWD Works Red Flag Analysis"},
		{},
		{"Generated", result.Timestamp},
		{"Total Records", result.TotalRecords},
		{"Red Flagged Records", len(result.RedFlagged)},
		{"Green Flagged Records", len(result.GreenFlagged)},
		{},
		{"Findings by Severity"},
	}
	for _, sev := range types.Severities {
		rows = append(rows, []any{string(sev), result.FlagSummary.BySeverity[sev]})
	}
	if err := setRows(f, sheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", styles.title); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "A", "A", 28)
}

func writeEntriesSheet(f *excelize.File, styles *excelStyles, sheet string, entries []types.RecordSummary, red bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]any{{"Row", "Sr No", "Budget Item No", "Name of Work", "Flags"}}
	for _, e := range entries {
		names := make([]string, 0, len(e.Flags))
		for _, fl := range e.Flags {
			names = append(names, fl.FlagName)
		}
		rows = append(rows, []any{
			e.RecordIndex, e.SrNo, e.BudgetItemNo, e.NameOfWork,
			strings.Join(names, "; "),
		})
	}
	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	if err := styleHeaderRow(f, styles, sheet, 5); err != nil {
		return err
	}
	if len(entries) > 0 {
		body := styles.green
		if red {
			body = styles.red
		}
		last, err := excelize.CoordinatesToCellName(5, len(entries)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A2", last, body); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "D", "E", 50)
}

func writeFlagTypeSheet(f *excelize.File, styles *excelStyles, result *types.AnalysisResult) error {
	if _, err := f.NewSheet(sheetFlagType); err != nil {
		return err
	}
	names := make([]string, 0, len(result.FlagSummary.ByFlagType))
	for name := range result.FlagSummary.ByFlagType {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]any{{"Flag Type", "Findings"}}
	for _, name := range names {
		rows = append(rows, []any{name, result.FlagSummary.ByFlagType[name]})
	}
	if err := setRows(f, sheetFlagType, rows); err != nil {
		return err
	}
	if err := styleHeaderRow(f, styles, sheetFlagType, 2); err != nil {
		return err
	}
	return f.SetColWidth(sheetFlagType, "A", "A", 40)
}

func writeDetailSheet(f *excelize.File, styles *excelStyles, result *types.AnalysisResult) error {
	if _, err := f.NewSheet(sheetDetail); err != nil {
		return err
	}
	rows := [][]any{{"Row", "Budget Item No", "Flag ID", "Flag", "Severity", "Description"}}
	for _, e := range result.RedFlagged {
		for _, fl := range e.Flags {
			rows = append(rows, []any{
				e.RecordIndex, e.BudgetItemNo, fl.FlagID, fl.FlagName,
				string(fl.Severity), fl.Description,
			})
		}
	}
	if err := setRows(f, sheetDetail, rows); err != nil {
		return err
	}
	if err := styleHeaderRow(f, styles, sheetDetail, 6); err != nil {
		return err
	}
	return f.SetColWidth(sheetDetail, "F", "F", 70)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func styleHeaderRow(f *excelize.File, styles *excelStyles, sheet string, cols int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, styles.header)
}
