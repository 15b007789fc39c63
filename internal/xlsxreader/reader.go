// =============================================================================
// PWD Works Red Flag Analyzer - Works Register Reader
// =============================================================================
//
// Reads a works register workbook into WorkRecords. The reader is
// fail-soft on cell content: unparsable numbers coerce to zero, unparsable
// dates to nil, and each such coercion is noted as a quality issue rather
// than an error. Only structural problems (no usable sheet, missing
// critical columns, no data rows) abort the read.
//
// =============================================================================

package xlsxreader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pwdaudit/redflag/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoRecords means the sheet had a header but no data rows.
	ErrNoRecords = errors.New("no data records found")

	// ErrMissingColumns means one or more critical columns could not be
	// resolved against the header row.
	ErrMissingColumns = errors.New("critical columns missing")

	// ErrSheetNotFound means the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// =============================================================================
// QUALITY REPORT
// =============================================================================

// QualityReport records how cleanly the file parsed.
type QualityReport struct {
	SheetName   string
	TotalRows   int
	DataRows    int
	SkippedRows int
	Issues      []string
}

// Score rates the parse from 0 to 100, docking five points per issue.
func (q *QualityReport) Score() float64 {
	s := 100 - 5*float64(len(q.Issues))
	if s < 0 {
		return 0
	}
	return s
}

func (q *QualityReport) addIssue(format string, args ...any) {
	q.Issues = append(q.Issues, fmt.Sprintf(format, args...))
}

// =============================================================================
// READER
// =============================================================================

// ReadResult bundles the parsed records with the quality report.
type ReadResult struct {
	Records []*types.WorkRecord
	Quality QualityReport
}

// ReadFile opens the workbook at path and reads the named sheet. An empty
// sheet name selects the workbook's first sheet.
func ReadFile(path, sheet string) (*ReadResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()
	return read(f, sheet)
}

// Read reads a workbook from r, for callers that already have the bytes.
func Read(r io.Reader, sheet string) (*ReadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return read(f, sheet)
}

func read(f *excelize.File, sheet string) (*ReadResult, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, ErrSheetNotFound)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoRecords)
	}

	result := &ReadResult{Quality: QualityReport{SheetName: sheet, TotalRows: len(rows)}}

	header := rows[0]
	cols := resolveColumns(header)
	var missing []string
	for _, cf := range criticalFields {
		if cols[cf] < 0 {
			missing = append(missing, string(cf))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for rowIdx, row := range rows[1:] {
		// first data row is spreadsheet row 2
		recordIndex := rowIdx + 2
		if isBlankRow(row) {
			result.Quality.SkippedRows++
			continue
		}
		if isRepeatedHeader(row, header) {
			result.Quality.SkippedRows++
			result.Quality.addIssue("row %d repeats the header and was skipped", recordIndex)
			continue
		}
		rec := parseRecord(recordIndex, row, cols, &result.Quality)
		result.Records = append(result.Records, rec)
	}
	result.Quality.DataRows = len(result.Records)

	if len(result.Records) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoRecords)
	}
	return result, nil
}

func parseRecord(recordIndex int, row []string, cols columnMap, q *QualityReport) *types.WorkRecord {
	cell := func(f Field) string {
		idx := cols[f]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	num := func(f Field) float64 {
		raw := cell(f)
		if raw == "" {
			return 0
		}
		v, ok := parseFloat(raw)
		if !ok {
			q.addIssue("row %d: unparsable number %q in %s", recordIndex, raw, f)
			return 0
		}
		return v
	}

	rec := &types.WorkRecord{
		RecordIndex:      recordIndex,
		SrNo:             cell(FieldSrNo),
		BudgetItemNo:     cell(FieldBudgetItemNo),
		NameOfWork:       cell(FieldNameOfWork),
		WorkCategory:     cell(FieldWorkCategory),
		RoadCategory:     cell(FieldRoadCategory),
		ApprovalCost:     num(FieldApprovalCost),
		ContractCost:     num(FieldContractCost),
		TotalExpenditure: num(FieldTotalExpenditure),
		PhysicalProgress: num(FieldPhysicalProgress),
		ChainageFrom:     num(FieldChainageFrom),
		ChainageTo:       num(FieldChainageTo),
	}
	rec.TimeLimitDays = int(num(FieldTimeLimitDays))

	if raw := cell(FieldWorkOrderDate); raw != "" {
		if d, ok := parseDate(raw); ok {
			rec.WorkOrderDate = &d
		} else {
			q.addIssue("row %d: unparsable date %q", recordIndex, raw)
		}
	}
	return rec
}

// isRepeatedHeader detects header rows pasted into the data region, which
// happens when divisions concatenate register pages. A row counts as a
// repeat when over 80% of its non-empty cells equal the header.
func isRepeatedHeader(row, header []string) bool {
	matches, total := 0, 0
	for i, h := range header {
		hn := normalizeHeader(h)
		if hn == "" {
			continue
		}
		total++
		if i < len(row) && normalizeHeader(row[i]) == hn {
			matches++
		}
	}
	return total > 0 && float64(matches)/float64(total) > 0.8
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// CELL COERCION
// =============================================================================

// parseFloat accepts plain numbers plus the formatting registers use:
// thousands separators, currency notes like "125.5 Lakh", and percent
// signs.
func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	}); i > 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts covers the date spellings seen in registers plus the
// cell formats excelize renders for native Excel dates.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"01/02/06",
	"1/2/06",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	// Excel serial date fallback
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 20000 && serial < 80000 {
		if d, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
