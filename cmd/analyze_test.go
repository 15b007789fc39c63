package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeRegister(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]any{
		{"Sr No", "Budget Item No.", "Name of the work", "Road Category",
			"Administrative Approval Cost (Lakh)", "Contract Cost (Lakh)",
			"Total Expenditure (Lakhs)", "Work Order Date", "Time Limit (Days)",
			"Physical Progress (%)", "Chainage From", "Chainage To"},
		{"1", "2059-001", "Improvement of SH-56", "SH-56",
			"100", "95", "150", "2023-05-01", "365", "100", "10", "25"},
		{"2", "2059-002", "Widening of NH-752", "NH-752",
			"450", "400", "350", "2024-01-15", "180", "75", "3", "8"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "input")
	reportsDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	writeRegister(t, filepath.Join(inputDir, "register.xlsx"))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input_dir: "+inputDir+"\nreports_dir: "+reportsDir+"\nreport_formats: [json]\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"analyze", "--config", cfgPath, "--as-of", "2025-06-01"})
	require.NoError(t, rootCmd.Execute())

	matches, err := filepath.Glob(filepath.Join(reportsDir, "red_flag_report_register_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, float64(2), result["total_records"])
	// row 2 overspends its approval, row 3 is past its deadline
	red := result["red_flagged"].([]any)
	assert.Len(t, red, 2)
	assert.Empty(t, result["green_flagged"])
	assert.Contains(t, out.String(), "register.xlsx")
}
