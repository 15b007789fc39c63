package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "input", cfg.InputDir)
	assert.Equal(t, "reports", cfg.ReportsDir)
	assert.Equal(t, []string{"excel", "json"}, cfg.ReportFormats)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.False(t, cfg.ContinueOnError)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/registers
reports_dir: /data/out
archive_dir: /data/done
sheet_name: Works
report_formats: [html]
log_level: debug
max_concurrency: 8
continue_on_error: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/registers", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.ReportsDir)
	assert.Equal(t, "/data/done", cfg.ArchiveDir)
	assert.Equal(t, "Works", cfg.SheetName)
	assert.Equal(t, []string{"html"}, cfg.ReportFormats)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.True(t, cfg.ContinueOnError)
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "input_dir: /data/registers\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/registers", cfg.InputDir)
	assert.Equal(t, "reports", cfg.ReportsDir)
	assert.Equal(t, 4, cfg.MaxConcurrency)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "report_formats: [pdf]\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
