// =============================================================================
// PWD Works Red Flag Analyzer - Configuration
// =============================================================================
//
// Configuration is one YAML file. Loading applies defaults first, then
// validates, so a missing file or an empty file both yield a fully usable
// default configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds all runtime settings.
type Config struct {
	// InputDir is scanned for .xlsx works registers.
	InputDir string `yaml:"input_dir"`

	// ReportsDir receives generated reports.
	ReportsDir string `yaml:"reports_dir"`

	// ArchiveDir receives processed input files. Empty disables archiving.
	ArchiveDir string `yaml:"archive_dir"`

	// SheetName selects the worksheet to read; empty means the first
	// sheet in each workbook.
	SheetName string `yaml:"sheet_name"`

	// ReportFormats lists the output formats to generate. Supported:
	// excel, html, json.
	ReportFormats []string `yaml:"report_formats"`

	// Logging.
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// MaxConcurrency bounds parallel file processing and per-record
	// evaluation workers.
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps a batch run going when one file fails.
	ContinueOnError bool `yaml:"continue_on_error"`
}

// supportedFormats lists the report formats the report package can render.
var supportedFormats = map[string]bool{
	"excel": true,
	"html":  true,
	"json":  true,
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "input"
	}
	if c.ReportsDir == "" {
		c.ReportsDir = "reports"
	}
	if len(c.ReportFormats) == 0 {
		c.ReportFormats = []string{"excel", "json"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 4
	}
}

func (c *Config) validate() error {
	for _, f := range c.ReportFormats {
		if !supportedFormats[f] {
			return fmt.Errorf("unsupported report format %q", f)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	return nil
}
