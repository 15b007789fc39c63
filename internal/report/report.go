// =============================================================================
// PWD Works Red Flag Analyzer - Report Generation
// =============================================================================
//
// Renders an AnalysisResult into the configured output formats. Each
// format writer takes the result and a target path; the Generator fans out
// over the requested formats and collects the written paths.
//
// =============================================================================

package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pwdaudit/redflag/internal/types"
)

// Generator renders analysis results to files.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator builds a Generator. A nil logger is replaced with a no-op
// logger.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// formatExtensions maps format names to file extensions.
var formatExtensions = map[string]string{
	"excel": ".xlsx",
	"html":  ".html",
	"json":  ".json",
}

// Generate writes the result in every requested format, using basePath
// (path without extension) as the name stem. It returns the paths written.
func (g *Generator) Generate(result *types.AnalysisResult, basePath string, formats []string) ([]string, error) {
	var written []string
	for _, format := range formats {
		ext, ok := formatExtensions[format]
		if !ok {
			return written, fmt.Errorf("unsupported report format %q", format)
		}
		path := basePath + ext

		var err error
		switch format {
		case "excel":
			err = writeExcel(result, path)
		case "html":
			err = writeHTML(result, path)
		case "json":
			err = writeJSON(result, path)
		}
		if err != nil {
			return written, fmt.Errorf("writing %s report: %w", format, err)
		}
		g.logger.Info("report written", zap.String("format", format), zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}
