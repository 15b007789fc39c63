// =============================================================================
// PWD Works Red Flag Analyzer - JSON Report
// =============================================================================

package report

import (
	"encoding/json"
	"os"

	"github.com/pwdaudit/redflag/internal/types"
)

// writeJSON serializes the full result, indented, for downstream tooling.
func writeJSON(result *types.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
