// =============================================================================
// PWD Works Red Flag Analyzer - File Management Utilities
// =============================================================================
//
// Filesystem plumbing for the CLI: discovering input workbooks, creating
// output directories, archiving processed files, and generating unique
// report names.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileManager handles input discovery and output placement.
type FileManager struct {
	logger *zap.Logger
}

// NewFileManager builds a FileManager. A nil logger is replaced with a
// no-op logger.
func NewFileManager(logger *zap.Logger) *FileManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileManager{logger: logger}
}

// DiscoverWorkbooks lists the .xlsx files in dir, sorted by name. Excel
// lock files (~$ prefix) and hidden files are skipped.
func (fm *FileManager) DiscoverWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	fm.logger.Debug("discovered workbooks", zap.String("dir", dir), zap.Int("count", len(files)))
	return files, nil
}

// EnsureDir creates dir and any missing parents.
func (fm *FileManager) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Archive moves a processed input file into archiveDir, prefixing the
// name with a timestamp so repeated runs never collide. It returns the
// archived path.
func (fm *FileManager) Archive(path, archiveDir string) (string, error) {
	if err := fm.EnsureDir(archiveDir); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(path))
	dest := filepath.Join(archiveDir, name)
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("archiving %s: %w", path, err)
	}
	fm.logger.Info("archived input file", zap.String("from", path), zap.String("to", dest))
	return dest, nil
}

// ReportBaseName builds a unique report file name stem for one source
// workbook: the source name, a timestamp, and a short random suffix.
// Callers append the format extension.
func ReportBaseName(sourcePath string, ts time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	stem = strings.ReplaceAll(stem, " ", "_")
	short := uuid.NewString()[:8]
	return fmt.Sprintf("red_flag_report_%s_%s_%s", stem, ts.Format("20060102_150405"), short)
}
