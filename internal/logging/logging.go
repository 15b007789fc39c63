// =============================================================================
// PWD Works Red Flag Analyzer - Logging
// =============================================================================

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. The console gets human-readable output;
// when logFile is set, structured JSON goes there as well. Verbose forces
// the level down to debug regardless of configuration.
func New(level, logFile string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentConfig()
	consoleCfg.Level = zap.NewAtomicLevelAt(lvl)
	consoleCfg.DisableStacktrace = true

	if logFile == "" {
		return consoleCfg.Build()
	}

	fileCfg := zap.NewProductionConfig()
	fileCfg.Level = zap.NewAtomicLevelAt(lvl)
	fileCfg.OutputPaths = []string{logFile}

	console, err := consoleCfg.Build()
	if err != nil {
		return nil, err
	}
	file, err := fileCfg.Build()
	if err != nil {
		return nil, err
	}
	combined := zap.New(zapcore.NewTee(console.Core(), file.Core()))
	return combined, nil
}
