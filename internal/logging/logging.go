package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. User-facing output goes through stdout
// prints in the command layer; the logger carries full internal detail to
// stderr, including everything shown to the user in reduced form.
func New(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Encoding = "console"
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
