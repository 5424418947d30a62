package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize is called
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger for the given output mode and
// verbosity (-v count).
func Initialize(jsonOutput bool, verbosity int) error {
	zapLogger, err := New(jsonOutput, verbosity)
	if err != nil {
		return err
	}
	JSONOutput = jsonOutput
	Logger = zapLogger.Sugar()
	return nil
}

// New builds a logger without touching the global one.
func New(jsonOutput bool, verbosity int) (*zap.Logger, error) {
	level := VerbosityToLevel(verbosity)

	if jsonOutput {
		// JSON structured output for machine consumption
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		return config.Build()
	}

	// Human-readable console output, kept off stdout so reports stay clean
	return zap.New(
		zapcore.NewCore(
			newMinimalEncoder(),
			zapcore.AddSync(os.Stderr),
			level,
		),
	), nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
