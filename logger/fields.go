package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across bindgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldLibrary   = "library"
	FieldVersion   = "version"
	FieldComponent = "component"

	// Pipeline
	FieldStep      = "step"
	FieldDependsOn = "depends_on"
	FieldSource    = "source"

	// Items
	FieldFunction      = "function"
	FieldMethod        = "method"
	FieldInstantiation = "instantiation"
	FieldPlace         = "allocation_place"
	FieldReason        = "reason"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount      = "count"
	FieldTotalCount = "total_count"
	FieldSkipped    = "skipped"

	// Files and paths
	FieldFile = "file"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	libraryKey   contextKey = "logger_library"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithLibrary adds the library being processed to the context
func WithLibrary(ctx context.Context, library string) context.Context {
	return context.WithValue(ctx, libraryKey, library)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if library, ok := ctx.Value(libraryKey).(string); ok && library != "" {
		fields = append(fields, FieldLibrary, library)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns base with fields extracted from context.
// A nil base means the global Logger.
func LoggerFromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	ws := workspace.New(manifest, opts, logger.ComponentLogger("workspace"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
