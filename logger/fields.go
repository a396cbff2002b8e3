package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across gpxport.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID      = "run_id"
	FieldActivityID = "activity_id"

	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount      = "count"
	FieldSize       = "size"
	FieldTotalCount = "total_count"

	// Status
	FieldStatus = "status"
	FieldState  = "state"

	// Files and paths
	FieldFile   = "file"
	FieldExport = "export"
	FieldOutput = "output"

	// Conversion-specific
	FieldFormat       = "format"
	FieldActivityType = "activity_type"
	FieldGear         = "gear"
	FieldConverted    = "converted"
	FieldSkipped      = "skipped"
	FieldFiltered     = "filtered"
	FieldFailed       = "failed"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey      contextKey = "logger_run_id"
	activityIDKey contextKey = "logger_activity_id"
)

// WithRunID adds a conversion run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithActivityID adds an activity ID to the context for logging
func WithActivityID(ctx context.Context, activityID string) context.Context {
	return context.WithValue(ctx, activityIDKey, activityID)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if activityID, ok := ctx.Value(activityIDKey).(string); ok && activityID != "" {
		fields = append(fields, FieldActivityID, activityID)
	}

	return fields
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Converter struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewConverter() *Converter {
//	    return &Converter{
//	        logger: logger.ComponentLogger("convert"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	runLogger := logger.ChildLogger(baseLogger, logger.FieldRunID, runID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
