// Package logger builds the zap loggers used by the API server and CLI.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldFilename is the structured log field key for an uploaded file name.
	FieldFilename = "filename"
	// FieldFormat is the structured log field key for the extraction strategy.
	FieldFormat = "format"
	// FieldExtractionID is the structured log field key for an audit record id.
	FieldExtractionID = "extraction_id"
)

// New builds a zap logger. format "json" selects the production encoder,
// anything else the development console encoder.
func New(levelStr, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))

	return cfg.Build()
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// DocumentFields returns the fields attached to every extraction log line.
// Empty values are dropped.
func DocumentFields(filename, format string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(filename); v != "" {
		fields = append(fields, zap.String(FieldFilename, v))
	}
	if v := strings.TrimSpace(format); v != "" {
		fields = append(fields, zap.String(FieldFormat, v))
	}
	return fields
}
