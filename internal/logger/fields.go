package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldAnalysisID is the structured log field key for the analysis identifier.
	FieldAnalysisID = "analysis_id"
	// FieldResumeFile is the structured log field key for the résumé file name.
	FieldResumeFile = "resume_file"
	// FieldCatalog is the structured log field key for the project catalog path.
	FieldCatalog = "catalog"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AnalysisFields returns the fields identifying one analysis run.
func AnalysisFields(id, resumeFile string) []zap.Field {
	return StringFields(
		StringField{Key: FieldAnalysisID, Value: id},
		StringField{Key: FieldResumeFile, Value: resumeFile},
	)
}

// WithAnalysis scopes logger to one analysis run.
func WithAnalysis(logger *zap.Logger, id, resumeFile string) *zap.Logger {
	return WithFields(logger, AnalysisFields(id, resumeFile)...)
}
