package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared across packages.
const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldRankingID = "ranking_id"
	FieldJobTitle  = "job_title"
	FieldCandidate = "candidate"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields turns key/value pairs into zap fields. Keys and values are
// trimmed and pairs with an empty side are dropped.
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

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the AI provider and model behind a call.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// RankingFields identifies a ranking run.
func RankingFields(rankingID, jobTitle string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRankingID, Value: rankingID},
		StringField{Key: FieldJobTitle, Value: jobTitle},
	)
}
