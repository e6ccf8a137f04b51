package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFieldsDropsBlankPairs(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  Gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "provider", fields[0].Key)
	assert.Equal(t, "Gemini", fields[0].String)
	assert.Empty(t, StringFields())
}

func TestWithFieldsNilLogger(t *testing.T) {
	log := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, log)
	log.Info("does not panic")
}

func TestWithCommonFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithCommonFields(zap.New(core), "gemini", "model-x").Info("explain")

	entries := observed.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "gemini", ctx[FieldProvider])
	assert.Equal(t, "model-x", ctx[FieldModel])

	assert.Empty(t, CommonFields("", ""))
}
