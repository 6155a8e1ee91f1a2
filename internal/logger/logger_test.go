package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, l.SugaredLogger, mode)
	}
}

func TestKeyValuesReachCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("base_fact_id", "f1")

	l.Warn("generator call failed", "pass", "main", "type", "map_based")
	l.Debug("rewrite rule did not match", "rule", "not")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "f1", ctx["base_fact_id"])
	assert.Equal(t, "main", ctx["pass"])
	assert.Equal(t, "map_based", ctx["type"])
	assert.Equal(t, "rule", entries[1].Context[1].Key)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
