package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.With("item_id", "110").Warn("lookup failed: %s", "timeout")
	log.Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "lookup failed: timeout", entries[0].Message)
	assert.Equal(t, "110", entries[0].ContextMap()["item_id"])
	assert.Empty(t, entries[1].ContextMap())
}

func TestNewFallsBackToInfo(t *testing.T) {
	log := New("not-a-level", "development")
	assert.False(t, log.Zap().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Zap().Core().Enabled(zapcore.InfoLevel))
}
