package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAdapter_KeyValuePairs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("Task created", "taskId", "abc", "session", "s1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Task created", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["taskId"])
	assert.Equal(t, "s1", entries[0].ContextMap()["session"])
}

func TestLoggerAdapter_WithFieldsDoesNotLeak(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	child := log.WithFields(map[string]any{"component": "tool"})
	child.Warn("child")
	log.Warn("parent")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "tool", entries[0].ContextMap()["component"])
	_, ok := entries[1].ContextMap()["component"]
	assert.False(t, ok)
}

func TestNewLoggerAdapter_InvalidLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerAdapter_Development(t *testing.T) {
	log, err := NewLoggerAdapter(Config{Level: "debug", Development: true})
	require.NoError(t, err)
	log.Debug("hello", "k", 1)
	assert.NoError(t, log.Close())
}
