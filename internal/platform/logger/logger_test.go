package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)
	return logs
}

func TestError(t *testing.T) {
	t.Run("Single context value", func(t *testing.T) {
		logs := observe(t)
		Error("Svc.Sell: commit failed", errors.New("boom"), "prod-1", nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "Svc.Sell: commit failed", entry.Message)
		assert.Len(t, entry.Context, 2)
		assert.Equal(t, "prod-1", entry.ContextMap()["context"])
	})

	t.Run("Several context values share one key", func(t *testing.T) {
		logs := observe(t)
		Error("Svc.Export: write failed", errors.New("disk full"), "xlsx", 3)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		keys := map[string]int{}
		for _, f := range entry.Context {
			keys[f.Key]++
		}
		assert.Equal(t, map[string]int{"error": 1, "context": 1}, keys)
		assert.Equal(t, []interface{}{"xlsx", 3}, entry.ContextMap()["context"])
	})

	t.Run("No error and no context", func(t *testing.T) {
		logs := observe(t)
		Error("plain", nil)
		require.Equal(t, 1, logs.Len())
		assert.Empty(t, logs.All()[0].Context)
	})
}
