package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contribgraph/backend/pkg/logger"
	"github.com/contribgraph/backend/pkg/logger/memory"
)

func TestDispatchToAllBackends(t *testing.T) {
	a := memory.NewMemoryLogger()
	b := memory.NewMemoryLogger()
	logger.Init(a, b)

	logger.Info("hello", "source", "internal")
	logger.Error("boom", "err", "bad")

	for _, m := range []*memory.MemoryLogger{a, b} {
		entries := m.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "info", entries[0].Level)
		assert.Equal(t, "internal", entries[0].Value("source"))
		assert.Equal(t, "error", entries[1].Level)
		assert.Equal(t, "bad", entries[1].Value("err"))
	}
}

func TestValueMissingKey(t *testing.T) {
	e := memory.Entry{Keyvals: []any{"a", 1, "dangling"}}
	assert.Equal(t, 1, e.Value("a"))
	assert.Nil(t, e.Value("dangling"))
	assert.Nil(t, e.Value("missing"))
}
