package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func restoreLoggers(t *testing.T) {
	app, req, timer, errl := AppLogger, RequestLogger, TimerLogger, ErrorLogger
	t.Cleanup(func() {
		AppLogger, RequestLogger, TimerLogger, ErrorLogger = app, req, timer, errl
	})
}

func TestInitLoggerWritesFiles(t *testing.T) {
	restoreLoggers(t)
	dir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, InitLogger(dir))
	ErrorLogger.Error("boom")
	RequestLogger.Info("GET /notes/")
	Sync()

	for _, name := range []string{"error.log", "request.log"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestLogDuration(t *testing.T) {
	restoreLoggers(t)
	core, logs := observer.New(zap.InfoLevel)
	TimerLogger = zap.New(core)

	LogDuration(context.Background(), "CreateNote")()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Function timed", entry.Message)
	assert.Equal(t, "CreateNote", entry.ContextMap()["func"])
}
