package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/config"
)

func TestNewDevelopment(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	logger, err := New(&config.Config{LogLevel: "warn"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.InfoLevel))
	require.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNewRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(&config.Config{LogFile: file, OTELServiceName: "notifications"})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
	require.FileExists(t, file)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&config.Config{LogLevel: "loud"})
	require.Error(t, err)
}
