package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		logger, err := New(Config{Level: level})
		require.NoError(t, err, level)
		assert.NotNil(t, logger.Logger)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestDevelopmentEnablesDebug(t *testing.T) {
	logger := NewDevelopment()
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	prod := NewDefault()
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
}

func TestChildLoggers(t *testing.T) {
	logger := NewNop()

	child := logger.Named("dispatcher").With(zap.String("op", "list_directory"))
	assert.NotNil(t, child)
	child.Info("dispatch")
	child.Sync()
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, KeyOperation, Operation("move_files").Key)
	assert.Equal(t, "move_files", Operation("move_files").String)
	assert.Equal(t, KeyRequestID, RequestID("abc").Key)
	assert.Equal(t, KeyConnID, ConnID("c1").Key)
	assert.Equal(t, "call", Outcome("call").String)
}
