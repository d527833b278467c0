package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.NotNil(t, logger)
	assert.Equal(t, os.Stderr, logger.Out)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger_WithContextLogger(t *testing.T) {
	ctx := context.Background()

	customLogger := logrus.NewEntry(logrus.New()).WithField("tool", "contrast")
	ctxWithLogger := WithLogger(ctx, customLogger)

	retrievedLogger := G(ctxWithLogger)

	assert.NotNil(t, retrievedLogger)
	assert.Equal(t, "contrast", retrievedLogger.Data["tool"])
}

func TestGetLogger_WithoutContextLogger(t *testing.T) {
	retrievedLogger := G(context.Background())

	assert.NotNil(t, retrievedLogger)
	assert.Equal(t, L.Logger, retrievedLogger.Logger)
}

func TestConfigure(t *testing.T) {
	originalLevel, originalOut, originalFormatter := L.Logger.Level, L.Logger.Out, L.Logger.Formatter
	defer func() {
		L.Logger.SetLevel(originalLevel)
		L.Logger.SetOutput(originalOut)
		L.Logger.Formatter = originalFormatter
	}()

	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "debug", Format: "json", Output: &buf}))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	G(context.Background()).WithField("tool", "motion").Debug("running check")

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "debug", logEntry["logLevel"])
	assert.Equal(t, "running check", logEntry["message"])
	assert.Equal(t, "motion", logEntry["tool"])
	assert.Contains(t, logEntry, "timestamp")
}

func TestConfigureKeepsUnsetFields(t *testing.T) {
	level := L.Logger.GetLevel()

	require.NoError(t, Configure(Options{}))
	assert.Equal(t, level, L.Logger.GetLevel())
}

func TestConfigureInvalidLevel(t *testing.T) {
	err := Configure(Options{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestConfigureInvalidFormat(t *testing.T) {
	formatter := L.Logger.Formatter

	err := Configure(Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log format "xml"`)
	assert.Same(t, formatter, L.Logger.Formatter)
}

func TestSetLoggerFormat(t *testing.T) {
	logger := logrus.New()

	setLoggerFormat(logger, "json")
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	setLoggerFormat(logger, "text")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	setLoggerFormat(logger, "unknown")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
