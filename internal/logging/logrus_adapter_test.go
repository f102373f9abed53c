package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.Debug("seed pass", Field{Key: FieldPass, Value: "seed"})
	logger.Info("extracted", Field{Key: FieldCategory, Value: "Rent"})
	logger.Warn("taxonomy missing")
	logger.Error("write failed")

	output := buf.String()
	assert.Contains(t, output, "seed pass")
	assert.Contains(t, output, "pass=seed")
	assert.Contains(t, output, "category=Rent")
	assert.Contains(t, output, "taxonomy missing")
	assert.Contains(t, output, "write failed")
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField("merchant", "Swiggy").
		WithFields(Field{Key: "amount", Value: "450.00"}).
		WithError(errors.New("boom")).
		Error("ledger rejected record")

	output := buf.String()
	assert.Contains(t, output, "ledger rejected record")
	assert.Contains(t, output, "merchant=Swiggy")
	assert.Contains(t, output, "boom")
}

func TestLogrusAdapter_RespectsLevel(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)
	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Empty(t, buf.String())
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	})
	assert.Len(t, logrusFields, 2)
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Empty(t, convertFields(nil))
}

func TestDefaultLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	mock := &MockLogger{}
	SetLogger(mock)
	assert.Same(t, mock, GetLogger())

	SetLogger(nil)
	assert.Same(t, mock, GetLogger(), "nil must not replace the default")

	assert.Same(t, mock, OrDefault(nil))
	other := NewNopLogger()
	assert.Equal(t, other, OrDefault(other))
}

func TestLoggersImplementInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
	var _ Logger = NewNopLogger()
}
