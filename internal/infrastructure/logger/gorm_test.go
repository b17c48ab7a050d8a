package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func selectAccounts() (string, int64) {
	return "SELECT * FROM accounts", 4
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)
	newLogger := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	newGormLog, ok := newLogger.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, newGormLog.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs errors", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), selectAccounts, errors.New("boom"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("downgrades unique violations to warnings", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), selectAccounts, gorm.ErrDuplicatedKey)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("ignores record not found", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), selectAccounts, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("flags slow queries", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), selectAccounts, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)
		gormLog.Trace(context.Background(), time.Now(), selectAccounts, errors.New("boom"))

		assert.Empty(t, recorded.All())
	})

	t.Run("carries request id", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		ctx := WithRequestID(context.Background(), "req-42")
		gormLog.Trace(ctx, time.Now(), selectAccounts, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
