package infra

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

func observedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func queryFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_TraceFailedQuery(t *testing.T) {
	l, logs := observedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), queryFn("INSERT INTO orders", 0), errors.New("duplicate key"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "query failed", entry.Message)
	assert.Equal(t, "INSERT INTO orders", entry.ContextMap()["sql"])
	assert.Equal(t, "duplicate key", entry.ContextMap()["error"])
}

func TestGormLogger_RecordNotFoundIsQuiet(t *testing.T) {
	l, logs := observedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), queryFn("SELECT 1", 0), gorm.ErrRecordNotFound)

	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_SlowQuery(t *testing.T) {
	l, logs := observedGormLogger(gormlogger.Warn)
	l.SlowThreshold = time.Millisecond

	l.Trace(context.Background(), time.Now().Add(-time.Second), queryFn("SELECT * FROM finance", 3), nil)

	require.Equal(t, 1, logs.FilterMessage("slow query").Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestGormLogger_LevelGatesOutput(t *testing.T) {
	l, logs := observedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), queryFn("SELECT 1", 1), nil)
	l.Info(context.Background(), "migrated %d tables", 3)
	assert.Equal(t, 0, logs.Len())

	silent := l.LogMode(gormlogger.Silent)
	silent.Error(context.Background(), "boom")
	silent.Trace(context.Background(), time.Now(), queryFn("SELECT 1", 0), errors.New("boom"))
	assert.Equal(t, 0, logs.Len())

	verbose := l.LogMode(gormlogger.Info)
	verbose.Info(context.Background(), "migrated %d tables", 3)
	verbose.Trace(context.Background(), time.Now(), queryFn("SELECT 1", 1), nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "migrated 3 tables", logs.All()[0].Message)
	assert.Equal(t, "query", logs.All()[1].Message)
}
