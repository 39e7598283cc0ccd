package logging

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/FragSAR/pkg/errors"
)

func newBufferLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return NewLoggerFromCore(zapcore.NewCore(enc, buf, zapcore.DebugLevel)), buf
}

func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoggerFromCore(core), logs
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"verbose", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "debug", LevelDebug.String())
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"", "json", "console"} {
		l, err := NewLogger(LogConfig{Level: LevelInfo, Format: format, OutputPaths: []string{"stderr"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
		_, ok := l.(LevelSetter)
		assert.True(t, ok)
	}
}

func TestNewLogger_RejectsBadConfig(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{Format: "xml"})
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir/x/y.log"}})
	assert.Error(t, err)
}

func TestZapLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t)
	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", `"level":"warn"`} {
		assert.Contains(t, out, want)
	}
}

func TestZapLogger_Fields(t *testing.T) {
	l, logs := newObservedLogger()
	l.Info("enumerated",
		String(FieldSMILES, "c1ccccc1"),
		Strings("groups", []string{"F", "Me"}),
		Int("rows", 31),
		Int64("attempts", 186),
		Float64("qed", 0.5),
		Bool("limit_reached", false),
		Duration("took", time.Millisecond),
		Any("extra", map[string]int{"a": 1}),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "c1ccccc1", ctx[FieldSMILES])
	assert.Equal(t, int64(31), ctx["rows"])
	assert.Equal(t, false, ctx["limit_reached"])
	assert.Equal(t, time.Millisecond, ctx["took"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, logs := newObservedLogger()
	l.Named("http").With(String("component", "router")).Info("msg")

	entry := logs.All()[0]
	assert.Equal(t, "http", entry.LoggerName)
	assert.Equal(t, "router", entry.ContextMap()["component"])
}

func TestZapLogger_WithContext(t *testing.T) {
	l, logs := newObservedLogger()

	ctx := WithRequestID(context.Background(), "req-123")
	l.WithContext(ctx).Info("with id")
	l.WithContext(context.Background()).Info("without id")

	all := logs.All()
	assert.Equal(t, "req-123", all[0].ContextMap()[FieldRequestID])
	assert.NotContains(t, all[1].ContextMap(), FieldRequestID)
}

func TestZapLogger_WithError(t *testing.T) {
	l, logs := newObservedLogger()

	l.WithError(errors.New(errors.ErrCodeMoleculeInvalidSMILES, "Bad SMILES")).Warn("app error")
	l.WithError(stderrors.New("plain")).Warn("std error")
	l.WithError(nil).Warn("no error")

	all := logs.All()
	assert.Equal(t, "MOL_001", all[0].ContextMap()[FieldErrorCode])
	assert.Equal(t, "[MOL_001] Bad SMILES", all[0].ContextMap()["error"])
	assert.Equal(t, "plain", all[1].ContextMap()["error"])
	assert.NotContains(t, all[1].ContextMap(), FieldErrorCode)
	assert.NotContains(t, all[2].ContextMap(), "error")
}

func TestErr_Nil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestLevelSetter_SharedByChildren(t *testing.T) {
	l, logs := newObservedLogger()
	child := l.Named("child")

	setter, ok := l.(LevelSetter)
	require.True(t, ok)
	assert.Equal(t, LevelDebug, setter.Level())

	setter.SetLevel(LevelWarn)
	assert.Equal(t, LevelWarn, setter.Level())

	child.Info("dropped")
	child.Warn("kept")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	l.Fatal("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("x"))
	assert.Equal(t, l, l.WithContext(context.Background()))
	assert.Equal(t, l, l.WithError(stderrors.New("x")))
	assert.NoError(t, l.Sync())
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l, _ := newObservedLogger()
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil)
	assert.Equal(t, l, Default())
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", RequestIDFromContext(WithRequestID(context.Background(), "abc")))
}

func TestLogOperationDuration(t *testing.T) {
	l, logs := newObservedLogger()

	LogOperationDuration(l, "enumerate", time.Now(), String(FieldSMILES, "C"))
	LogOperationDuration(l, "enumerate", time.Now().Add(-2*SlowOperationThreshold))

	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, "operation completed", all[0].Message)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, "C", all[0].ContextMap()[FieldSMILES])
	assert.Contains(t, all[0].ContextMap(), FieldDuration)
	assert.Equal(t, "slow operation", all[1].Message)
	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
}

//Personal.AI order the ending
