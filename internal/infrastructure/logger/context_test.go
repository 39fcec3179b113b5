package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferedLogger() (*zap.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(buf), zapcore.DebugLevel)
	return zap.New(core), buf
}

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	got := FromContext(context.Background())

	assert.NotNil(t, got)
	assert.NotPanics(t, func() {
		got.Info("no-op")
	})
}

func TestWithRequestID(t *testing.T) {
	ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")

	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, enriched, FromContext(ctx))
}

func TestWithUserEmail(t *testing.T) {
	ctx, enriched := WithUserEmail(context.Background(), zap.NewNop(), "alice@example.com")

	assert.NotNil(t, enriched)
	assert.Equal(t, "alice@example.com", GetUserEmail(ctx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetUserEmail_NotFound(t *testing.T) {
	assert.Empty(t, GetUserEmail(context.Background()))
}

func TestContextChaining(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithUserEmail(ctx, logger, "bob@example.com")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "bob@example.com", GetUserEmail(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeysAreDistinct(t *testing.T) {
	assert.NotEqual(t, RequestIDKey, UserEmailKey)
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, LoggerKey, UserEmailKey)
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	baseLogger, buf := newBufferedLogger()

	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "req-abc")
	ctx = context.WithValue(ctx, UserEmailKey, "carol@example.com")

	WithLogger(ctx, baseLogger).Info("hello")

	out := buf.String()
	assert.Contains(t, out, "req-abc")
	assert.Contains(t, out, "carol@example.com")
	assert.Contains(t, out, "hello")
}

func TestContextLogger_With(t *testing.T) {
	baseLogger, buf := newBufferedLogger()

	WithLogger(context.Background(), baseLogger).
		With(zap.String("component", "relations")).
		Info("created")

	out := buf.String()
	assert.Contains(t, out, "relations")
	assert.Contains(t, out, "created")
}

func TestContextLogger_NilLoggerDoesNotPanic(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	assert.NotPanics(t, func() {
		cl.Info("no-op")
		cl.Debug("no-op")
		cl.Warn("no-op")
		cl.Error("no-op")
	})
}

func TestL_UsesContextLogger(t *testing.T) {
	baseLogger, buf := newBufferedLogger()
	ctx := WithContext(context.Background(), baseLogger)

	L(ctx).Info("from-context")

	assert.Contains(t, buf.String(), "from-context")
}

func TestContextLogger_Zap(t *testing.T) {
	baseLogger, buf := newBufferedLogger()
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-zap")

	WithLogger(ctx, baseLogger).Zap().Info("direct")

	out := buf.String()
	assert.Contains(t, out, "req-zap")
	assert.Contains(t, out, "direct")
}
