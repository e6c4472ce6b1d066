package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback, _ := GetTestLogger(t)
	stored, _ := GetTestLogger(t)

	var nilCtx context.Context
	assert.Same(t, fallback, FromContextOrDefault(nilCtx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	assert.Same(t, stored, FromContext(ctx))
}

func TestWithLogger_NilPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		WithLogger(context.Background(), nil)
	})
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	base, buf := GetTestLogger(t)
	ctx := WithLogger(context.Background(), base)
	ctx = WithRequestID(ctx, "req-42")

	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))

	FromContext(ctx).Info("tagged")
	AssertLogField(t, buf, "request_id", "req-42")
}
