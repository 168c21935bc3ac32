package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		log := zap.NewNop()
		ctx := WithLogger(context.Background(), log)

		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("nil context is safe", func(t *testing.T) {
		assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil-safety is the point
	})
}

func TestWithCorrelationID(t *testing.T) {
	t.Run("empty id leaves context untouched", func(t *testing.T) {
		ctx := context.Background()

		assert.Equal(t, ctx, WithCorrelationID(ctx, ""))
	})

	t.Run("attaches derived logger", func(t *testing.T) {
		base := WithLogger(context.Background(), zap.NewNop())

		ctx := WithCorrelationID(base, "corr_1")

		assert.NotEqual(t, base, ctx)
		assert.NotNil(t, FromContext(ctx))
	})
}
