package sourcemodel

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("d", "k", "v")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels and attributes reach the handler", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("mounted", "type", "ClientResource")
		adapter.Info("resolved")
		adapter.Warn("dropped")
		adapter.Error("failed")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG msg=mounted type=ClientResource")
		assert.Contains(t, out, "level=INFO msg=resolved")
		assert.Contains(t, out, "level=WARN msg=dropped")
		assert.Contains(t, out, "level=ERROR msg=failed")
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

		adapter.With("component", "resolver").Info("done")
		assert.Contains(t, buf.String(), "component=resolver")
	})
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))

	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}
