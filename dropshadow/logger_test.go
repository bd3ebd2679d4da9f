package dropshadow

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/richinsley/dropshadow/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultsToSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}

func TestSetLoggerIsShared(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Debug("GLFW initialized")
	h := newHarness(16, 16)
	h.module.files = map[string]string{}
	New(settings.New(), h.ctx, h.graphics, h.module)

	out := buf.String()
	assert.Contains(t, out, "GLFW initialized")
	require.Contains(t, out, "module file lookup failed")
	assert.Contains(t, out, "filter="+ID)
}
