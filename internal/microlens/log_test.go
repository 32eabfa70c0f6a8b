package microlens

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugLog(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	DebugLog("lenses=%d", 3)
	assert.Contains(t, buf.String(), "lenses=3")

	buf.Reset()
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	DebugLog("hidden")
	assert.Empty(t, buf.String())

	SetLogger(nil)
	assert.NotNil(t, Logger())
	DebugLog("discarded")
}
