package microlens

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalTally(t *testing.T) {
	Debug = true
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		Debug = false
		SetLogger(nil)
		terminalStats()
	})

	res := runSearch(t, binaryLenses(t, 0.05), Source{Origin: Pt(0, 0), Radius: SourceRadius}, 4)

	terminalCache.mu.Lock()
	total := 0
	for _, n := range terminalCache.counts {
		total += n
	}
	_, singular := terminalCache.counts["singular"]
	terminalCache.mu.Unlock()
	require.Equal(t, len(res.Terminals), total)
	assert.True(t, singular)

	terminalStats()
	assert.Contains(t, buf.String(), "Terminals singular:")
	assert.Contains(t, buf.String(), "Terminals classified/no_overlap:")
	assert.Empty(t, terminalCache.counts)
}

func TestTerminalKey(t *testing.T) {
	assert.Equal(t, "critical", terminalKey(Terminal{Reason: Critical, Classification: Overlap}))
	assert.Equal(t, "classified/overlap", terminalKey(Terminal{Reason: Classified, Classification: Overlap}))
}
