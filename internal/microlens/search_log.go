package microlens

import (
	"maps"
	"slices"
	"sync"
)

type terminalLogCache struct {
	mu     sync.Mutex
	counts map[string]int // key: reason/classification
}

var terminalCache = &terminalLogCache{
	counts: make(map[string]int),
}

func terminalKey(t Terminal) string {
	if t.Reason != Classified {
		return t.Reason.String()
	}
	return t.Reason.String() + "/" + t.Classification.String()
}

// logTerminal tallies t. Searches running in parallel share the cache.
func logTerminal(t Terminal) {
	terminalCache.mu.Lock()
	defer terminalCache.mu.Unlock()
	terminalCache.counts[terminalKey(t)]++
}

// terminalStats logs the tallies collected so far and clears them.
func terminalStats() {
	terminalCache.mu.Lock()
	defer terminalCache.mu.Unlock()
	for _, k := range slices.Sorted(maps.Keys(terminalCache.counts)) {
		DebugLog("Terminals %s: %d", k, terminalCache.counts[k])
	}
	clear(terminalCache.counts)
}
