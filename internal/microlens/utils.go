package microlens

import (
	"math"
	"os"
	"path/filepath"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func createFile(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
