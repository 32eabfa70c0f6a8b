package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime/pprof"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/microlens/internal/microlens"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		microlens.SetLogger(nil)
		microlens.Debug = false
	})
	var out, errOut bytes.Buffer
	cmd, opts := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd, opts)
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := runCLI(t, "classify", "--source=0,0,1", "--points=-3,-3,3,-3,3,3,-3,3")
	require.NoError(t, err)
	assert.Equal(t, "encloses_source (winding number 1)\n", out)

	out, err = runCLI(t, "classify", "--source=10,10,1", "--points=-3,-3,3,-3,3,3,-3,3")
	require.NoError(t, err)
	assert.Equal(t, "no_overlap (winding number 0)\n", out)

	_, err = runCLI(t, "classify", "--source=0,0", "--points=0,0,1,0,1,1")
	assert.Error(t, err)
	_, err = runCLI(t, "classify", "--source=0,0,1", "--points=0,0,1,0")
	assert.Error(t, err)
	_, err = runCLI(t, "classify", "--source=0,0,0", "--points=0,0,1,0,1,1")
	assert.ErrorIs(t, err, microlens.ErrInvalidSource)
}

func TestFrameCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{
		"lenses": [{"origin": {"x": 0, "y": 0}, "mass": 1}],
		"resolution": 0.1,
		"window": {"x": -2, "y": -2, "size": 4},
		"source": {"radius": 0.1, "start": {"x": 0.2, "y": 0}},
		"output": {"imageSize": 32}
	}`), 0o644))
	png := filepath.Join(dir, "frame.png")

	out, err := runCLI(t, "frame", cfg, "--out", png, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "source (0.2000, 0.0000) r=0.1")
	assert.FileExists(t, png)

	_, err = runCLI(t, "frame", cfg, "--index", "5")
	assert.Error(t, err)
}

func TestRootFlags(t *testing.T) {
	_, err := runCLI(t, "classify", "--log-level", "loud", "--source=0,0,1", "--points=0,0,1,0,1,1")
	assert.Error(t, err)
	_, err = runCLI(t, "classify", "--log-format", "xml", "--source=0,0,1", "--points=0,0,1,0,1,1")
	assert.Error(t, err)

	_, err = runCLI(t, "classify", "--debug", "--source=0,0,1", "--points=0,0,1,0,1,1")
	require.NoError(t, err)
}

func TestConfigArg(t *testing.T) {
	assert.Equal(t, defaultConfig, configArg(nil))
	assert.Equal(t, "x.yaml", configArg([]string{"x.yaml"}))
}

func TestCPUProfileStoppedOnFailure(t *testing.T) {
	prof := filepath.Join(t.TempDir(), "cpu.out")
	_, err := runCLI(t, "classify", "--cpuprofile", prof, "--source=0,0", "--points=0,0,1,0,1,1")
	require.Error(t, err)

	fi, err := os.Stat(prof)
	require.NoError(t, err)
	assert.Positive(t, fi.Size(), "profile flushed")

	// A running profile would make this fail.
	var buf bytes.Buffer
	require.NoError(t, pprof.StartCPUProfile(&buf))
	pprof.StopCPUProfile()
}
