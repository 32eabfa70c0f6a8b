package microlens

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const runScene = `
lenses:
  - origin: {x: 0, y: 0}
    mass: 1
resolution: 0.05
window: {x: -2, y: -2, size: 4}
source:
  radius: 0.1
  start: {x: -0.5, y: 0.1}
  end: {x: 0.5, y: 0.1}
frames: 2
workers: 2
frameWorkers: 2
`

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, runScene+`
output:
  gif: `+filepath.Join(dir, "out", "anim.gif")+`
  lightCurve: `+filepath.Join(dir, "out", "curve.png")+`
  report: `+filepath.Join(dir, "out", "report.json")+`
  metrics: `+filepath.Join(dir, "out", "run.prom")+`
  imageSize: 64
`)
	require.NoError(t, Run(context.Background(), cfg))

	for _, name := range []string{"anim.gif", "curve.png", "report.json", "run.prom"} {
		fi, err := os.Stat(filepath.Join(dir, "out", name))
		require.NoError(t, err, name)
		assert.Positive(t, fi.Size(), name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "report.json"))
	require.NoError(t, err)
	var rep Report
	require.NoError(t, json.Unmarshal(data, &rep))
	_, err = uuid.Parse(rep.RunID)
	assert.NoError(t, err)
	require.Len(t, rep.Frames, 3)
	assert.Equal(t, 3, rep.Summary.Frames)
	assert.Equal(t, 0.05, rep.Resolution)
	assert.Equal(t, Pt(0, 0.1), rep.Frames[1].Source)
	assert.Equal(t, 1, rep.Summary.PeakFrame, "closest approach is brightest")
	for _, fr := range rep.Frames {
		assert.Greater(t, fr.Magnification, 1.0)
		assert.NotEmpty(t, fr.Levels)
	}

	prom, err := os.ReadFile(filepath.Join(dir, "out", "run.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "microlens_level_calls_total")
	assert.Contains(t, string(prom), "microlens_peak_magnification")
}

func TestRunPNGSequence(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, runScene+`
output:
  pngPrefix: `+filepath.Join(dir, "frame")+`
  imageSize: 32
`)
	require.NoError(t, Run(context.Background(), cfg))
	for _, name := range []string{"frame_0.png", "frame_1.png", "frame_2.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestSimulationFrame(t *testing.T) {
	cfg, err := ParseConfig("scene.yaml", []byte(runScene))
	require.NoError(t, err)
	sim, err := NewSimulation(cfg)
	require.NoError(t, err)
	assert.Nil(t, sim.Renderer, "no image outputs configured")

	stats := NewLevelStats()
	stats.RecordCalls(3, 1000)
	fr, err := sim.Frame(1, stats)
	require.NoError(t, err)
	assert.Equal(t, Pt(0, 0.1), fr.Source.Origin)
	assert.NotEmpty(t, fr.Terminals)
	assert.Equal(t, stats.TotalCalls(), fr.Calls, "stats are reset before the frame")
	assert.Equal(t, stats.Snapshot(), fr.Levels)
	assert.Nil(t, fr.Image)

	_, err = sim.Frame(3, stats)
	assert.Error(t, err)
	_, err = sim.Frame(-1, stats)
	assert.Error(t, err)
}

func TestSimulationFramesCancelled(t *testing.T) {
	cfg, err := ParseConfig("scene.yaml", []byte(`
lenses: [{origin: {x: 0, y: 0}, mass: 1}]
resolution: 0.5
frames: 500
`))
	require.NoError(t, err)
	sim, err := NewSimulation(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Frames(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	frames := []*FrameResult{
		{Index: 0, Magnification: 1.5, Calls: 40, Elapsed: time.Millisecond},
		nil,
		{Index: 2, Magnification: 4.5, Calls: 80, Elapsed: 2 * time.Millisecond},
		{Index: 3, Magnification: 3, Calls: 120},
	}
	s := Summarize(frames)
	assert.Equal(t, 3, s.Frames)
	assert.Equal(t, 4.5, s.PeakMagnification)
	assert.Equal(t, 2, s.PeakFrame)
	assert.InDelta(t, 3, s.MeanMagnification, eps)
	assert.Equal(t, 240, s.Calls)
	assert.Equal(t, 3*time.Millisecond, s.Elapsed)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestLightCurve(t *testing.T) {
	frames := []*FrameResult{
		{Source: Source{Origin: Pt(-1, 0)}, Magnification: 1.2},
		nil,
		{Source: Source{Origin: Pt(1, 0)}, Magnification: 2},
	}
	pts := LightCurve(frames)
	require.Equal(t, 2, pts.Len())
	x, y := pts.XY(1)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)

	assert.Error(t, SaveLightCurve(nil, filepath.Join(t.TempDir(), "empty.png")))
}

func TestSaveAnimatedGIFNoFrames(t *testing.T) {
	assert.Error(t, SaveAnimatedGIF(nil, filepath.Join(t.TempDir(), "x.gif"), GIFDelay))
}
