package microlens

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FrameResult is the outcome of searching one animation frame.
type FrameResult struct {
	Index         int
	Source        Source
	Terminals     []Terminal // dropped by Frames once the frame is rendered
	Levels        []LevelStat
	Area          Real
	HitArea       Real
	Calls         int
	Magnification Real
	Elapsed       time.Duration
	Image         *image.NRGBA
}

// Simulation drives one search per position of the source along its track.
type Simulation struct {
	ID       uuid.UUID
	Config   *Config
	Field    *LensField
	Window   Region
	Source   Source
	Track    Track
	Renderer *Renderer // nil: no images
	Metrics  *Metrics  // nil: no metrics
}

// NewSimulation builds the runtime objects described by cfg.
func NewSimulation(cfg *Config) (*Simulation, error) {
	field, err := cfg.LensField()
	if err != nil {
		return nil, err
	}
	window, err := cfg.Region()
	if err != nil {
		return nil, err
	}
	track, err := cfg.Track()
	if err != nil {
		return nil, err
	}
	source, err := NewSource(track.PositionAt(0), cfg.Source.Radius)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		ID:      uuid.New(),
		Config:  cfg,
		Field:   field,
		Window:  window,
		Source:  source,
		Track:   track,
		Metrics: NewMetrics(),
	}
	if cfg.Output.GIF != "" || cfg.Output.PNGPrefix != "" {
		s.Renderer = &Renderer{
			Window:    window,
			Size:      cfg.Output.ImageSize,
			Lenses:    field.Lenses(),
			DebugGrid: cfg.Output.DebugGrid || Debug,
		}
	}
	return s, nil
}

// Frame searches frame i. stats is reset first and left holding the frame's
// counters.
func (s *Simulation) Frame(i int, stats *LevelStats) (*FrameResult, error) {
	if i < 0 || i >= s.Track.Steps() {
		return nil, fmt.Errorf("frame %d out of range [0,%d)", i, s.Track.Steps())
	}
	stats.Reset()
	src := s.Source.At(s.Track.PositionAt(i))
	searcher := &Searcher{Field: s.Field, Source: src, Workers: s.Config.Workers}

	start := time.Now()
	terms, err := searcher.Search(s.Window, stats)
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", i, err)
	}
	fr := &FrameResult{
		Index:         i,
		Source:        src,
		Terminals:     terms,
		Levels:        stats.Snapshot(),
		Area:          stats.TotalArea(),
		HitArea:       stats.TotalHitArea(),
		Calls:         stats.TotalCalls(),
		Magnification: stats.Magnification(src),
		Elapsed:       time.Since(start),
	}
	if s.Renderer != nil {
		fr.Image = s.Renderer.Render(src, terms)
	}
	if s.Metrics != nil {
		s.Metrics.ObserveFrame(fr)
	}
	Logger().Info("frame searched",
		"run", s.ID.String(),
		"frame", i,
		"source_x", src.Origin.X,
		"source_y", src.Origin.Y,
		"magnification", fr.Magnification,
		"terminals", len(terms),
		"calls", fr.Calls,
		"elapsed", fr.Elapsed,
	)
	return fr, nil
}

// Frames searches every frame of the track, FrameWorkers at a time. Each
// worker reuses one accumulator, resetting it per frame.
func (s *Simulation) Frames(ctx context.Context) ([]*FrameResult, error) {
	n := s.Track.Steps()
	out := make([]*FrameResult, n)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < imax(1, s.Config.FrameWorkers); w++ {
		g.Go(func() error {
			stats := NewLevelStats()
			for i := range jobs {
				fr, err := s.Frame(i, stats)
				if err != nil {
					return err
				}
				fr.Terminals = nil
				out[i] = fr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run loads the config at cfgPath, searches every frame and writes the
// outputs it names.
func Run(ctx context.Context, cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if PNG && cfg.Output.PNGPrefix == "" {
		prefix := strings.TrimSuffix(cfg.Output.GIF, ".gif")
		if prefix == "" {
			prefix = "frame"
		}
		cfg.Output.PNGPrefix = prefix
	}
	sim, err := NewSimulation(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	frames, err := sim.Frames(ctx)
	if err != nil {
		return err
	}
	DebugLog("Frames: %d, time: %s", len(frames), time.Since(start))
	if Debug {
		terminalStats()
	}
	return sim.WriteOutputs(frames)
}

// WriteOutputs saves images, the light curve, the report and the metrics
// textfile, each only when the config names a destination.
func (s *Simulation) WriteOutputs(frames []*FrameResult) error {
	out := s.Config.Output
	if s.Renderer != nil {
		images := make([]*image.NRGBA, 0, len(frames))
		for _, fr := range frames {
			images = append(images, fr.Image)
		}
		if PNG || out.GIF == "" {
			if err := SavePNGSequence(images, out.PNGPrefix); err != nil {
				return err
			}
			DebugLog("Saved PNG sequence with prefix: %s", out.PNGPrefix)
		} else {
			if err := SaveAnimatedGIF(images, out.GIF, out.GIFDelay); err != nil {
				return err
			}
			DebugLog("Saved animated GIF: %s", out.GIF)
		}
	}
	if out.LightCurve != "" {
		if err := SaveLightCurve(frames, out.LightCurve); err != nil {
			return err
		}
	}
	if out.Report != "" {
		if err := WriteReport(out.Report, NewReport(s, frames)); err != nil {
			return err
		}
	}
	if out.Metrics != "" && s.Metrics != nil {
		if err := s.Metrics.WriteTextfile(out.Metrics); err != nil {
			return err
		}
	}
	sum := Summarize(frames)
	Logger().Info("run complete",
		"run", s.ID.String(),
		"frames", sum.Frames,
		"peak_magnification", sum.PeakMagnification,
		"peak_frame", sum.PeakFrame,
		"mean_magnification", sum.MeanMagnification,
		"calls", sum.Calls,
	)
	return nil
}
