package microlens

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type LensCfg struct {
	Origin Point `json:"origin" yaml:"origin"`
	Mass   Real  `json:"mass" yaml:"mass" validate:"gte=0"`
}

// SourceCfg places the source either on an explicit Start→End path or, when
// the config carries an event block, on the event's track.
type SourceCfg struct {
	Radius Real   `json:"radius" yaml:"radius" validate:"gt=0"`
	Start  *Point `json:"start,omitempty" yaml:"start,omitempty"`
	End    *Point `json:"end,omitempty" yaml:"end,omitempty"`
}

// EventCfg describes the observed event in days; positions derive from
// (t - peakTime) / crossingTime.
type EventCfg struct {
	StartTime    Real `json:"startTime" yaml:"startTime"`
	EndTime      Real `json:"endTime" yaml:"endTime"`
	PeakTime     Real `json:"peakTime" yaml:"peakTime"`
	CrossingTime Real `json:"crossingTime" yaml:"crossingTime" validate:"gt=0"`
	ImpactRadius Real `json:"impactRadius" yaml:"impactRadius"`
}

type OutputCfg struct {
	GIF        string `json:"gif,omitempty" yaml:"gif,omitempty"`
	PNGPrefix  string `json:"pngPrefix,omitempty" yaml:"pngPrefix,omitempty"`
	LightCurve string `json:"lightCurve,omitempty" yaml:"lightCurve,omitempty"`
	Report     string `json:"report,omitempty" yaml:"report,omitempty"`
	Metrics    string `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	ImageSize  int    `json:"imageSize,omitempty" yaml:"imageSize,omitempty" validate:"gt=0"`
	GIFDelay   int    `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty" validate:"gt=0"`
	DebugGrid  bool   `json:"debugGrid,omitempty" yaml:"debugGrid,omitempty"`
}

type Config struct {
	Lenses       []LensCfg `json:"lenses" yaml:"lenses" validate:"required,min=1,dive"`
	Resolution   Real      `json:"resolution" yaml:"resolution" validate:"gt=0"`
	Window       Region    `json:"window" yaml:"window"`
	Source       SourceCfg `json:"source" yaml:"source"`
	Event        *EventCfg `json:"event,omitempty" yaml:"event,omitempty"`
	Frames       int       `json:"frames" yaml:"frames" validate:"gte=0"`
	Workers      int       `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=1"`
	FrameWorkers int       `json:"frameWorkers,omitempty" yaml:"frameWorkers,omitempty" validate:"gte=1"`
	Output       OutputCfg `json:"output" yaml:"output"`
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Build validates and constructs the runtime lens.
func (lc LensCfg) Build() (Lens, error) {
	return NewLens(lc.Origin, lc.Mass)
}

// LensField builds the lens field described by the config.
func (c *Config) LensField() (*LensField, error) {
	lenses := make([]Lens, 0, len(c.Lenses))
	for i, lc := range c.Lenses {
		l, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("lens #%d: %w", i, err)
		}
		lenses = append(lenses, l)
	}
	return NewLensField(lenses, c.Resolution)
}

// Region returns the search window.
func (c *Config) Region() (Region, error) {
	return NewRegion(c.Window.X, c.Window.Y, c.Window.Size)
}

// Track returns the source path: the event track when an event is present,
// otherwise Start→End (End defaults to Start, Start to the origin).
func (c *Config) Track() (Track, error) {
	if e := c.Event; e != nil {
		return EventTrack(e.StartTime, e.EndTime, e.PeakTime, e.CrossingTime, e.ImpactRadius, c.Frames)
	}
	var start Point
	if c.Source.Start != nil {
		start = *c.Source.Start
	}
	end := start
	if c.Source.End != nil {
		end = *c.Source.End
	}
	return NewTrack(start, end, c.Frames)
}

// SourceAtStart returns the source placed at the start of its track.
func (c *Config) SourceAtStart() (Source, error) {
	t, err := c.Track()
	if err != nil {
		return Source{}, err
	}
	return NewSource(t.PositionAt(0), c.Source.Radius)
}

// ParseConfig decodes data as JSON or YAML (by the extension of name), fills
// defaults and validates the result.
func ParseConfig(name string, data []byte) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}

	// Defaults
	if cfg.Resolution == 0 {
		cfg.Resolution = Resolution
	}
	if cfg.Window == (Region{}) {
		cfg.Window = Region{X: WindowX, Y: WindowY, Size: WindowSize}
	}
	if cfg.Source.Radius == 0 {
		cfg.Source.Radius = SourceRadius
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.FrameWorkers == 0 {
		cfg.FrameWorkers = 1
	}
	if cfg.Output.ImageSize == 0 {
		cfg.Output.ImageSize = ImageSize
	}
	if cfg.Output.GIFDelay == 0 {
		cfg.Output.GIFDelay = GIFDelay
	}

	if err := configValidate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, name, describeValidation(err))
	}
	if err := CheckSearchSize(cfg.Window.Size, cfg.Resolution); err != nil {
		return nil, fmt.Errorf("%w: %s: window: %w", ErrInvalidConfig, name, err)
	}
	DebugLog("Loaded config from %s: lenses=%d, resolution=%g, window=%v, frames=%d, workers=%d", name, len(cfg.Lenses), cfg.Resolution, cfg.Window, cfg.Frames, cfg.Workers)
	return &cfg, nil
}

// LoadConfig reads and validates the config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(path, data)
}

func describeValidation(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err.Error()
	}
	fe := ve[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s must satisfy %s=%s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s, got %v", fe.Namespace(), fe.Tag(), fe.Value())
}
