package microlens

import (
	"encoding/json"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run.
type Summary struct {
	Frames            int           `json:"frames"`
	PeakMagnification Real          `json:"peakMagnification"`
	PeakFrame         int           `json:"peakFrame"`
	MeanMagnification Real          `json:"meanMagnification"`
	Calls             int           `json:"calls"`
	Elapsed           time.Duration `json:"elapsedNs"`
}

// Summarize folds frame results; nil entries are skipped.
func Summarize(frames []*FrameResult) Summary {
	var s Summary
	mags := make([]Real, 0, len(frames))
	idx := make([]int, 0, len(frames))
	for _, fr := range frames {
		if fr == nil {
			continue
		}
		mags = append(mags, fr.Magnification)
		idx = append(idx, fr.Index)
		s.Calls += fr.Calls
		s.Elapsed += fr.Elapsed
	}
	s.Frames = len(mags)
	if len(mags) == 0 {
		return s
	}
	i := floats.MaxIdx(mags)
	s.PeakMagnification = mags[i]
	s.PeakFrame = idx[i]
	s.MeanMagnification = stat.Mean(mags, nil)
	return s
}

type FrameReport struct {
	Index         int         `json:"index"`
	Source        Point       `json:"source"`
	Magnification Real        `json:"magnification"`
	Area          Real        `json:"area"`
	HitArea       Real        `json:"hitArea"`
	Calls         int         `json:"calls"`
	ElapsedMS     float64     `json:"elapsedMs"`
	Levels        []LevelStat `json:"levels"`
}

// Report is the JSON document written at the end of a run.
type Report struct {
	RunID        string        `json:"runId"`
	Lenses       []LensCfg     `json:"lenses"`
	Resolution   Real          `json:"resolution"`
	Window       Region        `json:"window"`
	SourceRadius Real          `json:"sourceRadius"`
	Summary      Summary       `json:"summary"`
	Frames       []FrameReport `json:"frames"`
}

func NewReport(sim *Simulation, frames []*FrameResult) *Report {
	rep := &Report{
		RunID:        sim.ID.String(),
		Resolution:   sim.Field.Resolution(),
		Window:       sim.Window,
		SourceRadius: sim.Source.Radius,
		Summary:      Summarize(frames),
		Frames:       make([]FrameReport, 0, len(frames)),
	}
	for _, l := range sim.Field.Lenses() {
		rep.Lenses = append(rep.Lenses, LensCfg{Origin: l.Origin, Mass: l.Mass})
	}
	for _, fr := range frames {
		if fr == nil {
			continue
		}
		rep.Frames = append(rep.Frames, FrameReport{
			Index:         fr.Index,
			Source:        fr.Source.Origin,
			Magnification: fr.Magnification,
			Area:          fr.Area,
			HitArea:       fr.HitArea,
			Calls:         fr.Calls,
			ElapsedMS:     float64(fr.Elapsed.Microseconds()) / 1000,
			Levels:        fr.Levels,
		})
	}
	return rep
}

func WriteReport(path string, rep *Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
