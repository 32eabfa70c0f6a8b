package microlens

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// LightCurve returns magnification against source x position, one point per
// frame, skipping frames that were not run.
func LightCurve(frames []*FrameResult) plotter.XYs {
	pts := make(plotter.XYs, 0, len(frames))
	for _, fr := range frames {
		if fr == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: fr.Source.Origin.X, Y: fr.Magnification})
	}
	return pts
}

// SaveLightCurve plots the light curve to path; the format follows the
// extension (png, svg, pdf, ...).
func SaveLightCurve(frames []*FrameResult, path string) error {
	pts := LightCurve(frames)
	if len(pts) == 0 {
		return fmt.Errorf("no frames to plot to %s", path)
	}

	p := plot.New()
	p.Title.Text = "Light curve"
	p.X.Label.Text = "source x (Einstein radii)"
	p.Y.Label.Text = "magnification"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	points.Radius = vg.Points(1.5)
	p.Add(line, points)

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}
	DebugLog("Saved light curve: %s (%d points)", path, len(pts))
	return nil
}
