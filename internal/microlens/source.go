package microlens

import (
	"fmt"
	"math"
)

// Source is the luminous disk being lensed. It is fixed for one search; an
// animation moves it between searches with At.
type Source struct {
	Origin Point
	Radius Real
}

// NewSource returns a source with a positive radius.
func NewSource(origin Point, radius Real) (Source, error) {
	if !isFinite(origin.X) || !isFinite(origin.Y) {
		return Source{}, fmt.Errorf("%w: origin must be finite, got %+v", ErrInvalidSource, origin)
	}
	if !(radius > 0) || !isFinite(radius) {
		return Source{}, fmt.Errorf("%w: radius must be > 0, got %g", ErrInvalidSource, radius)
	}
	return Source{Origin: origin, Radius: radius}, nil
}

// At returns a copy of s centred on origin.
func (s Source) At(origin Point) Source {
	s.Origin = origin
	return s
}

// Area is the unlensed area of the source disk.
func (s Source) Area() Real { return math.Pi * s.Radius * s.Radius }

// Track is a straight source path sampled at Frames+1 evenly spaced positions
// (frame 0 at Start, frame Frames at End).
type Track struct {
	Start  Point
	End    Point
	Frames int
}

// NewTrack returns a track with a non-negative frame count.
func NewTrack(start, end Point, frames int) (Track, error) {
	if frames < 0 {
		return Track{}, fmt.Errorf("%w: frames must be >= 0, got %d", ErrInvalidSource, frames)
	}
	return Track{Start: start, End: end, Frames: frames}, nil
}

// EventTrack builds the track of a microlensing event observed between
// startTime and endTime. Positions are in Einstein radii: x is the time offset
// from the peak divided by the Einstein crossing time, y the impact parameter.
func EventTrack(startTime, endTime, peakTime, crossingTime, impact Real, frames int) (Track, error) {
	if !(crossingTime > 0) {
		return Track{}, fmt.Errorf("%w: crossing time must be > 0, got %g", ErrInvalidSource, crossingTime)
	}
	start := Point{(startTime - peakTime) / crossingTime, impact}
	end := Point{(endTime - peakTime) / crossingTime, impact}
	return NewTrack(start, end, frames)
}

// Steps is the number of positions on the track.
func (t Track) Steps() int { return t.Frames + 1 }

// PositionAt returns the source position for frame i.
func (t Track) PositionAt(i int) Point {
	if t.Frames <= 0 {
		return t.Start
	}
	return Interpolate(t.Start, t.End, Real(i)/Real(t.Frames))
}
