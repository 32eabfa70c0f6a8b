package microlens

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LevelStat is one row of a LevelStats snapshot.
type LevelStat struct {
	Level   int  `json:"level"`
	Area    Real `json:"area"`
	HitArea Real `json:"hitArea"`
	Calls   int  `json:"calls"`
}

// LevelStats accumulates, per recursion depth, the area of terminated
// regions, the part of it that maps onto the source, and the classification
// cost. One search owns it; it is not safe for concurrent use.
type LevelStats struct {
	area    []Real
	hitArea []Real
	calls   []int
}

// NewLevelStats returns an empty accumulator.
func NewLevelStats() *LevelStats { return &LevelStats{} }

// Reset zeroes every level. Call it before reusing the accumulator.
func (s *LevelStats) Reset() {
	s.area = s.area[:0]
	s.hitArea = s.hitArea[:0]
	s.calls = s.calls[:0]
}

func (s *LevelStats) grow(level int) {
	if level < 0 || level >= MaxLevels {
		panic(fmt.Sprintf("level %d out of range [0,%d)", level, MaxLevels))
	}
	for len(s.area) <= level {
		s.area = append(s.area, 0)
		s.hitArea = append(s.hitArea, 0)
		s.calls = append(s.calls, 0)
	}
}

// Record adds the area of a terminated region at level.
func (s *LevelStats) Record(level int, area Real) {
	s.grow(level)
	s.area[level] += area
}

// RecordHit adds area of a region reported as an image of the source.
func (s *LevelStats) RecordHit(level int, area Real) {
	s.grow(level)
	s.hitArea[level] += area
}

// RecordCalls adds delta cost units at level.
func (s *LevelStats) RecordCalls(level, delta int) {
	s.grow(level)
	s.calls[level] += delta
}

// Merge adds every counter of o into s.
func (s *LevelStats) Merge(o *LevelStats) {
	if o == nil || len(o.area) == 0 {
		return
	}
	s.grow(len(o.area) - 1)
	for i := range o.area {
		s.area[i] += o.area[i]
		s.hitArea[i] += o.hitArea[i]
		s.calls[i] += o.calls[i]
	}
}

// Depth is one past the deepest level touched.
func (s *LevelStats) Depth() int { return len(s.area) }

// Snapshot copies the counters, one row per level from 0 to Depth()-1.
func (s *LevelStats) Snapshot() []LevelStat {
	out := make([]LevelStat, len(s.area))
	for i := range s.area {
		out[i] = LevelStat{Level: i, Area: s.area[i], HitArea: s.hitArea[i], Calls: s.calls[i]}
	}
	return out
}

// TotalArea sums the terminated area over all levels.
func (s *LevelStats) TotalArea() Real { return floats.Sum(s.area) }

// TotalHitArea sums the hit area over all levels.
func (s *LevelStats) TotalHitArea() Real { return floats.Sum(s.hitArea) }

// TotalCalls sums the classification cost over all levels.
func (s *LevelStats) TotalCalls() int {
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Magnification estimates the total magnification of src as the image area
// found by the search over the unlensed source area.
func (s *LevelStats) Magnification(src Source) Real {
	a := src.Area()
	if a == 0 {
		return 0
	}
	return s.TotalHitArea() / a
}
