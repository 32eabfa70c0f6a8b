package microlens

import (
	"fmt"
	"math"
)

// Reason tells why a search node stopped.
type Reason uint8

const (
	Classified Reason = iota // boundary was mapped and classified
	Singular                 // resolution floor reached with a lens inside
	Critical                 // resolution floor reached across a critical curve
)

var reasonNames = [...]string{
	Classified: "classified",
	Singular:   "singular",
	Critical:   "critical",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Terminal is a region at which the search stopped. Classification is only
// meaningful when Reason is Classified; Hit marks regions reported as images
// of the source.
type Terminal struct {
	Region         Region
	Classification Classification
	Reason         Reason
	Level          int
	Hit            bool
}

// Searcher finds the image-plane regions whose lens mapping lands on Source.
// Field and Source are read-only during a search.
type Searcher struct {
	Field  *LensField
	Source Source
	// Workers > 1 runs the top of the quadtree concurrently.
	Workers int
}

// NewSearcher returns a sequential searcher after validating its inputs.
func NewSearcher(field *LensField, source Source) (*Searcher, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil lens field", ErrInvalidLensField)
	}
	if _, err := NewSource(source.Origin, source.Radius); err != nil {
		return nil, err
	}
	return &Searcher{Field: field, Source: source}, nil
}

// Result is the output of one search invocation.
type Result struct {
	Terminals []Terminal
	Stats     *LevelStats
}

// Run searches region with a fresh accumulator.
func (s *Searcher) Run(region Region) (*Result, error) {
	stats := NewLevelStats()
	terms, err := s.Search(region, stats)
	if err != nil {
		return nil, err
	}
	return &Result{Terminals: terms, Stats: stats}, nil
}

// Search classifies region and records per-level statistics into stats. It
// does not reset stats; that is up to the owner between invocations. The
// returned terminals are in depth-first quadrant order regardless of Workers.
func (s *Searcher) Search(region Region, stats *LevelStats) ([]Terminal, error) {
	if s.Field == nil {
		return nil, fmt.Errorf("%w: nil lens field", ErrInvalidLensField)
	}
	if _, err := NewRegion(region.X, region.Y, region.Size); err != nil {
		return nil, err
	}
	if err := CheckSearchSize(region.Size, s.Field.resolution); err != nil {
		return nil, err
	}

	if stats == nil {
		stats = NewLevelStats()
	}

	w := &walker{
		field:  s.Field,
		source: s.Source,
		stats:  stats,
		fanout: fanoutDepth(s.Workers),
	}
	w.search(node{region: region, checkSingularity: true, checkCriticalCurve: true})
	DebugLog("Search %v: source=%+v terminals=%d depth=%d", region, s.Source, len(w.terminals), stats.Depth())
	return w.terminals, nil
}

// CheckSearchSize rejects a search from size down to resolution that needs
// more than MaxBoundaryPoints boundary samples per side at the root. The bound
// also keeps Depth(size, resolution) far below MaxLevels.
func CheckSearchSize(size, resolution Real) error {
	if n := size / resolution; !(n <= MaxBoundaryPoints) {
		return fmt.Errorf("%w: %g boundary samples per side needed to go from %g to %g (depth %d), limit %d",
			ErrTooDeep, math.Floor(n), size, resolution, Depth(size, resolution), MaxBoundaryPoints)
	}
	return nil
}

// Depth is the deepest level a search from size down to resolution can reach.
func Depth(size, resolution Real) int {
	if size <= resolution {
		return 0
	}
	return int(math.Ceil(math.Log2(size / resolution)))
}

// node is one recursion frame. The flags only ever go from true to false
// along a branch.
type node struct {
	region             Region
	checkSingularity   bool
	checkCriticalCurve bool
	level              int
}

func (n node) children() [4]node {
	var out [4]node
	for i, q := range n.region.Quadrants() {
		out[i] = node{
			region:             q,
			checkSingularity:   n.checkSingularity,
			checkCriticalCurve: n.checkCriticalCurve,
			level:              n.level + 1,
		}
	}
	return out
}

type walker struct {
	field     *LensField
	source    Source
	stats     *LevelStats
	fanout    int
	terminals []Terminal
}

func (w *walker) search(n node) {
	floor := n.region.Size <= w.field.resolution

	if n.checkSingularity {
		if w.field.lensIn(n.region) {
			if floor {
				w.emit(Terminal{Region: n.region, Reason: Singular, Level: n.level})
				return
			}
			w.divide(n)
			return
		}
		n.checkSingularity = false
	}

	if n.checkCriticalCurve {
		if w.field.straddlesCriticalCurve(n.region) {
			if floor {
				w.emit(Terminal{Region: n.region, Reason: Critical, Level: n.level})
				return
			}
			w.divide(n)
			return
		}
		n.checkCriticalCurve = false
	}

	c := Classify(w.field.mapBoundary(n.region), w.source)
	w.stats.RecordCalls(n.level, CallCost)

	hit := false
	switch c {
	case NoOverlap:
	case InsideSource:
		hit = true
	case EnclosesSource, Overlap:
		if !floor {
			w.divide(n)
			return
		}
		hit = true
	}

	area := n.region.Area()
	w.stats.Record(n.level, area)
	if hit {
		w.stats.RecordHit(n.level, area)
	}
	w.emit(Terminal{Region: n.region, Classification: c, Reason: Classified, Level: n.level, Hit: hit})
}

func (w *walker) divide(n node) {
	children := n.children()
	if n.level < w.fanout {
		w.fork(children)
		return
	}
	for _, c := range children {
		w.search(c)
	}
}

func (w *walker) emit(t Terminal) {
	w.terminals = append(w.terminals, t)
	if Debug {
		logTerminal(t)
	}
}
