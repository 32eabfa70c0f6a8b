package microlens

import "fmt"

// Corner names one of the four corners of a Region.
type Corner uint8

const (
	BottomLeft Corner = iota
	TopLeft
	TopRight
	BottomRight
)

// Region is an axis-aligned square search area: bottom-left corner and side length.
type Region struct {
	X    Real `json:"x" yaml:"x"`
	Y    Real `json:"y" yaml:"y"`
	Size Real `json:"size" yaml:"size" validate:"gt=0"`
}

// NewRegion returns a validated region. Size must be positive and finite.
func NewRegion(x, y, size Real) (Region, error) {
	if !isFinite(x) || !isFinite(y) {
		return Region{}, fmt.Errorf("%w: corner must be finite, got (%g, %g)", ErrInvalidRegion, x, y)
	}
	if !(size > 0) || !isFinite(size) {
		return Region{}, fmt.Errorf("%w: size must be > 0, got %g", ErrInvalidRegion, size)
	}
	return Region{X: x, Y: y, Size: size}, nil
}

// Contains reports whether p lies in r, boundaries included.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Size && p.Y >= r.Y && p.Y <= r.Y+r.Size
}

func (r Region) Area() Real { return r.Size * r.Size }

// Corner returns the position of the requested corner.
func (r Region) Corner(c Corner) Point {
	switch c {
	case TopLeft:
		return Point{r.X, r.Y + r.Size}
	case TopRight:
		return Point{r.X + r.Size, r.Y + r.Size}
	case BottomRight:
		return Point{r.X + r.Size, r.Y}
	default:
		return Point{r.X, r.Y}
	}
}

// Quadrants splits r into four squares of half the side:
// bottom-left, bottom-right, top-left, top-right. Corners shared between
// children match exactly; the outer corners may differ from r's by an ulp.
func (r Region) Quadrants() [4]Region {
	h := r.Size / 2
	return [4]Region{
		{X: r.X, Y: r.Y, Size: h},
		{X: r.X + h, Y: r.Y, Size: h},
		{X: r.X, Y: r.Y + h, Size: h},
		{X: r.X + h, Y: r.Y + h, Size: h},
	}
}

// Boundary samples n points per side, starting at the bottom-left corner and
// walking up the left edge, right along the top, down the right edge and back
// along the bottom. Each corner appears once.
func (r Region) Boundary(n int) []Point {
	n = imax(n, 1)
	du := r.Size / Real(n)
	pts := make([]Point, 0, 4*n)
	for i := 0; i < n; i++ {
		pts = append(pts, Point{r.X, r.Y + Real(i)*du})
	}
	for i := 0; i < n; i++ {
		pts = append(pts, Point{r.X + Real(i)*du, r.Y + r.Size})
	}
	for i := 0; i < n; i++ {
		pts = append(pts, Point{r.X + r.Size, r.Y + r.Size - Real(i)*du})
	}
	for i := 0; i < n; i++ {
		pts = append(pts, Point{r.X + r.Size - Real(i)*du, r.Y})
	}
	return pts
}

func (r Region) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Size, r.Size)
}
