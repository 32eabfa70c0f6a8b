package microlens

import "gonum.org/v1/gonum/spatial/r2"

// Real is the scalar type used for all plane coordinates.
type Real = float64

// Point is a position in the image or source plane, in Einstein radii.
type Point struct {
	X Real `json:"x" yaml:"x"`
	Y Real `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y Real) Point { return Point{X: x, Y: y} }

func (p Point) vec() r2.Vec  { return r2.Vec{X: p.X, Y: p.Y} }
func pointOf(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return pointOf(r2.Add(p.vec(), q.vec())) }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return pointOf(r2.Sub(p.vec(), q.vec())) }

// Mul scales p by s.
func (p Point) Mul(s Real) Point { return pointOf(r2.Scale(s, p.vec())) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) Real { return r2.Norm(r2.Sub(p.vec(), q.vec())) }

// Interpolate returns the point a ratio of the way from a to b.
// ratio is in [0,1]: 0 yields a, 1 yields b.
func Interpolate(a, b Point, ratio Real) Point {
	return Point{
		X: a.X + (b.X-a.X)*ratio,
		Y: a.Y + (b.Y-a.Y)*ratio,
	}
}
