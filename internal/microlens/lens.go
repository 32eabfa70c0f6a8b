package microlens

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Component selects an entry of the symmetric lens-mapping Jacobian.
type Component uint8

const (
	XX Component = iota
	XY
	YY
)

// Lens is a point mass deflecting light.
type Lens struct {
	Origin Point
	Mass   Real
}

// NewLens returns a lens with a non-negative, finite mass.
func NewLens(origin Point, mass Real) (Lens, error) {
	if !isFinite(origin.X) || !isFinite(origin.Y) {
		return Lens{}, fmt.Errorf("%w: lens origin must be finite, got %+v", ErrInvalidLensField, origin)
	}
	if mass < 0 || !isFinite(mass) {
		return Lens{}, fmt.Errorf("%w: lens mass must be >= 0, got %g", ErrInvalidLensField, mass)
	}
	return Lens{Origin: origin, Mass: mass}, nil
}

// JacobianContribution returns this lens' second-derivative term of the
// lens-mapping Jacobian at p. It is undefined (Inf/NaN) when p == l.Origin.
func (l Lens) JacobianContribution(p Point, c Component) Real {
	dx := p.X - l.Origin.X
	dy := p.Y - l.Origin.Y
	dsq := dx*dx + dy*dy

	switch c {
	case XY:
		return 2 * l.Mass * dx * dy / (dsq * dsq)
	case YY:
		return -l.Mass/dsq + 2*l.Mass*dy*dy/(dsq*dsq)
	default:
		return -l.Mass/dsq + 2*l.Mass*dx*dx/(dsq*dsq)
	}
}

// LensField is an ordered, immutable set of lenses together with the search
// resolution. Lens order fixes the floating-point summation order.
type LensField struct {
	lenses     []Lens
	resolution Real
}

// NewLensField validates and copies lenses. At least one lens is required and
// resolution must be positive.
func NewLensField(lenses []Lens, resolution Real) (*LensField, error) {
	if len(lenses) == 0 {
		return nil, fmt.Errorf("%w: no lenses", ErrInvalidLensField)
	}
	if !(resolution > 0) || !isFinite(resolution) {
		return nil, fmt.Errorf("%w: resolution must be > 0, got %g", ErrInvalidLensField, resolution)
	}
	for i, l := range lenses {
		if _, err := NewLens(l.Origin, l.Mass); err != nil {
			return nil, fmt.Errorf("lens #%d: %w", i, err)
		}
	}
	f := &LensField{lenses: slices.Clone(lenses), resolution: resolution}
	DebugLog("Created lens field: lenses=%d, mass=%.4f, resolution=%g", len(f.lenses), f.TotalMass(), resolution)
	return f, nil
}

// Lenses returns a copy of the lenses in field order.
func (f *LensField) Lenses() []Lens { return slices.Clone(f.lenses) }

// Resolution is the side length at which the search stops subdividing.
func (f *LensField) Resolution() Real { return f.resolution }

func (f *LensField) TotalMass() Real {
	m := make([]Real, len(f.lenses))
	for i, l := range f.lenses {
		m[i] = l.Mass
	}
	return floats.Sum(m)
}

// JacobianDeterminantAt returns det(A) of the lens mapping at p, where A is the
// identity plus every lens' contribution.
func (f *LensField) JacobianDeterminantAt(p Point) Real {
	dFxx, dFyy, dFxy := 1.0, 1.0, 0.0
	for _, l := range f.lenses {
		dFxx += l.JacobianContribution(p, XX)
		dFxy += l.JacobianContribution(p, XY)
		dFyy += l.JacobianContribution(p, YY)
	}
	return dFxx*dFyy - dFxy*dFxy
}

// JacobianSignAt returns +1 where the determinant is positive and -1 otherwise
// (zero included).
func (f *LensField) JacobianSignAt(p Point) int {
	if f.JacobianDeterminantAt(p) > 0 {
		return 1
	}
	return -1
}

// MapToSourcePlane applies the lens equation: p minus every lens' deflection
// m·(p-o)/|p-o|².
func (f *LensField) MapToSourcePlane(p Point) Point {
	v := p.vec()
	q := v
	for _, l := range f.lenses {
		d := r2.Sub(v, l.Origin.vec())
		q = r2.Sub(q, r2.Scale(l.Mass/r2.Norm2(d), d))
	}
	return pointOf(q)
}

// lensIn reports whether any lens origin lies in r.
func (f *LensField) lensIn(r Region) bool {
	for _, l := range f.lenses {
		if r.Contains(l.Origin) {
			return true
		}
	}
	return false
}

// straddlesCriticalCurve reports whether the Jacobian sign differs between any
// two corners of r.
func (f *LensField) straddlesCriticalCurve(r Region) bool {
	sign := f.JacobianSignAt(r.Corner(BottomLeft))
	return sign != f.JacobianSignAt(r.Corner(TopLeft)) ||
		sign != f.JacobianSignAt(r.Corner(TopRight)) ||
		sign != f.JacobianSignAt(r.Corner(BottomRight))
}

// boundaryPoints is the per-side sampling density for r.
func (f *LensField) boundaryPoints(r Region) int {
	return imax(MinBoundaryPoints, int(r.Size/f.resolution))
}

// mapBoundary samples r's boundary and maps every sample to the source plane.
func (f *LensField) mapBoundary(r Region) []Point {
	pts := r.Boundary(f.boundaryPoints(r))
	for i, p := range pts {
		pts[i] = f.MapToSourcePlane(p)
	}
	return pts
}
