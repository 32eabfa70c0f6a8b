package microlens

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Classification is the relation between a source-plane polygon and the
// source disk. The four values are exhaustive and mutually exclusive.
type Classification uint8

const (
	NoOverlap      Classification = iota // polygon and disk are disjoint
	InsideSource                         // every vertex lies in the disk
	EnclosesSource                       // disk lies inside the polygon
	Overlap                              // boundaries cross
)

var classificationNames = [...]string{
	NoOverlap:      "no_overlap",
	InsideSource:   "inside_source",
	EnclosesSource: "encloses_source",
	Overlap:        "overlap",
}

func (c Classification) String() string {
	if int(c) < len(classificationNames) {
		return classificationNames[c]
	}
	return "unknown"
}

// Classify decides how the closed polygon v (last vertex joins the first)
// relates to the source disk. Distances on the disk boundary count as inside.
//
// Vertices are tested first: all inside is InsideSource, a mix is Overlap.
// Otherwise every edge is solved against the circle; any crossing is Overlap.
// With no crossing, a vertical ray from the source centre decides between
// EnclosesSource (odd edge count) and NoOverlap (even).
func Classify(v []Point, src Source) Classification {
	if len(v) == 0 {
		return NoOverlap
	}

	inside, outside := false, false
	for _, p := range v {
		if p.Dist(src.Origin) <= src.Radius {
			inside = true
		} else {
			outside = true
		}
		if inside && outside {
			return Overlap
		}
	}
	if !outside {
		return InsideSource
	}

	rsq := src.Radius * src.Radius
	crossings := 0
	for i, p := range v {
		q := v[(i+1)%len(v)]

		du := q.X - p.X
		dv := q.Y - p.Y
		dux := p.X - src.Origin.X
		dvy := p.Y - src.Origin.Y

		// Ray from the source centre towards +y. The open lower bound makes a
		// vertex lying exactly on the ray count for one edge only.
		if t := -dux / du; 0 < t && t <= 1 && p.Y+t*dv >= src.Origin.Y {
			crossings++
		}
		if segmentMeetsCircle(du, dv, dux, dvy, rsq) {
			return Overlap
		}
	}

	if crossings%2 == 1 {
		return EnclosesSource
	}
	return NoOverlap
}

// segmentMeetsCircle solves |start + t·(du,dv) - centre|² = r² for t and
// reports whether a root lies on the segment, t in [0,1]. (dux,dvy) is the
// offset of the segment start from the centre.
func segmentMeetsCircle(du, dv, dux, dvy, rsq Real) bool {
	a := du*du + dv*dv
	b := 2 * (du*dux + dv*dvy)
	c := dux*dux + dvy*dvy - rsq

	d := b*b - 4*a*c
	if d < 0 {
		return false
	}
	sq := math.Sqrt(d)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	return (0 <= t1 && t1 <= 1) || (0 <= t2 && t2 <= 1)
}

// WindingNumber returns how many times the closed polygon v winds around p,
// counter-clockwise positive. Non-zero means p is enclosed.
func WindingNumber(p Point, v []Point) int {
	wn := 0
	for i, a := range v {
		b := v[(i+1)%len(v)]
		side := r2.Cross(r2.Sub(b.vec(), a.vec()), r2.Sub(p.vec(), a.vec()))
		if a.Y <= p.Y {
			if b.Y > p.Y && side > 0 {
				wn++
			}
		} else if b.Y <= p.Y && side < 0 {
			wn--
		}
	}
	return wn
}
