package microlens

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func TestInterpolate(t *testing.T) {
	a, b := Pt(-1, 2), Pt(3, -2)
	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, b, Interpolate(a, b, 1))
	mid := Interpolate(a, b, 0.5)
	assert.InDelta(t, 1, mid.X, eps)
	assert.InDelta(t, 0, mid.Y, eps)
}

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(1, 2), Pt(4, 6)
	assert.Equal(t, Pt(5, 8), p.Add(q))
	assert.Equal(t, Pt(3, 4), q.Sub(p))
	assert.Equal(t, Pt(2, 4), p.Mul(2))
	assert.InDelta(t, 5, p.Dist(q), eps)
	assert.InDelta(t, math.Sqrt2, Pt(0, 0).Dist(Pt(1, 1)), eps)
}
