package microlens

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	s, err := NewSource(Pt(1, 2), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, s.Area(), eps)

	moved := s.At(Pt(3, 4))
	assert.Equal(t, Pt(3, 4), moved.Origin)
	assert.Equal(t, Pt(1, 2), s.Origin)
	assert.Equal(t, s.Radius, moved.Radius)

	for _, r := range []Real{0, -1, math.Inf(1), math.NaN()} {
		_, err := NewSource(Pt(0, 0), r)
		assert.ErrorIs(t, err, ErrInvalidSource, "radius %g", r)
	}
	_, err = NewSource(Pt(math.NaN(), 0), 1)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestTrack(t *testing.T) {
	tr, err := NewTrack(Pt(-1, 0.5), Pt(1, 0.5), 4)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Steps())
	assert.Equal(t, Pt(-1, 0.5), tr.PositionAt(0))
	assert.Equal(t, Pt(0, 0.5), tr.PositionAt(2))
	assert.Equal(t, Pt(1, 0.5), tr.PositionAt(4))

	still, err := NewTrack(Pt(2, 2), Pt(5, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, still.Steps())
	assert.Equal(t, Pt(2, 2), still.PositionAt(0))

	_, err = NewTrack(Pt(0, 0), Pt(1, 1), -1)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestEventTrack(t *testing.T) {
	tr, err := EventTrack(5700, 6000, 4500, 800, -0.17, 100)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, tr.Start.X, eps)
	assert.InDelta(t, 1.875, tr.End.X, eps)
	assert.Equal(t, -0.17, tr.Start.Y)
	assert.Equal(t, -0.17, tr.End.Y)
	assert.Equal(t, 101, tr.Steps())

	_, err = EventTrack(0, 1, 0, 0, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidSource)
}
