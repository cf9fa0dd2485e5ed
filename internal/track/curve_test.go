package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/race-engine/internal/geom"
)

func defaultCurve(t *testing.T, opts ...Option) *Curve {
	t.Helper()
	c, err := NewCurve(DefaultControlPoints(), opts...)
	require.NoError(t, err)
	return c
}

func TestNewCurve_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		points  []geom.Vec3
		opts    []Option
		wantErr error
	}{
		{"no points", nil, nil, ErrTooFewPoints},
		{"single point", []geom.Vec3{geom.V3(1, 2, 3)}, nil, ErrTooFewPoints},
		{"nan", []geom.Vec3{{}, geom.V3(math.NaN(), 0, 0)}, nil, ErrNonFinitePoint},
		{"coincident", []geom.Vec3{geom.V3(1, 0, 1), geom.V3(1, 0, 1)}, nil, ErrDegenerateCurve},
		{"unknown type", DefaultControlPoints(), []Option{WithType("bezier")}, ErrInvalidOption},
		{"zero divisions", DefaultControlPoints(), []Option{WithDivisions(0)}, ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCurve(tt.points, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, c)
		})
	}
}

func TestCurve_Endpoints(t *testing.T) {
	pts := DefaultControlPoints()
	for _, kind := range []CurveType{Centripetal, Chordal, CatmullRom} {
		t.Run(string(kind), func(t *testing.T) {
			c := defaultCurve(t, WithType(kind))
			assert.Equal(t, pts[0], c.PointAt(0))
			assert.Equal(t, pts[len(pts)-1], c.PointAt(1))
			assert.True(t, c.Point(0).ApproxEqual(pts[0], 1e-9))
			assert.True(t, c.Point(1).ApproxEqual(pts[len(pts)-1], 1e-9))
		})
	}
}

func TestCurve_PassesThroughControlPoints(t *testing.T) {
	c := defaultCurve(t)
	pts := DefaultControlPoints()
	for i, p := range pts {
		u := float64(i) / float64(len(pts)-1)
		assert.True(t, c.Point(u).ApproxEqual(p, 1e-9), "point %d: got %v want %v", i, c.Point(u), p)
	}
}

func TestCurve_TangentIsUnitLength(t *testing.T) {
	for _, kind := range []CurveType{Centripetal, Chordal, CatmullRom} {
		c := defaultCurve(t, WithType(kind))
		for i := 1; i < 1000; i++ {
			tan := c.TangentAt(float64(i) / 1000)
			assert.InDelta(t, 1.0, tan.Len(), 1e-9, "%s t=%v", kind, float64(i)/1000)
		}
	}
}

func TestCurve_TangentFollowsTravel(t *testing.T) {
	c := defaultCurve(t)
	// the track runs down -Z overall
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		assert.Less(t, c.TangentAt(tt).Z, 0.0, "t=%v", tt)
	}
}

func TestCurve_OutOfRangeIsClamped(t *testing.T) {
	c := defaultCurve(t)
	assert.Equal(t, c.PointAt(0), c.PointAt(-0.5))
	assert.Equal(t, c.PointAt(1), c.PointAt(1.5))
	assert.Equal(t, c.TangentAt(1), c.TangentAt(2))
}

func TestCurve_PointAtIsEvenlySpaced(t *testing.T) {
	c := defaultCurve(t, WithDivisions(2000))
	const n = 50
	samples := c.Sample(n)
	require.Len(t, samples, n+1)

	want := c.Length() / n
	for i := 1; i < len(samples); i++ {
		assert.InEpsilon(t, want, samples[i].Distance(samples[i-1]), 0.02, "step %d", i)
	}
}

func TestCurve_TwoPointsIsStraight(t *testing.T) {
	c, err := NewCurve([]geom.Vec3{geom.V3(0, 0, 0), geom.V3(0, 0, -10)})
	require.NoError(t, err)

	assert.InDelta(t, 10, c.Length(), 1e-6)
	mid := c.PointAt(0.5)
	assert.True(t, mid.ApproxEqual(geom.V3(0, 0, -5), 1e-6), "mid %v", mid)
	assert.True(t, c.TangentAt(0.3).ApproxEqual(geom.V3(0, 0, -1), 1e-9))
}

func TestCurve_PointsIsCopy(t *testing.T) {
	c := defaultCurve(t)
	pts := c.Points()
	pts[0] = geom.V3(99, 99, 99)
	assert.Equal(t, geom.V3(0, 0, 0), c.PointAt(0))
}

func TestCurve_Edges(t *testing.T) {
	c := defaultCurve(t)
	left, right := c.Edges(20, HalfWidth)
	require.Len(t, left, 21)
	require.Len(t, right, 21)
	for i := range left {
		assert.InDelta(t, 2*HalfWidth, left[i].Distance(right[i]), 1e-9)
	}
	// at the start the track heads mostly down -Z, so right is +X
	assert.Greater(t, right[0].X, left[0].X)
}
