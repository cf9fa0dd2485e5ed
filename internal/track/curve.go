// Package track models the race track centreline as a Catmull-Rom spline
// through a fixed sequence of control points.
//
// Two parameterisations are exposed. Point and Tangent take the raw spline
// parameter u, uniform in segment index. PointAt and TangentAt take the
// normalised distance t along the curve, so equal steps in t cover equal
// distance on the track.
package track

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cxd309/race-engine/internal/geom"
)

// CurveType selects the Catmull-Rom knot parameterisation.
type CurveType string

const (
	Centripetal CurveType = "centripetal" // alpha 0.5, no cusps or self-intersections
	Chordal     CurveType = "chordal"     // alpha 1
	CatmullRom  CurveType = "catmullrom"  // uniform, shaped by Tension
)

const (
	DefaultDivisions = 200
	DefaultTension   = 0.5
)

var (
	ErrTooFewPoints    = errors.New("curve needs at least 2 control points")
	ErrNonFinitePoint  = errors.New("control point is not finite")
	ErrDegenerateCurve = errors.New("curve has zero length")
	ErrInvalidOption   = errors.New("invalid curve option")
)

// Option configures a Curve.
type Option func(*Curve)

// WithType sets the knot parameterisation. The default is Centripetal.
func WithType(t CurveType) Option {
	return func(c *Curve) { c.kind = t }
}

// WithTension sets the tension used by the uniform CatmullRom type.
func WithTension(tension float64) Option {
	return func(c *Curve) { c.tension = tension }
}

// WithDivisions sets the number of chords used to approximate arc length.
func WithDivisions(n int) Option {
	return func(c *Curve) { c.divisions = n }
}

// Curve is an open spline through its control points. It is immutable after
// construction and safe for concurrent use.
type Curve struct {
	points    []geom.Vec3
	kind      CurveType
	tension   float64
	divisions int
	lengths   []float64 // cumulative chord length at u = i/divisions
}

// NewCurve builds a Curve through points. It returns an error if there are fewer
// than two points, any point is not finite, or the curve has no length.
func NewCurve(points []geom.Vec3, opts ...Option) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("control point %d: %w", i, ErrNonFinitePoint)
		}
	}

	c := &Curve{
		points:    append([]geom.Vec3(nil), points...),
		kind:      Centripetal,
		tension:   DefaultTension,
		divisions: DefaultDivisions,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch c.kind {
	case Centripetal, Chordal, CatmullRom:
	default:
		return nil, fmt.Errorf("%w: unknown curve type %q", ErrInvalidOption, c.kind)
	}
	if c.divisions < 1 {
		return nil, fmt.Errorf("%w: divisions must be positive, got %d", ErrInvalidOption, c.divisions)
	}

	c.lengths = c.arcLengths()
	if c.Length() <= 0 {
		return nil, ErrDegenerateCurve
	}
	return c, nil
}

// Points returns a copy of the control points.
func (c *Curve) Points() []geom.Vec3 {
	return append([]geom.Vec3(nil), c.points...)
}

// Type returns the knot parameterisation in use.
func (c *Curve) Type() CurveType { return c.kind }

// Length returns the approximate arc length of the curve.
func (c *Curve) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// Point returns the position at raw spline parameter u, clamped to [0,1].
func (c *Curve) Point(u float64) geom.Vec3 {
	seg, w := c.segment(u)
	return seg.at(w)
}

// Tangent returns the unit direction of travel at raw spline parameter u.
func (c *Curve) Tangent(u float64) geom.Vec3 {
	seg, w := c.segment(u)
	if d := seg.deriv(w); d.LenSq() > 0 {
		return d.Normalize()
	}

	// Coincident control points flatten the derivative; fall back to a chord.
	const h = 1e-4
	u = clamp01(u)
	if d := c.Point(math.Min(u+h, 1)).Sub(c.Point(math.Max(u-h, 0))); d.LenSq() > 0 {
		return d.Normalize()
	}
	if d := c.points[len(c.points)-1].Sub(c.points[0]); d.LenSq() > 0 {
		return d.Normalize()
	}
	return geom.V3(0, 0, -1)
}

// PointAt returns the position at distance fraction t, clamped to [0,1].
// PointAt(0) and PointAt(1) are exactly the first and last control points.
func (c *Curve) PointAt(t float64) geom.Vec3 {
	switch {
	case t <= 0:
		return c.points[0]
	case t >= 1:
		return c.points[len(c.points)-1]
	}
	return c.Point(c.paramAt(t))
}

// TangentAt returns the unit direction of travel at distance fraction t.
func (c *Curve) TangentAt(t float64) geom.Vec3 {
	return c.Tangent(c.paramAt(clamp01(t)))
}

// Sample returns n+1 points evenly spaced by distance, from start to end.
func (c *Curve) Sample(n int) []geom.Vec3 {
	if n < 1 {
		n = 1
	}
	out := make([]geom.Vec3, n+1)
	for i := range out {
		out[i] = c.PointAt(float64(i) / float64(n))
	}
	return out
}

// paramAt maps a distance fraction t to the raw spline parameter u.
func (c *Curve) paramAt(t float64) float64 {
	n := len(c.lengths)
	target := t * c.Length()

	i := sort.SearchFloat64s(c.lengths, target)
	if i >= n {
		return 1
	}
	if c.lengths[i] == target {
		return float64(i) / float64(n-1)
	}
	before, after := c.lengths[i-1], c.lengths[i]
	frac := (target - before) / (after - before)
	return (float64(i-1) + frac) / float64(n-1)
}

func (c *Curve) arcLengths() []float64 {
	lengths := make([]float64, c.divisions+1)
	last := c.Point(0)
	var sum float64
	for d := 1; d <= c.divisions; d++ {
		cur := c.Point(float64(d) / float64(c.divisions))
		sum += cur.Distance(last)
		lengths[d] = sum
		last = cur
	}
	return lengths
}

// segment returns the cubic for the span containing u and the local weight in it.
func (c *Curve) segment(u float64) (cubic, float64) {
	pts := c.points
	l := len(pts)

	p := float64(l-1) * clamp01(u)
	i := int(math.Floor(p))
	w := p - float64(i)
	if i >= l-1 {
		i, w = l-2, 1
	}

	p1, p2 := pts[i], pts[i+1]
	var p0, p3 geom.Vec3
	if i > 0 {
		p0 = pts[i-1]
	} else {
		p0 = p1.Scale(2).Sub(p2)
	}
	if i+2 < l {
		p3 = pts[i+2]
	} else {
		p3 = p2.Scale(2).Sub(p1)
	}

	switch c.kind {
	case Centripetal, Chordal:
		pow := 0.25
		if c.kind == Chordal {
			pow = 0.5
		}
		dt0 := math.Pow(p0.DistanceSq(p1), pow)
		dt1 := math.Pow(p1.DistanceSq(p2), pow)
		dt2 := math.Pow(p2.DistanceSq(p3), pow)
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}
		return nonuniform(p0, p1, p2, p3, dt0, dt1, dt2), w
	default:
		return hermite(p1, p2, p2.Sub(p0).Scale(c.tension), p3.Sub(p1).Scale(c.tension)), w
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
