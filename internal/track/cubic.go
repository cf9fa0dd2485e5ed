package track

import "github.com/cxd309/race-engine/internal/geom"

// cubic is c0 + c1*w + c2*w^2 + c3*w^3 evaluated per axis.
type cubic struct {
	c0, c1, c2, c3 geom.Vec3
}

// hermite builds the cubic from endpoints x0, x1 and their tangents t0, t1.
func hermite(x0, x1, t0, t1 geom.Vec3) cubic {
	return cubic{
		c0: x0,
		c1: t0,
		c2: x0.Scale(-3).Add(x1.Scale(3)).Sub(t0.Scale(2)).Sub(t1),
		c3: x0.Scale(2).Sub(x1.Scale(2)).Add(t0).Add(t1),
	}
}

// nonuniform builds the span x1..x2 of a Catmull-Rom spline with knot
// intervals dt0, dt1, dt2.
func nonuniform(x0, x1, x2, x3 geom.Vec3, dt0, dt1, dt2 float64) cubic {
	t1 := x1.Sub(x0).Scale(1 / dt0).
		Sub(x2.Sub(x0).Scale(1 / (dt0 + dt1))).
		Add(x2.Sub(x1).Scale(1 / dt1))
	t2 := x2.Sub(x1).Scale(1 / dt1).
		Sub(x3.Sub(x1).Scale(1 / (dt1 + dt2))).
		Add(x3.Sub(x2).Scale(1 / dt2))
	return hermite(x1, x2, t1.Scale(dt1), t2.Scale(dt1))
}

func (c cubic) at(w float64) geom.Vec3 {
	w2 := w * w
	return c.c0.Add(c.c1.Scale(w)).Add(c.c2.Scale(w2)).Add(c.c3.Scale(w2 * w))
}

func (c cubic) deriv(w float64) geom.Vec3 {
	return c.c1.Add(c.c2.Scale(2 * w)).Add(c.c3.Scale(3 * w * w))
}
