package track

import "github.com/cxd309/race-engine/internal/geom"

// DefaultControlPoints returns the centreline of the demo track: a gentle
// S-bend running 100 units down -Z.
func DefaultControlPoints() []geom.Vec3 {
	return []geom.Vec3{
		geom.V3(0, 0, 0),
		geom.V3(5, 0, -20),
		geom.V3(-5, 0, -40),
		geom.V3(10, 0, -60),
		geom.V3(0, 0, -80),
		geom.V3(0, 0, -100),
	}
}

// HalfWidth is the distance from the centreline to either track edge.
const HalfWidth = 5.0

// Edges returns the left and right track edges at n+1 evenly spaced samples,
// offset horizontally from the centreline by halfWidth.
func (c *Curve) Edges(n int, halfWidth float64) (left, right []geom.Vec3) {
	if n < 1 {
		n = 1
	}
	left = make([]geom.Vec3, n+1)
	right = make([]geom.Vec3, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := c.PointAt(t)
		tan := c.TangentAt(t)
		side := geom.V3(-tan.Z, 0, tan.X).Normalize() // right of travel
		left[i] = p.Sub(side.Scale(halfWidth))
		right[i] = p.Add(side.Scale(halfWidth))
	}
	return left, right
}
