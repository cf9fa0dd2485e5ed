// Package render turns simulation frames into screen-space polygons and draws
// them. The polygon list is backend-agnostic; Snapshot draws it with gg and the
// windowed host draws it with ebiten.
package render

import (
	"github.com/cxd309/race-engine/internal/camera"
	"github.com/cxd309/race-engine/internal/geom"
)

// Point is a screen position in pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Projector maps world points to screen pixels for one camera and viewport.
type Projector struct {
	viewProj      geom.Mat4
	near, far     float64
	width, height float64
}

// NewProjector captures cam's view and projection for a width x height viewport.
func NewProjector(cam camera.Camera, width, height int) Projector {
	return Projector{
		viewProj: cam.Projection().Mul(cam.View()),
		near:     cam.Near,
		far:      cam.Far,
		width:    float64(width),
		height:   float64(height),
	}
}

// Project returns the screen position of p and its distance along the view
// axis. ok is false when p lies outside the near and far planes.
func (pr Projector) Project(p geom.Vec3) (pt Point, depth float64, ok bool) {
	x, y, _, w := pr.viewProj.MulVec4(p)
	if w < pr.near || w > pr.far {
		return Point{}, 0, false
	}
	return pr.screen(clipVertex{x, y, w}), w, true
}

// ProjectPolygon clips the convex polygon pts to the near and far planes and
// projects what remains. depth is the mean view distance of the clipped
// vertices. ok is false when less than a triangle survives.
func (pr Projector) ProjectPolygon(pts []geom.Vec3) (poly []Point, depth float64, ok bool) {
	verts := make([]clipVertex, len(pts))
	for i, p := range pts {
		x, y, _, w := pr.viewProj.MulVec4(p)
		verts[i] = clipVertex{x, y, w}
	}
	verts = clipPlane(verts, func(v clipVertex) float64 { return v.w - pr.near })
	verts = clipPlane(verts, func(v clipVertex) float64 { return pr.far - v.w })
	if len(verts) < 3 {
		return nil, 0, false
	}

	poly = make([]Point, len(verts))
	for i, v := range verts {
		poly[i] = pr.screen(v)
		depth += v.w
	}
	return poly, depth / float64(len(verts)), true
}

func (pr Projector) screen(v clipVertex) Point {
	return Point{
		X: (v.x/v.w + 1) / 2 * pr.width,
		Y: (1 - v.y/v.w) / 2 * pr.height,
	}
}

// clipVertex is a vertex in clip space; z is not needed for depth-sorted
// drawing.
type clipVertex struct {
	x, y, w float64
}

// clipPlane keeps the part of the polygon where dist >= 0 (Sutherland-Hodgman).
// Clip coordinates are linear in world space, so edges are cut by plain lerp.
func clipPlane(in []clipVertex, dist func(clipVertex) float64) []clipVertex {
	out := make([]clipVertex, 0, len(in)+1)
	for i, cur := range in {
		prev := in[(i+len(in)-1)%len(in)]
		dc, dp := dist(cur), dist(prev)
		if (dc >= 0) != (dp >= 0) {
			t := dp / (dp - dc)
			out = append(out, clipVertex{
				x: prev.x + (cur.x-prev.x)*t,
				y: prev.y + (cur.y-prev.y)*t,
				w: prev.w + (cur.w-prev.w)*t,
			})
		}
		if dc >= 0 {
			out = append(out, cur)
		}
	}
	return out
}
