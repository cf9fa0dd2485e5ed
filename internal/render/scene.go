package render

import (
	"image/color"
	"sort"

	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/track"
)

var (
	Sky      = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	Asphalt  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	Obstacle = color.RGBA{0x00, 0xff, 0x00, 0xff}
	Player   = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// aiColors cycles for AI vehicles by index.
var aiColors = []color.RGBA{
	{0x1e, 0x90, 0xff, 0xff},
	{0xff, 0xa5, 0x00, 0xff},
	{0x94, 0x00, 0xd3, 0xff},
	{0xff, 0xff, 0x00, 0xff},
	{0x00, 0xce, 0xd1, 0xff},
}

var (
	carSize      = geom.V3(1, 0.5, 2)
	obstacleSize = geom.V3(1, 1, 1)
)

// Polygon is a filled convex screen-space shape. Depth is the mean view
// distance of its vertices.
type Polygon struct {
	Points []Point
	Fill   color.RGBA
	Depth  float64
}

// Scene projects the static track geometry once and the moving entities per frame.
type Scene struct {
	left, right []geom.Vec3
	obstacles   []engine.Obstacle
}

// trackSegments is the number of quads in the track ribbon.
const trackSegments = 200

// NewScene prepares the static geometry of a race.
func NewScene(curve *track.Curve, obstacles []engine.Obstacle) *Scene {
	left, right := curve.Edges(trackSegments, track.HalfWidth)
	return &Scene{left: left, right: right, obstacles: obstacles}
}

// Build returns the polygons of f seen through its camera, ordered far to near.
func (s *Scene) Build(f engine.Frame, width, height int) []Polygon {
	pr := NewProjector(f.Camera, width, height)
	var polys []Polygon

	for i := 0; i+1 < len(s.left); i++ {
		polys = appendPolygon(polys, pr, Asphalt,
			s.left[i], s.right[i], s.right[i+1], s.left[i+1])
	}
	for _, o := range s.obstacles {
		polys = appendBox(polys, pr, Obstacle, o.Position, 0, obstacleSize)
	}
	for i, ai := range f.AIs {
		polys = appendBox(polys, pr, aiColors[i%len(aiColors)], ai.Position, ai.Facing, carSize)
	}
	polys = appendBox(polys, pr, Player, f.Player.Position, f.Player.Yaw, carSize)

	sort.SliceStable(polys, func(i, j int) bool { return polys[i].Depth > polys[j].Depth })
	return polys
}

// boxFaces indexes the corners returned by boxCorners; the last face is the top.
var boxFaces = [6][4]int{
	{0, 1, 2, 3}, // bottom
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
	{4, 5, 6, 7}, // top
}

// faceShade darkens side faces so boxes read as solid.
var faceShade = [6]float64{0.4, 0.7, 0.8, 0.6, 0.75, 1}

func boxCorners(center geom.Vec3, yaw float64, size geom.Vec3) [8]geom.Vec3 {
	m := geom.Transform(center, yaw)
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	local := [8]geom.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: hz}, {X: -hx, Y: -hy, Z: hz},
		{X: -hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	var out [8]geom.Vec3
	for i, p := range local {
		out[i] = m.MulPoint(p)
	}
	return out
}

func appendBox(polys []Polygon, pr Projector, fill color.RGBA, center geom.Vec3, yaw float64, size geom.Vec3) []Polygon {
	corners := boxCorners(center, yaw, size)
	for i, face := range boxFaces {
		polys = appendPolygon(polys, pr, shade(fill, faceShade[i]),
			corners[face[0]], corners[face[1]], corners[face[2]], corners[face[3]])
	}
	return polys
}

// appendPolygon projects pts, clipped to the view depth range, and appends the
// result.
func appendPolygon(polys []Polygon, pr Projector, fill color.RGBA, pts ...geom.Vec3) []Polygon {
	points, depth, ok := pr.ProjectPolygon(pts)
	if !ok {
		return polys
	}
	return append(polys, Polygon{Points: points, Fill: fill, Depth: depth})
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
