package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/race-engine/internal/camera"
	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/pathfollow"
)

func TestProjector_Project(t *testing.T) {
	cam := camera.New(geom.V3(0, 5, 10), 2)
	pr := NewProjector(cam, 800, 400)

	pt, depth, ok := pr.Project(cam.LookAt)
	require.True(t, ok)
	assert.InDelta(t, 400, pt.X, 1e-9)
	assert.InDelta(t, 200, pt.Y, 1e-9)
	assert.InDelta(t, cam.Position.Distance(cam.LookAt), depth, 1e-9)

	// Above the look-at point appears higher on screen.
	up, _, ok := pr.Project(geom.V3(0, 1, 0))
	require.True(t, ok)
	assert.Less(t, up.Y, pt.Y)

	// Right of the camera appears right on screen.
	right, _, ok := pr.Project(geom.V3(1, 0, 0))
	require.True(t, ok)
	assert.Greater(t, right.X, pt.X)

	_, _, ok = pr.Project(geom.V3(0, 5, 20))
	assert.False(t, ok, "point behind the camera")

	_, _, ok = pr.Project(geom.V3(0, 5, 10))
	assert.False(t, ok, "point on the eye is nearer than the near plane")
}

func TestProjector_ProjectPolygonClipsNearPlane(t *testing.T) {
	cam := camera.New(geom.V3(0, 5, 10), 2)
	pr := NewProjector(cam, 800, 400)

	// Ground quad running from in front of the camera to behind it.
	straddling := []geom.Vec3{
		geom.V3(-5, 0, 0), geom.V3(5, 0, 0), geom.V3(5, 0, 20), geom.V3(-5, 0, 20),
	}
	for _, p := range straddling[2:] {
		_, _, ok := pr.Project(p)
		require.False(t, ok, "far edge is behind the camera")
	}

	poly, depth, ok := pr.ProjectPolygon(straddling)
	require.True(t, ok, "visible part of the quad is kept")
	assert.GreaterOrEqual(t, len(poly), 4)
	assert.GreaterOrEqual(t, depth, cam.Near)
	for _, pt := range poly {
		assert.False(t, math.IsNaN(pt.X) || math.IsInf(pt.X, 0), "x %v", pt.X)
		assert.False(t, math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0), "y %v", pt.Y)
	}

	// The unclipped near edge projects exactly as single points do.
	near, _, ok := pr.Project(straddling[0])
	require.True(t, ok)
	assert.Contains(t, poly, near)

	behind := []geom.Vec3{
		geom.V3(-5, 0, 15), geom.V3(5, 0, 15), geom.V3(5, 0, 20), geom.V3(-5, 0, 20),
	}
	_, _, ok = pr.ProjectPolygon(behind)
	assert.False(t, ok)
}

func TestClipPlane(t *testing.T) {
	square := []clipVertex{{0, 0, -1}, {1, 0, -1}, {1, 0, 1}, {0, 0, 1}}
	got := clipPlane(square, func(v clipVertex) float64 { return v.w })
	assert.Equal(t, []clipVertex{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, got)

	assert.Equal(t, square, clipPlane(square, func(clipVertex) float64 { return 1 }))
	assert.Empty(t, clipPlane(square, func(clipVertex) float64 { return -1 }))
}

func newRace(t *testing.T) *engine.Race {
	t.Helper()
	r, err := engine.NewRace(engine.DefaultInput(), engine.WithRandom(pathfollow.NewRand(7)))
	require.NoError(t, err)
	return r
}

func TestScene_Build(t *testing.T) {
	r := newRace(t)
	scene := NewScene(r.Curve(), r.Obstacles())

	polys := scene.Build(r.Step(input.State{}), 640, 480)
	require.NotEmpty(t, polys)

	var sawPlayer, sawTrack bool
	for i, p := range polys {
		if i > 0 {
			assert.GreaterOrEqual(t, polys[i-1].Depth, p.Depth, "polygons are ordered far to near")
		}
		assert.GreaterOrEqual(t, len(p.Points), 3)
		if p.Fill == Player {
			sawPlayer = true
		}
		if p.Fill == Asphalt {
			sawTrack = true
		}
	}
	assert.True(t, sawPlayer, "player top face is drawn unshaded")
	assert.True(t, sawTrack)
}

func TestBoxCorners(t *testing.T) {
	corners := boxCorners(geom.V3(10, 1, 0), 0, carSize)
	assert.Equal(t, geom.V3(9.5, 0.75, -1), corners[0])
	assert.Equal(t, geom.V3(10.5, 1.25, 1), corners[6])
}

func TestSnapshot_Render(t *testing.T) {
	r := newRace(t)
	snap := NewSnapshot(NewScene(r.Curve(), r.Obstacles()), 320, 240)
	t.Cleanup(func() { _ = snap.Close() })

	_, err := r.Tick(engine.Script(nil), snap)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, snap.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	// The top rows lie above the horizon.
	cr, cg, cb, _ := img.At(0, 0).RGBA()
	assert.InDelta(t, Sky.R, cr>>8, 1)
	assert.InDelta(t, Sky.G, cg>>8, 1)
	assert.InDelta(t, Sky.B, cb>>8, 1)
}
