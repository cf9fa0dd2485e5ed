// Package camera implements the chase camera that trails the player vehicle.
package camera

import (
	"github.com/cxd309/race-engine/internal/geom"
)

// Camera is a perspective camera. FOV is the vertical field of view in degrees.
type Camera struct {
	Position geom.Vec3 `json:"position"`
	LookAt   geom.Vec3 `json:"look_at"`
	FOV      float64   `json:"fov"`
	Aspect   float64   `json:"aspect"`
	Near     float64   `json:"near"`
	Far      float64   `json:"far"`
}

// New returns a camera at pos with the demo's projection parameters.
func New(pos geom.Vec3, aspect float64) Camera {
	return Camera{
		Position: pos,
		LookAt:   geom.Vec3{},
		FOV:      75,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

// Resize recomputes the aspect ratio for a width x height viewport.
// Non-positive dimensions are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// View returns the world-to-camera matrix.
func (c Camera) View() geom.Mat4 {
	return geom.LookAt(c.Position, c.LookAt, geom.Up())
}

// Projection returns the camera-to-clip matrix.
func (c Camera) Projection() geom.Mat4 {
	return geom.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// Follower trails a target transform: each step the camera covers Lerp of the
// remaining distance to Offset expressed in the target's local space, so it
// lags the target with a time constant of about 1/Lerp frames.
type Follower struct {
	Offset geom.Vec3 `json:"offset" yaml:"offset"`
	Lerp   float64   `json:"lerp" yaml:"lerp"`
}

// DefaultFollower places the camera 5 above and 10 behind the vehicle.
func DefaultFollower() Follower {
	return Follower{Offset: geom.V3(0, 5, 10), Lerp: 0.1}
}

// Target returns the world-space point the camera is pulled toward.
func (f Follower) Target(vehicle geom.Mat4) geom.Vec3 {
	return vehicle.MulPoint(f.Offset)
}

// Step moves c toward the offset behind vehicle and aims it at vehiclePos.
func (f Follower) Step(c Camera, vehicle geom.Mat4, vehiclePos geom.Vec3) Camera {
	c.Position = c.Position.Lerp(f.Target(vehicle), f.Lerp)
	c.LookAt = vehiclePos
	return c
}
