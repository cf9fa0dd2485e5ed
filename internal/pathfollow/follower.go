// Package pathfollow moves AI vehicles along the track curve by a randomised
// progress increment each frame.
package pathfollow

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/track"
)

// AIState is one AI vehicle. Position and Facing are derived from Progress
// every frame and are never integrated.
type AIState struct {
	ID       string    `json:"id"`
	Progress float64   `json:"progress"` // normalised distance along the track, [0,1]
	Position geom.Vec3 `json:"position"`
	Facing   float64   `json:"facing"` // yaw, radians
	Laps     int       `json:"laps"`
}

// Follower holds the progression parameters shared by every AI vehicle.
type Follower struct {
	MinStep float64 `json:"min_step" yaml:"min_step"` // smallest progress increment per frame
	MaxStep float64 `json:"max_step" yaml:"max_step"` // largest progress increment per frame
	Height  float64 `json:"height" yaml:"height"`     // vertical offset above the centreline
}

// DefaultFollower returns the demo tuning.
func DefaultFollower() Follower {
	return Follower{MinStep: 0.001, MaxStep: 0.003, Height: 0.25}
}

// Validate checks the increment range.
func (f Follower) Validate() error {
	if f.MinStep < 0 || f.MaxStep < f.MinStep || f.MaxStep >= 1 {
		return fmt.Errorf("follower: invalid step range [%v, %v]", f.MinStep, f.MaxStep)
	}
	return nil
}

// Spawn creates n vehicles with progress i*spacing, placed on c. Callers keep
// (n-1)*spacing within [0,1].
func (f Follower) Spawn(c *track.Curve, n int, spacing float64) []AIState {
	return lo.Times(n, func(i int) AIState {
		return f.Place(c, AIState{
			ID:       fmt.Sprintf("ai-%d", i+1),
			Progress: float64(i) * spacing,
		})
	})
}

// Step advances ai by a fresh random increment drawn from rng. Progress past 1
// resets to exactly 0 and counts a lap; the vehicle jumps back to the start of
// the track. The second return value reports the reset.
func (f Follower) Step(c *track.Curve, ai AIState, rng RandomSource) (AIState, bool) {
	ai.Progress += f.MinStep + rng.Float64()*(f.MaxStep-f.MinStep)

	wrapped := ai.Progress > 1
	if wrapped {
		ai.Progress = 0
		ai.Laps++
	}
	return f.Place(c, ai), wrapped
}

// Place derives position and facing from ai.Progress.
func (f Follower) Place(c *track.Curve, ai AIState) AIState {
	p := c.PointAt(ai.Progress)
	ai.Position = geom.V3(p.X, p.Y+f.Height, p.Z)
	ai.Facing = c.TangentAt(ai.Progress).Heading()
	return ai
}

// Transform returns the vehicle's world transform.
func (ai AIState) Transform() geom.Mat4 {
	return geom.Transform(ai.Position, ai.Facing)
}
