package kinematics

import (
	"fmt"
	"math"

	"github.com/cxd309/race-engine/internal/input"
)

// ArcadeModelName is the discriminator string for the Arcade model.
const ArcadeModelName = "arcade"

// Arcade implements MotionModel with a fixed per-frame acceleration, geometric
// coasting decay and steering that scales with the current speed fraction, so
// the vehicle cannot pivot in place and turns fastest at full speed.
//
// Discriminator: "model": "arcade"
type Arcade struct {
	Accel       float64 `json:"accel" yaml:"accel"`               // speed gained per frame while forward/back is held
	MaxSpeedVal float64 `json:"max_speed" yaml:"max_speed"`       // speed magnitude limit, units/frame
	TurnRate    float64 `json:"turn_rate" yaml:"turn_rate"`       // yaw change per frame at full speed, radians
	Decay       float64 `json:"decay" yaml:"decay"`               // speed multiplier per frame while coasting
	SnapEpsilon float64 `json:"snap_epsilon" yaml:"snap_epsilon"` // coasting speeds below this become 0
}

// DefaultArcade returns the tuning used by the demo track.
func DefaultArcade() Arcade {
	return Arcade{
		Accel:       0.02,
		MaxSpeedVal: 0.4,
		TurnRate:    0.03,
		Decay:       0.95,
		SnapEpsilon: 1e-4,
	}
}

func (a Arcade) MaxSpeed() float64 { return a.MaxSpeedVal }

func (a Arcade) Validate() error {
	switch {
	case a.Accel <= 0:
		return fmt.Errorf("arcade: accel must be positive, got %v", a.Accel)
	case a.MaxSpeedVal <= 0:
		return fmt.Errorf("arcade: max_speed must be positive, got %v", a.MaxSpeedVal)
	case a.TurnRate <= 0:
		return fmt.Errorf("arcade: turn_rate must be positive, got %v", a.TurnRate)
	case a.Decay <= 0 || a.Decay > 1:
		return fmt.Errorf("arcade: decay must be in (0,1], got %v", a.Decay)
	case a.SnapEpsilon < 0:
		return fmt.Errorf("arcade: snap_epsilon must not be negative, got %v", a.SnapEpsilon)
	}
	return nil
}

func (a Arcade) Step(s VehicleState, in input.State) VehicleState {
	switch {
	case in.Forward:
		s.Speed += a.Accel
	case in.Back:
		s.Speed -= a.Accel
	default:
		s.Speed *= a.Decay
		if math.Abs(s.Speed) < a.SnapEpsilon {
			s.Speed = 0
		}
	}
	s.Speed = math.Max(-a.MaxSpeedVal, math.Min(a.MaxSpeedVal, s.Speed))

	turn := a.TurnRate * (s.Speed / a.MaxSpeedVal)
	if in.Left {
		s.Yaw += turn
	}
	if in.Right {
		s.Yaw -= turn
	}

	sin, cos := math.Sincos(s.Yaw)
	s.Position.X -= sin * s.Speed
	s.Position.Z -= cos * s.Speed
	return s
}
