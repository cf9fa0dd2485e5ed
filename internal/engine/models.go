package engine

import (
	"github.com/cxd309/race-engine/internal/camera"
	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/kinematics"
	"github.com/cxd309/race-engine/internal/pathfollow"
	"github.com/cxd309/race-engine/internal/track"
)

// SimulationMeta holds the identity and length of a scripted run.
type SimulationMeta struct {
	SimulationID string `json:"simulation_id" yaml:"simulation_id"`
	Frames       int    `json:"frames" yaml:"frames"` // frames to simulate in Run
	Seed         uint64 `json:"seed" yaml:"seed"`     // seeds obstacle placement and AI increments
}

// TrackData describes the track centreline.
type TrackData struct {
	ControlPoints []geom.Vec3     `json:"control_points" yaml:"control_points"`
	CurveType     track.CurveType `json:"curve_type,omitempty" yaml:"curve_type,omitempty"`
	Tension       float64         `json:"tension,omitempty" yaml:"tension,omitempty"`
	Divisions     int             `json:"divisions,omitempty" yaml:"divisions,omitempty"`
}

// AIData configures the AI field.
type AIData struct {
	Count    int                 `json:"count" yaml:"count"`
	Spacing  float64             `json:"spacing" yaml:"spacing"` // starting progress gap between vehicles
	Follower pathfollow.Follower `json:"follower" yaml:"follower"`
}

// ObstacleData configures static obstacle placement.
type ObstacleData struct {
	Count  int     `json:"count" yaml:"count"`
	Jitter float64 `json:"jitter" yaml:"jitter"` // full width of the random lateral offset
	Height float64 `json:"height" yaml:"height"` // vertical offset above the centreline
}

// InputSpan holds Controls for frames [From, To).
type InputSpan struct {
	From     int             `json:"from" yaml:"from"`
	To       int             `json:"to" yaml:"to"`
	Controls []input.Control `json:"controls" yaml:"controls"`
}

// SimulationInput is the serialisable description of a race.
type SimulationInput struct {
	Meta        SimulationMeta      `json:"simulation_meta" yaml:"simulation_meta"`
	Track       TrackData           `json:"track" yaml:"track"`
	Vehicle     *kinematics.Vehicle `json:"vehicle,omitempty" yaml:"vehicle,omitempty"` // nil = default arcade model
	PlayerStart geom.Vec3           `json:"player_start" yaml:"player_start"`
	AI          AIData              `json:"ai" yaml:"ai"`
	Obstacles   ObstacleData        `json:"obstacles" yaml:"obstacles"`
	Camera      camera.Follower     `json:"camera" yaml:"camera"`
	CameraStart geom.Vec3           `json:"camera_start" yaml:"camera_start"`
	Script      []InputSpan         `json:"script,omitempty" yaml:"script,omitempty"`
}

// DefaultInput returns the demo race: the S-bend track, three AI vehicles,
// twenty obstacles and the chase camera.
func DefaultInput() SimulationInput {
	return SimulationInput{
		Meta: SimulationMeta{Frames: 600},
		Track: TrackData{
			ControlPoints: track.DefaultControlPoints(),
			CurveType:     track.Centripetal,
		},
		Vehicle:     &kinematics.Vehicle{Name: "player", Kinem: kinematics.DefaultArcade()},
		PlayerStart: geom.V3(0, 0.25, 0),
		AI: AIData{
			Count:    3,
			Spacing:  0.02,
			Follower: pathfollow.DefaultFollower(),
		},
		Obstacles:   ObstacleData{Count: 20, Jitter: 4, Height: 0.5},
		Camera:      camera.DefaultFollower(),
		CameraStart: geom.V3(0, 5, 10),
	}
}

// Obstacle is a static box placed beside the centreline.
type Obstacle struct {
	Position geom.Vec3 `json:"position"`
}

// Frame is the state of every entity after one step.
type Frame struct {
	Index  int                     `json:"frame"`
	Input  input.State             `json:"input"`
	Player kinematics.VehicleState `json:"player"`
	AIs    []pathfollow.AIState    `json:"ais"`
	Camera camera.Camera           `json:"camera"`
}

// SimulationLog is the complete output of a scripted run.
type SimulationLog struct {
	Meta      SimulationMeta `json:"simulation_meta"`
	Obstacles []Obstacle     `json:"obstacles"`
	Output    []Frame        `json:"output"`
}
