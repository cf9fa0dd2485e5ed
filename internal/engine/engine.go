// Package engine implements the race frame driver.
//
// Each frame runs in a fixed order:
//
//  1. Player pass - the motion model integrates the player vehicle from the
//     input held this frame.
//
//  2. AI pass - every AI vehicle advances along the track by a fresh random
//     increment and takes its position and facing from the curve.
//
//  3. Camera pass - the chase camera moves toward its offset behind the
//     player, whose transform is already current for this frame.
//
// Rendering happens after all three passes, through the Renderer interface, so
// the simulation never depends on a graphics library.
package engine

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cxd309/race-engine/internal/camera"
	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/kinematics"
	"github.com/cxd309/race-engine/internal/pathfollow"
	"github.com/cxd309/race-engine/internal/track"
)

// Renderer consumes a frame once all transforms are current.
type Renderer interface {
	Render(f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

func (fn RendererFunc) Render(f Frame) error { return fn(f) }

// InputSource supplies the controls held during a frame.
type InputSource interface {
	Input(frame int) input.State
}

// Option configures a Race.
type Option func(*Race)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Race) { r.logger = l }
}

// WithRandom replaces the seeded random source.
func WithRandom(rng pathfollow.RandomSource) Option {
	return func(r *Race) { r.rng = rng }
}

// WithAspect sets the initial camera aspect ratio.
func WithAspect(aspect float64) Option {
	return func(r *Race) { r.aspect = aspect }
}

// Race is the simulation state plus the components that advance it. It is not
// safe for concurrent use; one goroutine drives it frame by frame.
type Race struct {
	meta     SimulationMeta
	curve    *track.Curve
	model    kinematics.MotionModel
	follower pathfollow.Follower
	chase    camera.Follower
	script   Script
	rng      pathfollow.RandomSource
	logger   *zap.Logger
	aspect   float64

	frame     int
	player    kinematics.VehicleState
	ais       []pathfollow.AIState
	obstacles []Obstacle
	cam       camera.Camera
}

// NewRace builds the track, places obstacles and spawns the AI field.
func NewRace(in SimulationInput, opts ...Option) (*Race, error) {
	r := &Race{
		meta:     in.Meta,
		follower: in.AI.Follower,
		chase:    in.Camera,
		logger:   zap.NewNop(),
		aspect:   16.0 / 9.0,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.meta.SimulationID == "" {
		r.meta.SimulationID = uuid.NewString()
	}
	if r.meta.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", r.meta.Frames)
	}
	if r.rng == nil {
		r.rng = pathfollow.NewRand(r.meta.Seed)
	}

	curve, err := buildCurve(in.Track)
	if err != nil {
		return nil, fmt.Errorf("building track: %w", err)
	}
	r.curve = curve

	r.model = kinematics.DefaultArcade()
	if in.Vehicle != nil && in.Vehicle.Kinem != nil {
		r.model = in.Vehicle.Kinem
	}
	if err := r.model.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}
	if err := r.follower.Validate(); err != nil {
		return nil, fmt.Errorf("ai: %w", err)
	}
	if in.AI.Count < 0 || in.Obstacles.Count < 0 {
		return nil, fmt.Errorf("ai and obstacle counts must not be negative")
	}
	if in.AI.Spacing < 0 || (in.AI.Count > 1 && float64(in.AI.Count-1)*in.AI.Spacing > 1) {
		return nil, fmt.Errorf("ai: spacing %v puts %d vehicles outside progress [0,1]", in.AI.Spacing, in.AI.Count)
	}
	if r.chase.Lerp <= 0 || r.chase.Lerp > 1 {
		return nil, fmt.Errorf("camera: lerp must be in (0,1], got %v", r.chase.Lerp)
	}

	r.script, err = NewScript(in.Script)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	r.obstacles = placeObstacles(curve, in.Obstacles, r.rng)
	r.ais = r.follower.Spawn(curve, in.AI.Count, in.AI.Spacing)
	r.player = kinematics.VehicleState{Position: in.PlayerStart}
	r.cam = camera.New(in.CameraStart, r.aspect)
	r.cam.LookAt = in.PlayerStart

	r.logger.Info("race created",
		zap.String("simulation_id", r.meta.SimulationID),
		zap.Float64("track_length", curve.Length()),
		zap.String("curve_type", string(curve.Type())),
		zap.Int("ais", len(r.ais)),
		zap.Int("obstacles", len(r.obstacles)))
	return r, nil
}

func buildCurve(td TrackData) (*track.Curve, error) {
	var opts []track.Option
	if td.CurveType != "" {
		opts = append(opts, track.WithType(td.CurveType))
	}
	if td.Tension != 0 {
		opts = append(opts, track.WithTension(td.Tension))
	}
	if td.Divisions != 0 {
		opts = append(opts, track.WithDivisions(td.Divisions))
	}
	return track.NewCurve(td.ControlPoints, opts...)
}

// placeObstacles drops each obstacle at a random distance along the track with
// a random sideways offset along world X.
func placeObstacles(c *track.Curve, od ObstacleData, rng pathfollow.RandomSource) []Obstacle {
	out := make([]Obstacle, od.Count)
	for i := range out {
		p := c.PointAt(rng.Float64())
		out[i] = Obstacle{Position: geom.V3(p.X+(rng.Float64()-0.5)*od.Jitter, p.Y+od.Height, p.Z)}
	}
	return out
}

// Step advances the race by one frame with in held and returns the new frame.
func (r *Race) Step(in input.State) Frame {
	r.player = r.model.Step(r.player, in)

	for i := range r.ais {
		ai, wrapped := r.follower.Step(r.curve, r.ais[i], r.rng)
		if wrapped {
			r.logger.Debug("ai lap completed",
				zap.String("ai", ai.ID),
				zap.Int("laps", ai.Laps),
				zap.Int("frame", r.frame))
		}
		r.ais[i] = ai
	}

	r.cam = r.chase.Step(r.cam, r.player.Transform(), r.player.Position)

	r.frame++
	return r.snapshot(in)
}

// Tick reads this frame's input from src, steps, and hands the frame to out.
func (r *Race) Tick(src InputSource, out Renderer) (Frame, error) {
	f := r.Step(src.Input(r.frame))
	if out == nil {
		return f, nil
	}
	if err := out.Render(f); err != nil {
		return f, fmt.Errorf("rendering frame %d: %w", f.Index, err)
	}
	return f, nil
}

// Run executes Meta.Frames frames of the input script and returns the log.
func (r *Race) Run() (SimulationLog, error) {
	log := SimulationLog{
		Meta:      r.meta,
		Obstacles: r.Obstacles(),
		Output:    make([]Frame, 0, r.meta.Frames),
	}
	record := RendererFunc(func(f Frame) error {
		log.Output = append(log.Output, f)
		return nil
	})
	for r.frame < r.meta.Frames {
		if _, err := r.Tick(r.script, record); err != nil {
			return SimulationLog{}, err
		}
	}
	return log, nil
}

// Resize updates the camera aspect for a new viewport size.
func (r *Race) Resize(width, height int) {
	r.cam.Resize(width, height)
}

// SetModel swaps the player motion model, keeping the vehicle state.
func (r *Race) SetModel(m kinematics.MotionModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.model = m
	r.logger.Info("motion model replaced", zap.Int("frame", r.frame))
	return nil
}

// Frame returns the current state without stepping.
func (r *Race) Frame() Frame { return r.snapshot(input.State{}) }

// Meta returns the run metadata, including the resolved simulation ID.
func (r *Race) Meta() SimulationMeta { return r.meta }

// Curve returns the track curve.
func (r *Race) Curve() *track.Curve { return r.curve }

// Script returns the scenario's input script.
func (r *Race) Script() Script { return r.script }

// Model returns the active motion model.
func (r *Race) Model() kinematics.MotionModel { return r.model }

// Obstacles returns the static obstacles.
func (r *Race) Obstacles() []Obstacle { return slices.Clone(r.obstacles) }

func (r *Race) snapshot(in input.State) Frame {
	return Frame{
		Index:  r.frame,
		Input:  in,
		Player: r.player,
		AIs:    slices.Clone(r.ais),
		Camera: r.cam,
	}
}

// RunJSON is the entry point shared by the CLI and WebAssembly targets.
// It accepts a JSON-encoded SimulationInput, laid over DefaultInput, runs it,
// and returns the JSON-encoded SimulationLog.
func RunJSON(jsonInput string, opts ...Option) (string, error) {
	in, err := DecodeInput([]byte(jsonInput), "json")
	if err != nil {
		return "", err
	}

	race, err := NewRace(in, opts...)
	if err != nil {
		return "", err
	}

	simLog, err := race.Run()
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(simLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
