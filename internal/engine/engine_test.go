//nolint:funlen // ok for tests
package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/kinematics"
	"github.com/cxd309/race-engine/internal/pathfollow"
	"github.com/cxd309/race-engine/internal/track"
)

func newRace(t *testing.T, in SimulationInput, opts ...Option) *Race {
	t.Helper()
	r, err := NewRace(in, opts...)
	require.NoError(t, err)
	return r
}

func TestRace_AIProgressAfterOneFrame(t *testing.T) {
	r := newRace(t, DefaultInput(), WithRandom(pathfollow.NewRand(1)))

	initial := []float64{0, 0.02, 0.04}
	start := r.Frame()
	require.Len(t, start.AIs, 3)
	for i, ai := range start.AIs {
		require.InDelta(t, initial[i], ai.Progress, 1e-12)
	}

	f := r.Step(input.State{})
	for i, ai := range f.AIs {
		assert.Greater(t, ai.Progress, initial[i], "ai %d", i)
		assert.LessOrEqual(t, ai.Progress, initial[i]+0.003, "ai %d", i)
	}
}

func TestRace_StepOrder(t *testing.T) {
	in := DefaultInput()
	r := newRace(t, in)

	f := r.Step(input.Held(input.Forward))

	wantPlayer := kinematics.DefaultArcade().Step(kinematics.VehicleState{Position: in.PlayerStart}, input.Held(input.Forward))
	assert.Equal(t, wantPlayer, f.Player)

	// the camera chases the player's transform from this frame, not the last
	target := in.Camera.Target(wantPlayer.Transform())
	wantCam := in.CameraStart.Lerp(target, in.Camera.Lerp)
	assert.True(t, f.Camera.Position.ApproxEqual(wantCam, 1e-12), "camera %v want %v", f.Camera.Position, wantCam)
	assert.Equal(t, wantPlayer.Position, f.Camera.LookAt)
	assert.Equal(t, 1, f.Index)
	assert.Equal(t, input.Held(input.Forward), f.Input)
}

func TestRace_ObstaclesPlacedOnce(t *testing.T) {
	r := newRace(t, DefaultInput())
	obs := r.Obstacles()
	require.Len(t, obs, 20)
	for i, o := range obs {
		assert.Equal(t, 0.5, o.Position.Y, "obstacle %d", i)
		assert.LessOrEqual(t, o.Position.Z, 0.0)
		assert.GreaterOrEqual(t, o.Position.Z, -100.0)
	}

	r.Step(input.Held(input.Forward))
	assert.Equal(t, obs, r.Obstacles())
}

func TestRace_ObstacleJitterIsLateral(t *testing.T) {
	in := DefaultInput()
	in.Obstacles.Count = 1
	// t, then jitter sample
	r := newRace(t, in, WithRandom(&pathfollow.Sequence{Values: []float64{0.5, 1}}))

	p := r.Curve().PointAt(0.5)
	got := r.Obstacles()[0].Position
	assert.InDelta(t, p.X+2, got.X, 1e-12)
	assert.Equal(t, p.Z, got.Z)
}

func TestRace_Run(t *testing.T) {
	in := DefaultInput()
	in.Meta = SimulationMeta{SimulationID: "run", Frames: 30, Seed: 3}
	in.Script = []InputSpan{
		{From: 0, To: 20, Controls: []input.Control{"Forward"}},
		{From: 10, To: 20, Controls: []input.Control{input.Left}},
	}
	r := newRace(t, in)
	assert.Equal(t, input.Held(input.Forward, input.Left), r.Script().Input(12))

	log, err := r.Run()
	require.NoError(t, err)
	require.Len(t, log.Output, 30)
	assert.Equal(t, "run", log.Meta.SimulationID)
	assert.Len(t, log.Obstacles, 20)

	assert.Equal(t, input.Held(input.Forward), log.Output[0].Input)
	assert.Equal(t, input.Held(input.Forward, input.Left), log.Output[15].Input)
	assert.Equal(t, input.State{}, log.Output[25].Input)
	assert.Greater(t, log.Output[19].Player.Yaw, 0.0)
	assert.Less(t, log.Output[25].Player.Speed, log.Output[19].Player.Speed)

	for i, f := range log.Output {
		assert.Equal(t, i+1, f.Index)
	}
}

func TestRunJSON_Deterministic(t *testing.T) {
	scenario := `{"simulation_meta":{"simulation_id":"fixed","frames":50,"seed":9},
		"script":[{"from":0,"to":50,"controls":["forward","right"]}]}`

	a, err := RunJSON(scenario)
	require.NoError(t, err)
	b, err := RunJSON(scenario)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var log SimulationLog
	require.NoError(t, json.Unmarshal([]byte(a), &log))
	assert.Len(t, log.Output, 50)
	assert.Equal(t, uint64(9), log.Meta.Seed)
}

func TestRunJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{`},
		{"short track", `{"track":{"control_points":[{"x":0,"y":0,"z":0}]}}`},
		{"bad control", `{"script":[{"from":0,"to":1,"controls":["jump"]}]}`},
		{"bad range", `{"script":[{"from":5,"to":1}]}`},
		{"negative frames", `{"simulation_meta":{"frames":-1}}`},
		{"bad vehicle", `{"vehicle":{"name":"x","kinematics":{"model":"hover"}}}`},
		{"negative spacing", `{"ai":{"count":3,"spacing":-0.05}}`},
		{"spacing past the finish", `{"ai":{"count":3,"spacing":0.6}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunJSON(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNewRace_SpawnSpacingBounds(t *testing.T) {
	in := DefaultInput()
	in.AI = AIData{Count: 3, Spacing: 0.5, Follower: pathfollow.DefaultFollower()}
	r := newRace(t, in)
	ais := r.Frame().AIs
	require.Len(t, ais, 3)
	assert.InDelta(t, 1.0, ais[2].Progress, 1e-12, "last vehicle may start on the finish")

	in.AI.Count, in.AI.Spacing = 1, 5
	_, err := NewRace(in)
	assert.NoError(t, err, "spacing is irrelevant for a single vehicle")
}

func TestNewRace_TrackErrorsWrapSentinels(t *testing.T) {
	in := DefaultInput()
	in.Track.ControlPoints = []geom.Vec3{{}}
	_, err := NewRace(in)
	assert.True(t, errors.Is(err, track.ErrTooFewPoints), "got %v", err)
}

func TestNewRace_GeneratesSimulationID(t *testing.T) {
	r := newRace(t, DefaultInput())
	_, err := uuid.Parse(r.Meta().SimulationID)
	assert.NoError(t, err)
}

func TestNewRace_SameSeedSameRace(t *testing.T) {
	in := DefaultInput()
	in.Meta = SimulationMeta{SimulationID: "seeded", Frames: 100, Seed: 11}

	a, err := newRace(t, in).Run()
	require.NoError(t, err)
	b, err := newRace(t, in).Run()
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("runs differ (-a +b):\n%s", diff)
	}
}

func TestRace_Tick(t *testing.T) {
	r := newRace(t, DefaultInput())
	src := Script{{From: 0, To: 10, Controls: []input.Control{input.Forward}}}

	var rendered []int
	out := RendererFunc(func(f Frame) error {
		rendered = append(rendered, f.Index)
		return nil
	})
	for i := 0; i < 3; i++ {
		_, err := r.Tick(src, out)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, rendered)

	boom := errors.New("boom")
	_, err := r.Tick(src, RendererFunc(func(Frame) error { return boom }))
	assert.ErrorIs(t, err, boom)

	f, err := r.Tick(src, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Index)
}

func TestRace_ResizeAndSetModel(t *testing.T) {
	r := newRace(t, DefaultInput(), WithAspect(1))
	assert.Equal(t, 1.0, r.Frame().Camera.Aspect)

	r.Resize(800, 400)
	assert.Equal(t, 2.0, r.Frame().Camera.Aspect)

	bad := kinematics.DefaultArcade()
	bad.Decay = 0
	assert.Error(t, r.SetModel(bad))

	fast := kinematics.DefaultArcade()
	fast.MaxSpeedVal = 1
	require.NoError(t, r.SetModel(fast))
	assert.Equal(t, 1.0, r.Model().MaxSpeed())
}

func TestRace_LogsLapWraps(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	in := DefaultInput()
	in.AI.Count = 1
	in.Obstacles.Count = 0
	in.AI.Follower.MinStep, in.AI.Follower.MaxStep = 0.4, 0.4
	r := newRace(t, in, WithLogger(zap.New(core)))

	for i := 0; i < 3; i++ {
		r.Step(input.State{})
	}
	wraps := logs.FilterMessage("ai lap completed").All()
	require.Len(t, wraps, 1)
	assert.Equal(t, "ai-1", wraps[0].ContextMap()["ai"])
	assert.Equal(t, int64(1), wraps[0].ContextMap()["laps"])
	assert.Equal(t, 0.0, r.Frame().AIs[0].Progress)
}
