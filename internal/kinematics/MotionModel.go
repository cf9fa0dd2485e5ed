// Package kinematics defines the MotionModel interface that advances the player
// vehicle from one frame to the next, along with built-in implementations.
//
// Adding a new driving model requires only implementing MotionModel and
// registering it in the discriminator switch in Vehicle's unmarshalers; the
// frame driver never needs to change.
package kinematics

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cxd309/race-engine/internal/geom"
	"github.com/cxd309/race-engine/internal/input"
)

// VehicleState is the simulated state of the player vehicle.
// Speed is in distance units per frame; Yaw is in radians about +Y.
type VehicleState struct {
	Position geom.Vec3 `json:"position"`
	Yaw      float64   `json:"yaw"`
	Speed    float64   `json:"speed"`
}

// Forward returns the unit direction the vehicle faces.
func (s VehicleState) Forward() geom.Vec3 {
	return geom.RotationY(s.Yaw).MulPoint(geom.V3(0, 0, -1))
}

// Transform returns the vehicle's world transform.
func (s VehicleState) Transform() geom.Mat4 {
	return geom.Transform(s.Position, s.Yaw)
}

// MotionModel is the contract every driving model must satisfy. Step is a pure
// function of the current state and the input held this frame.
type MotionModel interface {
	// Step returns the vehicle state one frame later.
	Step(s VehicleState, in input.State) VehicleState

	// MaxSpeed returns the largest speed magnitude Step can produce.
	MaxSpeed() float64

	// Validate reports parameter values the model cannot run with.
	Validate() error
}

// kinematicsDisc is the minimum structure needed to read the model discriminator.
type kinematicsDisc struct {
	Model string `json:"model" yaml:"model"`
}

// Vehicle names a driving model. The Kinem field is resolved from the
// "kinematics" object by its "model" discriminator.
type Vehicle struct {
	Name  string      `json:"name"`
	Kinem MotionModel `json:"-"`
}

// vehicleJSON is the raw JSON shape of a Vehicle, before the model is resolved.
type vehicleJSON struct {
	Name  string          `json:"name"`
	Kinem json.RawMessage `json:"kinematics"`
}

// UnmarshalJSON implements json.Unmarshaler for Vehicle.
//
// Supported models:
//   - "arcade": fixed accel / decay rates with speed-scaled steering.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var aux vehicleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Name = aux.Name

	if len(aux.Kinem) == 0 {
		return fmt.Errorf("vehicle %q: missing \"kinematics\" field", v.Name)
	}

	var disc kinematicsDisc
	if err := json.Unmarshal(aux.Kinem, &disc); err != nil {
		return fmt.Errorf("vehicle %q: reading kinematics model discriminator: %w", v.Name, err)
	}

	m, err := resolve(v.Name, disc.Model, func(dst any) error {
		return json.Unmarshal(aux.Kinem, dst)
	})
	if err != nil {
		return err
	}
	v.Kinem = m
	return nil
}

// vehicleYAML is the raw YAML shape of a Vehicle.
type vehicleYAML struct {
	Name  string    `yaml:"name"`
	Kinem yaml.Node `yaml:"kinematics"`
}

// UnmarshalYAML implements yaml.Unmarshaler for Vehicle with the same
// discriminator rules as UnmarshalJSON.
func (v *Vehicle) UnmarshalYAML(value *yaml.Node) error {
	var aux vehicleYAML
	if err := value.Decode(&aux); err != nil {
		return err
	}
	v.Name = aux.Name

	if aux.Kinem.Kind == 0 {
		return fmt.Errorf("vehicle %q: missing \"kinematics\" field", v.Name)
	}

	var disc kinematicsDisc
	if err := aux.Kinem.Decode(&disc); err != nil {
		return fmt.Errorf("vehicle %q: reading kinematics model discriminator: %w", v.Name, err)
	}

	m, err := resolve(v.Name, disc.Model, aux.Kinem.Decode)
	if err != nil {
		return err
	}
	v.Kinem = m
	return nil
}

// resolve decodes the model named by disc, starting from the model's defaults so
// that omitted parameters keep their default values.
func resolve(name, disc string, decode func(any) error) (MotionModel, error) {
	switch disc {
	case ArcadeModelName:
		k := DefaultArcade()
		if err := decode(&k); err != nil {
			return nil, fmt.Errorf("vehicle %q: parsing arcade kinematics: %w", name, err)
		}
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle %q: %w", name, err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("vehicle %q: unknown kinematics model %q", name, disc)
	}
}
