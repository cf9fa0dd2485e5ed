package config

import (
	"fmt"
	"io"

	"github.com/cxd309/race-engine/internal/engine"
)

// LoadScenario resolves the scenario named by args (a path, or "-" for JSON
// on stdin), falling back to Scenario, then applies the Seed and Frames
// overrides.
func LoadScenario(args []string, stdin io.Reader) (engine.SimulationInput, error) {
	path := Scenario
	if len(args) > 0 {
		path = args[0]
	}

	var (
		in  engine.SimulationInput
		err error
	)
	if path == "-" {
		var data []byte
		if data, err = io.ReadAll(stdin); err != nil {
			return in, fmt.Errorf("error reading input: %w", err)
		}
		in, err = engine.DecodeInput(data, "json")
	} else {
		in, err = engine.LoadInput(path)
	}
	if err != nil {
		return in, err
	}

	if Seed != 0 {
		in.Meta.Seed = Seed
	}
	if Frames > 0 {
		in.Meta.Frames = Frames
	}
	return in, nil
}
