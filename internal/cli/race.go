package cli

import (
	"fmt"
	"os"

	"github.com/cxd309/race-engine/internal/config"
	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/log"
)

// newRace builds a race for the resolved scenario sized for a width x height view.
func newRace(args []string, width, height int) (*engine.Race, error) {
	in, err := config.LoadScenario(args, os.Stdin)
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{engine.WithLogger(log.Logger)}
	if width > 0 && height > 0 {
		opts = append(opts, engine.WithAspect(float64(width)/float64(height)))
	}
	race, err := engine.NewRace(in, opts...)
	if err != nil {
		return nil, fmt.Errorf("simulation error: %w", err)
	}
	return race, nil
}
