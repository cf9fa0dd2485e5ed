// Package host drives a race from a real-time clock.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/cxd309/race-engine/internal/engine"
)

// HeadlessConfig paces RunHeadless. Hz stands in for the display refresh rate.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // stop after this many frames; 0 runs until ctx is done
}

// RunHeadless steps race once per tick, reading controls from src and passing
// each frame to out. It returns nil after cfg.Ticks frames, ctx.Err() on
// cancellation, or the first renderer error.
func RunHeadless(ctx context.Context, race *engine.Race, src engine.InputSource, out engine.Renderer, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if _, err := race.Tick(src, out); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
