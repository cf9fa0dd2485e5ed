package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxd309/race-engine/internal/config"
	"github.com/cxd309/race-engine/internal/log"
	"github.com/cxd309/race-engine/internal/render"
)

func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [scenario]",
		Short: "runs a scripted race and renders its final frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return snapshot(args)
		},
	}
	cmd.Flags().IntVar(&config.Frames, "frames", 0,
		"overrides the scenario frame count when positive")
	cmd.Flags().IntVar(&config.Width, "width", 1280, "image width")
	cmd.Flags().IntVar(&config.Height, "height", 720, "image height")
	cmd.Flags().StringVar(&config.ImageFile, "image", "race.png", "PNG file to write")
	return cmd
}

func snapshot(args []string) error {
	race, err := newRace(args, config.Width, config.Height)
	if err != nil {
		return err
	}
	snap := render.NewSnapshot(render.NewScene(race.Curve(), race.Obstacles()), config.Width, config.Height)
	defer snap.Close()

	simLog, err := race.Run()
	if err != nil {
		return err
	}
	last := race.Frame()
	if n := len(simLog.Output); n > 0 {
		last = simLog.Output[n-1]
	}
	if err := snap.Render(last); err != nil {
		return err
	}
	if err := snap.SavePNG(config.ImageFile); err != nil {
		return fmt.Errorf("writing %s: %w", config.ImageFile, err)
	}
	log.Info("snapshot written", log.String("file", config.ImageFile), log.Int("frame", last.Index))
	return nil
}
