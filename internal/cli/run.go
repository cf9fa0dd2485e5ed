package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cxd309/race-engine/internal/config"
	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/host"
	"github.com/cxd309/race-engine/internal/log"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "steps a race in real time without a window, logging progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args)
		},
	}
	cmd.Flags().IntVar(&config.Hz, "hz", 60, "frames per second")
	cmd.Flags().Uint64Var(&config.Ticks, "ticks", 0, "frames to run, 0 until interrupted")
	return cmd
}

func run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	race, err := newRace(args, 0, 0)
	if err != nil {
		return err
	}

	hz := max(config.Hz, 1)
	progress := engine.RendererFunc(func(f engine.Frame) error {
		log.Debug("frame stepped",
			log.Int("frame", f.Index),
			log.Float64("speed", f.Player.Speed))
		if f.Index%hz == 0 {
			log.Info("frame",
				log.Int("frame", f.Index),
				log.Float64("speed", f.Player.Speed),
				log.Float64("yaw", f.Player.Yaw))
		}
		return nil
	})

	err = host.RunHeadless(ctx, race, race.Script(), progress, host.HeadlessConfig{Hz: config.Hz, Ticks: config.Ticks})
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted", log.Int("frame", race.Frame().Index))
		return nil
	}
	return err
}
