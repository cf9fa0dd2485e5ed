package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cxd309/race-engine/internal/config"
	"github.com/cxd309/race-engine/internal/host/window"
	"github.com/cxd309/race-engine/internal/kinematics"
	"github.com/cxd309/race-engine/internal/log"
)

func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [scenario]",
		Short: "drives the player car in a window (WASD or arrow keys)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(args)
		},
	}
	cmd.Flags().IntVar(&config.Width, "width", 1280, "window width")
	cmd.Flags().IntVar(&config.Height, "height", 720, "window height")
	cmd.Flags().BoolVar(&config.Watch, "watch", false,
		"reload kinematics tuning when the config file changes")
	return cmd
}

func play(args []string) error {
	race, err := newRace(args, config.Width, config.Height)
	if err != nil {
		return err
	}

	// Config tuning applies on top of the scenario's arcade model.
	cfg := window.Config{Width: config.Width, Height: config.Height, Logger: log.Logger}
	if base, ok := race.Model().(kinematics.Arcade); ok {
		tuned, err := config.Arcade(viper.GetViper(), base)
		if err != nil {
			log.Error("invalid kinematics config", log.ErrorField(err))
			return err
		}
		if err := race.SetModel(tuned); err != nil {
			return err
		}
		if config.Watch {
			if viper.ConfigFileUsed() == "" {
				log.Warn("--watch needs a config file, hot reload disabled")
			} else {
				w := config.NewModelWatcher(viper.GetViper(), base, log.Logger)
				w.Start()
				cfg.Models = w
				log.Info("watching config", log.String("file", viper.ConfigFileUsed()))
			}
		}
	} else if config.Watch {
		log.Warn("hot reload only supports the arcade model")
	}

	return window.Run(race, cfg)
}
