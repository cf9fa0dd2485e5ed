package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxd309/race-engine/internal/config"
	"github.com/cxd309/race-engine/internal/log"
)

func NewSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim [scenario|-]",
		Short: "runs a scripted race headless and prints the frame log as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sim(args, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&config.Frames, "frames", 0,
		"overrides the scenario frame count when positive")
	cmd.Flags().StringVarP(&config.Output, "output", "o", "-", "output file")
	cmd.Flags().BoolVar(&config.Pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func sim(args []string, stdout io.Writer) error {
	race, err := newRace(args, 0, 0)
	if err != nil {
		return err
	}
	simLog, err := race.Run()
	if err != nil {
		return err
	}

	out := stdout
	if config.Output != "" && config.Output != "-" {
		f, err := os.Create(config.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	if config.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(simLog); err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	log.Info("simulation finished",
		log.String("simulation_id", simLog.Meta.SimulationID),
		log.Int("frames", len(simLog.Output)))
	return nil
}
