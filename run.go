package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/descriptorgen/internal/descriptor"
	"github.com/tonimelisma/descriptorgen/internal/descriptors"
	"github.com/tonimelisma/descriptorgen/internal/sim"
)

// newRunCmd builds the "run" subcommand: drive the configured sample
// generator against a synthetic frame/track stream and print a summary.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation harness against a sample descriptor generator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := mustCLIContext(cmd.Context())

			gen, err := buildGenerator(cc.Cfg.Sim.Descriptor, cc.Cfg.Generator.ToSettings(), cc.Logger)
			if err != nil {
				return err
			}
			defer gen.Close()

			simCfg := sim.Config{
				Tracks:        cc.Cfg.Sim.Tracks,
				Frames:        cc.Cfg.Sim.Frames,
				Seed:          cc.Cfg.Sim.Seed,
				TrackLifetime: cc.Cfg.Sim.TrackLifetime,
			}

			report, err := sim.Run(cmd.Context(), gen, simCfg, cc.Logger)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "frames processed:     %d\n", report.FramesProcessed)
			fmt.Fprintf(cmd.OutOrStdout(), "tracks spawned:       %d\n", report.TracksSpawned)
			fmt.Fprintf(cmd.OutOrStdout(), "descriptors emitted:  %d\n", report.DescriptorsEmitted)
			fmt.Fprintf(cmd.OutOrStdout(), "duration:             %s\n", report.Duration)

			return nil
		},
	}

	return cmd
}

// buildGenerator constructs the closerable Runner the run command drives,
// configured with settings so it doesn't just fall back to DefaultSettings.
func buildGenerator(name string, settings descriptor.Settings, logger *slog.Logger) (*descriptor.Generator, error) {
	var g *descriptor.Generator

	switch name {
	case "frame-stat":
		g = descriptors.NewFrameStatGenerator(logger)
	case "track-stat", "":
		g = descriptors.NewTrackStatGenerator(logger)
	default:
		return nil, fmt.Errorf("run: unknown simulation.descriptor %q", name)
	}

	if err := g.Configure(settings); err != nil {
		return nil, fmt.Errorf("run: configuring generator: %w", err)
	}

	return g, nil
}
