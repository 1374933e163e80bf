package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateConfigCmd builds the "validate-config" subcommand: resolve
// the four-layer config chain and report success or every accumulated
// validation error, without running anything.
func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Resolve and validate configuration without running",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := mustCLIContext(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "config valid: thread_count=%d sampling_rate=%d frame_buffer_length=%d\n",
				cc.Cfg.Generator.ThreadCount, cc.Cfg.Generator.SamplingRate, cc.Cfg.Generator.FrameBufferLength)

			return nil
		},
	}
}
