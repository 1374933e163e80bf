package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd builds the "version" subcommand. Annotated to skip config
// loading since it needs nothing but the ldflags-set version string.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)

			return nil
		},
	}

	cmd.Annotations = map[string]string{skipConfigAnnotation: "true"}

	return cmd
}
