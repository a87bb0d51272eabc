package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile bundled libraries and emit link metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.Jobs, _ = cmd.Flags().GetInt("jobs")
			opts.Prefix, _ = cmd.Flags().GetString("prefix")
			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Build up to N compression libraries concurrently")
	cmd.Flags().String("prefix", "", "Prefix of emitted metadata lines (default \"cargo:\")")
	return cmd
}
