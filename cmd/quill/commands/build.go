package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/quill/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site, skipping pages the cache considers fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			report, err := c.app.Build(cmd.Context(), app.BuildOptions{Force: force})
			if err != nil {
				return err
			}
			return c.emit(cmd, report, func(w io.Writer) {
				for _, path := range report.Rebuilt {
					_, _ = fmt.Fprintln(w, "rendered "+path)
				}
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Render every page regardless of the cache")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build the site and rebuild it on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context())
		},
	}
}
