package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List cached pages and when they are due for a rebuild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(cmd, statuses, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "PATH\tRENDERED\tNEXT REBUILD\tTAGS")
				for _, s := range statuses {
					next := "frozen"
					if s.NextRebuildAt != nil {
						next = s.NextRebuildAt.UTC().Format(time.RFC3339)
						if s.Expired {
							next = "due"
						}
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						s.Path, s.RenderedAt.UTC().Format(time.RFC3339), next, strings.Join(s.Tags, ","))
				}
				_ = tw.Flush()
			})
		},
	}
}
