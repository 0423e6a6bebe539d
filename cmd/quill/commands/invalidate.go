package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

func (c *CLI) newInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate [query...]",
		Short: "Drop cache entries matching a query, or all of them",
		Long: `Drop cache entries so the next build renders them again.

Terms are OR-ed together:
  tag:<name>      entries carrying the tag
  path:<prefix>   entries whose path starts with prefix
  glob:<pattern>  entries whose path matches the glob (* within a segment, ** across)
  age:<N><unit>   entries younger than N days, weeks, months or years
  <text>          entries whose path or tags contain text

Without a query the whole cache is dropped.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Invalidate(cmd.Context(), joinQuery(args))
			if err != nil {
				return err
			}
			return c.emit(cmd, result, func(w io.Writer) {
				for _, path := range result.InvalidatedPaths {
					_, _ = fmt.Fprintln(w, "invalidated "+path)
				}
			})
		},
	}
}

// joinQuery rebuilds a query from shell arguments, quoting arguments that contain
// whitespace or quotes with a quote character they lack so they stay a single term.
// An argument holding both quote characters cannot be quoted and is passed as is.
func joinQuery(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		switch {
		case !strings.ContainsFunc(arg, needsQuoting):
			parts[i] = arg
		case !strings.Contains(arg, `"`):
			parts[i] = `"` + arg + `"`
		case !strings.Contains(arg, "'"):
			parts[i] = "'" + arg + "'"
		default:
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}

func needsQuoting(r rune) bool {
	return unicode.IsSpace(r) || r == '"' || r == '\''
}
