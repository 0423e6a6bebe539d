package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type checkResult struct {
	Root       string `json:"root"`
	SrcDir     string `json:"srcDir"`
	OutDir     string `json:"outDir"`
	CacheDir   string `json:"cacheDir"`
	ISGEnabled bool   `json:"isgEnabled"`
}

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate quill.yaml without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.app.Check(cmd.Context())
			if err != nil {
				return err
			}
			result := checkResult{
				Root:       cfg.Root,
				SrcDir:     cfg.SrcDir,
				OutDir:     cfg.OutDir,
				CacheDir:   cfg.CacheDir,
				ISGEnabled: cfg.ISGEnabled(),
			}
			return c.emit(cmd, result, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "src:   %s\nout:   %s\ncache: %s\nisg:   %t\n",
					result.SrcDir, result.OutDir, result.CacheDir, result.ISGEnabled)
			})
		},
	}
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context())
		},
	}
}
