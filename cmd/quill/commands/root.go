// Package commands implements the CLI commands for quill.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/quill/internal/app"
	"go.trai.ch/quill/internal/build"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/engine/invalidation"
	"go.trai.ch/quill/internal/engine/site"
)

// CLI represents the command line interface for quill.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	jsonMode bool
	onJSON   func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) (site.Report, error)
	Watch(ctx context.Context) error
	Invalidate(ctx context.Context, query string) (invalidation.Result, error)
	Status(ctx context.Context) ([]app.EntryStatus, error)
	Check(ctx context.Context) (*domain.SiteConfig, error)
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "quill",
		Short:         "A static site generator with an incremental cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&c.jsonMode, "json", false, "Emit logs and results as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.onJSON != nil {
			c.onJSON(c.jsonMode)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newInvalidateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// OnJSON registers fn to be told whether --json was given before any command runs.
func (c *CLI) OnJSON(fn func(bool)) {
	c.onJSON = fn
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// emit writes v as indented JSON in --json mode, otherwise runs text.
func (c *CLI) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if !c.jsonMode {
		text(out)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
