// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	logs    LogFormatter
	rootCmd *cobra.Command

	configPath  string
	resources   string
	metricsFile string
	logJSON     bool
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, ids []string, opts app.BuildOptions) ([]domain.BuildResult, error)
}

// LogFormatter switches the log output between human and JSON formats.
type LogFormatter interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
// logs may be nil when the logger has a fixed format.
func New(a Application, logs LogFormatter) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Build bundled firmware projects and tools with external toolchains",
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
		logs:    logs,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", domain.KilnFileName, "Path to the kiln configuration file")
	flags.StringVar(&c.resources, "resources", "", "Resource bundle directory or archive (overrides the configuration)")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the build")
	flags.BoolVar(&c.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.logJSON && c.logs != nil {
			c.logs.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
