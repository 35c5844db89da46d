package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
)

// requestFlags are the flags shared by build and compile.
type requestFlags struct {
	name    string
	dest    string
	verbose bool
	timeout time.Duration
	jobs    int
	json    bool
}

func (f *requestFlags) register(cmd *cobra.Command, nameUsage string) {
	cmd.Flags().StringVar(&f.name, "name", "", nameUsage)
	cmd.Flags().StringVar(&f.dest, "dest", "", "Copy the artifact to this path after a successful build")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Pass the verbose flag to the tool and log its output")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Kill the tool after this long (overrides the configuration)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 1, "Number of builds to run at once")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print results as JSON")
}

// options splits args at "--" into resource ids and extra tool arguments.
func (c *CLI) options(cmd *cobra.Command, args []string, f *requestFlags, strategy domain.Strategy) ([]string, app.BuildOptions) {
	ids, extra := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		ids, extra = args[:dash], args[dash:]
	}

	opts := app.BuildOptions{
		ConfigPath:      c.configPath,
		Resources:       c.resources,
		MetricsFile:     c.metricsFile,
		Strategy:        strategy,
		OutputBaseName:  f.name,
		DestinationPath: f.dest,
		ExtraArgs:       extra,
		Verbose:         f.verbose,
		Jobs:            f.jobs,
	}
	if cmd.Flags().Changed("timeout") {
		timeout := f.timeout
		opts.Timeout = &timeout
	}
	return ids, opts
}

func (c *CLI) newBuildCmd() *cobra.Command {
	var f requestFlags
	var env string

	cmd := &cobra.Command{
		Use:   "build [projects...] [-- tool args...]",
		Short: "Build bundled projects with the project build tool",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, opts := c.options(cmd, args, &f, domain.StrategyProject)
			if len(ids) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			opts.BuildTarget = env

			results, err := c.app.Build(cmd.Context(), ids, opts)
			if printErr := printResults(cmd.OutOrStdout(), results, f.json); printErr != nil {
				return printErr
			}
			return err
		},
	}
	f.register(cmd, "Artifact base name (defaults to the configured base name)")
	cmd.Flags().StringVarP(&env, "env", "e", "", "Build target (defaults to the project's default_envs)")
	return cmd
}

func (c *CLI) newCompileCmd() *cobra.Command {
	var f requestFlags
	var out string

	cmd := &cobra.Command{
		Use:   "compile [tools...] [-- compiler args...]",
		Short: "Compile bundled single-file tools with a native compiler",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, opts := c.options(cmd, args, &f, domain.StrategySourceFile)
			if len(ids) == 0 {
				_ = cmd.Help()
				return nil
			}
			opts.OutputDir = out

			results, err := c.app.Build(cmd.Context(), ids, opts)
			if printErr := printResults(cmd.OutOrStdout(), results, f.json); printErr != nil {
				return printErr
			}
			return err
		},
	}
	f.register(cmd, "Executable name (defaults to the tool name)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (defaults to the configured output directory)")
	return cmd
}

// printResults writes one artifact path per successful build, or every result as JSON.
func printResults(w io.Writer, results []domain.BuildResult, asJSON bool) error {
	if results == nil {
		return nil
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(app.NewReports(results))
	}
	for _, res := range results {
		if res.Success {
			if _, err := fmt.Fprintln(w, res.ArtifactPath); err != nil {
				return err
			}
		}
	}
	return nil
}
