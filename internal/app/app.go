// Package app implements the application layer for kiln.
package app

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder runs a single build request.
type Builder interface {
	Build(ctx context.Context, req domain.BuildRequest, settings domain.Settings) domain.BuildResult
}

var _ Builder = (*pipeline.Pipeline)(nil)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      Builder
	logger       ports.Logger
	metrics      ports.Metrics
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder Builder,
	log ports.Logger,
	metrics ports.Metrics,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		logger:       log,
		metrics:      metrics,
		tracer:       tracer,
	}
}

// BuildOptions configures a batch of build requests.
type BuildOptions struct {
	// ConfigPath is the kiln.yaml to load. Empty means kiln.yaml in the working directory.
	ConfigPath string
	// Resources overrides the configured resource bundle.
	Resources string
	// Timeout overrides the configured process timeout when non-nil.
	Timeout *time.Duration
	// MetricsFile, when set, receives the Prometheus textfile after the batch.
	MetricsFile string

	Strategy        domain.Strategy
	BuildTarget     string
	OutputBaseName  string
	OutputDir       string
	DestinationPath string
	ExtraArgs       []string
	Verbose         bool
	// Jobs bounds how many requests run at once. Values below 1 mean 1.
	Jobs int
}

// Build runs one request per resource id and returns the results in id order.
// It returns domain.ErrBuildExecutionFailed when at least one request did not succeed.
func (a *App) Build(ctx context.Context, ids []string, opts BuildOptions) ([]domain.BuildResult, error) {
	if len(ids) == 0 {
		return nil, zerr.Wrap(domain.ErrInvalidRequest, "no resources specified")
	}
	if opts.DestinationPath != "" && len(ids) > 1 {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrInvalidRequest, "a destination path needs exactly one resource"),
			"resources", len(ids),
		)
	}

	settings, err := a.loadSettings(opts)
	if err != nil {
		return nil, err
	}

	requests := make([]domain.BuildRequest, len(ids))
	for i, id := range ids {
		requests[i], err = newRequest(id, opts, settings)
		if err != nil {
			return nil, err
		}
	}

	results := make([]domain.BuildResult, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))
	for i, req := range requests {
		g.Go(func() error {
			results[i] = a.builder.Build(gctx, req, settings)
			a.logResult(results[i], opts.Verbose)
			return nil
		})
	}
	_ = g.Wait()

	if opts.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			a.logger.Warn("could not write metrics: " + err.Error())
		}
	}

	failed := 0
	for _, res := range results {
		if !res.Success {
			failed++
		}
	}
	if failed > 0 {
		return results, zerr.Wrap(domain.ErrBuildExecutionFailed,
			fmt.Sprintf("%d of %d builds failed", failed, len(results)))
	}
	return results, nil
}

// Close releases the tracer.
func (a *App) Close(ctx context.Context) error {
	return a.tracer.Shutdown(ctx)
}

func (a *App) loadSettings(opts BuildOptions) (domain.Settings, error) {
	settings, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Resources != "" {
		abs, err := filepath.Abs(opts.Resources)
		if err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to resolve resource bundle path"), "path", opts.Resources)
		}
		settings.Resources = abs
	}
	if opts.Timeout != nil {
		settings.Timeout = *opts.Timeout
	}
	return settings, nil
}

// newRequest fills every default into the request so the pipeline sees explicit values only.
func newRequest(id string, opts BuildOptions, settings domain.Settings) (domain.BuildRequest, error) {
	req := domain.BuildRequest{
		Strategy:        opts.Strategy,
		ResourceID:      id,
		BuildTarget:     opts.BuildTarget,
		OutputBaseName:  opts.OutputBaseName,
		DestinationPath: opts.DestinationPath,
		ExtraArgs:       opts.ExtraArgs,
		Verbose:         opts.Verbose,
		Timeout:         settings.Timeout,
	}

	if req.OutputBaseName == "" {
		req.OutputBaseName = defaultBaseName(opts.Strategy, id, settings)
	}

	if opts.Strategy == domain.StrategySourceFile {
		dir := opts.OutputDir
		if dir == "" {
			dir = settings.OutputDir
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return domain.BuildRequest{}, zerr.With(zerr.Wrap(err, "failed to resolve output directory"), "path", dir)
		}
		req.OutputDir = abs
	}

	if req.DestinationPath != "" {
		abs, err := filepath.Abs(req.DestinationPath)
		if err != nil {
			return domain.BuildRequest{}, zerr.With(zerr.Wrap(err, "failed to resolve destination path"), "path", req.DestinationPath)
		}
		req.DestinationPath = abs
	}
	return req, nil
}

// defaultBaseName is the configured firmware name for projects and the tool name for sources.
func defaultBaseName(strategy domain.Strategy, id string, settings domain.Settings) string {
	if strategy == domain.StrategySourceFile {
		base := path.Base(filepath.ToSlash(id))
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return settings.Project.BaseName
}

func (a *App) logResult(res domain.BuildResult, verbose bool) {
	switch {
	case res.Success && res.Kind == domain.KindNone:
		a.logger.Info(fmt.Sprintf("built %s: %s", res.Resource, res.ArtifactPath))
	case res.Success:
		// Relocation failures were already reported by the pipeline.
		a.logger.Info(fmt.Sprintf("built %s: %s (not relocated)", res.Resource, res.ArtifactPath))
	default:
		// Verbose runs have already streamed the tool output.
		if res.Kind == domain.KindBuildFailed && !verbose && res.Stderr != "" {
			a.logger.Warn(strings.TrimRight(res.Stderr, "\n"))
		}
		a.logger.Error(zerr.With(
			zerr.Wrap(res.Err, fmt.Sprintf("failed to build %s", res.Resource)),
			"kind", res.Kind.String(),
		))
	}
}
