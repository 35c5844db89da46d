// Package pipeline runs a build request through every stage from resource lookup to relocation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/command"
	"go.trai.ch/zerr"
)

// Span names, one per stage.
const (
	SpanBuild     = "build"
	SpanLocate    = "locate"
	SpanTarget    = "target"
	SpanToolchain = "toolchain"
	SpanRun       = "run"
	SpanArtifact  = "artifact"
	SpanRelocate  = "relocate"
)

// Pipeline builds one request at a time. It keeps no state between requests,
// so a single Pipeline may serve concurrent callers.
type Pipeline struct {
	locator   ports.ResourceLocator
	targets   ports.DefaultTargetResolver
	selector  ports.ToolchainSelector
	runner    ports.ProcessRunner
	artifacts ports.ArtifactResolver
	relocator ports.Relocator
	inspector ports.ArtifactInspector
	hasher    ports.Hasher
	tracer    ports.Tracer
	metrics   ports.Metrics
	logger    ports.Logger
	newID     func() string
}

// New creates a new Pipeline.
func New(
	locator ports.ResourceLocator,
	targets ports.DefaultTargetResolver,
	selector ports.ToolchainSelector,
	runner ports.ProcessRunner,
	artifacts ports.ArtifactResolver,
	relocator ports.Relocator,
	inspector ports.ArtifactInspector,
	hasher ports.Hasher,
	tracer ports.Tracer,
	metrics ports.Metrics,
	log ports.Logger,
) *Pipeline {
	return &Pipeline{
		locator:   locator,
		targets:   targets,
		selector:  selector,
		runner:    runner,
		artifacts: artifacts,
		relocator: relocator,
		inspector: inspector,
		hasher:    hasher,
		tracer:    tracer,
		metrics:   metrics,
		logger:    log,
		newID:     uuid.NewString,
	}
}

// WithIDGenerator replaces the build id generator. Used by tests for stable ids.
func (p *Pipeline) WithIDGenerator(fn func() string) *Pipeline {
	p.newID = fn
	return p
}

// Build runs req to completion and reports the outcome as data.
// Every failure is returned in the result; Build never returns an error.
func (p *Pipeline) Build(ctx context.Context, req domain.BuildRequest, settings domain.Settings) domain.BuildResult {
	start := time.Now()
	res := domain.BuildResult{
		ID:       p.newID(),
		Resource: req.ResourceID,
		Strategy: req.Strategy,
		ExitCode: -1,
	}

	ctx, span := p.tracer.Start(ctx, SpanBuild,
		ports.WithAttribute("kiln.build_id", res.ID),
		ports.WithAttribute("kiln.strategy", req.Strategy.String()),
		ports.WithAttribute("kiln.resource", req.ResourceID),
	)
	defer func() {
		res.Duration = time.Since(start)
		span.SetAttribute("kiln.outcome", res.Kind.String())
		if res.Err != nil {
			span.RecordError(res.Err)
		}
		span.End()
		p.metrics.RecordOutcome(req.Strategy.String(), res.Kind.String())
	}()

	if err := req.Validate(); err != nil {
		res.Failed(domain.KindOf(err), err)
		return res
	}

	p.run(ctx, req, settings, &res)
	return res
}

// run executes the stages in order and stops at the first failure.
//
//nolint:cyclop,funlen // sequential stage orchestration
func (p *Pipeline) run(ctx context.Context, req domain.BuildRequest, settings domain.Settings, res *domain.BuildResult) {
	var loc domain.ResourceLocation
	err := p.stage(ctx, SpanLocate, func(ctx context.Context) error {
		var err error
		loc, err = p.locator.Locate(ctx, settings.Bundle(), req.Strategy.ResourceKind(), req.ResourceID)
		return err
	})
	if err != nil {
		res.Failed(domain.KindOf(err), err)
		return
	}

	if loc.Kind == domain.ResourceProject && req.BuildTarget == "" {
		err = p.stage(ctx, SpanTarget, func(_ context.Context) error {
			target, ok, err := p.targets.DefaultTarget(loc.ConfigFile)
			if err != nil {
				return err
			}
			if ok {
				req = req.WithBuildTarget(target)
			}
			return nil
		})
		if err != nil {
			res.Failed(domain.KindOf(err), err)
			return
		}
	}
	res.BuildTarget = req.BuildTarget

	var tool domain.ToolchainChoice
	err = p.stage(ctx, SpanToolchain, func(_ context.Context) error {
		var err error
		tool, err = p.selector.Select(candidates(req.Strategy, settings))
		return err
	})
	if err != nil {
		res.Failed(domain.KindOf(err), err)
		return
	}
	res.Toolchain = tool

	if req.Strategy == domain.StrategySourceFile {
		if err := os.MkdirAll(req.OutputDir, domain.DirPerm); err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", req.OutputDir)
			res.Failed(domain.KindOf(err), err)
			return
		}
	}

	cmd := command.Build(tool, loc, req, settings)
	res.Command = cmd.Argv()

	err = p.stage(ctx, SpanRun, func(ctx context.Context) error {
		return p.execute(ctx, cmd, req.Verbose, res)
	})
	if err != nil {
		res.Failed(domain.KindOf(err), err)
		return
	}

	err = p.stage(ctx, SpanArtifact, func(_ context.Context) error {
		return p.resolveArtifact(loc, req, settings, res)
	})
	if err != nil {
		res.Failed(domain.KindOf(err), err)
		return
	}

	if req.DestinationPath == "" {
		return
	}
	_ = p.stage(ctx, SpanRelocate, func(_ context.Context) error {
		dst, err := p.relocator.Relocate(res.ArtifactPath, req.DestinationPath)
		if err != nil {
			// The build stays usable; the artifact remains where the tool left it.
			res.Kind = domain.KindRelocationFailed
			res.Err = err
			if dst != "" {
				res.ArtifactPath = dst
			}
			p.logger.Warn(fmt.Sprintf("%s: could not copy artifact to %s, keeping %s",
				req.ResourceID, req.DestinationPath, res.ArtifactPath))
			return err
		}
		res.ArtifactPath = dst
		res.Relocated = true
		return nil
	})
}

// stage runs fn inside a span named after the stage.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// execute runs cmd and records its output. A nonzero exit is reported as ErrBuildFailed.
func (p *Pipeline) execute(ctx context.Context, cmd domain.Command, verbose bool, res *domain.BuildResult) error {
	var stdout, stderr *logWriter
	if verbose {
		p.logger.Info("running " + cmd.String())
		stdout = &logWriter{logger: p.logger, level: levelInfo}
		stderr = &logWriter{logger: p.logger, level: levelWarn}
		defer func() {
			_ = stdout.Close()
			_ = stderr.Close()
		}()
	}

	out, err := p.runner.Run(ctx, cmd, writerOrNil(stdout), writerOrNil(stderr))
	res.ExitCode = out.ExitCode
	res.Stdout = out.Stdout
	res.Stderr = out.Stderr
	if err != nil {
		return err
	}

	if out.ExitCode != 0 {
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrBuildFailed, fmt.Sprintf("%s exited with code %d", cmd.Name, out.ExitCode)),
			"exit_code", out.ExitCode),
			"command", cmd.String())
	}
	return nil
}

// resolveArtifact finds, inspects and digests the artifact of a successful run.
func (p *Pipeline) resolveArtifact(
	loc domain.ResourceLocation,
	req domain.BuildRequest,
	settings domain.Settings,
	res *domain.BuildResult,
) error {
	var dir string
	var suffixes []string
	if loc.Kind == domain.ResourceSourceFile {
		dir = req.OutputDir
		suffixes = settings.Toolchain.Artifacts
	} else {
		suffixes = settings.Project.Artifacts
		if req.BuildTarget == "" {
			res.SearchDir = domain.ProjectBuildRoot(loc.ProjectDir)
			res.Candidates = candidateNames(req.OutputBaseName, suffixes)
			return zerr.With(
				zerr.Wrap(domain.ErrArtifactNotFound, "no build target known, cannot tell which build directory to search"),
				"dir", res.SearchDir,
			)
		}
		dir = domain.ProjectBuildDir(loc.ProjectDir, req.BuildTarget)
	}
	res.SearchDir = dir
	res.Candidates = candidateNames(req.OutputBaseName, suffixes)

	path, err := p.artifacts.Resolve(dir, req.OutputBaseName, suffixes)
	if err != nil {
		return err
	}

	kind, err := p.inspector.Inspect(path)
	if err != nil {
		return err
	}
	digest, err := p.hasher.ComputeFileHash(path)
	if err != nil {
		return err
	}

	res.Success = true
	res.ArtifactPath = path
	res.ArtifactType = kind
	res.ArtifactDigest = digest
	return nil
}

func candidates(strategy domain.Strategy, settings domain.Settings) []string {
	if strategy == domain.StrategySourceFile {
		return settings.Toolchain.Candidates
	}
	return []string{settings.Project.Executable}
}

func candidateNames(base string, suffixes []string) []string {
	if len(suffixes) == 0 {
		return []string{base}
	}
	names := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		names = append(names, base+s)
	}
	return names
}
