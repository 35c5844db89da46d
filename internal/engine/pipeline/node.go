package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"        //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/logger"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/metrics"   //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/pioini"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/resources" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/shell"     //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/toolchain" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the build pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resources.NodeID,
			pioini.NodeID,
			toolchain.NodeID,
			shell.NodeID,
			fs.ResolverNodeID,
			fs.RelocatorNodeID,
			fs.InspectorNodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Pipeline, error) {
	locator, err := graft.Dep[ports.ResourceLocator](ctx)
	if err != nil {
		return nil, err
	}
	targets, err := graft.Dep[ports.DefaultTargetResolver](ctx)
	if err != nil {
		return nil, err
	}
	selector, err := graft.Dep[ports.ToolchainSelector](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := graft.Dep[ports.ArtifactResolver](ctx)
	if err != nil {
		return nil, err
	}
	relocator, err := graft.Dep[ports.Relocator](ctx)
	if err != nil {
		return nil, err
	}
	inspector, err := graft.Dep[ports.ArtifactInspector](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(locator, targets, selector, runner, artifacts, relocator, inspector, hasher, tracer, m, log), nil
}
