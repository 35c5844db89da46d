// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// ResourceLocator resolves package-relative resource identifiers to installed paths.
//
//go:generate mockgen -destination=mocks/resolver_mock.go -package=mocks -source=resolver.go
type ResourceLocator interface {
	// Locate maps id to an absolute location inside bundle.
	// It fails with domain.ErrResourceNotFound when the resource does not exist.
	Locate(ctx context.Context, bundle domain.Bundle, kind domain.ResourceKind, id string) (domain.ResourceLocation, error)
}

// DefaultTargetResolver extracts the default build target from a project config file.
type DefaultTargetResolver interface {
	// DefaultTarget returns the first declared default target.
	// ok is false when the config declares none.
	DefaultTarget(configPath string) (target string, ok bool, err error)
}
