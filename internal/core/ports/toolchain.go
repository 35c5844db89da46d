package ports

import "go.trai.ch/kiln/internal/core/domain"

// ToolchainSelector picks the first available executable from a list of candidates.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainSelector interface {
	// Select returns the first candidate found on the search path.
	// It fails with domain.ErrToolchainNotFound listing every candidate when none resolve.
	Select(candidates []string) (domain.ToolchainChoice, error)
}
