package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNewReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := app.NewReport(domain.BuildResult{
			ID:           "b1",
			Resource:     "projects/blink",
			Strategy:     domain.StrategyProject,
			Success:      true,
			ArtifactPath: "/dist/firmware.elf",
			Toolchain:    domain.ToolchainChoice{Name: "pio", Path: "/usr/bin/pio"},
			Duration:     1500 * time.Millisecond,
		})

		assert.Equal(t, "project", r.Strategy)
		assert.Empty(t, r.ErrorKind)
		assert.Empty(t, r.Error)
		assert.Equal(t, "/usr/bin/pio", r.Toolchain)
		assert.Equal(t, int64(1500), r.DurationMillis)
	})

	t.Run("advisory failure", func(t *testing.T) {
		r := app.NewReport(domain.BuildResult{
			Strategy:     domain.StrategySourceFile,
			Success:      true,
			ArtifactPath: "/out/sample_tool",
			Kind:         domain.KindRelocationFailed,
			Err:          zerr.Wrap(domain.ErrRelocationFailed, "permission denied"),
		})

		assert.True(t, r.Success)
		assert.Equal(t, "RelocationFailed", r.ErrorKind)
		assert.Equal(t, "permission denied: relocation failed", r.Error)
		assert.Equal(t, "source-file", r.Strategy)
	})
}

func TestNewReports_KeepsOrder(t *testing.T) {
	reports := app.NewReports([]domain.BuildResult{{Resource: "a"}, {Resource: "b"}})

	assert.Equal(t, "a", reports[0].Resource)
	assert.Equal(t, "b", reports[1].Resource)
}
