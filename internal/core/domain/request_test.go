package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func validProjectRequest() domain.BuildRequest {
	return domain.BuildRequest{
		Strategy:       domain.StrategyProject,
		ResourceID:     "projects/blink",
		OutputBaseName: "firmware",
		ExtraArgs:      []string{"--silent"},
	}
}

func TestBuildRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.BuildRequest)
		wantErr string
	}{
		{"valid project", func(*domain.BuildRequest) {}, ""},
		{"valid source file", func(r *domain.BuildRequest) {
			r.Strategy = domain.StrategySourceFile
			r.OutputDir = "/tmp/out"
		}, ""},
		{"missing resource", func(r *domain.BuildRequest) { r.ResourceID = "" }, "resource id is required"},
		{"missing base name", func(r *domain.BuildRequest) { r.OutputBaseName = "" }, "output base name is required"},
		{"source file without output dir", func(r *domain.BuildRequest) {
			r.Strategy = domain.StrategySourceFile
		}, "output directory is required"},
		{"negative timeout", func(r *domain.BuildRequest) { r.Timeout = -time.Second }, "timeout must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProjectRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildRequest_WithBuildTarget(t *testing.T) {
	req := validProjectRequest()

	derived := req.WithBuildTarget("uno_example")
	derived.ExtraArgs[0] = "--verbose"

	assert.Equal(t, "uno_example", derived.BuildTarget)
	assert.Empty(t, req.BuildTarget)
	assert.Equal(t, []string{"--silent"}, req.ExtraArgs)
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, "project", domain.StrategyProject.String())
	assert.Equal(t, "source-file", domain.StrategySourceFile.String())
	assert.Equal(t, "unknown", domain.Strategy(7).String())

	assert.Equal(t, domain.ResourceProject, domain.StrategyProject.ResourceKind())
	assert.Equal(t, domain.ResourceSourceFile, domain.StrategySourceFile.ResourceKind())
}

func TestResourceLocation(t *testing.T) {
	project := domain.ProjectLocation("/res/projects/blink", "/res/projects/blink/platformio.ini")
	assert.Equal(t, domain.ResourceProject, project.Kind)
	assert.Equal(t, "/res/projects/blink", project.Path())
	assert.Equal(t, "project", project.Kind.String())

	source := domain.SourceFileLocation("/res/internal_cpp_sources/sample_tool.cpp")
	assert.Equal(t, domain.ResourceSourceFile, source.Kind)
	assert.Equal(t, "/res/internal_cpp_sources/sample_tool.cpp", source.Path())
	assert.Empty(t, source.ProjectDir)
}
