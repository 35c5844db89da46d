package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "plain os error",
			err:          errors.New("open platformio.ini: permission denied"),
			wantMessages: []string{"open platformio.ini: permission denied"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "bare sentinel",
			err:          domain.ErrToolchainNotFound,
			wantMessages: []string{"toolchain not found"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name: "failed build request",
			err: zerr.Wrap(
				zerr.Wrap(domain.ErrBuildFailed, "pio exited with code 1"),
				"failed to build projects/blink",
			),
			wantMessages: []string{"failed to build projects/blink", "pio exited with code 1", "build failed"},
			wantMetadata: []map[string]any{{}, {}, {}},
		},
		{
			name: "stacked metadata on one layer",
			err: zerr.With(
				zerr.With(zerr.Wrap(domain.ErrBuildFailed, "g++ exited with code 1"), "exit_code", 1),
				"command", "g++ sample_tool.cpp -o out/sample_tool",
			),
			wantMessages: []string{"g++ exited with code 1", "build failed"},
			wantMetadata: []map[string]any{
				{"exit_code": 1, "command": "g++ sample_tool.cpp -o out/sample_tool"},
				{},
			},
		},
		{
			name:         "metadata on a standard error is carried to its message",
			err:          zerr.With(errors.New("exec: not found"), "command", "pio"),
			wantMessages: []string{"exec: not found"},
			wantMetadata: []map[string]any{{"command": "pio"}},
		},
		{
			name: "metadata on separate layers",
			err: func() error {
				inner := zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "no candidate artifact"), "dir", ".pio/build/uno")
				return zerr.With(zerr.Wrap(inner, "failed to build projects/blink"), "kind", "ArtifactNotFound")
			}(),
			wantMessages: []string{"failed to build projects/blink", "no candidate artifact", "artifact not found"},
			wantMetadata: []map[string]any{
				{"kind": "ArtifactNotFound"},
				{"dir": ".pio/build/uno"},
				{},
			},
		},
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			if tt.err == nil {
				assert.Empty(t, entries)
				return
			}

			messages := make([]string, len(entries))
			metadata := make([]map[string]any, len(entries))
			for i, e := range entries {
				messages[i] = e.Message
				metadata[i] = e.Metadata
			}
			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "toolchain not found"}},
			want:    "Error: toolchain not found",
		},
		{
			name:    "cause list",
			entries: []logger.ErrorEntry{{Message: "failed to build projects/blink"}, {Message: "build failed"}},
			want:    "Error: failed to build projects/blink\n\n  Caused by:\n    → build failed",
		},
		{
			name: "entry with metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "failed to build projects/blink"},
				{Message: "pio exited with code 1", Metadata: map[string]any{"exit_code": 1}},
			},
			want: "Error: failed to build projects/blink\n\n  Caused by:\n    → pio exited with code 1\n      exit_code: 1",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "undefined reference to setup\ncollect2: error: ld returned 1"}},
			want:    "Error: undefined reference to setup\n       collect2: error: ld returned 1",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "relocation failed",
				Metadata: map[string]any{"src": "/a/firmware.elf", "dst": "/dist/blink.elf", "reason": "read-only"},
			}},
			want: "Error: relocation failed\n       dst: /dist/blink.elf\n       reason: read-only\n       src: /a/firmware.elf",
		},
		{
			name:    "empty entries",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
