package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"nil", nil, domain.KindNone},
		{"resource", zerr.Wrap(domain.ErrResourceNotFound, "projects/blink"), domain.KindResourceNotFound},
		{"toolchain", domain.ErrToolchainNotFound, domain.KindToolchainNotFound},
		{"build", zerr.With(zerr.Wrap(domain.ErrBuildFailed, "pio exited with code 1"), "exit_code", 1), domain.KindBuildFailed},
		{"artifact", domain.ErrArtifactNotFound, domain.KindArtifactNotFound},
		{"relocation", domain.ErrRelocationFailed, domain.KindRelocationFailed},
		{"timeout sentinel", domain.ErrProcessTimeout, domain.KindTimeout},
		{"deadline", zerr.Wrap(context.DeadlineExceeded, "waiting for pio"), domain.KindTimeout},
		{"cancelled sentinel", domain.ErrProcessCancelled, domain.KindCancelled},
		{"canceled context", context.Canceled, domain.KindCancelled},
		{"invalid request", domain.ErrInvalidRequest, domain.KindUnexpected},
		{"unknown", errors.New("disk full"), domain.KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestErrorKind_Advisory(t *testing.T) {
	assert.True(t, domain.KindRelocationFailed.Advisory())
	for _, k := range []domain.ErrorKind{
		domain.KindNone,
		domain.KindResourceNotFound,
		domain.KindToolchainNotFound,
		domain.KindBuildFailed,
		domain.KindArtifactNotFound,
		domain.KindTimeout,
		domain.KindCancelled,
		domain.KindUnexpected,
	} {
		assert.False(t, k.Advisory(), k.String())
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "none", domain.KindNone.String())
	assert.Equal(t, "ArtifactNotFound", domain.KindArtifactNotFound.String())
	assert.Equal(t, "UnexpectedError", domain.KindUnexpected.String())
}
