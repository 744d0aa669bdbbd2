package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected domain.FailureKind
	}{
		{"no lockfile", zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in /p"), domain.FailureNoLockfile},
		{"ambiguous", domain.ErrAmbiguousLockfile, domain.FailureAmbiguousLockfile},
		{"contaminated", domain.ErrWorkspaceContaminated, domain.FailureWorkspaceContaminated},
		{
			"execution with metadata",
			zerr.With(zerr.Wrap(domain.ErrBackendExecutionFailed, "npm exited"), "exit_code", 1),
			domain.FailureBackendExecutionFailed,
		},
		{"timeout", domain.ErrBackendTimeout, domain.FailureBackendTimeout},
		{"malformed", domain.ErrMalformedTreeOutput, domain.FailureMalformedTreeOutput},
		{"unresolved", domain.ErrUnresolvedPackage, domain.FailureUnresolvedPackage},
		{"cycle", domain.ErrDependencyCycle, domain.FailureDependencyCycle},
		{"invalid input", domain.ErrInvalidInput, domain.FailureInvalidInput},
		{"cancelled", domain.ErrCancelled, domain.FailureCancelled},
		{"fatal", domain.ErrFatal, domain.FailureFatal},
		{"unclassified", errors.New("boom"), domain.FailureFatal},
		{"fmt wrapped", fmt.Errorf("stage: %w", domain.ErrUnresolvedPackage), domain.FailureUnresolvedPackage},
		{
			"cancel wins over backend error",
			errors.Join(domain.ErrBackendExecutionFailed, zerr.Wrap(domain.ErrCancelled, context.Canceled.Error())),
			domain.FailureCancelled,
		},
		{
			"contamination wins over backend error",
			errors.Join(domain.ErrBackendExecutionFailed, domain.ErrWorkspaceContaminated),
			domain.FailureWorkspaceContaminated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.KindOf(tt.err))
		})
	}
}

func TestIsFatal(t *testing.T) {
	assert.True(t, domain.IsFatal(zerr.Wrap(domain.ErrFatal, "unknown lockfile kind")))
	assert.False(t, domain.IsFatal(domain.ErrNoLockfile))
}
