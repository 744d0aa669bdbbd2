package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrNoLockfile is returned when a project directory contains no recognized lockfile.
	ErrNoLockfile = zerr.New("no lockfile found")

	// ErrAmbiguousLockfile is returned when lockfiles of more than one kind share a directory.
	ErrAmbiguousLockfile = zerr.New("ambiguous lockfile")

	// ErrWorkspaceContaminated is returned when the installed-dependencies directory
	// exists before resolution, or could not be removed afterwards.
	ErrWorkspaceContaminated = zerr.New("workspace contaminated")

	// ErrBackendExecutionFailed is returned when a backend command exits non-zero or cannot be started.
	ErrBackendExecutionFailed = zerr.New("backend execution failed")

	// ErrBackendTimeout is returned when a backend command exceeds the per-manifest timeout.
	ErrBackendTimeout = zerr.New("backend timed out")

	// ErrMalformedTreeOutput is returned when a backend payload fails structural validation.
	ErrMalformedTreeOutput = zerr.New("malformed dependency tree output")

	// ErrUnresolvedPackage is returned when a tree entry references a missing or unversioned package.
	ErrUnresolvedPackage = zerr.New("unresolved package")

	// ErrDependencyCycle is returned when a package appears on its own ancestor path.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrInvalidInput is returned for missing manifests, non-directories and invalid options.
	ErrInvalidInput = zerr.New("invalid input")

	// ErrCancelled is returned when the caller cancels a resolution in flight.
	ErrCancelled = zerr.New("resolution cancelled")

	// ErrFatal signals a broken internal invariant. It aborts the whole resolve call.
	ErrFatal = zerr.New("internal invariant violated")

	// ErrResolutionFailed is returned by the application when at least one manifest failed.
	ErrResolutionFailed = zerr.New("one or more manifests failed to resolve")
)

// FailureKind classifies a per-manifest failure.
type FailureKind string

const (
	FailureNoLockfile             FailureKind = "NoLockfile"
	FailureAmbiguousLockfile      FailureKind = "AmbiguousLockfile"
	FailureWorkspaceContaminated  FailureKind = "WorkspaceContaminated"
	FailureBackendExecutionFailed FailureKind = "BackendExecutionFailed"
	FailureBackendTimeout         FailureKind = "BackendTimeout"
	FailureMalformedTreeOutput    FailureKind = "MalformedTreeOutput"
	FailureUnresolvedPackage      FailureKind = "UnresolvedPackage"
	FailureDependencyCycle        FailureKind = "DependencyCycle"
	FailureInvalidInput           FailureKind = "InvalidInput"
	FailureCancelled              FailureKind = "Cancelled"
	FailureFatal                  FailureKind = "fatal"
)

// kindOrder is checked first to last. Cancellation wins over anything it caused,
// and contamination wins over a backend error joined with a failed cleanup.
var kindOrder = []struct {
	sentinel error
	kind     FailureKind
}{
	{ErrFatal, FailureFatal},
	{ErrCancelled, FailureCancelled},
	{ErrBackendTimeout, FailureBackendTimeout},
	{ErrWorkspaceContaminated, FailureWorkspaceContaminated},
	{ErrNoLockfile, FailureNoLockfile},
	{ErrAmbiguousLockfile, FailureAmbiguousLockfile},
	{ErrBackendExecutionFailed, FailureBackendExecutionFailed},
	{ErrMalformedTreeOutput, FailureMalformedTreeOutput},
	{ErrUnresolvedPackage, FailureUnresolvedPackage},
	{ErrDependencyCycle, FailureDependencyCycle},
	{ErrInvalidInput, FailureInvalidInput},
}

// KindOf classifies err against the error taxonomy.
// Errors that match no sentinel are reported as fatal.
func KindOf(err error) FailureKind {
	for _, k := range kindOrder {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return FailureFatal
}

// IsFatal reports whether err must abort the whole resolve call.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}
