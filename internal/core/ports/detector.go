// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/deptree/internal/core/domain"

// LockfileDetector decides which package manager governs a project directory.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type LockfileDetector interface {
	// Detect scans dir for recognized lockfiles and returns the single kind present.
	// It fails with ErrInvalidInput, ErrNoLockfile or ErrAmbiguousLockfile.
	Detect(dir string) (domain.LockfileKind, error)
}

// BackendSelector maps a lockfile kind to its backend record.
type BackendSelector interface {
	// Select returns the backend for kind. An unknown kind is an ErrFatal.
	Select(kind domain.LockfileKind) (domain.Backend, error)
}
