package ports

import (
	"context"

	"go.trai.ch/deptree/internal/core/domain"
)

// Runner executes a backend against a project directory and returns the raw
// dependency tree printed by the backend.
//
// Implementations must refuse a directory that already holds the backend's
// installed-dependencies directory, and must remove that directory again on
// every exit path.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	Run(ctx context.Context, req domain.RunRequest) ([]byte, error)
}
