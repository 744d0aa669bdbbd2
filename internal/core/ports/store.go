package ports

import (
	"io"

	"go.trai.ch/deptree/internal/core/domain"
)

// ReportWriter persists a resolution for downstream collaborators.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportWriter interface {
	// Write encodes res to w.
	Write(w io.Writer, res *domain.Resolution) error
	// WriteFile encodes res to the file at path, replacing it atomically.
	WriteFile(path string, res *domain.Resolution) error
}
