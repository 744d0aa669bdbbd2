package ports

import "go.trai.ch/deptree/internal/core/domain"

// TreeParser converts raw backend output into a forest.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type TreeParser interface {
	// Parse decodes raw according to format. info carries the manifest's declared
	// dependencies, used by formats that do not record their own roots.
	Parse(format domain.TreeFormat, raw []byte, info domain.ManifestInfo) (domain.Forest, error)
}

// ManifestReader reads the parts of a manifest the resolver needs.
type ManifestReader interface {
	Read(manifest domain.Manifest) (domain.ManifestInfo, error)
}
