// Package tree parses the dependency trees printed by package-manager backends.
//
// Each backend prints a different structure. NpmTree and PnpmTree are already
// nested; YarnTree is a flat table of hoisted packages whose children point
// back into the table and has to be reconstructed into trees. All variants
// keep children in the order they appear in the payload.
package tree

import (
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

// Variant parses one backend output format.
type Variant interface {
	Parse(raw []byte, info domain.ManifestInfo) (domain.Forest, error)
}

// Parser implements ports.TreeParser by dispatching on the backend's TreeFormat.
type Parser struct {
	variants map[domain.TreeFormat]Variant
}

// NewParser creates a Parser that knows every supported format.
func NewParser() *Parser {
	return &Parser{
		variants: map[domain.TreeFormat]Variant{
			domain.FormatNpmTree:  NpmTree{},
			domain.FormatYarnTree: YarnTree{},
			domain.FormatPnpmTree: PnpmTree{},
		},
	}
}

// Parse decodes raw with the variant registered for format.
func (p *Parser) Parse(format domain.TreeFormat, raw []byte, info domain.ManifestInfo) (domain.Forest, error) {
	v, ok := p.variants[format]
	if !ok {
		err := zerr.Wrap(domain.ErrFatal, "no tree parser registered for format "+string(format))
		return nil, zerr.With(err, "format", string(format))
	}
	return v.Parse(raw, info)
}
