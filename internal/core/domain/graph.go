// Package domain contains the core models of dependency resolution: manifests,
// backends, resolved package trees and the per-manifest dependency graph.
package domain

import (
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// ManifestFileName is the manifest file name assumed when a directory is given.
const ManifestFileName = "package.json"

// Manifest is the cleaned absolute path of a project's dependency declaration file.
type Manifest string

// NewManifest cleans path and makes it absolute.
func NewManifest(path string) (Manifest, error) {
	if path == "" {
		return "", zerr.Wrap(ErrInvalidInput, "manifest path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(ErrInvalidInput, "failed to resolve manifest path"), "path", path)
	}
	return Manifest(abs), nil
}

// Dir returns the project directory that contains the manifest.
func (m Manifest) Dir() string {
	return filepath.Dir(string(m))
}

func (m Manifest) String() string {
	return string(m)
}

// DependencyGraph maps each successfully resolved manifest to its forest.
// Inserting a manifest that is already present replaces its entry.
type DependencyGraph struct {
	forests  map[Manifest]Forest
	packages map[Manifest][]PackageRef
}

// NewDependencyGraph creates an empty DependencyGraph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		forests:  make(map[Manifest]Forest),
		packages: make(map[Manifest][]PackageRef),
	}
}

// Put stores forest and its package index under m, replacing any previous entry.
func (g *DependencyGraph) Put(m Manifest, forest Forest, packages []PackageRef) {
	g.forests[m] = forest
	g.packages[m] = packages
}

// Forest returns the forest resolved for m.
func (g *DependencyGraph) Forest(m Manifest) (Forest, bool) {
	f, ok := g.forests[m]
	return f, ok
}

// Packages returns the distinct packages of m's forest in first-appearance order.
func (g *DependencyGraph) Packages(m Manifest) []PackageRef {
	return g.packages[m]
}

// Manifests returns the resolved manifests sorted by path.
func (g *DependencyGraph) Manifests() []Manifest {
	out := make([]Manifest, 0, len(g.forests))
	for m := range g.forests {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of resolved manifests.
func (g *DependencyGraph) Len() int {
	return len(g.forests)
}

// Clone returns a copy that shares the immutable forests but not the index maps.
func (g *DependencyGraph) Clone() *DependencyGraph {
	c := NewDependencyGraph()
	for m, f := range g.forests {
		c.Put(m, f, g.packages[m])
	}
	return c
}

// ManifestInfo is the subset of a manifest the resolver reads itself.
type ManifestInfo struct {
	Name    string
	Version string
	// Direct lists declared dependency names in declaration order, without duplicates.
	Direct []string
	// Optional lists the names declared in optionalDependencies. A backend may
	// skip installing them, for example on an unsupported platform.
	Optional []string
}

// IsOptional reports whether name is declared as an optional dependency.
func (i ManifestInfo) IsOptional(name string) bool {
	return slices.Contains(i.Optional, name)
}
