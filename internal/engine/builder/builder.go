// Package builder assembles parsed forests into a dependency graph.
package builder

import (
	"sync"

	"go.trai.ch/deptree/internal/core/domain"
)

// Builder collects per-manifest forests into a DependencyGraph.
// It is safe for concurrent use.
type Builder struct {
	mu    sync.Mutex
	graph *domain.DependencyGraph
}

// New creates a Builder with an empty graph.
func New() *Builder {
	return &Builder{graph: domain.NewDependencyGraph()}
}

// Add stores forest under m, replacing any earlier forest for the same manifest.
// Forests of different manifests are kept apart even when they share packages.
func (b *Builder) Add(m domain.Manifest, forest domain.Forest) {
	packages := Index(forest)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.graph.Put(m, forest, packages)
}

// Graph returns a snapshot of the graph built so far.
func (b *Builder) Graph() *domain.DependencyGraph {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.graph.Clone()
}

// Index returns the distinct packages of forest in first-appearance order.
func Index(forest domain.Forest) []domain.PackageRef {
	seen := make(map[domain.PackageRef]struct{})
	out := []domain.PackageRef{}
	forest.Walk(func(node domain.DependencyNode, _ int) bool {
		if _, ok := seen[node.Package]; !ok {
			seen[node.Package] = struct{}{}
			out = append(out, node.Package)
		}
		return true
	})
	return out
}
