package domain

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// PackageRef identifies a single resolved package. Equality is by (Name, Version).
type PackageRef struct {
	Name    InternedString `json:"name"`
	Version InternedString `json:"version"`
}

// NewPackageRef interns name and version into a PackageRef.
func NewPackageRef(name, version string) PackageRef {
	return PackageRef{
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}
}

// String returns the "name@version" form of the reference.
func (p PackageRef) String() string {
	return p.Name.String() + "@" + p.Version.String()
}

// DependencyNode is a resolved package together with its own resolved dependencies,
// in the order the backend reported them.
type DependencyNode struct {
	Package      PackageRef       `json:"package"`
	Dependencies []DependencyNode `json:"dependencies,omitempty"`
}

// Forest is the ordered set of dependency trees rooted at a manifest's direct dependencies.
type Forest []DependencyNode

// Walk visits every node depth-first in order, passing its depth (0 for roots).
// Returning false from fn stops the walk.
func (f Forest) Walk(fn func(node DependencyNode, depth int) bool) {
	var visit func(nodes []DependencyNode, depth int) bool
	visit = func(nodes []DependencyNode, depth int) bool {
		for _, n := range nodes {
			if !fn(n, depth) {
				return false
			}
			if !visit(n.Dependencies, depth+1) {
				return false
			}
		}
		return true
	}
	visit(f, 0)
}

// Len returns the total number of nodes in the forest.
func (f Forest) Len() int {
	n := 0
	f.Walk(func(DependencyNode, int) bool {
		n++
		return true
	})
	return n
}

// String renders the forest canonically: one "name@version" per line, indented
// by two spaces per level.
func (f Forest) String() string {
	var sb strings.Builder
	f.Walk(func(node DependencyNode, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.Package.String())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

// Digest returns the xxhash64 of the canonical rendering as a hex string.
func (f Forest) Digest() string {
	return strconv.FormatUint(xxhash.Sum64String(f.String()), 16)
}
