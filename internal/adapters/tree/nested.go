package tree

import (
	"slices"

	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
)

// nestedWalker builds nodes from objects of the form
// {"<name>": {"version": "...", "dependencies": {...}}}.
type nestedWalker struct {
	path []domain.PackageRef
}

func (w *nestedWalker) children(deps gjson.Result, owner string) ([]domain.DependencyNode, error) {
	if !deps.Exists() || deps.Type == gjson.Null {
		return nil, nil
	}
	if !deps.IsObject() {
		return nil, malformed("dependencies of "+owner+" must be an object", deps.Raw)
	}

	var nodes []domain.DependencyNode
	var err error
	deps.ForEach(func(key, value gjson.Result) bool {
		var node domain.DependencyNode
		node, err = w.node(key.String(), value)
		if err != nil {
			return false
		}
		nodes = append(nodes, node)
		return true
	})
	return nodes, err
}

func (w *nestedWalker) node(name string, entry gjson.Result) (domain.DependencyNode, error) {
	if !entry.IsObject() {
		return domain.DependencyNode{}, malformed("entry for "+name+" must be an object", entry.Raw)
	}
	if entry.Get("missing").Bool() {
		return domain.DependencyNode{}, unresolved(name, "is missing")
	}
	version := entry.Get("version")
	if version.Type != gjson.String || version.Str == "" {
		return domain.DependencyNode{}, unresolved(name, "has no resolved version")
	}

	ref := domain.NewPackageRef(name, version.Str)
	if i := slices.Index(w.path, ref); i >= 0 {
		return domain.DependencyNode{}, cycle(append(slices.Clone(w.path[i:]), ref))
	}

	w.path = append(w.path, ref)
	children, err := w.children(entry.Get("dependencies"), ref.String())
	w.path = w.path[:len(w.path)-1]
	if err != nil {
		return domain.DependencyNode{}, err
	}
	return domain.DependencyNode{Package: ref, Dependencies: children}, nil
}
