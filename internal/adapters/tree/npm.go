package tree

import (
	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
)

// NpmTree parses the output of "npm ls --json --all".
//
// The payload is the root project object; its "dependencies" are the roots of
// the forest. Top-level entries flagged "extraneous" are installed but not
// declared, and are left out.
type NpmTree struct{}

// Parse implements Variant. The manifest is not needed: npm roots its own output.
func (NpmTree) Parse(raw []byte, _ domain.ManifestInfo) (domain.Forest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, malformed("npm output is not valid JSON", string(raw))
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, malformed("npm output must be a JSON object", root.Raw)
	}

	deps := root.Get("dependencies")
	if !deps.Exists() {
		return domain.Forest{}, nil
	}
	if !deps.IsObject() {
		return nil, malformed("npm dependencies must be an object", deps.Raw)
	}

	w := &nestedWalker{}
	forest := domain.Forest{}
	var err error
	deps.ForEach(func(key, value gjson.Result) bool {
		if value.Get("extraneous").Bool() {
			return true
		}
		var node domain.DependencyNode
		node, err = w.node(key.String(), value)
		if err != nil {
			return false
		}
		forest = append(forest, node)
		return true
	})
	if err != nil {
		return nil, err
	}
	return forest, nil
}
