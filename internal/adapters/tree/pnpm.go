package tree

import (
	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
)

// pnpmRootGroups are the per-project dependency groups, in output order.
var pnpmRootGroups = []string{"dependencies", "devDependencies", "optionalDependencies"}

// PnpmTree parses the output of "pnpm list --json --depth Infinity": an array
// with one object per project, each carrying nested dependency groups.
type PnpmTree struct{}

// Parse implements Variant.
func (PnpmTree) Parse(raw []byte, _ domain.ManifestInfo) (domain.Forest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, malformed("pnpm output is not valid JSON", string(raw))
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, malformed("pnpm output must be a JSON array", root.Raw)
	}

	w := &nestedWalker{}
	forest := domain.Forest{}
	var err error
	root.ForEach(func(_, project gjson.Result) bool {
		if !project.IsObject() {
			err = malformed("pnpm project entry must be an object", project.Raw)
			return false
		}
		owner := project.Get("name").String()
		for _, group := range pnpmRootGroups {
			var nodes []domain.DependencyNode
			nodes, err = w.children(project.Get(group), owner)
			if err != nil {
				return false
			}
			forest = append(forest, nodes...)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return forest, nil
}
