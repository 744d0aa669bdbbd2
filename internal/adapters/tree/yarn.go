package tree

import (
	"bytes"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
)

// YarnTree parses the output of "yarn list --json".
//
// Yarn prints a stream of JSON records, one per line. The record of type
// "tree" holds data.trees: one entry per package installed at the top of
// node_modules, named "name@version". An entry's children are either nested
// installs, with their own exact version and children, or "shadow" references
// to a package installed elsewhere, named "name@range". Shadow references are
// resolved by name the way Node resolves modules: the nearest enclosing nested
// install first, then the top-level table.
type YarnTree struct{}

type yarnEntry struct {
	ref      domain.PackageRef
	children gjson.Result
}

type yarnScope map[string]*yarnEntry

// Parse implements Variant. info.Direct selects the roots among the top-level
// entries; when nil, every top-level entry is a root. An optional dependency
// that yarn did not install is left out.
func (YarnTree) Parse(raw []byte, info domain.ManifestInfo) (domain.Forest, error) {
	trees, err := yarnTrees(raw)
	if err != nil {
		return nil, err
	}

	table := yarnScope{}
	var order []*yarnEntry
	var tableErr error
	trees.ForEach(func(_, value gjson.Result) bool {
		var e *yarnEntry
		e, tableErr = newYarnEntry(value)
		if tableErr != nil {
			return false
		}
		name := e.ref.Name.String()
		if _, dup := table[name]; !dup {
			table[name] = e
			order = append(order, e)
		}
		return true
	})
	if tableErr != nil {
		return nil, tableErr
	}

	roots := order
	if info.Direct != nil {
		roots = make([]*yarnEntry, 0, len(info.Direct))
		for _, name := range info.Direct {
			e, ok := table[name]
			if !ok {
				if info.IsOptional(name) {
					continue
				}
				return nil, unresolved(name, "is declared but not installed")
			}
			roots = append(roots, e)
		}
	}

	b := &yarnBuilder{top: table}
	forest := make(domain.Forest, 0, len(roots))
	for _, e := range roots {
		node, err := b.node(e, nil)
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}
	return forest, nil
}

// yarnTrees finds the tree record in the stream and returns its data.trees.
func yarnTrees(raw []byte) (gjson.Result, error) {
	var trees gjson.Result
	found := false
	for line := range bytes.Lines(raw) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return gjson.Result{}, malformed("yarn output line is not valid JSON", string(line))
		}
		record := gjson.ParseBytes(line)
		if record.Get("type").String() != "tree" {
			continue
		}
		trees = record.Get("data.trees")
		if !trees.IsArray() {
			return gjson.Result{}, malformed("yarn tree record has no trees array", record.Raw)
		}
		found = true
	}
	if !found {
		return gjson.Result{}, malformed("yarn output has no tree record", string(raw))
	}
	return trees, nil
}

func newYarnEntry(value gjson.Result) (*yarnEntry, error) {
	if !value.IsObject() {
		return nil, malformed("yarn tree entry must be an object", value.Raw)
	}
	nameField := value.Get("name")
	if nameField.Type != gjson.String {
		return nil, malformed("yarn tree entry has no name", value.Raw)
	}
	name, version := splitRef(nameField.Str)
	if name == "" {
		return nil, malformed("yarn tree entry has an empty name", value.Raw)
	}
	if version == "" {
		return nil, unresolved(name, "has no resolved version")
	}
	children := value.Get("children")
	if children.Exists() && children.Type != gjson.Null && !children.IsArray() {
		return nil, malformed("children of "+nameField.Str+" must be an array", children.Raw)
	}
	return &yarnEntry{ref: domain.NewPackageRef(name, version), children: children}, nil
}

// splitRef splits "name@version", keeping the leading "@" of scoped names.
func splitRef(s string) (string, string) {
	i := strings.LastIndex(s, "@")
	if i <= 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

type yarnBuilder struct {
	top  yarnScope
	path []domain.PackageRef
}

// node expands e. scopes holds the nested installs enclosing e, innermost last.
func (b *yarnBuilder) node(e *yarnEntry, scopes []yarnScope) (domain.DependencyNode, error) {
	if i := slices.Index(b.path, e.ref); i >= 0 {
		return domain.DependencyNode{}, cycle(append(slices.Clone(b.path[i:]), e.ref))
	}

	type child struct {
		entry  *yarnEntry
		shadow string
	}
	var kids []child
	nested := yarnScope{}
	var err error
	e.children.ForEach(func(_, value gjson.Result) bool {
		if value.Get("shadow").Bool() {
			name, _ := splitRef(value.Get("name").String())
			if name == "" {
				err = malformed("shadow reference of "+e.ref.String()+" has no name", value.Raw)
				return false
			}
			kids = append(kids, child{shadow: name})
			return true
		}
		var c *yarnEntry
		c, err = newYarnEntry(value)
		if err != nil {
			return false
		}
		nested[c.ref.Name.String()] = c
		kids = append(kids, child{entry: c})
		return true
	})
	if err != nil {
		return domain.DependencyNode{}, err
	}

	inner := scopes
	if len(nested) > 0 {
		inner = append(slices.Clone(scopes), nested)
	}

	b.path = append(b.path, e.ref)
	defer func() { b.path = b.path[:len(b.path)-1] }()

	deps := make([]domain.DependencyNode, 0, len(kids))
	for _, k := range kids {
		target, enclosing := k.entry, inner
		if target == nil {
			target, enclosing = b.resolve(k.shadow, inner)
			if target == nil {
				return domain.DependencyNode{}, unresolved(k.shadow, "required by "+e.ref.String()+" is not installed")
			}
		}
		node, err := b.node(target, enclosing)
		if err != nil {
			return domain.DependencyNode{}, err
		}
		deps = append(deps, node)
	}
	return domain.DependencyNode{Package: e.ref, Dependencies: deps}, nil
}

// resolve finds the install of name visible from scopes and returns it with
// the scopes enclosing that install.
func (b *yarnBuilder) resolve(name string, scopes []yarnScope) (*yarnEntry, []yarnScope) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if e, ok := scopes[i][name]; ok {
			return e, scopes[:i+1]
		}
	}
	return b.top[name], nil
}
