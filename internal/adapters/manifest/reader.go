// Package manifest reads package.json manifests.
package manifest

import (
	"os"
	"slices"

	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

const optionalGroup = "optionalDependencies"

// dependencyGroups are read in this order; a name declared in several groups counts once.
var dependencyGroups = []string{"dependencies", "devDependencies", optionalGroup}

// Reader implements ports.ManifestReader for package.json files.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads m and returns its name, version and declared direct dependencies.
func (r *Reader) Read(m domain.Manifest) (domain.ManifestInfo, error) {
	path := m.String()
	info, err := os.Stat(path)
	if err != nil {
		return domain.ManifestInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "cannot access manifest "+path), "manifest", path)
	}
	if !info.Mode().IsRegular() {
		return domain.ManifestInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, path+" is not a regular file"), "manifest", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ManifestInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "failed to read manifest "+path), "manifest", path)
	}
	if !gjson.ValidBytes(data) {
		return domain.ManifestInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "manifest "+path+" is not valid JSON"), "manifest", path)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return domain.ManifestInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "manifest "+path+" must be a JSON object"), "manifest", path)
	}

	out := domain.ManifestInfo{
		Name:     doc.Get("name").String(),
		Version:  doc.Get("version").String(),
		Direct:   []string{},
		Optional: []string{},
	}
	for _, group := range dependencyGroups {
		deps := doc.Get(group)
		if !deps.Exists() || deps.Type == gjson.Null {
			continue
		}
		if !deps.IsObject() {
			err := zerr.Wrap(domain.ErrInvalidInput, group+" in manifest "+path+" must be an object")
			return domain.ManifestInfo{}, zerr.With(err, "manifest", path)
		}
		deps.ForEach(func(key, _ gjson.Result) bool {
			name := key.String()
			if !slices.Contains(out.Direct, name) {
				out.Direct = append(out.Direct, name)
			}
			// optionalDependencies override an entry of the same name in dependencies.
			if group == optionalGroup && !slices.Contains(out.Optional, name) {
				out.Optional = append(out.Optional, name)
			}
			return true
		})
	}
	return out, nil
}
