// Package report implements the JSON report of a resolution.
package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

// Document is the serialized form of a resolution.
type Document struct {
	// Digest fingerprints every resolved manifest together with its forest digest.
	Digest    string           `json:"digest"`
	Manifests []ManifestReport `json:"manifests"`
	Failures  []FailureReport  `json:"failures"`
}

// ManifestReport describes one successfully resolved manifest.
type ManifestReport struct {
	Manifest     string              `json:"manifest"`
	Digest       string              `json:"digest"`
	PackageCount int                 `json:"packageCount"`
	Packages     []domain.PackageRef `json:"packages"`
	Forest       domain.Forest       `json:"forest"`
}

// FailureReport describes one manifest that failed to resolve.
type FailureReport struct {
	Manifest string             `json:"manifest"`
	Kind     domain.FailureKind `json:"kind"`
	Message  string             `json:"message"`
}

// NewDocument builds the report document for res. Entries are sorted by manifest path.
func NewDocument(res *domain.Resolution) Document {
	doc := Document{
		Manifests: []ManifestReport{},
		Failures:  []FailureReport{},
	}

	h := xxhash.New()
	if res.Graph != nil {
		for _, m := range res.Graph.Manifests() {
			forest, _ := res.Graph.Forest(m)
			packages := res.Graph.Packages(m)
			if packages == nil {
				packages = []domain.PackageRef{}
			}
			if forest == nil {
				forest = domain.Forest{}
			}
			digest := forest.Digest()
			_, _ = h.WriteString(m.String())
			_, _ = h.WriteString("\x00")
			_, _ = h.WriteString(digest)
			_, _ = h.WriteString("\n")

			doc.Manifests = append(doc.Manifests, ManifestReport{
				Manifest:     m.String(),
				Digest:       digest,
				PackageCount: len(packages),
				Packages:     packages,
				Forest:       forest,
			})
		}
	}
	doc.Digest = strconv.FormatUint(h.Sum64(), 16)

	for _, f := range res.SortedFailures() {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		doc.Failures = append(doc.Failures, FailureReport{
			Manifest: f.Manifest.String(),
			Kind:     f.Kind,
			Message:  msg,
		})
	}
	return doc
}

// Writer implements ports.ReportWriter.
type Writer struct{}

// NewWriter creates a new report Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write encodes res as indented JSON to w.
func (rw *Writer) Write(w io.Writer, res *domain.Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res)); err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	return nil
}

// WriteFile writes the report to path through a temporary file in the same
// directory, so readers never observe a partial report.
func (rw *Writer) WriteFile(path string, res *domain.Resolution) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for report"), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary report file"), "dir", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := rw.Write(tmp, res); err != nil {
		_ = tmp.Close()
		return zerr.With(err, "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temporary report file"), "path", path)
	}
	//nolint:gosec // Report files are meant to be readable
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set report permissions"), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write report"), "path", path)
	}
	return nil
}
