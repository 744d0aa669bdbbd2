// Package lockfile implements detection of the package manager governing a project directory.
package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

// Detector implements ports.LockfileDetector by probing the known lockfile names.
type Detector struct {
	known []domain.Lockfile
}

// NewDetector creates a Detector over domain.KnownLockfiles.
func NewDetector() *Detector {
	return &Detector{known: domain.KnownLockfiles}
}

// Detect returns the single lockfile kind present in dir.
// Files that are not recognized lockfiles never influence the result.
func (d *Detector) Detect(dir string) (domain.LockfileKind, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidInput, "cannot access project directory "+dir), "dir", dir)
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidInput, dir+" is not a directory"), "dir", dir)
	}

	var (
		kind  domain.LockfileKind
		found []string
	)
	for _, lf := range d.known {
		ok, err := isRegularFile(filepath.Join(dir, lf.Name))
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrInvalidInput, "cannot inspect "+lf.Name+" in "+dir), "dir", dir)
		}
		if !ok {
			continue
		}
		found = append(found, lf.Name)
		kind = lf.Kind
	}

	switch len(found) {
	case 0:
		return "", zerr.With(zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in "+dir), "dir", dir)
	case 1:
		return kind, nil
	default:
		msg := fmt.Sprintf("%s contains multiple lockfiles (%s), it is ambiguous which one to use",
			dir, strings.Join(found, ", "))
		err := zerr.With(zerr.Wrap(domain.ErrAmbiguousLockfile, msg), "dir", dir)
		return "", zerr.With(err, "lockfiles", found)
	}
}

func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
