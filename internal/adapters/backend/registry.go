// Package backend holds the static table of supported package-manager backends.
package backend

import (
	"slices"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

// InstalledDir is the directory every supported backend installs into.
const InstalledDir = "node_modules"

// npmProblemExitCode is what "npm ls" exits with when an entry is missing,
// invalid or extraneous. The tree is still printed in full.
const npmProblemExitCode = 1

func npmBackend(kind domain.LockfileKind) domain.Backend {
	return domain.Backend{
		Kind:                kind,
		Command:             "npm",
		InstallArgs:         []string{"ci", "--ignore-scripts", "--no-audit", "--no-fund"},
		ListArgs:            []string{"ls", "--json", "--all"},
		ListProblemExitCode: npmProblemExitCode,
		InstalledDir:        InstalledDir,
		Format:              domain.FormatNpmTree,
	}
}

var table = map[domain.LockfileKind]domain.Backend{
	domain.LockfileNpm:           npmBackend(domain.LockfileNpm),
	domain.LockfileNpmShrinkwrap: npmBackend(domain.LockfileNpmShrinkwrap),

	domain.LockfileYarn: {
		Kind:         domain.LockfileYarn,
		Command:      "yarn",
		InstallArgs:  []string{"install", "--frozen-lockfile", "--ignore-scripts", "--non-interactive"},
		ListArgs:     []string{"list", "--json", "--no-progress", "--non-interactive"},
		InstalledDir: InstalledDir,
		Format:       domain.FormatYarnTree,
	},
	domain.LockfilePnpm: {
		Kind:         domain.LockfilePnpm,
		Command:      "pnpm",
		InstallArgs:  []string{"install", "--frozen-lockfile", "--ignore-scripts"},
		ListArgs:     []string{"list", "--json", "--depth", "Infinity"},
		InstalledDir: InstalledDir,
		Format:       domain.FormatPnpmTree,
	},
}

// Selector implements ports.BackendSelector over the static table.
type Selector struct{}

// NewSelector creates a Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns a copy of the backend record for kind.
func (s *Selector) Select(kind domain.LockfileKind) (domain.Backend, error) {
	b, ok := table[kind]
	if !ok {
		err := zerr.Wrap(domain.ErrFatal, "no backend registered for lockfile kind "+string(kind))
		return domain.Backend{}, zerr.With(err, "kind", string(kind))
	}
	b.InstallArgs = slices.Clone(b.InstallArgs)
	b.ListArgs = slices.Clone(b.ListArgs)
	return b, nil
}
