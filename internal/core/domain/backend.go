package domain

import "time"

// TreeFormat tags the parser variant that understands a backend's tree output.
type TreeFormat string

const (
	// FormatNpmTree is the nested object printed by "npm ls --json".
	FormatNpmTree TreeFormat = "NpmTree"
	// FormatYarnTree is the flat indirection table printed by "yarn list --json".
	FormatYarnTree TreeFormat = "YarnTree"
	// FormatPnpmTree is the nested project array printed by "pnpm list --json".
	FormatPnpmTree TreeFormat = "PnpmTree"
)

// Backend describes how to drive one package manager. Backend values are
// statically defined and never mutated.
type Backend struct {
	// Kind is the lockfile kind this backend serves.
	Kind LockfileKind
	// Command is the executable name, looked up on PATH.
	Command string
	// InstallArgs materialize the locked dependencies into InstalledDir.
	InstallArgs []string
	// ListArgs print the resolved dependency tree on stdout.
	ListArgs []string
	// ListProblemExitCode is the exit code with which the list step reports
	// problems in the tree while still printing all of it. Zero means none.
	ListProblemExitCode int
	// InstalledDir is the directory the install step creates inside the project.
	InstalledDir string
	// Format selects the tree parser variant.
	Format TreeFormat
}

// RunRequest is a single backend invocation against a project directory.
type RunRequest struct {
	Backend Backend
	Dir     string
	// Timeout bounds the whole invocation. Zero means no timeout.
	Timeout time.Duration
	// Env holds extra "KEY=VALUE" pairs layered over the inherited environment.
	Env map[string]string
}
