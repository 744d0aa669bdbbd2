package domain

// LockfileKind identifies the package manager that governs a project directory.
type LockfileKind string

const (
	// LockfileNpm is selected by package-lock.json.
	LockfileNpm LockfileKind = "npm"
	// LockfileNpmShrinkwrap is selected by npm-shrinkwrap.json and is driven by npm.
	LockfileNpmShrinkwrap LockfileKind = "npm-shrinkwrap"
	// LockfileYarn is selected by yarn.lock.
	LockfileYarn LockfileKind = "yarn"
	// LockfilePnpm is selected by pnpm-lock.yaml.
	LockfilePnpm LockfileKind = "pnpm"
)

// Lockfile is a recognized lockfile name and the kind it selects.
type Lockfile struct {
	Name string
	Kind LockfileKind
}

// KnownLockfiles lists every recognized lockfile name, one per kind.
var KnownLockfiles = []Lockfile{
	{Name: "package-lock.json", Kind: LockfileNpm},
	{Name: "npm-shrinkwrap.json", Kind: LockfileNpmShrinkwrap},
	{Name: "yarn.lock", Kind: LockfileYarn},
	{Name: "pnpm-lock.yaml", Kind: LockfilePnpm},
}

func (k LockfileKind) String() string {
	return string(k)
}
