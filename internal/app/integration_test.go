package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/adapters/backend"
	"go.trai.ch/deptree/internal/adapters/config"
	"go.trai.ch/deptree/internal/adapters/lockfile"
	"go.trai.ch/deptree/internal/adapters/logger"
	"go.trai.ch/deptree/internal/adapters/manifest"
	"go.trai.ch/deptree/internal/adapters/report"
	"go.trai.ch/deptree/internal/adapters/shell"
	"go.trai.ch/deptree/internal/adapters/telemetry"
	"go.trai.ch/deptree/internal/adapters/tree"
	"go.trai.ch/deptree/internal/app"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/engine/orchestrator"
)

// fakeNpm installs by creating node_modules and lists by printing $FIXTURE,
// exiting with $LS_EXIT.
const fakeNpm = `#!/bin/sh
case "$1" in
ci) mkdir node_modules ;;
ls) cat "$FIXTURE"; exit "${LS_EXIT:-0}" ;;
*) echo "unexpected command $1" >&2; exit 2 ;;
esac
`

func newRealApp(t *testing.T, stdout io.Writer) *app.App {
	t.Helper()
	log := logger.NewWithWriter(io.Discard)
	orch := orchestrator.New(
		manifest.NewReader(),
		lockfile.NewDetector(),
		backend.NewSelector(),
		shell.NewRunner(log),
		tree.NewParser(),
		telemetry.NewNoOp(),
		log,
	)
	return app.New(config.NewLoader(log), orch, lockfile.NewDetector(), backend.NewSelector(), report.NewWriter(), log).
		WithStdout(stdout)
}

func writeProject(t *testing.T, root, name string, lockfiles ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"name":"`+name+`","dependencies":{"express":"^4.18.0","left-pad":"^1.3.0"}}`), 0o600))
	for _, lf := range lockfiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, lf), []byte("{}"), 0o600))
	}
	return dir
}

func writeConfig(t *testing.T, root string, env ...string) string {
	t.Helper()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o750))
	//nolint:gosec // Test script must be executable
	require.NoError(t, os.WriteFile(filepath.Join(bin, "npm"), []byte(fakeNpm), 0o755))

	fixture, err := filepath.Abs(filepath.Join("testdata", "npm-ls.json"))
	require.NoError(t, err)
	env = append([]string{"PATH: " + bin}, env...)
	if !slices.ContainsFunc(env, func(e string) bool { return strings.HasPrefix(e, "FIXTURE:") }) {
		env = append(env, "FIXTURE: "+fixture)
	}

	cfg := filepath.Join(root, "deptree.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`maxConcurrency: 2
timeoutPerManifest: 30s
env:
  `+strings.Join(env, "\n  ")+`
`), 0o600))
	return cfg
}

func TestIntegration_ResolveWithFakeNpm(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root)
	web := writeProject(t, root, "web", "package-lock.json")
	api := writeProject(t, root, "api", "npm-shrinkwrap.json")
	none := writeProject(t, root, "none")
	both := writeProject(t, root, "both", "package-lock.json", "yarn.lock")

	var out bytes.Buffer
	err := newRealApp(t, &out).Resolve(context.Background(), []string{web, api, none, both},
		app.ResolveOptions{ConfigPath: cfg})
	require.ErrorIs(t, err, domain.ErrResolutionFailed)

	doc := gjson.ParseBytes(out.Bytes())
	manifests := doc.Get("manifests").Array()
	require.Len(t, manifests, 2)
	assert.Equal(t, filepath.Join(api, "package.json"), manifests[0].Get("manifest").String())
	assert.Equal(t, filepath.Join(web, "package.json"), manifests[1].Get("manifest").String())
	assert.Equal(t, int64(4), manifests[1].Get("packageCount").Int())
	assert.Equal(t, "express", manifests[1].Get("forest.0.package.name").String())
	assert.Equal(t, "ms", manifests[1].Get("forest.0.dependencies.0.dependencies.0.package.name").String())
	assert.Equal(t, manifests[0].Get("digest").String(), manifests[1].Get("digest").String())

	kinds := map[string]string{}
	for _, f := range doc.Get("failures").Array() {
		kinds[f.Get("manifest").String()] = f.Get("kind").String()
	}
	assert.Equal(t, map[string]string{
		filepath.Join(none, "package.json"): "NoLockfile",
		filepath.Join(both, "package.json"): "AmbiguousLockfile",
	}, kinds)

	for _, dir := range []string{web, api} {
		assert.NoDirExists(t, filepath.Join(dir, "node_modules"))
	}
}

func TestIntegration_ContaminatedWorkspaceIsUntouched(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root)
	web := writeProject(t, root, "web", "package-lock.json")
	stale := filepath.Join(web, "node_modules", "stale")
	require.NoError(t, os.MkdirAll(stale, 0o750))

	var out bytes.Buffer
	err := newRealApp(t, &out).Resolve(context.Background(), []string{web}, app.ResolveOptions{ConfigPath: cfg})
	require.ErrorIs(t, err, domain.ErrResolutionFailed)

	assert.Equal(t, "WorkspaceContaminated", gjson.GetBytes(out.Bytes(), "failures.0.kind").String())
	assert.DirExists(t, stale)
}

func TestIntegration_RepeatedResolveLeavesDirectoryClean(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root)
	web := writeProject(t, root, "web", "package-lock.json")
	reportPath := filepath.Join(root, "out", "report.json")

	a := newRealApp(t, io.Discard)
	var digests []string
	for range 2 {
		require.NoError(t, a.Resolve(context.Background(), []string{web},
			app.ResolveOptions{ConfigPath: cfg, Output: reportPath}))
		assert.NoDirExists(t, filepath.Join(web, "node_modules"))

		data, err := os.ReadFile(reportPath)
		require.NoError(t, err)
		digests = append(digests, gjson.GetBytes(data, "digest").String())
	}
	assert.Equal(t, digests[0], digests[1])
}

func TestIntegration_NpmProblemExitReportsUnresolvedPackage(t *testing.T) {
	root := t.TempDir()
	fixture, err := filepath.Abs(filepath.Join("testdata", "npm-ls-missing.json"))
	require.NoError(t, err)
	cfg := writeConfig(t, root, "FIXTURE: "+fixture, "LS_EXIT: \"1\"")
	web := writeProject(t, root, "web", "package-lock.json")

	var out bytes.Buffer
	err = newRealApp(t, &out).Resolve(context.Background(), []string{web}, app.ResolveOptions{ConfigPath: cfg})
	require.ErrorIs(t, err, domain.ErrResolutionFailed)

	failure := gjson.GetBytes(out.Bytes(), "failures.0")
	assert.Equal(t, "UnresolvedPackage", failure.Get("kind").String())
	assert.Contains(t, failure.Get("message").String(), "left-pad")
	assert.NoDirExists(t, filepath.Join(web, "node_modules"))
}
