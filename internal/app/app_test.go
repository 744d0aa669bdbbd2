package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deptree/internal/adapters/telemetry"
	"go.trai.ch/deptree/internal/app"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports/mocks"
	"go.trai.ch/deptree/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var npmBackend = domain.Backend{
	Kind:         domain.LockfileNpm,
	Command:      "npm",
	InstallArgs:  []string{"ci"},
	ListArgs:     []string{"ls", "--json", "--all"},
	InstalledDir: "node_modules",
	Format:       domain.FormatNpmTree,
}

type fixture struct {
	loader   *mocks.MockConfigLoader
	reader   *mocks.MockManifestReader
	detector *mocks.MockLockfileDetector
	selector *mocks.MockBackendSelector
	runner   *mocks.MockRunner
	parser   *mocks.MockTreeParser
	reporter *mocks.MockReportWriter
	logger   *mocks.MockLogger
	stdout   *bytes.Buffer
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		reader:   mocks.NewMockManifestReader(ctrl),
		detector: mocks.NewMockLockfileDetector(ctrl),
		selector: mocks.NewMockBackendSelector(ctrl),
		runner:   mocks.NewMockRunner(ctrl),
		parser:   mocks.NewMockTreeParser(ctrl),
		reporter: mocks.NewMockReportWriter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stdout:   &bytes.Buffer{},
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	orch := orchestrator.New(f.reader, f.detector, f.selector, f.runner, f.parser, telemetry.NewNoOp(), f.logger)
	f.app = app.New(f.loader, orch, f.detector, f.selector, f.reporter, f.logger).WithStdout(f.stdout)
	return f
}

func (f *fixture) expectPipeline(forest domain.Forest) {
	f.reader.EXPECT().Read(gomock.Any()).Return(domain.ManifestInfo{}, nil).AnyTimes()
	f.detector.EXPECT().Detect(gomock.Any()).Return(domain.LockfileNpm, nil).AnyTimes()
	f.selector.EXPECT().Select(domain.LockfileNpm).Return(npmBackend, nil).AnyTimes()
	f.parser.EXPECT().Parse(domain.FormatNpmTree, gomock.Any(), gomock.Any()).Return(forest, nil).AnyTimes()
}

func TestApp_Resolve_DirectoryExpandsToManifest(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	f.expectPipeline(domain.Forest{{Package: domain.NewPackageRef("express", "4.18.2")}})
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]byte("{}"), nil)
	f.reporter.EXPECT().Write(f.stdout, gomock.Any()).
		DoAndReturn(func(_ io.Writer, res *domain.Resolution) error {
			assert.Equal(t, []domain.Manifest{domain.Manifest(filepath.Join(dir, "package.json"))},
				res.Graph.Manifests())
			return nil
		})

	err := f.app.Resolve(context.Background(), []string{dir}, app.ResolveOptions{})
	require.NoError(t, err)
}

func TestApp_Resolve_FlagsOverrideConfig(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{
		MaxConcurrency:     4,
		TimeoutPerManifest: time.Minute,
		Env:                map[string]string{"NPM_CONFIG_CACHE": "/cache"},
	}, nil)
	f.expectPipeline(domain.Forest{})
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.RunRequest) ([]byte, error) {
			assert.Equal(t, 5*time.Second, req.Timeout)
			assert.Equal(t, "/cache", req.Env["NPM_CONFIG_CACHE"])
			return []byte("{}"), nil
		})
	f.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	timeout := 5 * time.Second
	err := f.app.Resolve(context.Background(), []string{"/work/web/package.json"}, app.ResolveOptions{
		TimeoutPerManifest: &timeout,
	})
	require.NoError(t, err)
}

func TestApp_Resolve_ExplicitConfig(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().LoadFile("/etc/deptree.yaml").Return(&domain.Config{}, nil)
	f.expectPipeline(domain.Forest{})
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]byte("{}"), nil)
	f.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	err := f.app.Resolve(context.Background(), []string{"/work/web/package.json"}, app.ResolveOptions{
		ConfigPath: "/etc/deptree.yaml",
	})
	require.NoError(t, err)
}

func TestApp_Resolve_ConfigError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrInvalidInput, "maxConcurrency must not be negative"))

	err := f.app.Resolve(context.Background(), nil, app.ResolveOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Resolve_InvalidOverride(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)

	jobs := -2
	err := f.app.Resolve(context.Background(), nil, app.ResolveOptions{MaxConcurrency: &jobs})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApp_Resolve_FailureReportsAndFails(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	f.reader.EXPECT().Read(gomock.Any()).Return(domain.ManifestInfo{}, nil)
	f.detector.EXPECT().Detect("/work/web").
		Return(domain.LockfileKind(""), zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in /work/web"))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrNoLockfile)
		assert.Contains(t, err.Error(), "/work/web/package.json")
	})
	f.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ io.Writer, res *domain.Resolution) error {
			assert.Len(t, res.Failures, 1)
			return nil
		})

	err := f.app.Resolve(context.Background(), []string{"/work/web/package.json"}, app.ResolveOptions{})
	require.ErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestApp_Resolve_FatalAborts(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	f.reader.EXPECT().Read(gomock.Any()).Return(domain.ManifestInfo{}, nil)
	f.detector.EXPECT().Detect(gomock.Any()).Return(domain.LockfileKind("bun"), nil)
	f.selector.EXPECT().Select(domain.LockfileKind("bun")).
		Return(domain.Backend{}, zerr.Wrap(domain.ErrFatal, "no backend registered"))

	err := f.app.Resolve(context.Background(), []string{"/work/web/package.json"}, app.ResolveOptions{})
	require.ErrorIs(t, err, domain.ErrFatal)
	assert.NotErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestApp_Resolve_OutputFile(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "report.json")

	f.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	f.expectPipeline(domain.Forest{})
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]byte("{}"), nil)
	f.reporter.EXPECT().WriteFile(out, gomock.Any()).Return(nil)

	err := f.app.Resolve(context.Background(), []string{"/work/web/package.json"}, app.ResolveOptions{Output: out})
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
}

func TestApp_Detect(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect("/work/web").Return(domain.LockfileNpm, nil)
	f.selector.EXPECT().Select(domain.LockfileNpm).Return(npmBackend, nil)
	f.detector.EXPECT().Detect("/work/empty").
		Return(domain.LockfileKind(""), zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in /work/empty"))
	f.logger.EXPECT().Error(gomock.Any())

	got := f.app.Detect([]string{"/work/web", "/work/empty"})
	require.Len(t, got, 2)
	assert.Equal(t, domain.LockfileNpm, got[0].Kind)
	assert.Equal(t, "npm", got[0].Backend.Command)
	require.NoError(t, got[0].Err)
	require.ErrorIs(t, got[1].Err, domain.ErrNoLockfile)
}

func TestApp_Detect_DefaultsToWorkingDirectory(t *testing.T) {
	f := newFixture(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	f.detector.EXPECT().Detect(cwd).Return(domain.LockfileNpm, nil)
	f.selector.EXPECT().Select(domain.LockfileNpm).Return(npmBackend, nil)

	got := f.app.Detect(nil)
	require.Len(t, got, 1)
	assert.Equal(t, cwd, got[0].Dir)
}

func TestApp_SetLogLevel(t *testing.T) {
	f := newFixture(t)

	f.logger.EXPECT().SetLevel(domain.LogLevelDebug)
	f.app.SetLogLevel(true)

	f.logger.EXPECT().SetLevel(domain.LogLevelInfo)
	f.app.SetLogLevel(false)
}
