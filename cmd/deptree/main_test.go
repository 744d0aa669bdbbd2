package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/deptree/internal/adapters/telemetry"
	"go.trai.ch/deptree/internal/app"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports/mocks"
	"go.trai.ch/deptree/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type testApp struct {
	components *app.Components
	loader     *mocks.MockConfigLoader
	reader     *mocks.MockManifestReader
	detector   *mocks.MockLockfileDetector
	logger     *mocks.MockLogger
	reporter   *mocks.MockReportWriter
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		loader:   mocks.NewMockConfigLoader(ctrl),
		reader:   mocks.NewMockManifestReader(ctrl),
		detector: mocks.NewMockLockfileDetector(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		reporter: mocks.NewMockReportWriter(ctrl),
	}
	selector := mocks.NewMockBackendSelector(ctrl)
	ta.logger.EXPECT().SetLevel(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	orch := orchestrator.New(ta.reader, ta.detector, selector, mocks.NewMockRunner(ctrl),
		mocks.NewMockTreeParser(ctrl), telemetry.NewNoOp(), ta.logger)
	application := app.New(ta.loader, orch, ta.detector, selector, ta.reporter, ta.logger)
	ta.components = app.NewComponents(application, ta.logger, telemetry.NewNoOp())
	return ta
}

func (ta *testApp) provider(_ context.Context) (*app.Components, func(), error) {
	return ta.components, func() { _ = ta.components.Close() }, nil
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ta := newTestApp(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, ta.provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "deptree version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().LoadFile("missing.yaml").
		Return(nil, zerr.Wrap(domain.ErrInvalidInput, "failed to read config file"))
	ta.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	exitCode := run(context.Background(), []string{"resolve", "-c", "missing.yaml"},
		new(bytes.Buffer), new(bytes.Buffer), ta.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_ResolutionFailed verifies that per-manifest failures exit 1 without a second error log.
func TestRun_ResolutionFailed(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	ta.reader.EXPECT().Read(gomock.Any()).Return(domain.ManifestInfo{}, nil)
	ta.detector.EXPECT().Detect("/work/web").
		Return(domain.LockfileKind(""), zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in /work/web"))
	ta.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	// Logged once by the application for the failed manifest.
	ta.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"resolve", "/work/web/package.json"},
		new(bytes.Buffer), new(bytes.Buffer), ta.provider)
	assert.Equal(t, 1, exitCode)
}
