package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deptree/internal/adapters/config"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.FileConfigLoader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: "1"
maxConcurrency: 4
timeoutPerManifest: 90s
failFast: true
env:
  npm_config_registry: http://registry.local
  PATH: /opt/node/bin
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 90*time.Second, cfg.TimeoutPerManifest)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, "http://registry.local", cfg.Env["npm_config_registry"])
	assert.Equal(t, "/opt/node/bin", cfg.Env["PATH"])
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.Equal(t, &domain.Config{}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "maxParallel: 3\n"},
		{"bad yaml", "maxConcurrency: [\n"},
		{"negative concurrency", "maxConcurrency: -2\n"},
		{"bad duration", "timeoutPerManifest: soon\n"},
		{"negative duration", "timeoutPerManifest: -1m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, t.TempDir(), tt.content))
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), config.DefaultFilename)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), config.DefaultFilename))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestFileConfigLoader_Discovery(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "maxConcurrency: 2\n")

	nested := filepath.Join(root, "packages", "web")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxConcurrency)

	writeConfig(t, nested, "maxConcurrency: 7\n")
	cfg, err = newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxConcurrency, "nearest file wins")
}

func TestFileConfigLoader_NoFile(t *testing.T) {
	loader := newLoader(t)
	loader.Filename = "deptree-test-never-present.yaml"

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &domain.Config{}, cfg)
}

func TestFileConfigLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "failFast: true\n")

	cfg, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.FailFast)
}
