package logger_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/deptree/internal/adapters/logger"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Debug("hidden debug")
	lg.Info("some message")
	lg.Warn("some warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden debug")
	assert.Contains(t, out, "some message")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "some warning")
	assert.Contains(t, out, "WARN")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Contains(t, buf.String(), "DEBU")

	buf.Reset()
	lg.SetLevel(domain.LogLevelError)
	lg.Warn("suppressed")
	assert.Empty(t, buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)

	lg.SetOutput(&second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(os.ErrPermission)

	assert.Contains(t, buf.String(), "permission denied")
	assert.Contains(t, buf.String(), "ERRO")
}

func TestLogger_ErrorChainAndMetadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	err := zerr.Wrap(domain.ErrNoLockfile, "no lockfile found in /work/app")
	err = zerr.With(err, "dir", "/work/app")
	err = zerr.With(err, "stderr", "very long stderr")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "no lockfile found in /work/app")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ no lockfile found")
	assert.Contains(t, out, "dir=/work/app")
	assert.NotContains(t, out, "very long stderr")
	assert.Equal(t, 1, strings.Count(out, "ERRO"))
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf).Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorJoined(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(errors.Join(errors.New("first"), errors.New("second")))

	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}
