// Package shell runs package-manager backends as subprocesses.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultWaitDelay   = 5 * time.Second
	defaultStderrLimit = 8 << 10
)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger      ports.Logger
	waitDelay   time.Duration
	stderrLimit int
}

// Option configures a Runner.
type Option func(*Runner)

// WithWaitDelay bounds how long the runner waits for output pipes to close
// after a backend process has been killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.waitDelay = d
	}
}

// WithStderrLimit sets how many trailing stderr bytes are kept for diagnostics.
func WithStderrLimit(n int) Option {
	return func(r *Runner) {
		r.stderrLimit = n
	}
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{
		logger:      logger,
		waitDelay:   defaultWaitDelay,
		stderrLimit: defaultStderrLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run installs the backend's locked dependencies into req.Dir, prints the
// resolved tree and returns it. The installed-dependencies directory is
// removed before Run returns, whatever the outcome.
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) (out []byte, err error) {
	b := req.Backend
	if b.Command == "" || b.InstalledDir == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrFatal, "backend record is incomplete"), "kind", string(b.Kind))
	}

	installed := filepath.Join(req.Dir, b.InstalledDir)
	if err := checkClean(installed, req.Dir); err != nil {
		return nil, err
	}

	defer func() {
		if rmErr := os.RemoveAll(installed); rmErr != nil {
			cleanupErr := zerr.Wrap(domain.ErrWorkspaceContaminated, "failed to remove "+installed)
			err = errors.Join(err, zerr.With(cleanupErr, "dir", req.Dir))
			out = nil
		}
	}()

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	env := resolveEnvironment(os.Environ(), req.Env)

	if _, err := r.exec(ctx, runCtx, req, env, "install", b.InstallArgs); err != nil {
		return nil, err
	}
	return r.exec(ctx, runCtx, req, env, "list", b.ListArgs)
}

func checkClean(installed, dir string) error {
	_, err := os.Lstat(installed)
	switch {
	case err == nil:
		msg := fmt.Sprintf("%s directory already exists in %s", filepath.Base(installed), dir)
		return zerr.With(zerr.Wrap(domain.ErrWorkspaceContaminated, msg), "dir", dir)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "cannot inspect "+installed), "dir", dir)
	}
}

// exec runs one backend step. parent is the caller's context and tells
// cancellation apart from the per-manifest deadline carried by ctx.
func (r *Runner) exec(
	parent, ctx context.Context, req domain.RunRequest, env []string, step string, args []string,
) ([]byte, error) {
	name := req.Backend.Command

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // backend commands come from a static table
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = req.Dir
	cmd.Env = env
	cmd.WaitDelay = r.waitDelay
	setProcessGroup(cmd)

	var stdout bytes.Buffer
	stderr := &tailBuffer{limit: r.stderrLimit}
	cmd.Stderr = stderr
	if step == "list" {
		cmd.Stdout = &stdout
	}
	if vertex, ok := ports.VertexFromContext(parent); ok {
		cmd.Stderr = io.MultiWriter(stderr, vertex.Stderr())
		if step == "list" {
			vertex.Log(domain.LogLevelDebug, "listing dependency tree")
		} else {
			cmd.Stdout = vertex.Stdout()
		}
	}

	invocation := strings.Join(cmd.Args, " ")
	r.logger.Debug(fmt.Sprintf("running %q in %s", invocation, req.Dir))

	runErr := cmd.Run()
	// Descendants that outlived the step must not touch the directory after cleanup.
	if killErr := killProcessGroup(cmd); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
		r.logger.Debug(fmt.Sprintf("failed to kill process group of %q: %v", invocation, killErr))
	}
	if runErr == nil {
		return stdout.Bytes(), nil
	}

	switch {
	case parent.Err() != nil:
		err := zerr.Wrap(domain.ErrCancelled, fmt.Sprintf("%s %s cancelled in %s", name, step, req.Dir))
		return nil, zerr.With(err, "dir", req.Dir)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg := fmt.Sprintf("%s %s timed out after %s in %s", name, step, req.Timeout, req.Dir)
		err := zerr.With(zerr.Wrap(domain.ErrBackendTimeout, msg), "dir", req.Dir)
		err = zerr.With(err, "backend", name)
		return nil, zerr.With(err, "timeout", req.Timeout.String())
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	if step == "list" && exitCode > 0 && exitCode == req.Backend.ListProblemExitCode && gjson.ValidBytes(stdout.Bytes()) {
		r.logger.Warn(fmt.Sprintf("%q reported problems in %s (exit code %d), using the printed tree",
			invocation, req.Dir, exitCode))
		return stdout.Bytes(), nil
	}

	var msg string
	if exitCode == -1 {
		msg = fmt.Sprintf("failed to start %q in %s: %v", invocation, req.Dir, runErr)
	} else {
		msg = fmt.Sprintf("%q exited with code %d in %s", invocation, exitCode, req.Dir)
	}
	if tail := strings.TrimSpace(stderr.String()); tail != "" {
		msg += ": " + tail
	}

	err := zerr.With(zerr.Wrap(domain.ErrBackendExecutionFailed, msg), "dir", req.Dir)
	err = zerr.With(err, "backend", name)
	err = zerr.With(err, "step", step)
	err = zerr.With(err, "exit_code", exitCode)
	return nil, zerr.With(err, "stderr", stderr.String())
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if t.limit > 0 && len(t.buf) > t.limit {
		t.buf = t.buf[len(t.buf)-t.limit:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
