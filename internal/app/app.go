// Package app implements the application layer for deptree.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/deptree/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
	detector     ports.LockfileDetector
	selector     ports.BackendSelector
	reporter     ports.ReportWriter
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	detector ports.LockfileDetector,
	selector ports.BackendSelector,
	reporter ports.ReportWriter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
		detector:     detector,
		selector:     selector,
		reporter:     reporter,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects report and detection output. Used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// ResolveOptions configures a Resolve call. Nil overrides keep the configured value.
type ResolveOptions struct {
	// ConfigPath selects an explicit configuration file instead of discovery.
	ConfigPath string
	// Output is the report file. Empty or "-" writes to stdout.
	Output string

	MaxConcurrency     *int
	TimeoutPerManifest *time.Duration
	FailFast           *bool
}

// SetLogLevel raises the logger to debug level when verbose is set.
func (a *App) SetLogLevel(verbose bool) {
	if verbose {
		a.logger.SetLevel(domain.LogLevelDebug)
		return
	}
	a.logger.SetLevel(domain.LogLevelInfo)
}

// Resolve resolves the given manifests or project directories and writes the report.
// It returns domain.ErrResolutionFailed when at least one manifest failed.
func (a *App) Resolve(ctx context.Context, paths []string, opts ResolveOptions) error {
	// 1. Load configuration
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Merge flag overrides
	resolveOpts := cfg.Options()
	if opts.MaxConcurrency != nil {
		resolveOpts.MaxConcurrency = *opts.MaxConcurrency
	}
	if opts.TimeoutPerManifest != nil {
		resolveOpts.TimeoutPerManifest = *opts.TimeoutPerManifest
	}
	if opts.FailFast != nil {
		resolveOpts.FailFast = *opts.FailFast
	}

	// 3. Expand inputs
	manifests, err := expandManifests(paths)
	if err != nil {
		return err
	}

	// 4. Resolve
	res, err := a.orchestrator.Resolve(ctx, manifests, resolveOpts)
	if err != nil {
		return zerr.Wrap(err, "resolution aborted")
	}

	for _, f := range res.SortedFailures() {
		a.logger.Error(zerr.With(zerr.Wrap(f.Err, f.Manifest.String()), "kind", string(f.Kind)))
	}
	a.logger.Info(fmt.Sprintf("resolved %d of %d manifests", res.Graph.Len(), res.Graph.Len()+len(res.Failures)))

	// 5. Report
	if err := a.writeReport(opts.Output, res); err != nil {
		return err
	}

	if res.Failed() {
		return zerr.With(zerr.Wrap(domain.ErrResolutionFailed, fmt.Sprintf("%d manifests failed", len(res.Failures))),
			"failed", len(res.Failures))
	}
	return nil
}

// Detection is the lockfile detection outcome for one directory.
type Detection struct {
	Dir     string
	Kind    domain.LockfileKind
	Backend domain.Backend
	Err     error
}

// Detect reports which backend would resolve each directory, without running it.
func (a *App) Detect(dirs []string) []Detection {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	out := make([]Detection, 0, len(dirs))
	for _, dir := range dirs {
		d := Detection{Dir: dir}
		if abs, err := filepath.Abs(dir); err == nil {
			d.Dir = abs
		}

		d.Kind, d.Err = a.detector.Detect(d.Dir)
		if d.Err == nil {
			d.Backend, d.Err = a.selector.Select(d.Kind)
		}
		if d.Err != nil {
			a.logger.Error(d.Err)
		}
		out = append(out, d)
	}
	return out
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path != "" {
		return a.configLoader.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return a.configLoader.Load(cwd)
}

func (a *App) writeReport(output string, res *domain.Resolution) error {
	if output == "" || output == "-" {
		if err := a.reporter.Write(a.stdout, res); err != nil {
			return zerr.Wrap(err, "failed to write report")
		}
		return nil
	}
	if err := a.reporter.WriteFile(output, res); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	a.logger.Debug("report written to " + output)
	return nil
}

// expandManifests maps directories to their package.json. No paths means the
// current directory. Paths that cannot be inspected are passed through so the
// resolver records them as failures of their own.
func expandManifests(paths []string) ([]domain.Manifest, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	manifests := make([]domain.Manifest, 0, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			p = filepath.Join(p, domain.ManifestFileName)
		}
		m, err := domain.NewManifest(p)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}
