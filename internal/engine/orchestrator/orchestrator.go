// Package orchestrator drives dependency resolution for a set of manifests.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/deptree/internal/engine/builder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Orchestrator resolves manifests independently and in parallel. For each
// manifest it reads the manifest, detects the lockfile, selects a backend,
// runs it, parses its tree and adds the forest to the graph.
type Orchestrator struct {
	reader    ports.ManifestReader
	detector  ports.LockfileDetector
	selector  ports.BackendSelector
	runner    ports.Runner
	parser    ports.TreeParser
	telemetry ports.Telemetry
	logger    ports.Logger

	locks *dirLocks
}

// New creates a new Orchestrator.
func New(
	reader ports.ManifestReader,
	detector ports.LockfileDetector,
	selector ports.BackendSelector,
	runner ports.Runner,
	parser ports.TreeParser,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		reader:    reader,
		detector:  detector,
		selector:  selector,
		runner:    runner,
		parser:    parser,
		telemetry: telemetry,
		logger:    logger,
		locks:     newDirLocks(),
	}
}

// Resolve resolves every manifest and returns the graph of successes together
// with a failure per manifest that did not resolve. A failure only affects its
// own manifest unless opts.FailFast is set. Invalid options and internal
// invariant violations fail the whole call.
func (o *Orchestrator) Resolve(
	ctx context.Context,
	manifests []domain.Manifest,
	opts domain.Options,
) (*domain.Resolution, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	units, err := normalize(manifests)
	if err != nil {
		return nil, err
	}

	state := &runState{
		builder:  builder.New(),
		failures: make(map[domain.Manifest]*domain.Failure),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrency)

	for _, m := range units {
		g.Go(func() error {
			if gctx.Err() != nil {
				state.fail(m, zerr.With(zerr.Wrap(domain.ErrCancelled, "resolution cancelled before it started"),
					"manifest", m.String()))
				return nil
			}

			forest, err := o.resolveOne(gctx, m, opts)
			if err != nil {
				failure := state.fail(m, err)
				o.logger.Debug(fmt.Sprintf("%s failed: %s", m, failure.Kind))
				if failure.Kind == domain.FailureFatal || opts.FailFast {
					return failure
				}
				return nil
			}

			state.builder.Add(m, forest)
			o.logger.Debug(fmt.Sprintf("%s resolved %d packages", m, forest.Len()))
			return nil
		})
	}
	_ = g.Wait()

	if fatal := state.firstFatal(units); fatal != nil {
		return nil, fatal.Err
	}

	return &domain.Resolution{
		Graph:    state.builder.Graph(),
		Failures: state.failures,
	}, nil
}

func (o *Orchestrator) resolveOne(ctx context.Context, m domain.Manifest, opts domain.Options) (forest domain.Forest, err error) {
	ctx, vertex := o.telemetry.Record(ctx, m.String())
	defer func() {
		vertex.Complete(err)
	}()

	dir := m.Dir()
	release, err := o.locks.acquire(ctx, dir)
	if err != nil {
		return nil, err
	}
	defer release()

	info, err := o.reader.Read(m)
	if err != nil {
		return nil, err
	}

	kind, err := o.detector.Detect(dir)
	if err != nil {
		return nil, err
	}

	backend, err := o.selector.Select(kind)
	if err != nil {
		return nil, err
	}
	if backend.Kind != kind {
		return nil, zerr.With(zerr.Wrap(domain.ErrFatal, "selected backend does not match detected lockfile"),
			"lockfile", string(kind))
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%s lockfile detected, running %s", kind, backend.Command))

	raw, err := o.runner.Run(ctx, domain.RunRequest{
		Backend: backend,
		Dir:     dir,
		Timeout: opts.TimeoutPerManifest,
		Env:     opts.Env,
	})
	if err != nil {
		return nil, err
	}

	forest, err = o.parser.Parse(backend.Format, raw, info)
	if err != nil {
		return nil, zerr.With(err, "backend", backend.Command)
	}
	return forest, nil
}

// normalize makes every manifest absolute and drops repeats, keeping the first occurrence.
func normalize(manifests []domain.Manifest) ([]domain.Manifest, error) {
	seen := make(map[domain.Manifest]struct{}, len(manifests))
	out := make([]domain.Manifest, 0, len(manifests))
	for _, raw := range manifests {
		m, err := domain.NewManifest(string(raw))
		if err != nil {
			return nil, err
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

type runState struct {
	builder *builder.Builder

	mu       sync.Mutex
	failures map[domain.Manifest]*domain.Failure
}

func (s *runState) fail(m domain.Manifest, err error) *domain.Failure {
	f := domain.NewFailure(m, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[m] = f
	return f
}

// firstFatal returns the fatal failure of the earliest manifest, if any.
func (s *runState) firstFatal(order []domain.Manifest) *domain.Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range order {
		if f, ok := s.failures[m]; ok && f.Kind == domain.FailureFatal {
			return f
		}
	}
	return nil
}
