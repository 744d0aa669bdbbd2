package domain

import (
	"errors"
	"runtime"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// Failure records why a manifest is absent from the resolved graph.
type Failure struct {
	Manifest Manifest
	Kind     FailureKind
	Err      error
}

// NewFailure classifies err for manifest m.
func NewFailure(m Manifest, err error) *Failure {
	return &Failure{Manifest: m, Kind: KindOf(err), Err: err}
}

func (f *Failure) Error() string {
	return f.Manifest.String() + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Resolution is the outcome of one resolve call: the graph of successes and
// a failure per manifest that did not resolve.
type Resolution struct {
	Graph    *DependencyGraph
	Failures map[Manifest]*Failure
}

// Failed reports whether any manifest failed.
func (r *Resolution) Failed() bool {
	return len(r.Failures) > 0
}

// SortedFailures returns the failures ordered by manifest path.
func (r *Resolution) SortedFailures() []*Failure {
	out := make([]*Failure, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b *Failure) int {
		if a.Manifest < b.Manifest {
			return -1
		}
		if a.Manifest > b.Manifest {
			return 1
		}
		return 0
	})
	return out
}

// Err joins every failure into one error, or returns nil.
func (r *Resolution) Err() error {
	var errs []error
	for _, f := range r.SortedFailures() {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Options tunes a resolve call.
type Options struct {
	// MaxConcurrency bounds the number of manifests resolved in parallel. Zero means runtime.NumCPU().
	MaxConcurrency int
	// TimeoutPerManifest bounds each backend invocation. Zero means no timeout.
	TimeoutPerManifest time.Duration
	// FailFast aborts the remaining manifests after the first failure.
	FailFast bool
	// Env holds extra environment variables for backend processes.
	Env map[string]string
}

// Validate rejects negative limits.
func (o Options) Validate() error {
	if o.MaxConcurrency < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidInput, "maxConcurrency must not be negative"),
			"max_concurrency", o.MaxConcurrency)
	}
	if o.TimeoutPerManifest < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidInput, "timeoutPerManifest must not be negative"),
			"timeout", o.TimeoutPerManifest.String())
	}
	return nil
}

// WithDefaults fills zero values.
func (o Options) WithDefaults() Options {
	if o.MaxConcurrency == 0 {
		o.MaxConcurrency = runtime.NumCPU()
	}
	return o
}
