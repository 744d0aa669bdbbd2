package orchestrator

import (
	"context"
	"sync"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// dirLocks serializes work per project directory. Entries are dropped once
// no caller holds or waits for them.
type dirLocks struct {
	mu    sync.Mutex
	locks map[string]*dirLock
}

type dirLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newDirLocks() *dirLocks {
	return &dirLocks{locks: make(map[string]*dirLock)}
}

// acquire blocks until dir is free or ctx is done.
func (l *dirLocks) acquire(ctx context.Context, dir string) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[dir]
	if !ok {
		lock = &dirLock{sem: semaphore.NewWeighted(1)}
		l.locks[dir] = lock
	}
	lock.refs++
	l.mu.Unlock()

	if err := lock.sem.Acquire(ctx, 1); err != nil {
		l.unref(dir, lock)
		return nil, zerr.With(zerr.Wrap(domain.ErrCancelled, "cancelled while waiting for project directory"), "dir", dir)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.sem.Release(1)
			l.unref(dir, lock)
		})
	}, nil
}

func (l *dirLocks) unref(dir string, lock *dirLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, dir)
	}
}

func (l *dirLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
