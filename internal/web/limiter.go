package web

// limiter.go bounds the number of imports (uploads and queries) parsed at
// the same time. An import holds its whole book in memory until it is stored.

import (
	"context"
	"errors"
	"time"
)

// errTooManyImports is returned when no import slot frees up in time.
var errTooManyImports = errors.New("too many concurrent imports, please try again later")

const (
	defaultMaxImports = 4
	defaultImportWait = 10 * time.Second
)

type importLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

func newImportLimiter(n int, maxWait time.Duration) *importLimiter {
	if n <= 0 {
		n = defaultMaxImports
	}
	if maxWait <= 0 {
		maxWait = defaultImportWait
	}
	return &importLimiter{
		slots:   make(chan struct{}, n),
		maxWait: maxWait,
	}
}

// acquire waits up to maxWait for a slot. Callers must release a slot they
// acquired.
func (l *importLimiter) acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return errTooManyImports
	}
}

func (l *importLimiter) release() {
	<-l.slots
}

// active returns the number of imports in progress.
func (l *importLimiter) active() int {
	return len(l.slots)
}

// drain blocks until no import is in progress or ctx is done.
func (l *importLimiter) drain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
