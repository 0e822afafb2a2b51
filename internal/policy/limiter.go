package policy

import (
	"context"
	"sync"
)

// AdmissionPolicy decides whether new calculations may start.
type AdmissionPolicy interface {
	// Enabled returns whether the policy is enforced.
	Enabled() bool
	// Name returns the policy name for identification
	Name() string
}

// ConcurrencyLimiter bounds the number of calculations executing at
// once. A statevector run is CPU-bound; admitting more runs than slots
// only adds scheduler churn.
type ConcurrencyLimiter struct {
	slots chan struct{}

	mu       sync.Mutex
	active   int
	peak     int
	rejected int
}

// NewConcurrencyLimiter creates a limiter with max concurrent slots.
// max <= 0 disables limiting.
func NewConcurrencyLimiter(max int) *ConcurrencyLimiter {
	l := &ConcurrencyLimiter{}
	if max > 0 {
		l.slots = make(chan struct{}, max)
	}
	return l
}

func (l *ConcurrencyLimiter) Enabled() bool {
	return l.slots != nil
}

func (l *ConcurrencyLimiter) Name() string {
	return "concurrency_limit"
}

// Acquire blocks until a slot is free or ctx is done.
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	if l.slots == nil {
		l.track(true)
		return nil
	}
	select {
	case l.slots <- struct{}{}:
		l.track(true)
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.rejected++
		l.mu.Unlock()
		return ctx.Err()
	}
}

// TryAcquire takes a slot without blocking.
func (l *ConcurrencyLimiter) TryAcquire() bool {
	if l.slots == nil {
		l.track(true)
		return true
	}
	select {
	case l.slots <- struct{}{}:
		l.track(true)
		return true
	default:
		l.mu.Lock()
		l.rejected++
		l.mu.Unlock()
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *ConcurrencyLimiter) Release() {
	l.track(false)
	if l.slots != nil {
		<-l.slots
	}
}

// Stats reports current, peak, and rejected admission counts.
func (l *ConcurrencyLimiter) Stats() (active, peak, rejected int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active, l.peak, l.rejected
}

func (l *ConcurrencyLimiter) track(acquire bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acquire {
		l.active++
		if l.active > l.peak {
			l.peak = l.active
		}
	} else {
		l.active--
	}
}
