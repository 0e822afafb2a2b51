package policy

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLimiterTryAcquire(t *testing.T) {
	l := NewConcurrencyLimiter(2)

	if !l.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if !l.TryAcquire() {
		t.Fatal("second acquire should succeed")
	}
	if l.TryAcquire() {
		t.Fatal("third acquire should fail with 2 slots")
	}

	l.Release()
	if !l.TryAcquire() {
		t.Fatal("acquire after release should succeed")
	}

	_, peak, rejected := l.Stats()
	if peak != 2 {
		t.Errorf("peak = %d, want 2", peak)
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
}

func TestLimiterAcquireBlocksUntilRelease(t *testing.T) {
	l := NewConcurrencyLimiter(1)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	acquired := make(chan struct{})
	go func() {
		if err := l.Acquire(context.Background()); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire should block")
	case <-time.After(20 * time.Millisecond):
	}

	l.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("acquire did not proceed after release")
	}
}

func TestLimiterAcquireHonorsContext(t *testing.T) {
	l := NewConcurrencyLimiter(1)
	if !l.TryAcquire() {
		t.Fatal("setup acquire failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); err == nil {
		t.Fatal("expected context error from blocked acquire")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewConcurrencyLimiter(0)
	if l.Enabled() {
		t.Fatal("zero max should disable the limiter")
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !l.TryAcquire() {
				t.Error("disabled limiter rejected an acquire")
			}
			l.Release()
		}()
	}
	wg.Wait()
}
