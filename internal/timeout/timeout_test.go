package timeout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoReturnsResultBeforeDeadline(t *testing.T) {
	got, err := Do(context.Background(), time.Second, func(context.Context) (string, error) {
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestDoPropagatesOperationError(t *testing.T) {
	opErr := errors.New("upstream broke")
	_, err := Do(context.Background(), time.Second, func(context.Context) (int, error) {
		return 0, opErr
	})
	if !errors.Is(err, opErr) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestDoFailsDeterministicallyOnExpiry(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	start := time.Now()
	_, err := Do(context.Background(), 20*time.Millisecond, func(context.Context) (string, error) {
		<-block
		return "too late", nil
	})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrDeadline) {
		t.Fatalf("expected ErrDeadline, got %v", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("guard waited on the losing side: %s", elapsed)
	}
}

func TestDoHonorsParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)

	_, err := Do(ctx, time.Second, func(context.Context) (string, error) {
		<-block
		return "", nil
	})
	if !errors.Is(err, ErrDeadline) {
		t.Fatalf("expected ErrDeadline on cancelled parent, got %v", err)
	}
}

func TestDoDiscardsLateResult(t *testing.T) {
	done := make(chan struct{})
	_, err := Do(context.Background(), 10*time.Millisecond, func(context.Context) (string, error) {
		defer close(done)
		time.Sleep(50 * time.Millisecond)
		return "late", nil
	})
	if !errors.Is(err, ErrDeadline) {
		t.Fatalf("expected ErrDeadline, got %v", err)
	}

	// The losing goroutine must still be able to finish without anyone
	// reading its result.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("late operation never completed; guard is holding it")
	}
}
