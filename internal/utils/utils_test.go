package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "Experienced Python developer", limit: 0, expect: ""},
		{name: "shorter than limit", input: "Go", limit: 10, expect: "Go"},
		{name: "truncates resume preview", input: "Experienced Python developer", limit: 11, expect: "Experienced..."},
		{name: "counts runes not bytes", input: "Müller Straße", limit: 6, expect: "Müller..."},
		{name: "trims surrounding whitespace", input: "\n  resume  \n", limit: 6, expect: "resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

type fakeTimer struct {
	requested time.Duration
	fire      chan time.Time
	stopped   bool
}

func useFakeTimer(t *testing.T) *fakeTimer {
	t.Helper()

	original := newTimer
	t.Cleanup(func() { newTimer = original })

	ft := &fakeTimer{fire: make(chan time.Time, 1)}
	newTimer = func(d time.Duration) (<-chan time.Time, func() bool) {
		ft.requested = d
		return ft.fire, func() bool {
			ft.stopped = true
			return true
		}
	}
	return ft
}

func TestWaitFor(t *testing.T) {
	ft := useFakeTimer(t)
	ft.fire <- time.Now()

	if err := WaitFor(context.Background(), 3*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft.requested != 3*time.Second {
		t.Fatalf("expected a 3s timer, got %s", ft.requested)
	}

	ft.requested = 0
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft.requested != 0 {
		t.Fatalf("expected no timer for zero duration, got %s", ft.requested)
	}
}

func TestWaitForCancelledStopsTimer(t *testing.T) {
	ft := useFakeTimer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !ft.stopped {
		t.Fatal("expected the timer to be stopped on cancellation")
	}
}

func TestWaitForRealTimer(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := WaitFor(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("returned after %s, before the timer fired", elapsed)
	}
}
