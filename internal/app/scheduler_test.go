package app

import (
	"context"
	"testing"
	"time"
)

func TestScheduler_StopsOnCancel(t *testing.T) {
	svc, _, _ := newTestExtractionService()
	sweep := NewSweepService(newMockRecordRepo(), newMockSessionRepo(), time.Hour, time.Hour)
	scheduler := NewScheduler(svc, sweep, 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	// Let a few ticks fire, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
}
