package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestOnlyLastTriggerOfBurstRuns(t *testing.T) {
	d := New(20 * time.Millisecond)
	defer d.Close()

	var got atomic.Int32
	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger(func() { got.Store(v) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	if got.Load() != 5 {
		t.Fatalf("expected only last trigger (5) to run, got %d", got.Load())
	}
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	d := New(time.Hour)
	defer d.Close()

	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	d.Flush()
	if !ran.Load() {
		t.Fatal("expected Flush to run the pending function")
	}

	// Flush with nothing pending is a no-op.
	d.Flush()
}

func TestCloseDropsPending(t *testing.T) {
	d := New(10 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	d.Close()

	time.Sleep(30 * time.Millisecond)
	if ran.Load() {
		t.Fatal("expected Close to drop the pending function")
	}

	d.Trigger(func() { ran.Store(true) })
	time.Sleep(30 * time.Millisecond)
	if ran.Load() {
		t.Fatal("expected triggers after Close to be no-ops")
	}
}
