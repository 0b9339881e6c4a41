package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

func TestTrackRecordsMetric(t *testing.T) {
	mon := NewMonitor(nil, 10)

	err := mon.Track(context.Background(), "calc", ThresholdCalculation, func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("Track returned error: %v", err)
	}

	metrics := mon.Snapshot()
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(metrics))
	}
	if metrics[0].Operation != "calc" {
		t.Fatalf("unexpected operation %q", metrics[0].Operation)
	}
}

func TestTrackPropagatesErrorAndStillRecords(t *testing.T) {
	mon := NewMonitor(nil, 10)

	want := errors.New("boom")
	err := mon.Track(context.Background(), "failing", ThresholdCalculation, func() error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if len(mon.Snapshot()) != 1 {
		t.Fatal("expected metric recorded for failing operation")
	}
}

func TestRingBufferKeepsLastN(t *testing.T) {
	mon := NewMonitor(nil, 3)
	for i := 0; i < 5; i++ {
		_ = mon.Track(context.Background(), "op", 0, func() error { return nil })
	}
	if got := len(mon.Snapshot()); got != 3 {
		t.Fatalf("expected buffer capped at 3, got %d", got)
	}
}

func TestSlowOperationLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	mon := NewMonitor(logg, 10)

	_ = mon.Track(context.Background(), "sleepy", time.Nanosecond, func() error {
		time.Sleep(time.Millisecond)
		return nil
	})

	slow := mon.SlowOperations()
	if len(slow) != 1 {
		t.Fatalf("expected 1 slow metric, got %d", len(slow))
	}
	if !bytes.Contains(buf.Bytes(), []byte("operation.slow")) {
		t.Fatalf("expected slow operation log entry, got %s", buf.String())
	}
}

func TestNilMonitorIsNoop(t *testing.T) {
	var mon *Monitor
	if err := mon.Track(context.Background(), "anything", 0, func() error { return nil }); err != nil {
		t.Fatalf("nil monitor should run fn transparently: %v", err)
	}
	if mon.Snapshot() != nil {
		t.Fatal("nil monitor snapshot should be nil")
	}
}
