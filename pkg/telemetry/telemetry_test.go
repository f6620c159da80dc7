package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"lora-telemetry/pkg/tracker"
)

// Mock clock for deterministic testing
type MockClock struct {
	current time.Time
}

func (m *MockClock) Now() time.Time {
	return m.current
}

func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

func TestAggregator_StatsUpdated(t *testing.T) {
	clock := &MockClock{current: time.Unix(1640995200, 0)}
	agg := NewAggregator(clock, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg.Start(ctx)
	defer agg.Stop()

	agg.Publish(NewStatsUpdated(tracker.Snapshot{
		Seq:             6,
		Distance:        25.0,
		Received:        5,
		Lost:            2,
		RSSI:            -97,
		SNR:             6,
		SenderTotal:     7,
		LossRatePercent: 100 * 2.0 / 7.0,
	}))

	// Give aggregator time to process
	time.Sleep(10 * time.Millisecond)

	snapshot := agg.Snapshot()
	if snapshot.LastSeq != 6 {
		t.Errorf("expected last seq 6, got %d", snapshot.LastSeq)
	}
	if snapshot.Received != 5 || snapshot.Lost != 2 {
		t.Errorf("expected received=5 lost=2, got received=%d lost=%d",
			snapshot.Received, snapshot.Lost)
	}
	if snapshot.Distance != 25.0 {
		t.Errorf("expected distance 25.0, got %f", snapshot.Distance)
	}
}

func TestAggregator_SessionCounting(t *testing.T) {
	clock := &MockClock{current: time.Unix(1640995200, 0)}
	agg := NewAggregator(clock, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg.Start(ctx)
	defer agg.Stop()

	agg.Publish(NewSessionStarted(10))
	agg.Publish(NewSessionStarted(25))

	time.Sleep(10 * time.Millisecond)

	snapshot := agg.Snapshot()
	if snapshot.Sessions != 2 {
		t.Errorf("expected 2 sessions, got %d", snapshot.Sessions)
	}
}

func TestAggregator_LinkStatusTracking(t *testing.T) {
	clock := &MockClock{current: time.Unix(1640995200, 0)}
	agg := NewAggregator(clock, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg.Start(ctx)
	defer agg.Stop()

	// Initial state should be disconnected
	snapshot := agg.Snapshot()
	if snapshot.LinkConnected {
		t.Errorf("expected link disconnected initially")
	}

	agg.Publish(NewLinkStatusChanged(true))
	time.Sleep(10 * time.Millisecond)

	snapshot = agg.Snapshot()
	if !snapshot.LinkConnected {
		t.Errorf("expected link connected after status change")
	}

	agg.Publish(NewLinkStatusChanged(false))
	time.Sleep(10 * time.Millisecond)

	snapshot = agg.Snapshot()
	if snapshot.LinkConnected {
		t.Errorf("expected link disconnected after status change")
	}
}

func TestAggregator_ErrorTracking(t *testing.T) {
	clock := &MockClock{current: time.Unix(1640995200, 0)}
	agg := NewAggregator(clock, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg.Start(ctx)
	defer agg.Stop()

	agg.Publish(NewReceiverError(errors.New("port gone"), "link_read", ErrorSeverityError))
	agg.Publish(NewReceiverError(errors.New("disk full"), "session_log", ErrorSeverityWarning))
	agg.Publish(NewReceiverError(errors.New("port gone again"), "link_read", ErrorSeverityError))

	time.Sleep(10 * time.Millisecond)

	snapshot := agg.Snapshot()
	if snapshot.ErrorsTotal != 3 {
		t.Errorf("expected 3 errors total, got %d", snapshot.ErrorsTotal)
	}
	if snapshot.ErrorsByContext["link_read"] != 2 {
		t.Errorf("expected 2 link_read errors, got %d", snapshot.ErrorsByContext["link_read"])
	}
	if snapshot.ErrorsBySeverity[ErrorSeverityWarning] != 1 {
		t.Errorf("expected 1 warning, got %d", snapshot.ErrorsBySeverity[ErrorSeverityWarning])
	}
	if len(snapshot.RecentErrors) != 3 {
		t.Errorf("expected 3 recent errors, got %d", len(snapshot.RecentErrors))
	}
	// Newest first
	if snapshot.RecentErrors[0] != "port gone again" {
		t.Errorf("expected newest error first, got %q", snapshot.RecentErrors[0])
	}
}

func TestAggregator_PacketRate(t *testing.T) {
	clock := &MockClock{current: time.Unix(1000, 0)}
	cfg := DefaultConfig()
	agg := NewAggregator(clock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg.Start(ctx)
	defer agg.Stop()

	for i := 0; i < 20; i++ {
		agg.Publish(NewPacketReceived(uint64(i), -90, 8))
	}

	time.Sleep(20 * time.Millisecond)

	snapshot := agg.Snapshot()
	want := 20.0 / float64(cfg.RateWindowSeconds)
	if snapshot.PacketsPerSecond != want {
		t.Errorf("expected packet rate %f, got %f", want, snapshot.PacketsPerSecond)
	}

	// Advance past the rate window; old samples age out of the rate.
	clock.Advance(time.Duration(cfg.RateWindowSeconds+1) * time.Second)
	snapshot = agg.Snapshot()
	if snapshot.PacketsPerSecond != 0 {
		t.Errorf("expected packet rate 0 after window, got %f", snapshot.PacketsPerSecond)
	}
}

func TestAggregator_Uptime(t *testing.T) {
	clock := &MockClock{current: time.Unix(1000, 0)}
	agg := NewAggregator(clock, DefaultConfig())

	clock.Advance(90 * time.Second)

	snapshot := agg.Snapshot()
	if snapshot.UptimeSeconds != 90 {
		t.Errorf("expected uptime 90s, got %f", snapshot.UptimeSeconds)
	}
}
