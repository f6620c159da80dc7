package telemetry

import (
	"context"
	"sync"
	"time"

	"lora-telemetry/pkg/tracker"
)

// Clock interface allows for deterministic testing
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config for telemetry settings
type Config struct {
	BufferSize        int `default:"1000"`
	MaxRecentErrors   int `default:"50"`
	RateWindowSeconds int `default:"10"`
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
	}
}

// Aggregator is the core stateful component that processes telemetry events
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config

	// Last tracker statistics
	stats tracker.Snapshot

	// Session and link state
	sessions      uint64
	linkConnected bool

	// Rate calculations
	packetTimes []time.Time // Ring buffer for rate calculations

	// Error breakdown
	errorsTotal      uint64
	errorsByContext  map[string]uint64
	errorsBySeverity map[ErrorSeverity]uint64

	// Recent errors (ring buffer)
	recentErrors []string
	errorIndex   int

	// Control channels
	eventCh chan TelemetryEvent
	done    chan struct{}
	wg      sync.WaitGroup

	// Startup time
	startTime time.Time
}

// NewAggregator creates a new telemetry aggregator
func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}

	return &Aggregator{
		clock:            clock,
		cfg:              cfg,
		errorsByContext:  make(map[string]uint64),
		errorsBySeverity: make(map[ErrorSeverity]uint64),
		packetTimes:      make([]time.Time, 0, cfg.RateWindowSeconds*10),
		recentErrors:     make([]string, cfg.MaxRecentErrors),
		eventCh:          make(chan TelemetryEvent, cfg.BufferSize),
		done:             make(chan struct{}),
		startTime:        clock.Now(),
	}
}

// Start begins processing telemetry events
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop gracefully shuts down the aggregator
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements TelemetryPublisher interface
func (a *Aggregator) Publish(event TelemetryEvent) {
	select {
	case a.eventCh <- event:
	default:
		// Non-blocking send - drop if channel is full
		// This protects the hot path from being blocked
	}
}

// Snapshot implements TelemetryReader interface
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()

	packetsPerSecond := a.calculateRate(a.packetTimes, now)
	uptime := now.Sub(a.startTime).Seconds()
	channelUtilization := float64(len(a.eventCh)) / float64(cap(a.eventCh)) * 100

	// Copy maps to prevent data races
	errorsByContextCopy := make(map[string]uint64)
	for k, v := range a.errorsByContext {
		errorsByContextCopy[k] = v
	}

	errorsBySeverityCopy := make(map[ErrorSeverity]uint64)
	for k, v := range a.errorsBySeverity {
		errorsBySeverityCopy[k] = v
	}

	// Copy recent errors, newest first
	recentErrors := make([]string, 0)
	for i := 0; i < a.cfg.MaxRecentErrors; i++ {
		idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
		if a.recentErrors[idx] != "" {
			recentErrors = append(recentErrors, a.recentErrors[idx])
		}
	}

	return Snapshot{
		LastSeq:            a.stats.Seq,
		Distance:           a.stats.Distance,
		Received:           a.stats.Received,
		Lost:               a.stats.Lost,
		RSSI:               a.stats.RSSI,
		SNR:                a.stats.SNR,
		SenderTotal:        a.stats.SenderTotal,
		LossRatePercent:    a.stats.LossRatePercent,
		Sessions:           a.sessions,
		LinkConnected:      a.linkConnected,
		PacketsPerSecond:   packetsPerSecond,
		UptimeSeconds:      uptime,
		ChannelUtilization: channelUtilization,
		ErrorsTotal:        a.errorsTotal,
		ErrorsByContext:    errorsByContextCopy,
		ErrorsBySeverity:   errorsBySeverityCopy,
		RecentErrors:       recentErrors,
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event TelemetryEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case PacketReceived:
		a.addPacketTime(now)

	case PacketLost:
		// Loss totals come from StatsUpdated; individual lost sequence
		// numbers only feed the diagnostics surfaces.

	case SessionStarted:
		a.sessions++

	case StatsUpdated:
		a.stats = e.Stats

	case LinkStatusChanged:
		a.linkConnected = e.Connected

	case ReceiverError:
		a.errorsTotal++
		a.errorsByContext[e.Context]++
		a.errorsBySeverity[e.Severity]++
		a.addRecentError(e.Err.Error())
	}
}

func (a *Aggregator) addPacketTime(t time.Time) {
	cutoff := t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)

	// Remove old entries
	for len(a.packetTimes) > 0 && a.packetTimes[0].Before(cutoff) {
		a.packetTimes = a.packetTimes[1:]
	}

	a.packetTimes = append(a.packetTimes, t)
}

func (a *Aggregator) addRecentError(err string) {
	a.recentErrors[a.errorIndex] = err
	a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
}

func (a *Aggregator) calculateRate(times []time.Time, now time.Time) float64 {
	if len(times) == 0 {
		return 0.0
	}

	cutoff := now.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	count := 0

	for _, t := range times {
		if t.After(cutoff) {
			count++
		}
	}

	return float64(count) / float64(a.cfg.RateWindowSeconds)
}
