package receiver

import (
	"context"
	"fmt"
	"log"
	"time"

	"lora-telemetry/pkg/config"
	"lora-telemetry/pkg/link"
	"lora-telemetry/pkg/sessionlog"
	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/tracker"
	"lora-telemetry/pkg/wire"
)

// Receiver runs the single-threaded receive loop: poll the link driver,
// decode, ingest into the tracker, emit telemetry and log lines. At most
// one message is processed to completion before anything else happens;
// the tracker is never touched from another goroutine.
type Receiver struct {
	cfg      *config.Config
	logger   *log.Logger
	driver   link.Driver
	tracker  *tracker.Tracker
	sessions *sessionlog.Writer // nil disables session CSV logging

	publisher telemetry.TelemetryPublisher

	clock telemetry.Clock
	start time.Time
}

// New wires a Receiver. sessions and publisher may be nil.
func New(cfg *config.Config, logger *log.Logger, driver link.Driver, sessions *sessionlog.Writer, publisher telemetry.TelemetryPublisher) *Receiver {
	if publisher == nil {
		publisher = telemetry.NewNoopPublisher()
	}
	r := &Receiver{
		cfg:       cfg,
		logger:    logger,
		driver:    driver,
		sessions:  sessions,
		publisher: publisher,
		clock:     telemetry.RealClock{},
	}

	mode := tracker.SessionByDistance
	if cfg.Receiver.SessionMode == config.SessionModeToken {
		mode = tracker.SessionByToken
	}
	r.tracker = tracker.New(tracker.Options{Mode: mode, Observer: r})

	r.start = r.clock.Now()
	return r
}

// Run polls the driver until the context is cancelled. A failed link
// keeps the loop alive in degraded mode: the driver just never yields.
func (r *Receiver) Run(ctx context.Context) error {
	connected := r.driver.Connected()
	r.emit(telemetry.NewLinkStatusChanged(connected))
	if connected {
		r.logger.Printf("receive loop started")
	} else {
		r.logger.Printf("link failed, running in degraded mode")
	}

	idle := time.NewTicker(time.Duration(r.cfg.Receiver.IdlePollMs) * time.Millisecond)
	defer idle.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Printf("receive loop stopping")
			return nil
		default:
		}

		reading, ok := r.driver.TryReceive()
		if !ok {
			select {
			case <-ctx.Done():
				r.logger.Printf("receive loop stopping")
				return nil
			case <-idle.C:
			}
			continue
		}

		r.process(reading)
	}
}

func (r *Receiver) process(reading link.Reading) {
	msg := wire.ParseMessage(reading.Raw)
	snap := r.tracker.Ingest(msg, reading.RSSI, reading.SNR)

	r.emit(telemetry.NewPacketReceived(snap.Seq, reading.RSSI, reading.SNR))
	r.emit(telemetry.NewStatsUpdated(snap))

	r.logger.Print(dataLine(r.uptimeMs(), snap))
	if r.sessions != nil {
		r.sessions.Data(snap)
	}
}

// OnLost implements tracker.Observer: every individually inferred lost
// sequence number is surfaced for diagnostics.
func (r *Receiver) OnLost(seq uint64) {
	r.emit(telemetry.NewPacketLost(seq))
	r.logger.Printf("LOST: packet %d", seq)
	if r.sessions != nil {
		r.sessions.Lost(seq)
	}
}

// OnSessionStart implements tracker.Observer.
func (r *Receiver) OnSessionStart(distance float64) {
	r.emit(telemetry.NewSessionStarted(distance))
	r.logger.Printf("new session detected at %.2f m", distance)
	if r.sessions != nil {
		r.sessions.StartSession(distance)
	}
}

func (r *Receiver) emit(event telemetry.TelemetryEvent) {
	r.publisher.Publish(event)
}

func (r *Receiver) uptimeMs() int64 {
	return r.clock.Now().Sub(r.start).Milliseconds()
}

// dataLine renders the stable machine-parsable form of one snapshot:
// DATA,<uptime_ms>,<seq>,<dist>,<received>,<lost>,<rssi>,<snr>,<total>,<loss%>
func dataLine(uptimeMs int64, snap tracker.Snapshot) string {
	return fmt.Sprintf("DATA,%d,%d,%.2f,%d,%d,%.1f,%.1f,%d,%.2f",
		uptimeMs, snap.Seq, snap.Distance, snap.Received, snap.Lost,
		snap.RSSI, snap.SNR, snap.SenderTotal, snap.LossRatePercent)
}
