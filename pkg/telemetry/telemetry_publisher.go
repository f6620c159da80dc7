package telemetry

import (
	"time"

	"lora-telemetry/pkg/tracker"
)

type TelemetryEvent interface {
	Timestamp() time.Time // When the event occurred
	EventType() string    // For categorization/filtering
}

// PacketReceived records one payload accepted by the tracker.
type PacketReceived struct {
	timestamp time.Time
	Seq       uint64
	RSSI      float64
	SNR       float64
}

func (e PacketReceived) Timestamp() time.Time { return e.timestamp }
func (e PacketReceived) EventType() string    { return "packet_received" }

func NewPacketReceived(seq uint64, rssi, snr float64) PacketReceived {
	return PacketReceived{timestamp: time.Now(), Seq: seq, RSSI: rssi, SNR: snr}
}

// PacketLost records one sequence number inferred lost.
type PacketLost struct {
	timestamp time.Time
	Seq       uint64
}

func (e PacketLost) Timestamp() time.Time { return e.timestamp }
func (e PacketLost) EventType() string    { return "packet_lost" }

func NewPacketLost(seq uint64) PacketLost {
	return PacketLost{timestamp: time.Now(), Seq: seq}
}

// SessionStarted records detection of a new measurement session.
type SessionStarted struct {
	timestamp time.Time
	Distance  float64
}

func (e SessionStarted) Timestamp() time.Time { return e.timestamp }
func (e SessionStarted) EventType() string    { return "session_started" }

func NewSessionStarted(distance float64) SessionStarted {
	return SessionStarted{timestamp: time.Now(), Distance: distance}
}

// StatsUpdated carries the tracker snapshot after one ingested message.
type StatsUpdated struct {
	timestamp time.Time
	Stats     tracker.Snapshot
}

func (e StatsUpdated) Timestamp() time.Time { return e.timestamp }
func (e StatsUpdated) EventType() string    { return "stats_updated" }

func NewStatsUpdated(stats tracker.Snapshot) StatsUpdated {
	return StatsUpdated{timestamp: time.Now(), Stats: stats}
}

// LinkStatusChanged records radio link availability transitions.
type LinkStatusChanged struct {
	timestamp time.Time
	Connected bool
}

func (e LinkStatusChanged) Timestamp() time.Time { return e.timestamp }
func (e LinkStatusChanged) EventType() string    { return "link_status_changed" }

func NewLinkStatusChanged(connected bool) LinkStatusChanged {
	return LinkStatusChanged{timestamp: time.Now(), Connected: connected}
}

// ReceiverError records a non-fatal error in the surrounding system. The
// tracker and codec themselves never produce errors.
type ReceiverError struct {
	timestamp time.Time
	Err       error
	Context   string // Where it happened (e.g. "link_bringup", "session_log")
	Severity  ErrorSeverity
}

func (e ReceiverError) Timestamp() time.Time { return e.timestamp }
func (e ReceiverError) EventType() string    { return "receiver_error" }

func NewReceiverError(err error, context string, severity ErrorSeverity) ReceiverError {
	return ReceiverError{timestamp: time.Now(), Err: err, Context: context, Severity: severity}
}

type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityCritical
)

type TelemetryPublisher interface {
	// Publish sends a telemetry event to the aggregator.
	// This is a non-blocking, fire-and-forget call.
	Publish(event TelemetryEvent)
}
