package tracker

import (
	"lora-telemetry/pkg/wire"
)

// SessionMode selects how the tracker detects the start of a new
// measurement session.
type SessionMode int

const (
	// SessionByDistance infers a session boundary from the distance
	// marker: a strictly greater distance starts a new session. This is
	// the legacy behavior and carries the ambiguous zero-sequence case.
	SessionByDistance SessionMode = iota

	// SessionByToken drives session boundaries off an explicit session
	// token in the wire record. A token change starts a new session and
	// the zero-sequence heuristic is disabled.
	SessionByToken
)

// noSession is the distance marker sentinel before any packet is seen.
const noSession = -1

// Observer receives per-event diagnostics from the tracker. All callbacks
// run synchronously inside Ingest.
type Observer interface {
	// OnLost is called once for every sequence number inferred lost.
	OnLost(seq uint64)

	// OnSessionStart is called when a new session begins, before counters
	// are published for it.
	OnSessionStart(distance float64)
}

// Options configures a Tracker.
type Options struct {
	Mode     SessionMode
	Observer Observer
}

// Snapshot is a copy of the display-relevant tracker state after one
// ingested message, plus the signal metrics attached by the link driver.
type Snapshot struct {
	Seq             uint64
	Distance        float64
	Received        uint64
	Lost            uint64
	RSSI            float64
	SNR             float64
	SenderTotal     uint64
	LossRatePercent float64

	// SessionStart is true when this message began a new session.
	SessionStart bool
}

// Tracker consumes decoded messages one at a time and maintains
// expected-next-sequence, loss counters and session identity. There is no
// acknowledgement channel back to the sender, so loss accounting is
// approximate: it may overcount under severe reordering and never
// decreases within a session.
//
// Tracker is not safe for concurrent use; the receive loop owns it.
type Tracker struct {
	mode     SessionMode
	observer Observer

	lastDistance float64
	lastToken    string
	haveSession  bool

	expected    uint64
	received    uint64
	lost        uint64
	lastSeq     uint64
	senderTotal uint64
	lossRate    float64
}

// New creates a Tracker with no session started.
func New(opts Options) *Tracker {
	return &Tracker{
		mode:         opts.Mode,
		observer:     opts.Observer,
		lastDistance: noSession,
	}
}

// Ingest processes one decoded message and returns the updated statistics
// snapshot. It never fails: sequence numbers and distance are untrusted
// sender-controlled values and every input is absorbed by some branch.
func (t *Tracker) Ingest(msg wire.Message, rssi, snr float64) Snapshot {
	if t.sessionStarts(msg) {
		t.received = 0
		t.lost = 0
		t.senderTotal = 0
		t.lossRate = 0
		t.expected = msg.Seq + 1
		t.lastSeq = msg.Seq
		t.lastDistance = msg.Distance
		t.lastToken = msg.Session
		t.haveSession = true
		if t.observer != nil {
			t.observer.OnSessionStart(msg.Distance)
		}
		return t.snapshot(msg.Distance, rssi, snr, true)
	}

	if t.mode == SessionByDistance && msg.Seq == 0 && t.expected != 0 {
		// A sequence reset to 0 without a distance change is ambiguous:
		// sender restart or radio glitch. Count the packet as new data
		// but skip gap accounting rather than inflate the loss counters.
		t.received++
		t.lastSeq = 0
		t.senderTotal = msg.Total
		t.recomputeLossRate()
		t.expected++
		return t.snapshot(msg.Distance, rssi, snr, false)
	}

	if msg.Seq >= t.expected {
		// Every sequence number we skipped over is inferred lost.
		for missing := t.expected; missing < msg.Seq; missing++ {
			t.lost++
			if t.observer != nil {
				t.observer.OnLost(missing)
			}
		}
		t.expected = msg.Seq + 1
	}
	// Otherwise the packet arrived late. It still counts as data below,
	// but a sequence number already declared lost is never un-lost.

	t.received++
	t.lastSeq = msg.Seq
	t.senderTotal = msg.Total
	t.recomputeLossRate()
	return t.snapshot(msg.Distance, rssi, snr, false)
}

func (t *Tracker) sessionStarts(msg wire.Message) bool {
	if !t.haveSession {
		return true
	}
	if t.mode == SessionByToken {
		return msg.Session != t.lastToken
	}
	return msg.Distance > t.lastDistance
}

// Loss rate is relative to the sender's self-reported total, not the
// locally inferred one. That makes the metric sender-trust-dependent; it
// is a known accuracy caveat, not something to fix here.
func (t *Tracker) recomputeLossRate() {
	if t.senderTotal > 0 {
		t.lossRate = 100 * float64(t.lost) / float64(t.senderTotal)
	} else {
		t.lossRate = 0
	}
}

func (t *Tracker) snapshot(distance, rssi, snr float64, sessionStart bool) Snapshot {
	return Snapshot{
		Seq:             t.lastSeq,
		Distance:        distance,
		Received:        t.received,
		Lost:            t.lost,
		RSSI:            rssi,
		SNR:             snr,
		SenderTotal:     t.senderTotal,
		LossRatePercent: t.lossRate,
		SessionStart:    sessionStart,
	}
}
