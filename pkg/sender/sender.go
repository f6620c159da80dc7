package sender

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lora-telemetry/pkg/wire"
)

// Sender builds the outbound packet stream: a strictly increasing
// sequence starting at 0 per transmission session, re-seeded whenever the
// operator supplies a new distance. The running total keeps counting
// across sessions.
type Sender struct {
	mu sync.Mutex

	distance   float64
	seq        uint64
	total      uint64
	session    uint64
	emitTokens bool

	start time.Time
	now   func() time.Time
}

// Options configures a Sender.
type Options struct {
	// EmitTokens adds an explicit session token to every packet, for
	// receivers running in token session mode.
	EmitTokens bool

	// Clock override for tests. Defaults to time.Now.
	Now func() time.Time
}

func New(opts Options) *Sender {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Sender{
		emitTokens: opts.EmitTokens,
		session:    1,
		now:        now,
		start:      now(),
	}
}

// SetDistance records a new operator-supplied distance and re-seeds the
// sequence counter, starting a new session.
func (s *Sender) SetDistance(distance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distance = distance
	s.seq = 0
	s.session++
}

// Next builds the next packet and advances the counters.
func (s *Sender) Next() wire.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	msg := wire.Message{
		Seq:       s.seq,
		Distance:  s.distance,
		Total:     s.total,
		Timestamp: uint64(s.now().Sub(s.start).Milliseconds()),
	}
	if s.emitTokens {
		msg.Session = fmt.Sprintf("s%d", s.session)
	}
	s.seq++
	return msg
}

// Run emits one packet per interval until the context is cancelled.
// Transmit failures are reported through onErr and do not stop the loop.
func (s *Sender) Run(ctx context.Context, interval time.Duration, transmit func(wire.Message) error, onErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := transmit(s.Next()); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
