package wire

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Wire record field keys. The sender emits a flat object like
// {"seq":42,"dist":12.50,"total":43,"timestamp":915823} with fields in any
// order; unknown keys are ignored.
const (
	KeySeq       = "seq"
	KeyDist      = "dist"
	KeyTotal     = "total"
	KeyTimestamp = "timestamp"
	KeySession   = "session"
)

// Record wraps one raw text record received over the radio. Accessors are
// best-effort: a missing, malformed, or non-numeric field reads as zero,
// never as an error. The radio feed is lossy and untrusted by design, so
// decoding degrades silently rather than failing loudly.
type Record struct {
	raw string
}

func NewRecord(raw string) Record {
	return Record{raw: raw}
}

// Uint returns the unsigned integer value for key, or 0.
func (r Record) Uint(key string) uint64 {
	return gjson.Get(r.raw, key).Uint()
}

// Float returns the decimal value for key, or 0.0.
func (r Record) Float(key string) float64 {
	return gjson.Get(r.raw, key).Float()
}

// String returns the string value for key, or "".
func (r Record) String(key string) string {
	return gjson.Get(r.raw, key).String()
}

// Message is one decoded telemetry payload.
type Message struct {
	Seq       uint64
	Distance  float64
	Total     uint64
	Timestamp uint64

	// Session is the optional explicit session token. Empty when the
	// sender does not emit one; only consulted in token session mode.
	Session string
}

// ParseMessage decodes a raw record into a Message. It never fails: fields
// that cannot be decoded are zero.
func ParseMessage(raw string) Message {
	r := NewRecord(raw)
	return Message{
		Seq:       r.Uint(KeySeq),
		Distance:  r.Float(KeyDist),
		Total:     r.Uint(KeyTotal),
		Timestamp: r.Uint(KeyTimestamp),
		Session:   r.String(KeySession),
	}
}

// Encode renders the message as a wire record. The output round-trips
// through ParseMessage.
func (m Message) Encode() string {
	if m.Session != "" {
		return fmt.Sprintf(`{"seq":%d,"dist":%.2f,"total":%d,"timestamp":%d,"session":%q}`,
			m.Seq, m.Distance, m.Total, m.Timestamp, m.Session)
	}
	return fmt.Sprintf(`{"seq":%d,"dist":%.2f,"total":%d,"timestamp":%d}`,
		m.Seq, m.Distance, m.Total, m.Timestamp)
}
