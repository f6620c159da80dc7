package link

// Reading is one raw record received over the radio, with the per-message
// signal quality metrics the modem reports alongside it.
type Reading struct {
	Addr uint16  // transmitter address
	Raw  string  // raw record payload
	RSSI float64 // received signal strength (dBm)
	SNR  float64 // signal to noise ratio
}

// Driver supplies raw records to the receive loop. TryReceive is
// non-blocking: it returns false when no message is pending.
type Driver interface {
	TryReceive() (Reading, bool)
	Connected() bool
	Close() error
}

// Unavailable is the degraded-mode driver used when link bring-up failed
// within its timeout. Every receive attempt is a no-op, which lets the
// receive loop keep running and the operator see the link-failed state.
type Unavailable struct{}

func (Unavailable) TryReceive() (Reading, bool) { return Reading{}, false }
func (Unavailable) Connected() bool             { return false }
func (Unavailable) Close() error                { return nil }
