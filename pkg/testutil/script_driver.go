package testutil

import (
	"sync"

	"lora-telemetry/pkg/link"
)

// ScriptedDriver replays a fixed sequence of readings, one per
// TryReceive call, then reports nothing pending.
type ScriptedDriver struct {
	mu        sync.Mutex
	readings  []link.Reading
	next      int
	connected bool
	closed    bool
}

func NewScriptedDriver(readings ...link.Reading) *ScriptedDriver {
	return &ScriptedDriver{readings: readings, connected: true}
}

// NewDisconnectedDriver reports a failed link and never yields readings.
func NewDisconnectedDriver() *ScriptedDriver {
	return &ScriptedDriver{}
}

func (d *ScriptedDriver) TryReceive() (link.Reading, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.next >= len(d.readings) {
		return link.Reading{}, false
	}
	r := d.readings[d.next]
	d.next++
	return r, true
}

func (d *ScriptedDriver) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

func (d *ScriptedDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.connected = false
	return nil
}

// Drained reports whether every scripted reading has been consumed.
func (d *ScriptedDriver) Drained() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.next >= len(d.readings)
}
