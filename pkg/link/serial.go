package link

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"time"

	"go.bug.st/serial"
)

const (
	// maxPayloadBytes is the modem's per-transmission payload limit.
	maxPayloadBytes = 240

	commandTimeout = 2 * time.Second
	retryInterval  = 500 * time.Millisecond
)

// RadioConfig holds the RF parameters applied to the modem during
// bring-up.
type RadioConfig struct {
	Address         uint16 // transceiver ident, 0-65535
	NetworkID       uint8  // must match on both ends
	Band            uint32 // center frequency, Hz
	SpreadingFactor uint8  // SF, 7-12
	Bandwidth       uint8  // BW code, 0-9
	CodingRate      uint8  // CR, 1-4
	Preamble        uint8  // programmed preamble, 4-7
}

// Options configures a SerialDriver.
type Options struct {
	Port           string // serial device; empty means auto-detect
	Baud           int
	Radio          *RadioConfig // nil leaves the modem configuration as-is
	BringupTimeout time.Duration
	RecvBuffer     int // pending-reading buffer, default 32
	Logger         *log.Logger

	// OnError is called when the background read loop fails. Optional;
	// the failure is always logged regardless.
	OnError func(error)
}

// SerialDriver drives an RYLR896-style AT modem over a UART serial port.
// Unsolicited +RCV= lines become Readings on a buffered channel; command
// acknowledgements (+OK / +ERR) are routed to the in-flight command.
type SerialDriver struct {
	port     serial.Port
	portName string
	reader   *bufio.Reader
	logger   *log.Logger
	onError  func(error)

	readings chan Reading
	acks     chan error
	done     chan struct{}
}

// Open brings up the radio link, retrying within opts.BringupTimeout. It
// opens the port, applies the radio configuration with AT commands, then
// starts the background read loop.
func Open(opts Options) (*SerialDriver, error) {
	if opts.Baud == 0 {
		opts.Baud = 115200
	}
	if opts.RecvBuffer == 0 {
		opts.RecvBuffer = 32
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "link: ", log.LstdFlags)
	}

	deadline := time.Now().Add(opts.BringupTimeout)
	var lastErr error
	for {
		d, err := open(opts)
		if err == nil {
			return d, nil
		}
		lastErr = err
		opts.Logger.Printf("bring-up attempt failed: %v", err)
		if time.Now().Add(retryInterval).After(deadline) {
			break
		}
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("link bring-up failed within %s: %w", opts.BringupTimeout, lastErr)
}

func open(opts Options) (*SerialDriver, error) {
	name := opts.Port
	if name == "" {
		detected, err := DetectPort()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	mode := &serial.Mode{
		BaudRate: opts.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	d := &SerialDriver{
		port:     port,
		portName: name,
		reader:   bufio.NewReader(port),
		logger:   opts.Logger,
		onError:  opts.OnError,
		readings: make(chan Reading, opts.RecvBuffer),
		acks:     make(chan error, 1),
		done:     make(chan struct{}),
	}

	if err := d.configure(opts.Radio); err != nil {
		port.Close()
		return nil, err
	}

	go d.run()
	return d, nil
}

// configure applies the radio configuration synchronously, before the
// read loop starts and takes ownership of port reads.
func (d *SerialDriver) configure(rc *RadioConfig) error {
	if err := d.command("AT"); err != nil {
		return fmt.Errorf("modem not responding on %s: %w", d.portName, err)
	}
	if rc == nil {
		return nil
	}

	commands := []string{
		fmt.Sprintf("AT+ADDRESS=%d", rc.Address),
		fmt.Sprintf("AT+NETWORKID=%d", rc.NetworkID),
		fmt.Sprintf("AT+BAND=%d", rc.Band),
		fmt.Sprintf("AT+PARAMETER=%d,%d,%d,%d",
			rc.SpreadingFactor, rc.Bandwidth, rc.CodingRate, rc.Preamble),
	}
	for _, cmd := range commands {
		if err := d.command(cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		// The modem needs a short pause between configuration commands.
		time.Sleep(4 * time.Millisecond)
	}
	return nil
}

// command writes one AT command and reads its response synchronously.
// Only valid before run() starts.
func (d *SerialDriver) command(cmd string) error {
	if err := d.port.SetReadTimeout(commandTimeout); err != nil {
		return err
	}
	if _, err := d.port.Write([]byte(cmd + "\r\n")); err != nil {
		return err
	}

	line, err := d.reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("no response: %w", err)
	}
	return checkResponse(line)
}

func checkResponse(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, "+OK") {
		return nil
	}
	if code, found := strings.CutPrefix(line, "+ERR="); found {
		return fmt.Errorf("modem error %s", code)
	}
	// Query responses (+ADDRESS=1 and similar) are not errors.
	return nil
}

// run reads unsolicited modem output until Close.
func (d *SerialDriver) run() {
	if err := d.port.SetReadTimeout(serial.NoTimeout); err != nil {
		d.logger.Printf("read timeout reset failed: %v", err)
	}
	for {
		line, err := d.reader.ReadString('\n')
		if err != nil {
			select {
			case <-d.done:
			default:
				d.logger.Printf("port read failed: %v", err)
				if d.onError != nil {
					d.onError(err)
				}
			}
			return
		}
		d.classify(strings.TrimRight(line, "\r\n"))
	}
}

func (d *SerialDriver) classify(line string) {
	if payload, found := strings.CutPrefix(line, "+RCV="); found {
		reading, ok := parseRCV(payload)
		if !ok {
			d.logger.Printf("dropping malformed receive line: %q", line)
			return
		}
		select {
		case d.readings <- reading:
		default:
			// buffer full, drop the oldest behavior would need a lock;
			// dropping the newest keeps the hot path non-blocking
			d.logger.Printf("receive buffer full, dropping packet")
		}
		return
	}

	if strings.HasPrefix(line, "+OK") || strings.HasPrefix(line, "+ERR=") {
		select {
		case d.acks <- checkResponse(line):
		default:
		}
		return
	}

	if line != "" {
		d.logger.Printf("unexpected modem output: %q", line)
	}
}

// TryReceive implements Driver. It never blocks.
func (d *SerialDriver) TryReceive() (Reading, bool) {
	select {
	case r := <-d.readings:
		return r, true
	default:
		return Reading{}, false
	}
}

// Connected implements Driver.
func (d *SerialDriver) Connected() bool { return true }

// Send transmits a payload to the given address. Used by the transmitter;
// the receiver never calls it.
func (d *SerialDriver) Send(addr uint16, data string) error {
	if len(data) > maxPayloadBytes {
		return fmt.Errorf("payload length %d exceeds maximum of %d bytes", len(data), maxPayloadBytes)
	}

	d.drainStaleAck()

	cmd := fmt.Sprintf("AT+SEND=%d,%d,%s\r\n", addr, len(data), data)
	if _, err := d.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	select {
	case err := <-d.acks:
		if err != nil {
			return fmt.Errorf("send rejected: %w", err)
		}
		return nil
	case <-time.After(commandTimeout):
		return fmt.Errorf("send not acknowledged within %s", commandTimeout)
	}
}

// drainStaleAck discards a leftover acknowledgement from earlier modem
// chatter so it cannot be attributed to the command about to be sent.
func (d *SerialDriver) drainStaleAck() {
	select {
	case err := <-d.acks:
		d.logger.Printf("discarding stale acknowledgement: %v", err)
	default:
	}
}

// Close stops the read loop and releases the port.
func (d *SerialDriver) Close() error {
	close(d.done)
	return d.port.Close()
}
