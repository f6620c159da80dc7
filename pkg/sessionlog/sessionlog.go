package sessionlog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/tracker"
)

// errorContext tags session-log failures in the telemetry error breakdown.
const errorContext = "session_log"

// Headers of every session CSV file.
var Headers = []string{
	"Timestamp", "Event", "MessageNumber", "Distance(m)",
	"Received", "Lost", "RSSI", "SNR", "TotalPackets", "LossRate",
}

const timestampLayout = "2006-01-02 15:04:05"

// Writer maintains one CSV file per measurement session under a log
// directory. A new file is opened on every session start, named after the
// session's distance. Write failures are logged and swallowed: losing a
// log row must never take down the receiver.
type Writer struct {
	dir       string
	logger    *log.Logger
	publisher telemetry.TelemetryPublisher
	now       func() time.Time

	file *os.File
	csv  *csv.Writer
}

// New creates a Writer rooted at dir, creating the directory if needed.
// publisher may be nil.
func New(dir string, logger *log.Logger, publisher telemetry.TelemetryPublisher) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if publisher == nil {
		publisher = telemetry.NewNoopPublisher()
	}
	return &Writer{dir: dir, logger: logger, publisher: publisher, now: time.Now}, nil
}

// StartSession rotates to a fresh CSV file for a session at the given
// distance.
func (w *Writer) StartSession(distance float64) {
	w.closeFile()

	name := fmt.Sprintf("lora_data_%.2fm_%s.csv", distance, w.now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(w.dir, name)

	file, err := os.Create(path)
	if err != nil {
		w.fail("session log create failed", err)
		return
	}
	w.file = file
	w.csv = csv.NewWriter(file)
	w.writeRow(Headers)
	w.logger.Printf("new session log: %s", path)
}

// Data appends one DATA row from a tracker snapshot. A sender total of 0
// is replaced by the received count so the loss-rate column stays
// meaningful early in a session.
func (w *Writer) Data(snap tracker.Snapshot) {
	if w.csv == nil {
		return
	}

	total := snap.SenderTotal
	if total == 0 {
		total = snap.Received
	}

	w.writeRow([]string{
		w.now().Format(timestampLayout),
		"DATA",
		strconv.FormatUint(snap.Seq, 10),
		fmt.Sprintf("%.2f", snap.Distance),
		strconv.FormatUint(snap.Received, 10),
		strconv.FormatUint(snap.Lost, 10),
		fmt.Sprintf("%.1f", snap.RSSI),
		fmt.Sprintf("%.1f", snap.SNR),
		strconv.FormatUint(total, 10),
		fmt.Sprintf("%.2f", snap.LossRatePercent),
	})
}

// Lost appends one LOST row marking an individually inferred lost
// sequence number.
func (w *Writer) Lost(seq uint64) {
	if w.csv == nil {
		return
	}

	w.writeRow([]string{
		w.now().Format(timestampLayout),
		"LOST",
		strconv.FormatUint(seq, 10),
		"", "", "", "", "", "", "",
	})
}

func (w *Writer) writeRow(row []string) {
	if err := w.csv.Write(row); err != nil {
		w.fail("session log write failed", err)
		return
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.fail("session log flush failed", err)
	}
}

func (w *Writer) fail(what string, err error) {
	w.logger.Printf("%s: %v", what, err)
	w.publisher.Publish(telemetry.NewReceiverError(err, errorContext, telemetry.ErrorSeverityWarning))
}

func (w *Writer) closeFile() {
	if w.file == nil {
		return
	}
	w.csv.Flush()
	if err := w.file.Close(); err != nil {
		w.logger.Printf("session log close failed: %v", err)
	}
	w.file = nil
	w.csv = nil
}

// Close flushes and closes the current session file.
func (w *Writer) Close() {
	w.closeFile()
}
