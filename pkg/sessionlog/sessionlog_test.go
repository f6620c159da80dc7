package sessionlog

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/testutil"
	"lora-telemetry/pkg/tracker"
)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir, log.New(os.Stderr, "", 0), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Deterministic timestamps, advancing so file names stay unique.
	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return w, dir
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func sessionFiles(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "lora_data_*.csv"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return files
}

func TestWriter_NewFilePerSession(t *testing.T) {
	w, dir := newTestWriter(t)
	defer w.Close()

	w.StartSession(10)
	w.Data(tracker.Snapshot{Seq: 0, Distance: 10, Received: 1, SenderTotal: 1})
	w.StartSession(25)
	w.Data(tracker.Snapshot{Seq: 0, Distance: 25, Received: 1, SenderTotal: 1})

	files := sessionFiles(t, dir)
	if len(files) != 2 {
		t.Fatalf("expected 2 session files, got %d: %v", len(files), files)
	}

	var found bool
	for _, f := range files {
		if strings.Contains(filepath.Base(f), "lora_data_25.00m_") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a file named after distance 25.00, got %v", files)
	}
}

func TestWriter_HeadersAndDataRow(t *testing.T) {
	w, dir := newTestWriter(t)
	defer w.Close()

	w.StartSession(12.5)
	w.Data(tracker.Snapshot{
		Seq:             6,
		Distance:        12.5,
		Received:        5,
		Lost:            2,
		RSSI:            -97.0,
		SNR:             6.0,
		SenderTotal:     7,
		LossRatePercent: 100 * 2.0 / 7.0,
	})

	files := sessionFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("expected 1 session file, got %d", len(files))
	}

	rows := readRows(t, files[0])
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 data row, got %d rows", len(rows))
	}
	for i, h := range Headers {
		if rows[0][i] != h {
			t.Errorf("header %d: expected %q, got %q", i, h, rows[0][i])
		}
	}
	data := rows[1]
	if data[1] != "DATA" || data[2] != "6" || data[3] != "12.50" {
		t.Errorf("unexpected data row: %v", data)
	}
	if data[4] != "5" || data[5] != "2" || data[8] != "7" {
		t.Errorf("unexpected counters in row: %v", data)
	}
}

func TestWriter_ZeroTotalReplacedByReceived(t *testing.T) {
	w, dir := newTestWriter(t)
	defer w.Close()

	w.StartSession(10)
	w.Data(tracker.Snapshot{Seq: 3, Distance: 10, Received: 4, SenderTotal: 0})

	rows := readRows(t, sessionFiles(t, dir)[0])
	if rows[1][8] != "4" {
		t.Errorf("expected TotalPackets 0 replaced by Received 4, got %q", rows[1][8])
	}
}

func TestWriter_LostRow(t *testing.T) {
	w, dir := newTestWriter(t)
	defer w.Close()

	w.StartSession(10)
	w.Lost(9)

	rows := readRows(t, sessionFiles(t, dir)[0])
	if len(rows) != 2 {
		t.Fatalf("expected header + lost row, got %d rows", len(rows))
	}
	if rows[1][1] != "LOST" || rows[1][2] != "9" {
		t.Errorf("unexpected lost row: %v", rows[1])
	}
	if rows[1][3] != "" {
		t.Errorf("expected empty distance in lost row, got %q", rows[1][3])
	}
}

func TestWriter_CreateFailureReachesTelemetry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	publisher := testutil.NewCapturingPublisher()

	w, err := New(dir, log.New(os.Stderr, "", 0), publisher)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	// Removing the directory makes the next file create fail.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("removing log dir: %v", err)
	}
	w.StartSession(10)

	events := publisher.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 telemetry event, got %d", len(events))
	}
	recvErr, ok := events[0].(telemetry.ReceiverError)
	if !ok {
		t.Fatalf("expected a ReceiverError event, got %#v", events[0])
	}
	if recvErr.Context != "session_log" {
		t.Errorf("expected session_log context, got %q", recvErr.Context)
	}
	if recvErr.Severity != telemetry.ErrorSeverityWarning {
		t.Errorf("expected warning severity, got %v", recvErr.Severity)
	}
}

func TestWriter_RowsBeforeSessionAreDropped(t *testing.T) {
	w, dir := newTestWriter(t)
	defer w.Close()

	// No session yet: rows are silently dropped, never a crash.
	w.Data(tracker.Snapshot{Seq: 1})
	w.Lost(2)

	if files := sessionFiles(t, dir); len(files) != 0 {
		t.Errorf("expected no files before a session, got %v", files)
	}
}
