package telemetry

// Snapshot is the aggregated receiver state consumed by display and log
// surfaces. It is a copy; readers never touch live aggregator state.
type Snapshot struct {
	// Last tracker statistics
	LastSeq         uint64
	Distance        float64
	Received        uint64
	Lost            uint64
	RSSI            float64
	SNR             float64
	SenderTotal     uint64
	LossRatePercent float64

	// Session state
	Sessions uint64

	// Link status
	LinkConnected bool

	// Rate metrics
	PacketsPerSecond float64

	// System metrics
	UptimeSeconds      float64
	ChannelUtilization float64

	// Error breakdown
	ErrorsTotal      uint64
	ErrorsByContext  map[string]uint64
	ErrorsBySeverity map[ErrorSeverity]uint64
	RecentErrors     []string
}

type TelemetryReader interface {
	Snapshot() Snapshot
}
