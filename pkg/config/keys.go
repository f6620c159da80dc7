package config

// Configuration key constants
// These constants centralize all environment variable and configuration key names
// to eliminate magic strings and improve maintainability.

const (
	// Serial link configuration keys
	KeySerialPort = "SERIAL_PORT"
	KeySerialBaud = "SERIAL_BAUD"

	// Receiver configuration keys
	KeyLogDir                = "LOG_DIR"
	KeySessionMode           = "SESSION_MODE"
	KeyBringupTimeoutSeconds = "LINK_BRINGUP_TIMEOUT_SECONDS"
	KeyDisplayRefreshMs      = "DISPLAY_REFRESH_MS"
	KeyIdlePollMs            = "IDLE_POLL_MS"
	KeyDashboard             = "DASHBOARD"

	// Radio configuration keys
	KeyRadioAddress         = "RADIO_ADDRESS"
	KeyRadioNetworkID       = "RADIO_NETWORK_ID"
	KeyRadioBand            = "RADIO_BAND"
	KeyRadioSpreadingFactor = "RADIO_SPREADING_FACTOR"
	KeyRadioBandwidth       = "RADIO_BANDWIDTH"
	KeyRadioCodingRate      = "RADIO_CODING_RATE"
	KeyRadioPreamble        = "RADIO_PREAMBLE"

	// Transmitter configuration keys
	KeyTxIntervalSeconds = "TX_INTERVAL_SECONDS"
	KeyTxTargetAddress   = "TX_TARGET_ADDRESS"
	KeyTxEmitTokens      = "TX_EMIT_TOKENS"
)

// Session mode values
const (
	SessionModeDistance = "distance"
	SessionModeToken    = "token"
)

// Default values for configuration
const (
	// Serial defaults
	DefaultSerialBaud = 115200

	// Receiver defaults
	DefaultLogDir                = "lora_data_logs"
	DefaultSessionMode           = SessionModeDistance
	DefaultBringupTimeoutSeconds = 5
	DefaultDisplayRefreshMs      = 100
	DefaultIdlePollMs            = 10

	// Radio defaults
	DefaultRadioAddress         = 2
	DefaultRadioNetworkID       = 18
	DefaultRadioBand            = 915000000
	DefaultRadioSpreadingFactor = 9
	DefaultRadioBandwidth       = 7
	DefaultRadioCodingRate      = 1
	DefaultRadioPreamble        = 4

	// Transmitter defaults
	DefaultTxIntervalSeconds = 1
	DefaultTxTargetAddress   = 1
)

// CLI flag name constants
const (
	// CLI flag names (kebab-case for command line)
	FlagSerialPort            = "serial-port"
	FlagSerialBaud            = "serial-baud"
	FlagLogDir                = "log-dir"
	FlagSessionMode           = "session-mode"
	FlagBringupTimeoutSeconds = "bringup-timeout-seconds"
	FlagDisplayRefreshMs      = "display-refresh-ms"
	FlagIdlePollMs            = "idle-poll-ms"
	FlagDashboard             = "dashboard"
	FlagRadioAddress          = "radio-address"
	FlagRadioNetworkID        = "radio-network-id"
	FlagRadioBand             = "radio-band"
	FlagRadioSpreadingFactor  = "radio-spreading-factor"
	FlagRadioBandwidth        = "radio-bandwidth"
	FlagRadioCodingRate       = "radio-coding-rate"
	FlagRadioPreamble         = "radio-preamble"
	FlagTxIntervalSeconds     = "tx-interval-seconds"
	FlagTxTargetAddress       = "tx-target-address"
	FlagTxEmitTokens          = "tx-emit-tokens"
	FlagHelp                  = "help"
)

// Help message constants
const (
	AppName        = "LoRa Range Telemetry"
	AppDescription = "Receive and track range-test telemetry over a LoRa link"
	UsageFormat    = "rxd [OPTIONS]"

	// Help descriptions
	HelpSerialPort            = "Serial device of the LoRa modem (auto-detect when empty)"
	HelpSerialBaud            = "Serial baud rate"
	HelpLogDir                = "Directory for per-session CSV logs (empty disables)"
	HelpSessionMode           = "Session detection mode: distance or token"
	HelpBringupTimeoutSeconds = "Link bring-up retry window in seconds"
	HelpDisplayRefreshMs      = "Display refresh interval in milliseconds"
	HelpIdlePollMs            = "Idle poll interval in milliseconds"
	HelpDashboard             = "Show the full-screen dashboard instead of quiet status lines"
	HelpRadioAddress          = "Radio address of this end"
	HelpRadioNetworkID        = "Radio network id (must match the sender)"
	HelpRadioBand             = "Radio band center frequency in Hz"
	HelpRadioSpreadingFactor  = "LoRa spreading factor (7-12)"
	HelpRadioBandwidth        = "LoRa bandwidth code (0-9)"
	HelpRadioCodingRate       = "LoRa coding rate (1-4)"
	HelpRadioPreamble         = "LoRa programmed preamble (4-7)"
	HelpTxIntervalSeconds     = "Transmit interval in seconds"
	HelpTxTargetAddress       = "Radio address of the receiver"
	HelpTxEmitTokens          = "Emit explicit session tokens in packets"
	HelpShowHelp              = "Show this help message"

	// Help section headers
	HelpOptions         = "Options:"
	HelpEnvironmentVars = "Environment Variables:"
	HelpUsage           = "Usage:"
	HelpNote            = "Note: CLI options override environment variables"
)
