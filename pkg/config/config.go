package config

type Config struct {
	Serial   SerialConfig
	Radio    RadioConfig
	Receiver ReceiverConfig
	Transmit TransmitConfig
}

type SerialConfig struct {
	Port string
	Baud int
}

type RadioConfig struct {
	Address         int
	NetworkID       int
	Band            int
	SpreadingFactor int
	Bandwidth       int
	CodingRate      int
	Preamble        int
}

type ReceiverConfig struct {
	LogDir                string
	SessionMode           string
	BringupTimeoutSeconds int
	DisplayRefreshMs      int
	IdlePollMs            int
	Dashboard             bool
}

type TransmitConfig struct {
	IntervalSeconds int
	TargetAddress   int
	EmitTokens      bool
}

// Load loads configuration from CLI flags and environment variables
// CLI flags take precedence over environment variables
func Load() (*Config, error) {
	// Parse CLI flags
	flagSource, showHelp := parseCLIFlags()

	if showHelp {
		printUsage()
		return nil, nil // Return nil to indicate help was shown
	}

	// Create resolver with precedence: CLI flags > Environment variables
	resolver := NewConfigResolver(flagSource, &EnvSource{})

	cfg := resolve(resolver)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolve builds a Config from the resolver; separated from Load so tests
// can drive it without touching the process flag set.
func resolve(resolver *ConfigResolver) *Config {
	return &Config{
		Serial: SerialConfig{
			Port: resolver.ResolveString(KeySerialPort, ""),
			Baud: resolver.ResolveInt(KeySerialBaud, DefaultSerialBaud),
		},
		Radio: RadioConfig{
			Address:         resolver.ResolveInt(KeyRadioAddress, DefaultRadioAddress),
			NetworkID:       resolver.ResolveInt(KeyRadioNetworkID, DefaultRadioNetworkID),
			Band:            resolver.ResolveInt(KeyRadioBand, DefaultRadioBand),
			SpreadingFactor: resolver.ResolveInt(KeyRadioSpreadingFactor, DefaultRadioSpreadingFactor),
			Bandwidth:       resolver.ResolveInt(KeyRadioBandwidth, DefaultRadioBandwidth),
			CodingRate:      resolver.ResolveInt(KeyRadioCodingRate, DefaultRadioCodingRate),
			Preamble:        resolver.ResolveInt(KeyRadioPreamble, DefaultRadioPreamble),
		},
		Receiver: ReceiverConfig{
			LogDir:                resolver.ResolveString(KeyLogDir, DefaultLogDir),
			SessionMode:           resolver.ResolveString(KeySessionMode, DefaultSessionMode),
			BringupTimeoutSeconds: resolver.ResolveInt(KeyBringupTimeoutSeconds, DefaultBringupTimeoutSeconds),
			DisplayRefreshMs:      resolver.ResolveInt(KeyDisplayRefreshMs, DefaultDisplayRefreshMs),
			IdlePollMs:            resolver.ResolveInt(KeyIdlePollMs, DefaultIdlePollMs),
			Dashboard:             resolver.ResolveBool(KeyDashboard, false),
		},
		Transmit: TransmitConfig{
			IntervalSeconds: resolver.ResolveInt(KeyTxIntervalSeconds, DefaultTxIntervalSeconds),
			TargetAddress:   resolver.ResolveInt(KeyTxTargetAddress, DefaultTxTargetAddress),
			EmitTokens:      resolver.ResolveBool(KeyTxEmitTokens, false),
		},
	}
}
