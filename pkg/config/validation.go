package config

import "fmt"

func (c *Config) validate() error {
	if c.Receiver.SessionMode != SessionModeDistance && c.Receiver.SessionMode != SessionModeToken {
		return fmt.Errorf("SESSION_MODE must be %q or %q, got %q",
			SessionModeDistance, SessionModeToken, c.Receiver.SessionMode)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("SERIAL_BAUD must be positive, got %d", c.Serial.Baud)
	}
	if c.Receiver.DisplayRefreshMs <= 0 {
		return fmt.Errorf("DISPLAY_REFRESH_MS must be positive, got %d", c.Receiver.DisplayRefreshMs)
	}
	if c.Receiver.IdlePollMs <= 0 {
		return fmt.Errorf("IDLE_POLL_MS must be positive, got %d", c.Receiver.IdlePollMs)
	}
	if c.Receiver.BringupTimeoutSeconds < 0 {
		return fmt.Errorf("LINK_BRINGUP_TIMEOUT_SECONDS must not be negative, got %d", c.Receiver.BringupTimeoutSeconds)
	}
	if c.Radio.SpreadingFactor < 7 || c.Radio.SpreadingFactor > 12 {
		return fmt.Errorf("RADIO_SPREADING_FACTOR must be 7-12, got %d", c.Radio.SpreadingFactor)
	}
	if c.Radio.Bandwidth < 0 || c.Radio.Bandwidth > 9 {
		return fmt.Errorf("RADIO_BANDWIDTH must be 0-9, got %d", c.Radio.Bandwidth)
	}
	if c.Radio.CodingRate < 1 || c.Radio.CodingRate > 4 {
		return fmt.Errorf("RADIO_CODING_RATE must be 1-4, got %d", c.Radio.CodingRate)
	}
	if c.Radio.Preamble < 4 || c.Radio.Preamble > 7 {
		return fmt.Errorf("RADIO_PREAMBLE must be 4-7, got %d", c.Radio.Preamble)
	}
	if c.Transmit.IntervalSeconds <= 0 {
		return fmt.Errorf("TX_INTERVAL_SECONDS must be positive, got %d", c.Transmit.IntervalSeconds)
	}
	return nil
}
