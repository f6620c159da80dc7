package main

import (
	"context"
	"log"
	"time"

	"lora-telemetry/pkg/config"
	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/utils"
)

// CLI represents the command-line interface runner
type CLI struct {
	telemetry telemetry.TelemetryReader
	config    *config.Config
	logger    *log.Logger

	// State
	lastSnapshot telemetry.Snapshot
	printedOnce  bool
	done         chan struct{}
}

// NewCLI creates a new command-line interface runner
func NewCLI(telemetryReader telemetry.TelemetryReader, cfg *config.Config, logger *log.Logger) *CLI {
	return &CLI{
		telemetry: telemetryReader,
		config:    cfg,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Run starts the CLI runner and blocks until shutdown
func (c *CLI) Run(ctx context.Context) error {
	c.logger.Printf("Starting LoRa telemetry receiver in quiet mode")
	c.logger.Printf("Serial port: %s", portLabel(c.config.Serial.Port))
	c.logger.Printf("Session mode: %s", c.config.Receiver.SessionMode)
	if c.config.Receiver.LogDir != "" {
		c.logger.Printf("Session logs: %s", c.config.Receiver.LogDir)
	}

	// Print periodic status updates
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Printf("Shutting down...")
			return nil
		case <-ticker.C:
			c.printStatus()
		case <-c.done:
			return nil
		}
	}
}

// Stop stops the CLI runner
func (c *CLI) Stop() {
	close(c.done)
}

// printStatus prints current telemetry status
func (c *CLI) printStatus() {
	snapshot := c.telemetry.Snapshot()

	// Only print if there are changes or significant activity
	if c.shouldPrintStatus(snapshot) {
		c.logger.Printf("Status - Packets: received=%s, lost=%s, rate=%.1f/s, loss=%.2f%%",
			utils.FormatNumber(snapshot.Received),
			utils.FormatNumber(snapshot.Lost),
			snapshot.PacketsPerSecond,
			snapshot.LossRatePercent)

		c.logger.Printf("Signal - RSSI: %.1f dBm, SNR: %.1f dB, distance: %.2f m",
			snapshot.RSSI, snapshot.SNR, snapshot.Distance)

		c.logger.Printf("Link - connected: %t, sessions: %d, uptime: %s, errors: %d",
			snapshot.LinkConnected,
			snapshot.Sessions,
			utils.FormatUptime(snapshot.UptimeSeconds),
			snapshot.ErrorsTotal)
	}

	c.lastSnapshot = snapshot
	c.printedOnce = true
}

// shouldPrintStatus determines if we should print a status update
func (c *CLI) shouldPrintStatus(snapshot telemetry.Snapshot) bool {
	// Always print first status
	if !c.printedOnce {
		return true
	}

	// Print if packet counts changed
	if snapshot.Received != c.lastSnapshot.Received ||
		snapshot.Lost != c.lastSnapshot.Lost {
		return true
	}

	// Print if there are new errors
	if snapshot.ErrorsTotal > c.lastSnapshot.ErrorsTotal {
		return true
	}

	// Print if link status or session count changed
	if snapshot.LinkConnected != c.lastSnapshot.LinkConnected ||
		snapshot.Sessions != c.lastSnapshot.Sessions {
		return true
	}

	return false
}

func portLabel(port string) string {
	if port == "" {
		return "auto-detect"
	}
	return port
}
