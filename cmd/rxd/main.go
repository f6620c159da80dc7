package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lora-telemetry/pkg/config"
	"lora-telemetry/pkg/link"
	"lora-telemetry/pkg/receiver"
	"lora-telemetry/pkg/sessionlog"
	"lora-telemetry/pkg/telemetry"
	"lora-telemetry/pkg/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		info := version.Info()
		fmt.Printf("rxd version %s, commit %s, built %s\n", info.Version, info.Commit, info.Built)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// Help was shown
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aggregator := telemetry.NewAggregator(telemetry.RealClock{}, telemetry.DefaultConfig())
	aggregator.Start(ctx)
	defer aggregator.Stop()

	driver := openLink(cfg, logger, aggregator)
	defer driver.Close()

	var sessions *sessionlog.Writer
	if cfg.Receiver.LogDir != "" {
		sessions, err = sessionlog.New(cfg.Receiver.LogDir, logger, aggregator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening session log directory: %v\n", err)
			os.Exit(1)
		}
		defer sessions.Close()
	}

	rx := receiver.New(cfg, logger, driver, sessions, aggregator)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("Shutdown signal received")
		cancel()
	}()

	rxDone := make(chan error, 1)
	go func() { rxDone <- rx.Run(ctx) }()

	if cfg.Receiver.Dashboard {
		err = RunDashboard(ctx, cancel, aggregator, cfg)
	} else {
		err = NewCLI(aggregator, cfg, logger).Run(ctx)
	}
	cancel()

	if rxErr := <-rxDone; rxErr != nil {
		logger.Printf("Receive loop error: %v", rxErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLink brings up the serial radio within the configured timeout.
// Failure is not fatal: the receiver runs degraded and logs nothing
// until the operator restarts with a working modem.
func openLink(cfg *config.Config, logger *log.Logger, publisher telemetry.TelemetryPublisher) link.Driver {
	driver, err := link.Open(link.Options{
		Port: cfg.Serial.Port,
		Baud: cfg.Serial.Baud,
		Radio: &link.RadioConfig{
			Address:         uint16(cfg.Radio.Address),
			NetworkID:       uint8(cfg.Radio.NetworkID),
			Band:            uint32(cfg.Radio.Band),
			SpreadingFactor: uint8(cfg.Radio.SpreadingFactor),
			Bandwidth:       uint8(cfg.Radio.Bandwidth),
			CodingRate:      uint8(cfg.Radio.CodingRate),
			Preamble:        uint8(cfg.Radio.Preamble),
		},
		BringupTimeout: time.Duration(cfg.Receiver.BringupTimeoutSeconds) * time.Second,
		Logger:         logger,
		OnError: func(err error) {
			publisher.Publish(telemetry.NewReceiverError(err, "link_read", telemetry.ErrorSeverityError))
		},
	})
	if err != nil {
		logger.Printf("Link bring-up failed: %v", err)
		publisher.Publish(telemetry.NewReceiverError(err, "link_bringup", telemetry.ErrorSeverityError))
		return link.Unavailable{}
	}
	return driver
}
