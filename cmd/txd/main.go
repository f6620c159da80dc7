package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"lora-telemetry/pkg/config"
	"lora-telemetry/pkg/link"
	"lora-telemetry/pkg/sender"
	"lora-telemetry/pkg/version"
	"lora-telemetry/pkg/wire"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		info := version.Info()
		fmt.Printf("txd version %s, commit %s, built %s\n", info.Version, info.Commit, info.Built)
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
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening link: %v\n", err)
		os.Exit(1)
	}
	defer driver.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("Shutdown signal received")
		cancel()
	}()

	s := sender.New(sender.Options{EmitTokens: cfg.Transmit.EmitTokens})

	target := uint16(cfg.Transmit.TargetAddress)
	interval := time.Duration(cfg.Transmit.IntervalSeconds) * time.Second

	go s.Run(ctx, interval, func(msg wire.Message) error {
		return driver.Send(target, msg.Encode())
	}, func(err error) {
		logger.Printf("Transmit failed: %v", err)
	})

	logger.Printf("Transmitting to address %d every %s", target, interval)
	logger.Printf("Enter a distance in meters to start a new session")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Printf("Shutting down...")
			return
		case line, ok := <-lines:
			if !ok {
				logger.Printf("Input closed, shutting down...")
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			distance, err := strconv.ParseFloat(text, 64)
			if err != nil || distance < 0 {
				logger.Printf("Invalid distance %q, enter a number of meters", text)
				continue
			}
			s.SetDistance(distance)
			logger.Printf("New session at %.2f m", distance)
		}
	}
}
