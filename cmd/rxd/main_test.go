package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	cmd := exec.Command("go", "build", "-o", "test_rxd.exe", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	t.Cleanup(func() { os.Remove("test_rxd.exe") })
	return "./test_rxd.exe"
}

func TestMainVersionFlag(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "--version").Output()
	if err != nil {
		t.Fatalf("failed to run version command: %v", err)
	}

	outputStr := string(output)
	if !strings.Contains(outputStr, "rxd version") {
		t.Errorf("expected version output to contain 'rxd version', got: %s", outputStr)
	}
}

func TestMainHelp(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "--help").Output()
	if err != nil {
		t.Fatalf("failed to run help command: %v", err)
	}

	outputStr := string(output)
	if !strings.Contains(outputStr, "LoRa Range Telemetry") {
		t.Errorf("expected help output to contain header, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "Usage:") {
		t.Errorf("expected help output to contain 'Usage:', got: %s", outputStr)
	}
}

func TestMainRejectsBadConfig(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin)
	cmd.Env = append(os.Environ(), "SESSION_MODE=bogus")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected error for invalid config, but command succeeded")
	}

	if !strings.Contains(string(output), "Error loading configuration") {
		t.Errorf("expected configuration error message, got: %s", output)
	}
}
