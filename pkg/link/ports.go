package link

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// DetectPort picks a serial device when none is configured. ACM devices
// are preferred over plain USB adapters, matching how the modem usually
// enumerates on a Raspberry Pi.
func DetectPort() (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no serial ports found")
	}

	for _, name := range ports {
		if strings.Contains(name, "ttyACM") {
			return name, nil
		}
	}
	for _, name := range ports {
		if strings.Contains(name, "ttyUSB") {
			return name, nil
		}
	}
	return ports[0], nil
}
