package link

import (
	"strconv"
	"strings"
)

// parseRCV parses the payload of an unsolicited receive line from the
// modem. Format: <Address>,<Length>,<Data>,<RSSI>,<SNR>. Data is exactly
// Length bytes and may itself contain commas, so it is cut by length, not
// by separator. Example: 50,5,HELLO,-99,40
func parseRCV(payload string) (Reading, bool) {
	var r Reading

	idx1 := strings.Index(payload, ",")
	if idx1 == -1 {
		return r, false
	}

	addr, err := strconv.ParseUint(payload[:idx1], 10, 16)
	if err != nil {
		return r, false
	}
	r.Addr = uint16(addr)

	remaining := payload[idx1+1:]
	idx2 := strings.Index(remaining, ",")
	if idx2 == -1 {
		return r, false
	}

	length, err := strconv.ParseUint(remaining[:idx2], 10, 16)
	if err != nil {
		return r, false
	}

	dataStart := idx1 + 1 + idx2 + 1
	dataEnd := dataStart + int(length)
	if dataEnd > len(payload) {
		return r, false
	}
	r.Raw = payload[dataStart:dataEnd]

	afterData := payload[dataEnd:]
	if !strings.HasPrefix(afterData, ",") {
		return r, false
	}
	afterData = afterData[1:]

	idx3 := strings.Index(afterData, ",")
	if idx3 == -1 {
		return r, false
	}

	rssi, err := strconv.ParseFloat(afterData[:idx3], 64)
	if err != nil {
		return r, false
	}
	r.RSSI = rssi

	snr, err := strconv.ParseFloat(strings.TrimSpace(afterData[idx3+1:]), 64)
	if err != nil {
		return r, false
	}
	r.SNR = snr

	return r, true
}
