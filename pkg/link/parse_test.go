package link

import "testing"

func TestParseRCV(t *testing.T) {
	r, ok := parseRCV("50,5,HELLO,-99,40")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if r.Addr != 50 {
		t.Errorf("expected address 50, got %d", r.Addr)
	}
	if r.Raw != "HELLO" {
		t.Errorf("expected payload HELLO, got %q", r.Raw)
	}
	if r.RSSI != -99 {
		t.Errorf("expected rssi -99, got %f", r.RSSI)
	}
	if r.SNR != 40 {
		t.Errorf("expected snr 40, got %f", r.SNR)
	}
}

func TestParseRCV_PayloadWithCommas(t *testing.T) {
	payload := `{"seq":42,"dist":12.50,"total":43,"timestamp":915823}`
	line := "1,53," + payload + ",-112,-3"

	r, ok := parseRCV(line)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if r.Raw != payload {
		t.Errorf("payload mangled: %q", r.Raw)
	}
	if r.RSSI != -112 || r.SNR != -3 {
		t.Errorf("expected rssi=-112 snr=-3, got rssi=%f snr=%f", r.RSSI, r.SNR)
	}
}

func TestParseRCV_Malformed(t *testing.T) {
	cases := []string{
		"",
		"50",
		"50,5",
		"x,5,HELLO,-99,40",
		"50,notalen,HELLO,-99,40",
		"50,500,HELLO,-99,40", // length beyond payload
		"50,5,HELLO",
		"50,5,HELLO,-99",
		"50,5,HELLO,bad,40",
		"50,5,HELLO,-99,bad",
	}

	for _, payload := range cases {
		if _, ok := parseRCV(payload); ok {
			t.Errorf("expected parse of %q to fail", payload)
		}
	}
}

func TestCheckResponse(t *testing.T) {
	if err := checkResponse("+OK\r\n"); err != nil {
		t.Errorf("expected +OK accepted, got %v", err)
	}
	if err := checkResponse("+ERR=4\r\n"); err == nil {
		t.Errorf("expected +ERR rejected")
	}
	if err := checkResponse("+ADDRESS=1\r\n"); err != nil {
		t.Errorf("expected query response accepted, got %v", err)
	}
}

func TestUnavailableDriver(t *testing.T) {
	var d Driver = Unavailable{}

	if _, ok := d.TryReceive(); ok {
		t.Errorf("expected no readings from unavailable link")
	}
	if d.Connected() {
		t.Errorf("expected unavailable link to report disconnected")
	}
	if err := d.Close(); err != nil {
		t.Errorf("expected close to be a no-op, got %v", err)
	}
}
