package utils

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0"},
		{123, "123"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
	}

	for _, test := range tests {
		result := FormatNumber(test.input)
		if result != test.expected {
			t.Errorf("FormatNumber(%d) = %s; expected %s", test.input, result, test.expected)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0s"},
		{59, "59s"},
		{61, "1m01s"},
		{3723, "1h02m03s"},
	}

	for _, test := range tests {
		result := FormatUptime(test.input)
		if result != test.expected {
			t.Errorf("FormatUptime(%f) = %s; expected %s", test.input, result, test.expected)
		}
	}
}

func TestSortErrorContextsByCount(t *testing.T) {
	input := map[string]uint64{
		"serial_read":  100,
		"codec":        50,
		"session_log":  200,
		"link_bringup": 50,
	}

	result := SortErrorContextsByCount(input)

	// Sorted by count descending; same count sorted by context ascending
	expected := []ContextCount{
		{Context: "session_log", Count: 200},
		{Context: "serial_read", Count: 100},
		{Context: "codec", Count: 50},
		{Context: "link_bringup", Count: 50},
	}

	if len(result) != len(expected) {
		t.Fatalf("Expected %d items, got %d", len(expected), len(result))
	}

	for i, exp := range expected {
		if result[i].Context != exp.Context || result[i].Count != exp.Count {
			t.Errorf("At index %d: expected %+v, got %+v", i, exp, result[i])
		}
	}
}
