package utils

import (
	"fmt"
	"sort"
	"strconv"
)

type ContextCount struct {
	Context string
	Count   uint64
}

// SortErrorContextsByCount sorts error contexts by count (descending), then by name (ascending)
func SortErrorContextsByCount(errorsByContext map[string]uint64) []ContextCount {
	var contextCounts []ContextCount
	for context, count := range errorsByContext {
		contextCounts = append(contextCounts, ContextCount{Context: context, Count: count})
	}

	// Sort by count descending, then by context ascending
	sort.Slice(contextCounts, func(i, j int) bool {
		if contextCounts[i].Count == contextCounts[j].Count {
			return contextCounts[i].Context < contextCounts[j].Context
		}
		return contextCounts[i].Count > contextCounts[j].Count
	})

	return contextCounts
}

// FormatNumber formats a number with comma separators for readability
func FormatNumber(n uint64) string {
	str := strconv.FormatUint(n, 10)
	if len(str) <= 3 {
		return str
	}

	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// FormatUptime renders whole seconds as h/m/s for status displays
func FormatUptime(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
