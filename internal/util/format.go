// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// FormatBytes formats bytes with appropriate binary units (B, KiB, MiB, GiB).
// Zero is reported as "Unknown" since probes leave the size unset when the
// container does not carry it.
func FormatBytes(bytes uint64) string {
	if bytes == 0 {
		return "Unknown"
	}
	bf := float64(bytes)
	switch {
	case bf >= GiB:
		return fmt.Sprintf("%.2f GiB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.2f MiB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.2f KiB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatBitRate formats a bit rate in bits per second as Mbps.
func FormatBitRate(bitsPerSec uint64) string {
	if bitsPerSec == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f Mbps", float64(bitsPerSec)/1_000_000)
}

// FormatDuration formats seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??"
	}

	totalSecs := int64(seconds)
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatTimestamp formats a frame timestamp as M:SS for defect reports.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || seconds != seconds {
		seconds = 0
	}
	totalSecs := int64(seconds)
	return fmt.Sprintf("%d:%02d", totalSecs/60, totalSecs%60)
}

// ParseRational parses an ffprobe rational like "30000/1001" into a decimal.
// Malformed input and division by zero yield 0 rather than an error; the
// validator treats a zero rate as a standards violation downstream.
func ParseRational(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
