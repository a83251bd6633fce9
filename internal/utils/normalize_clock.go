package utils

import (
	"fmt"
	"strings"
)

// NormalizeClockTime normalizes a time-of-day to "HH:MM:SS".
// Accepts "H:MM", "HH:MM" and "HH:MM:SS".
func NormalizeClockTime(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var h, m, s int
	switch strings.Count(trimmed, ":") {
	case 1:
		if _, err := fmt.Sscanf(trimmed, "%d:%d", &h, &m); err != nil {
			return "", fmt.Errorf("invalid time %q", raw)
		}
	case 2:
		if _, err := fmt.Sscanf(trimmed, "%d:%d:%d", &h, &m, &s); err != nil {
			return "", fmt.Errorf("invalid time %q", raw)
		}
	default:
		return "", fmt.Errorf("invalid time %q", raw)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return "", fmt.Errorf("invalid time %q", raw)
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// ClockTimeParts splits a normalized "HH:MM:SS" value.
func ClockTimeParts(normalized string) (h, m, s int, err error) {
	if _, err = fmt.Sscanf(normalized, "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid time %q", normalized)
	}
	return h, m, s, nil
}
