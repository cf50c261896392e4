package config

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDay maps a day name ("monday", case-insensitive) to time.Weekday.
// Both loaders share this vocabulary so the two formats cannot diverge.
func ParseDay(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown day of week %q", name)
	}
	return day, nil
}

// ParseInstant parses an RFC 3339 timestamp and normalizes it to UTC. The
// core interprets every instant as UTC; conversion from local time happens
// here, at the document boundary.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ValidateHour rejects shift hours outside the whole-hour day range.
func ValidateHour(field string, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%s must be between 0 and 23, got %d", field, hour)
	}
	return nil
}
