package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ClockLabel renders the short HH:MM label readings carry.
func ClockLabel(t time.Time) string {
	return t.Format("15:04")
}
