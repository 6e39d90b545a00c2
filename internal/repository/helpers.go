package repository

import (
	"time"
)

// timeLayout is the on-disk timestamp format. Nanoseconds keep ordering
// stable for saves made within the same second.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp, returning the zero time for bad input.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// clampLimit keeps list limits within [1, ceiling].
func clampLimit(limit, ceiling int) int {
	if limit <= 0 || limit > ceiling {
		return ceiling
	}
	return limit
}
