package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp returns the provided time formatted using the local time zone.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(timestampLayout)
}

// FormatRelativeTimestamp describes value relative to now, e.g. "3 hours ago".
func FormatRelativeTimestamp(value time.Time, now time.Time) string {
	if value.IsZero() {
		return ""
	}
	return humanize.RelTime(value, now, "ago", "from now")
}
