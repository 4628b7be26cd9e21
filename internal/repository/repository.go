// Package repository contains the database/sql adapters backing the
// booking store ports.  All statements stick to `?` placeholders and
// ANSI column types so they run unchanged on MySQL and SQLite.  Dates
// and timestamps are stored as formatted strings (YYYY-MM-DD and
// YYYY-MM-DD HH:MM:SS, both UTC) and parsed back when scanning, which
// keeps the two drivers behaviourally identical.
package repository

import (
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// nowUTC returns the current UTC time truncated to whole seconds, the
// resolution of the stored timestamp format.
func nowUTC() time.Time { return time.Now().UTC().Truncate(time.Second) }

// fmtDate renders a calendar date for storage.
func fmtDate(t time.Time) string { return t.UTC().Format(dateLayout) }

// fmtTime renders a timestamp for storage.
func fmtTime(t time.Time) string { return t.UTC().Format(dateTimeLayout) }

// parseDate parses a stored calendar date.  The zero time is returned
// for empty strings.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// parseTime parses a stored timestamp.  The zero time is returned for
// empty strings.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateTimeLayout, s, time.UTC)
}
