// Package biztime provides utilities for reporting timezone calculations.
// All storage and transport use UTC. The reporting timezone is only used for
// calculating day boundaries in progress time series.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when no reporting timezone is configured.
const DefaultTimezone = "UTC"

// DayLayout is the key format of a daily bucket.
const DayLayout = "2006-01-02"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the reporting timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the reporting timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of t's day in the reporting timezone, as UTC.
func StartOfDayUTC(t time.Time) time.Time {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location())
	return start.UTC()
}

// DayKey formats t as the reporting day it falls in.
func DayKey(t time.Time) string {
	return t.In(Location()).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string as the start of that day in the reporting timezone.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}
