package utils

import (
	"fmt"
	"time"
)

// QuickConnectionThresholdMinutes is the transfer wait below which a
// train/ferry connection is flagged as tight enough to warn the rider.
const QuickConnectionThresholdMinutes = 10

// ParseTimeToMinutes converts an "HH:MM" wall-clock string to linear minutes
// since midnight. Returns -1 for anything that is not a valid time, including
// the "does not stop" timetable sentinel. Times past 24:00 are rejected; the
// timetable has no service-day rollover.
func ParseTimeToMinutes(s string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return -1
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// IsTimeInPast reports whether the "HH:MM" time has already passed, comparing
// only against the current wall-clock minutes of now and ignoring the date.
// Malformed times are never in the past.
func IsTimeInPast(now time.Time, hhmm string) bool {
	mins := ParseTimeToMinutes(hhmm)
	if mins < 0 {
		return false
	}
	return mins < now.Hour()*60+now.Minute()
}

// UnixToLocalHHMM converts Unix seconds to a zero-padded "HH:MM" wall-clock
// string in the given location.
func UnixToLocalHHMM(sec int64, loc *time.Location) string {
	return time.Unix(sec, 0).In(loc).Format("15:04")
}

// ScheduledHHMMToUnix anchors a static "HH:MM" schedule time to a YYYYMMDD
// service date in the given location and returns Unix seconds. Returns 0 when
// either input is malformed.
func ScheduledHHMMToUnix(yyyymmdd, hhmm string, loc *time.Location) int64 {
	t, err := time.ParseInLocation("20060102 15:04", yyyymmdd+" "+hhmm, loc)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// IsQuickConnection reports whether a transfer wait in minutes is short
// enough to require a rider warning. Negative waits mean "no connection"
// and are never quick.
func IsQuickConnection(transferMinutes int) bool {
	return transferMinutes >= 0 && transferMinutes < QuickConnectionThresholdMinutes
}
