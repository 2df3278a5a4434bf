package utils

import (
	"fmt"
	"strings"
	"time"
)

// NowNano returns the current time as nanoseconds since Unix epoch.
func NowNano() int64 {
	return time.Now().UnixNano()
}

// NanoToTime converts a nanosecond Unix timestamp back to time.Time.
func NanoToTime(ns int64) time.Time {
	return time.Unix(0, ns)
}

// UnitNanos returns the nanosecond multiplier for a recording timestamp
// unit. Recordings commonly store epoch milliseconds, so that is the
// default for an empty unit.
func UnitNanos(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "", "ms":
		return 1e6, nil
	case "s":
		return 1e9, nil
	case "us":
		return 1e3, nil
	case "ns":
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown time unit %q (want s, ms, us or ns)", unit)
	}
}

// SessionName returns a unique session directory name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, time.Now().Format("20060102_150405"))
}
