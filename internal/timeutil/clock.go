// Package timeutil handles the local/UTC boundary for stores and APIs that
// record timestamps in implicit local time.
package timeutil

import "time"

// TZOffsetSeconds is the difference UTC minus local time, in seconds,
// captured once at startup. Positive west of UTC, negative east, matching
// the convention of the desktop activity store. Every raw local-naive
// timestamp gets corrected by this value exactly once.
var TZOffsetSeconds = func() int64 {
	_, offset := time.Now().Zone()
	return int64(-offset)
}()

// UTCFromLocalSeconds converts a local-naive epoch-seconds value into a
// true UTC instant.
func UTCFromLocalSeconds(seconds int64) time.Time {
	return time.Unix(seconds-TZOffsetSeconds, 0).UTC()
}

// ISOFromLocalSeconds is UTCFromLocalSeconds formatted as an ISO-8601
// string with millisecond precision.
func ISOFromLocalSeconds(seconds int64) string {
	return ISO(UTCFromLocalSeconds(seconds))
}

// ISO formats a time the way JavaScript's toISOString does: UTC,
// millisecond precision, trailing Z.
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Clock is a snapshot of the current time in both local and UTC terms.
type Clock struct {
	Local    ClockFace `json:"local"`
	UTC      ClockFace `json:"utc"`
	TimeZone string    `json:"timeZone"`
}

// ClockFace is one rendering of an instant.
type ClockFace struct {
	YYYYMMDD string  `json:"yyyyMmDd"`
	ISO      string  `json:"iso"`
	Millis   int64   `json:"millis"`
	Seconds  float64 `json:"seconds"`
}

// Snapshot returns the current date and time for the getDateTime tool.
func Snapshot() Clock {
	now := time.Now()
	zone, _ := now.Zone()
	// Local wall-clock time expressed as if it were UTC, so the agent sees
	// the same digits the user does.
	local := now.Add(-time.Duration(TZOffsetSeconds) * time.Second)
	return Clock{
		Local:    face(local),
		UTC:      face(now),
		TimeZone: zone,
	}
}

func face(t time.Time) ClockFace {
	// Render the date from the same UTC instant as ISO, never from the
	// time's own location, so the two fields cannot disagree.
	return ClockFace{
		YYYYMMDD: t.UTC().Format("2006-01-02"),
		ISO:      ISO(t),
		Millis:   t.UnixMilli(),
		Seconds:  float64(t.UnixMilli()) / 1000,
	}
}
