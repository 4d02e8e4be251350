package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
var NowUTC = func() time.Time {
	return time.Now().UTC()
}

// ElapsedMs reports the milliseconds since start according to NowUTC.
func ElapsedMs(start time.Time) int64 {
	return NowUTC().Sub(start).Milliseconds()
}
