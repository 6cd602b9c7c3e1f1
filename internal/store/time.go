package store

import "time"

// unixToTime converts a stored Unix-seconds column back to a UTC time.Time.
func unixToTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
