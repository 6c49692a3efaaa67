package utils

import "time"

// DaysBetween returns the number of whole days elapsed from since to now.
func DaysBetween(since, now time.Time) int {
	if now.Before(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}
