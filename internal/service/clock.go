package service

import "time"

// Clock reports the current time. Its location decides the calendar day.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
