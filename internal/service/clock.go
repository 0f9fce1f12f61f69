package service

import "time"

// clock stamps createdAt and lastLogin. The configured offset is added to
// the wall clock; token timestamps use the wall clock as is.
type clock struct {
	now    func() time.Time
	offset time.Duration
}

func newClock(offset time.Duration) clock {
	return clock{now: time.Now, offset: offset}
}

// Stamp returns the current time shifted by the offset.
func (c clock) Stamp() time.Time {
	return c.now().Add(c.offset)
}
