package clock

import "time"

// Clock abstracts time so tests can pin "today".
type Clock interface {
	NowUTC() time.Time
}

// SystemUTC is the production clock.
type SystemUTC struct{}

func (SystemUTC) NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) NowUTC() time.Time {
	return time.Time(f).UTC()
}
