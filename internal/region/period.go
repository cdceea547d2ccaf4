package region

import "time"

const (
	DayStartHour = 6
	DayEndHour   = 18
)

// PeriodOfHour returns Day for hours in [6, 18) and Night otherwise.
func PeriodOfHour(hour int) TimePeriod {
	if hour >= DayStartHour && hour < DayEndHour {
		return Day
	}
	return Night
}

func PeriodAt(t time.Time) TimePeriod {
	return PeriodOfHour(t.Hour())
}

// Clock abstracts wall-clock time.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// CurrentPeriod classifies the current hour in loc. A nil loc means the
// server's local zone.
func CurrentPeriod(clock Clock, loc *time.Location) TimePeriod {
	if clock == nil {
		clock = SystemClock
	}
	now := clock.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return PeriodAt(now)
}
