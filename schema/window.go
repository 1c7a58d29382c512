package schema

import (
	"fmt"
	"time"
)

// LookbackDays is how many calendar days before the target date still count.
const LookbackDays = 5

// TimeWindow bounds the commits that belong to a report. Both ends are exclusive.
type TimeWindow struct {
	Since time.Time
	Until time.Time
}

// NewTimeWindow computes the window for the target date described by override.
// Until is the target date at 23:59:59 in loc and Since is LookbackDays earlier.
func NewTimeWindow(override DateOverride, now time.Time, loc *time.Location) (TimeWindow, error) {
	if loc == nil {
		loc = time.Local
	}
	year, month, day := override.Resolve(now.In(loc))
	until := time.Date(year, month, day, 23, 59, 59, 0, loc)

	// time.Date normalizes out-of-range values; reject them instead.
	if y, m, d := until.Date(); y != year || m != month || d != day {
		return TimeWindow{}, fmt.Errorf("invalid date %d-%d-%d", year, int(month), day)
	}

	return TimeWindow{
		Since: until.AddDate(0, 0, -LookbackDays),
		Until: until,
	}, nil
}

// Contains reports whether ts (unix seconds) falls strictly inside the window.
func (w TimeWindow) Contains(ts int64) bool {
	return w.Since.Unix() < ts && ts < w.Until.Unix()
}
