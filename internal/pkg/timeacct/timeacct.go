// Package timeacct turns clock-in/clock-out and break timestamps into worked
// hours, and leave date ranges into inclusive day counts.
package timeacct

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hour = decimal.NewFromInt(int64(time.Hour))

// Interval is a span whose ends may each be unknown.
type Interval struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both ends are known.
func (i Interval) Complete() bool {
	return i.Start != nil && i.End != nil
}

// Duration returns End-Start, which may be negative, or zero for an incomplete interval.
func (i Interval) Duration() time.Duration {
	if !i.Complete() {
		return 0
	}
	return i.End.Sub(*i.Start)
}

// WorkedHours returns the hours between work.Start and work.End minus the
// break, never less than zero. A break with only one end is ignored.
func WorkedHours(work, brk Interval) decimal.Decimal {
	if !work.Complete() {
		return decimal.Zero
	}

	worked := work.Duration()
	if brk.Complete() {
		worked -= brk.Duration()
	}
	if worked <= 0 {
		return decimal.Zero
	}

	return Hours(worked)
}

// Hours converts d to fractional hours without rounding.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(hour)
}

// DaysRequested counts calendar days from start to end inclusive. Time of day
// and zone offset are ignored. Callers must ensure end is not before start.
func DaysRequested(start, end time.Time) int {
	days := Date(end).Sub(Date(start)).Hours() / 24
	return int(math.Floor(days)) + 1
}

// Date truncates t to midnight UTC of its own calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// At returns the wall-clock time offset past midnight on date's calendar day
// in loc. The offset is read as hours, minutes and seconds on the clock face,
// not as elapsed time, so days with a daylight-saving shift keep the entered time.
func At(date time.Time, offset time.Duration, loc *time.Location) time.Time {
	y, m, d := date.Date()
	h := int(offset / time.Hour)
	mins := int(offset % time.Hour / time.Minute)
	sec := int(offset % time.Minute / time.Second)
	return time.Date(y, m, d, h, mins, sec, 0, loc)
}
