// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Range returns the first and last day buckets of the month in loc.
func (m Month) Range(loc *time.Location) (first, last time.Time) {
	first = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	last = first.AddDate(0, 1, -1)
	return first, last
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// DayBucket truncates t to midnight of its calendar day in loc.
func DayBucket(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// FromDate rebuilds a DATE column value (which carries no zone) as midnight in loc.
func FromDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateKey renders the calendar fields of t without any zone conversion.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads YYYY-MM-DD as a day bucket in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// LastDays returns the n day buckets ending at today, oldest first.
func LastDays(today time.Time, n int, loc *time.Location) []time.Time {
	end := DayBucket(today, loc)
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, end.AddDate(0, 0, -i))
	}
	return out
}
