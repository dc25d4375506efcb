package clock

import (
	"fmt"
	"time"
)

// DateLayout is the DD.MM.YYYY form used by schedule.json keys and the date override.
const DateLayout = "02.01.2006"

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a DD.MM.YYYY string. Day and month must be zero padded.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("clock: malformed date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}
