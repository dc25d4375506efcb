// Package clock supplies the "now" used by the display: the real wall clock,
// optionally with its time-of-day and/or date replaced by debug overrides.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// Reading is what the rotation engine knows about "now".
type Reading struct {
	MinutesOfDay int
	Date         Date
}

// Reader yields the current reading. The scheduler re-reads it every time a page becomes current.
type Reader interface {
	Now() Reading
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func() Reading

func (f ReaderFunc) Now() Reading { return f() }

// Override replaces fields of the real clock. Empty fields are absent.
type Override struct {
	Time string `json:"time,omitempty"` // HH:MM
	Date string `json:"date,omitempty"` // DD.MM.YYYY
}

func (o Override) IsZero() bool {
	return o.Time == "" && o.Date == ""
}

// Normalize drops malformed fields and returns the names of the dropped ones.
func (o Override) Normalize() (Override, []string) {
	var dropped []string
	out := Override{Time: strings.TrimSpace(o.Time), Date: strings.TrimSpace(o.Date)}
	if out.Time != "" {
		if _, err := ParseTimeOfDay(out.Time); err != nil {
			dropped = append(dropped, "time")
			out.Time = ""
		}
	}
	if out.Date != "" {
		if _, err := ParseDate(out.Date); err != nil {
			dropped = append(dropped, "date")
			out.Date = ""
		}
	}
	return out, dropped
}

// ErrMalformedTime is returned for time-of-day strings that are not H:MM or HH:MM.
var ErrMalformedTime = errors.New("clock: malformed time")

// ParseTimeOfDay converts H:MM or HH:MM into minutes from midnight.
func ParseTimeOfDay(s string) (int, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return hours*60 + minutes, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Source reads the wall clock in a fixed location.
type Source struct {
	now      func() time.Time
	location *time.Location
}

func NewSource(location *time.Location) *Source {
	return NewSourceWithFunc(time.Now, location)
}

func NewSourceWithFunc(now func() time.Time, location *time.Location) *Source {
	if location == nil {
		location = time.Local
	}
	return &Source{now: now, location: location}
}

// Now returns the real reading with each valid override field substituted.
// Malformed override fields are ignored.
func (s *Source) Now(o Override) Reading {
	t := s.now().In(s.location)
	reading := Reading{
		MinutesOfDay: t.Hour()*60 + t.Minute(),
		Date:         DateOf(t),
	}
	if o.Time != "" {
		if minutes, err := ParseTimeOfDay(o.Time); err == nil {
			reading.MinutesOfDay = minutes
		}
	}
	if o.Date != "" {
		if date, err := ParseDate(o.Date); err == nil {
			reading.Date = date
		}
	}
	return reading
}

// Bind fixes an override and returns a Reader over it.
func (s *Source) Bind(o Override) Reader {
	return ReaderFunc(func() Reading { return s.Now(o) })
}
