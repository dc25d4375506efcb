package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSource(t time.Time) *Source {
	return NewSourceWithFunc(func() time.Time { return t }, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "08:30", want: 510},
		{in: "8:30", want: 510},
		{in: "23:59", want: 1439},
		{in: " 11:15 ", want: 675},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:5", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "+1:30", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("30.01.2026")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.January, Day: 30}, d)
	assert.Equal(t, "30.01.2026", d.String())
	assert.Equal(t, time.Friday, d.Weekday())

	for _, bad := range []string{"2026-01-30", "31.02.2026", "1.1.2026", "", "30.13.2026"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestSource_Now(t *testing.T) {
	real := time.Date(2026, time.January, 29, 14, 6, 30, 0, time.UTC)
	src := fixedSource(real)

	t.Run("No override", func(t *testing.T) {
		r := src.Now(Override{})
		assert.Equal(t, 14*60+6, r.MinutesOfDay)
		assert.Equal(t, "29.01.2026", r.Date.String())
	})

	t.Run("Time only keeps real date", func(t *testing.T) {
		r := src.Now(Override{Time: "09:30"})
		assert.Equal(t, 570, r.MinutesOfDay)
		assert.Equal(t, "29.01.2026", r.Date.String())
	})

	t.Run("Date only keeps real time", func(t *testing.T) {
		r := src.Now(Override{Date: "28.01.2026"})
		assert.Equal(t, 14*60+6, r.MinutesOfDay)
		assert.Equal(t, "28.01.2026", r.Date.String())
	})

	t.Run("Both", func(t *testing.T) {
		r := src.Now(Override{Time: "10:30", Date: "01.02.2026"})
		assert.Equal(t, 630, r.MinutesOfDay)
		assert.Equal(t, "01.02.2026", r.Date.String())
	})

	t.Run("Malformed values fall back to the real clock", func(t *testing.T) {
		r := src.Now(Override{Time: "25:99", Date: "yesterday"})
		assert.Equal(t, 14*60+6, r.MinutesOfDay)
		assert.Equal(t, "29.01.2026", r.Date.String())
	})
}

func TestSource_NowUsesLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	src := NewSourceWithFunc(func() time.Time {
		return time.Date(2026, time.January, 29, 23, 30, 0, 0, time.UTC)
	}, loc)

	r := src.Now(Override{})
	assert.Equal(t, 30, r.MinutesOfDay)
	assert.Equal(t, "30.01.2026", r.Date.String())
}

func TestSource_BindReadsClockEachCall(t *testing.T) {
	current := time.Date(2026, time.January, 29, 9, 59, 0, 0, time.UTC)
	src := NewSourceWithFunc(func() time.Time { return current }, time.UTC)
	reader := src.Bind(Override{Date: "28.01.2026"})

	assert.Equal(t, 599, reader.Now().MinutesOfDay)
	current = current.Add(time.Minute)
	assert.Equal(t, 600, reader.Now().MinutesOfDay)
	assert.Equal(t, "28.01.2026", reader.Now().Date.String())
}

func TestOverride_Normalize(t *testing.T) {
	o, dropped := Override{Time: "9:15", Date: "32.01.2026"}.Normalize()
	assert.Equal(t, Override{Time: "9:15"}, o)
	assert.Equal(t, []string{"date"}, dropped)

	o, dropped = Override{Time: " ", Date: ""}.Normalize()
	assert.True(t, o.IsZero())
	assert.Empty(t, dropped)
}
