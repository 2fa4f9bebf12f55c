package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())

	for _, bad := range []string{"", "2024-2-29", "29/02/2024", "2023-02-29", "2024-01-01T10:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateAddDaysCrossesMonthAndLeapYear(t *testing.T) {
	assert.Equal(t, "2024-03-02", NewDate(2024, time.January, 31).AddDays(31).String())
	assert.Equal(t, "2024-03-01", NewDate(2024, time.January, 31).AddDays(30).String())
	assert.Equal(t, "2023-03-02", NewDate(2023, time.January, 31).AddDays(30).String())
	assert.Equal(t, "2024-03-01", NewDate(2024, time.February, 28).AddDays(2).String())
	assert.Equal(t, "2023-12-31", NewDate(2024, time.January, 1).AddDays(-1).String())
}

func TestDateDaysUntil(t *testing.T) {
	from := NewDate(2024, time.March, 1)
	assert.Equal(t, 0, from.DaysUntil(from))
	assert.Equal(t, 7, from.DaysUntil(NewDate(2024, time.March, 8)))
	assert.Equal(t, -1, from.DaysUntil(NewDate(2024, time.February, 29)))
	assert.Equal(t, 365, NewDate(2023, time.January, 1).DaysUntil(NewDate(2024, time.January, 1)))
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		On   Date  `json:"on"`
		Next *Date `json:"next"`
	}

	b, err := json.Marshal(payload{On: NewDate(2024, time.May, 3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2024-05-03","next":null}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"on":"2024-06-01","next":"2024-07-01"}`), &p))
	assert.Equal(t, "2024-06-01", p.On.String())
	require.NotNil(t, p.Next)
	assert.Equal(t, "2024-07-01", p.Next.String())

	assert.Error(t, json.Unmarshal([]byte(`{"on":"06/01/2024"}`), &p))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-01-15"))
	assert.Equal(t, "2024-01-15", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-16T00:00:00Z")))
	assert.Equal(t, "2024-01-16", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-17", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestCalendarTodayUsesLocation(t *testing.T) {
	// 2024-03-10 02:00 UTC is still March 9th in São Paulo (UTC-3).
	instant := time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)
	loc := time.FixedZone("BRT", -3*60*60)

	cal := NewCalendar(loc, func() time.Time { return instant })
	assert.Equal(t, "2024-03-09", cal.Today().String())

	utc := NewCalendar(nil, func() time.Time { return instant })
	assert.Equal(t, "2024-03-10", utc.Today().String())
}

func TestFixedCalendar(t *testing.T) {
	today := NewDate(2024, time.June, 1)
	assert.Equal(t, today, FixedCalendar(today).Today())
}
