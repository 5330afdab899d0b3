package nepse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2026-02-22 is a Sunday, a NEPSE trading day.
func nptTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, NPT)
}

func TestIsTradingHoursSundayNoon(t *testing.T) {
	assert.True(t, IsTradingHours(nptTime(2026, time.February, 22, 12, 0)))
}

func TestIsTradingHoursWindowEdges(t *testing.T) {
	sunday := func(hour, min int) time.Time {
		return nptTime(2026, time.February, 22, hour, min)
	}

	assert.False(t, IsTradingHours(sunday(10, 59)))
	assert.True(t, IsTradingHours(sunday(11, 0))) // open is inclusive
	assert.True(t, IsTradingHours(sunday(14, 59)))
	assert.False(t, IsTradingHours(sunday(15, 0))) // close is exclusive
}

func TestIsTradingHoursNonTradingDays(t *testing.T) {
	// 2026-02-20 is Friday, 2026-02-21 is Saturday. Closed at every hour.
	for hour := 0; hour < 24; hour++ {
		assert.False(t, IsTradingHours(nptTime(2026, time.February, 20, hour, 30)), "friday %02d:30", hour)
		assert.False(t, IsTradingHours(nptTime(2026, time.February, 21, hour, 30)), "saturday %02d:30", hour)
	}
}

func TestIsTradingHoursThursday(t *testing.T) {
	// 2026-02-19 is Thursday, the last trading day of the week.
	assert.True(t, IsTradingHours(nptTime(2026, time.February, 19, 13, 0)))
}

func TestIsTradingHoursConvertsFromUTC(t *testing.T) {
	// Sunday 06:15 UTC is Sunday 12:00 NPT — inside the window even though
	// the UTC hour is well before open.
	utc := time.Date(2026, time.February, 22, 6, 15, 0, 0, time.UTC)
	assert.True(t, IsTradingHours(utc))

	// Sunday 09:30 UTC is 15:15 NPT — after close.
	assert.False(t, IsTradingHours(time.Date(2026, time.February, 22, 9, 30, 0, 0, time.UTC)))
}
