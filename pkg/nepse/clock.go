package nepse

import "time"

// NPT is Nepal Time, a fixed UTC+5:45 offset with no daylight saving.
var NPT = time.FixedZone("NPT", 5*3600+45*60)

const (
	marketOpenMinute  = 11 * 60 // 11:00 NPT, inclusive
	marketCloseMinute = 15 * 60 // 15:00 NPT, exclusive
)

// Now returns the current instant in Nepal Time.
func Now() time.Time {
	return time.Now().In(NPT)
}

// IsTradingHours reports whether the instant falls inside the NEPSE trading
// window: Sunday through Thursday, 11:00–15:00 NPT. The flag is advisory for
// paper trades unless enforcement is enabled in configuration.
func IsTradingHours(t time.Time) bool {
	local := t.In(NPT)

	switch local.Weekday() {
	case time.Friday, time.Saturday:
		return false
	}

	minute := local.Hour()*60 + local.Minute()
	return minute >= marketOpenMinute && minute < marketCloseMinute
}
