package aggregation

import "time"

// MonthIndex returns the month bucket for t: January is 0, December is 11.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

// WeekdayIndex returns the weekday bucket for t: Sunday is 0, Saturday is 6.
func WeekdayIndex(t time.Time) int {
	return int(t.Weekday())
}

// DecadeFor rounds a release year down to the first year of its decade.
// Example: DecadeFor(1995) → 1990, DecadeFor(-5) → -10
func DecadeFor(year int) int {
	d := year / 10 * 10
	if year < 0 && d != year {
		d -= 10
	}
	return d
}
