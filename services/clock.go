package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day-granularity format used for grid, booking and
// revenue dates.
const DateLayout = "2006-01-02"

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %v", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %v", clock, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %s", clock)
	}
	return hour*60 + minute, nil
}

// formatClock renders minutes since midnight as "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// combineDateClock builds the instant for a "HH:MM" clock on a
// "2006-01-02" date in server-local time, matching how booking start and
// end instants are judged against the wall clock.
func combineDateClock(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %v", date, err)
	}
	minutes, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
