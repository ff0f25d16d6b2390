package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned for times that are not H:MM or HH:MM.
var ErrInvalidClock = errors.New("time must be H:MM")

// ClockMinutes converts "H:MM" or "HH:MM" to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hours*60 + mins, nil
}

// FormatClock converts minutes since midnight to "H:MM", clamped to the day.
func FormatClock(m int) string {
	m = min(max(m, 0), 24*60-1)
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// Minutes returns the length of the period, or false if either end does
// not parse.
func (p Period) Minutes() (int, bool) {
	start, err := ClockMinutes(p.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := ClockMinutes(p.EndTime)
	if err != nil {
		return 0, false
	}
	return end - start, true
}

// Overlaps reports whether two periods share any minute. Periods whose
// times do not parse never overlap.
func (p Period) Overlaps(other Period) bool {
	s1, err1 := ClockMinutes(p.StartTime)
	e1, err2 := ClockMinutes(p.EndTime)
	s2, err3 := ClockMinutes(other.StartTime)
	e2, err4 := ClockMinutes(other.EndTime)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}
