// Package timetable defines the core domain types for the weekly schedule.
package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Boundary validation errors. The stores never return these; they are used by
// callers that validate input before submitting it.
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidDay    = errors.New("day must be between 1 (monday) and 7 (sunday)")
	ErrInvalidColor  = errors.New("unknown color")
	ErrInvalidPeriod = errors.New("period number must be 1 or more")
)

// Day is a day of the week, 1 = Monday ... 7 = Sunday.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Valid reports whether d is in 1..7.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English weekday name.
func (d Day) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return fmt.Sprintf("Day(%d)", int(d))
	}
}

// Short returns the three-letter weekday abbreviation.
func (d Day) Short() string {
	if !d.Valid() {
		return d.String()
	}
	return d.String()[:3]
}

// AllDays returns Monday through Sunday in order.
func AllDays() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

var dayNames = map[string]Day{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseDay accepts a number 1..7, a full English weekday name or its
// three-letter prefix.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := Day(n)
		if !d.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidDay, n)
		}
		return d, nil
	}
	if d, ok := dayNames[s]; ok {
		return d, nil
	}
	if len(s) == 3 {
		for name, d := range dayNames {
			if strings.HasPrefix(name, s) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Color is the tag a subject is drawn with. Presentation maps it to a real color.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
	ColorPink   Color = "pink"
	ColorTeal   Color = "teal"
	ColorIndigo Color = "indigo"
)

// AllColors returns every color tag in declaration order.
func AllColors() []Color {
	return []Color{ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorRed, ColorPink, ColorTeal, ColorIndigo}
}

// Valid returns true if the color is one of the known tags.
func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorRed, ColorPink, ColorTeal, ColorIndigo:
		return true
	default:
		return false
	}
}

// ParseColor parses a color tag, case-insensitively. Empty means blue.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return ColorBlue, nil
	}
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// SlotKind tells presentation which time reference a subject displays.
type SlotKind int

const (
	SlotNone SlotKind = iota
	SlotPeriod
	SlotCustom
)

// Subject is a named class or activity placed on a day of the week.
type Subject struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DayOfWeek  Day     `json:"dayOfWeek"`
	Period     *int    `json:"period,omitempty"`     // Period.Number, not a foreign key
	CustomTime *string `json:"customTime,omitempty"` // e.g. "7:00-8:30"
	Color      Color   `json:"color"`
}

// IsUnscheduled returns true if the subject has no period.
func (s Subject) IsUnscheduled() bool {
	return s.Period == nil
}

// Slot returns the time reference to display. A non-empty custom time wins
// over the period.
func (s Subject) Slot() SlotKind {
	if s.CustomTime != nil && *s.CustomTime != "" {
		return SlotCustom
	}
	if s.Period != nil {
		return SlotPeriod
	}
	return SlotNone
}

// InPeriod reports whether the subject sits at exactly this period number.
func (s Subject) InPeriod(n int) bool {
	return s.Period != nil && *s.Period == n
}

// Clone returns a copy that shares no pointers with s.
func (s Subject) Clone() Subject {
	c := s
	if s.Period != nil {
		p := *s.Period
		c.Period = &p
	}
	if s.CustomTime != nil {
		t := *s.CustomTime
		c.CustomTime = &t
	}
	return c
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
