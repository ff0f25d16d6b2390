package timetable

import (
	"slices"

	"github.com/google/uuid"
)

// Period is a numbered time slot definition, independent of any subject.
type Period struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`    // user-facing slot index, may have gaps
	StartTime string `json:"startTime"` // free-form, e.g. "7:00"
	EndTime   string `json:"endTime"`   // free-form, e.g. "7:45"
}

// TimeRange returns "start - end".
func (p Period) TimeRange() string {
	return p.StartTime + " - " + p.EndTime
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// DefaultPeriods returns the five periods a fresh install starts with.
func DefaultPeriods() []Period {
	return []Period{
		{ID: NewID(), Number: 1, StartTime: "7:00", EndTime: "7:45"},
		{ID: NewID(), Number: 2, StartTime: "7:50", EndTime: "8:35"},
		{ID: NewID(), Number: 3, StartTime: "8:40", EndTime: "9:25"},
		{ID: NewID(), Number: 4, StartTime: "9:30", EndTime: "10:15"},
		{ID: NewID(), Number: 5, StartTime: "10:20", EndTime: "11:05"},
	}
}

// SortPeriods orders periods ascending by number. Equal numbers keep their
// relative order.
func SortPeriods(periods []Period) {
	slices.SortStableFunc(periods, func(a, b Period) int {
		return a.Number - b.Number
	})
}
