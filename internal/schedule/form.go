package schedule

import (
	"github.com/javiermolinar/timetable/internal/placement"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// Form is what an edit screen submits for a subject. An empty ID means create.
type Form struct {
	ID            string
	Name          string
	Day           timetable.Day
	Period        *int
	UseCustomTime bool
	CustomTime    string
	Color         timetable.Color
}

// FormFor prefills a form from an existing subject.
func FormFor(s timetable.Subject) Form {
	f := Form{
		ID:     s.ID,
		Name:   s.Name,
		Day:    s.DayOfWeek,
		Period: s.Period,
		Color:  s.Color,
	}
	if s.CustomTime != nil && *s.CustomTime != "" {
		f.UseCustomTime = true
		f.CustomTime = *s.CustomTime
	}
	return f
}

// Subject normalises the form into a subject. With a custom time the period
// is dropped and an empty custom time is stored as absent; without one the
// custom time is dropped.
func (f Form) Subject() timetable.Subject {
	s := timetable.Subject{
		ID:        f.ID,
		Name:      f.Name,
		DayOfWeek: f.Day,
		Color:     f.Color,
	}
	if s.Color == "" {
		s.Color = timetable.ColorBlue
	}
	if f.UseCustomTime {
		if f.CustomTime != "" {
			s.CustomTime = timetable.StringPtr(f.CustomTime)
		}
		return s
	}
	if f.Period != nil {
		s.Period = timetable.IntPtr(*f.Period)
	}
	return s
}

func (f Form) request() placement.Request {
	return placement.Request{
		Subject: f.Subject(),
		Editing: f.ID != "",
	}
}

// PeriodForm is what a period edit screen submits. An empty ID means create.
type PeriodForm struct {
	ID        string
	Number    int
	StartTime string
	EndTime   string
}
