// Package schedule composes the subject store, period catalog, placement
// resolver and visibility preferences into the surface presentation uses.
//
// Queries read through to the current store state on every call; nothing is
// cached. Commands mutate, persist, then fire the optional change callback.
package schedule

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/period"
	"github.com/javiermolinar/timetable/internal/placement"
	"github.com/javiermolinar/timetable/internal/subject"
	"github.com/javiermolinar/timetable/internal/timetable"
	"github.com/javiermolinar/timetable/internal/visibility"
)

// Deps are the collaborators of a Facade.
type Deps struct {
	Subjects *subject.Store
	Periods  *period.Catalog
	Backend  db.Backend // where preferences are saved
	Prefs    visibility.Preferences
	Logger   *zap.Logger
	OnChange func() // optional, runs once after each command
}

// Facade is the query/command surface of the schedule.
type Facade struct {
	subjects *subject.Store
	periods  *period.Catalog
	resolver *placement.Resolver
	backend  db.Backend
	log      *zap.Logger
	onChange func()

	mu    sync.Mutex
	prefs visibility.Preferences
}

// New wires a Facade from already loaded components.
func New(d Deps) *Facade {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	prefs := d.Prefs.Clone()
	return &Facade{
		subjects: d.Subjects,
		periods:  d.Periods,
		resolver: placement.New(d.Subjects, log),
		backend:  d.Backend,
		log:      log,
		onChange: d.OnChange,
		prefs:    prefs,
	}
}

// Open loads subjects, periods and preferences from backend and returns a
// ready Facade.
func Open(ctx context.Context, backend db.Backend, log *zap.Logger, onChange func()) *Facade {
	return New(Deps{
		Subjects: subject.Open(ctx, backend, log),
		Periods:  period.Open(ctx, backend, log),
		Backend:  backend,
		Prefs:    visibility.Load(ctx, backend, log),
		Logger:   log,
		OnChange: onChange,
	})
}

// CellContents returns the subjects stacked in one grid cell, in insertion order.
func (f *Facade) CellContents(day timetable.Day, periodNumber int) []timetable.Subject {
	return f.subjects.Query(day, &periodNumber)
}

// UnscheduledForDay returns the subjects of a day that have no period.
func (f *Facade) UnscheduledForDay(day timetable.Day) []timetable.Subject {
	return f.subjects.Unscheduled()[day]
}

// HasUnscheduled reports whether any subject lacks a period.
func (f *Facade) HasUnscheduled() bool {
	return len(f.subjects.Unscheduled()) > 0
}

// SubjectsForDay returns every subject on a day regardless of period.
func (f *Facade) SubjectsForDay(day timetable.Day) []timetable.Subject {
	return f.subjects.Query(day, nil)
}

// View derives the visible axes from the catalog and preferences.
func (f *Facade) View() visibility.View {
	return visibility.Compute(f.periods.Numbers(), f.Preferences())
}

// VisibleDays returns the days to render, ascending.
func (f *Facade) VisibleDays() []timetable.Day {
	return f.View().Days
}

// VisiblePeriods returns the period numbers to render, ascending.
func (f *Facade) VisiblePeriods() []int {
	return f.View().Periods
}

// Periods returns the catalog in display order.
func (f *Facade) Periods() []timetable.Period {
	return f.periods.List()
}

// Period returns the first catalog entry with the given number.
func (f *Facade) Period(number int) (timetable.Period, bool) {
	return f.periods.Find(number)
}

// NextPeriodNumber suggests a number for a new period.
func (f *Facade) NextPeriodNumber() int {
	return f.periods.NextNumber()
}

// Subjects returns every subject in insertion order.
func (f *Facade) Subjects() []timetable.Subject {
	return f.subjects.All()
}

// Subject returns the subject with the given ID.
func (f *Facade) Subject(id string) (timetable.Subject, bool) {
	return f.subjects.Get(id)
}

// DanglingSubjects returns subjects whose period number has no catalog entry.
// They stay queryable but are not on the grid axis.
func (f *Facade) DanglingSubjects() []timetable.Subject {
	var out []timetable.Subject
	for _, s := range f.subjects.All() {
		if s.Period == nil {
			continue
		}
		if _, ok := f.periods.Find(*s.Period); !ok {
			out = append(out, s)
		}
	}
	return out
}

// Preferences returns a copy of the current visibility preferences.
func (f *Facade) Preferences() visibility.Preferences {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs.Clone()
}

// SubmitSubject saves a subject form through the placement policy.
func (f *Facade) SubmitSubject(ctx context.Context, form Form) placement.Result {
	req := form.request()
	res := f.resolver.Place(ctx, req)
	f.log.Debug("subject submitted",
		zap.String("id", res.Subject.ID),
		zap.Stringer("outcome", res.Outcome),
	)
	if res.Outcome != placement.Ignored {
		f.changed()
	}
	return res
}

// RemoveSubject deletes a subject by ID. Returns false if it did not exist.
func (f *Facade) RemoveSubject(ctx context.Context, id string) bool {
	ok := f.subjects.Delete(ctx, id)
	if ok {
		f.changed()
	}
	return ok
}

// SubmitPeriod creates or edits a period. Editing an unknown ID changes
// nothing and returns false.
func (f *Facade) SubmitPeriod(ctx context.Context, form PeriodForm) (timetable.Period, bool) {
	p := timetable.Period{
		ID:        form.ID,
		Number:    form.Number,
		StartTime: form.StartTime,
		EndTime:   form.EndTime,
	}

	if form.ID != "" {
		if !f.periods.Update(ctx, p) {
			return p, false
		}
		f.changed()
		return p, true
	}

	p.ID = timetable.NewID()
	f.periods.Add(ctx, p)
	f.changed()
	return p, true
}

// RemovePeriod deletes a period by ID. Subjects referencing its number keep
// their reference.
func (f *Facade) RemovePeriod(ctx context.Context, id string) bool {
	ok := f.periods.Delete(ctx, id)
	if ok {
		f.changed()
	}
	return ok
}

// ToggleDayVisible hides or shows one day column.
func (f *Facade) ToggleDayVisible(ctx context.Context, day timetable.Day) {
	f.updatePrefs(ctx, func(p *visibility.Preferences) { p.ToggleDay(day) })
}

// TogglePeriodVisible hides or shows one period row.
func (f *Facade) TogglePeriodVisible(ctx context.Context, number int) {
	f.updatePrefs(ctx, func(p *visibility.Preferences) { p.TogglePeriod(number) })
}

// SetPeriodColumnHidden hides or shows the period label column.
func (f *Facade) SetPeriodColumnHidden(ctx context.Context, hidden bool) {
	f.updatePrefs(ctx, func(p *visibility.Preferences) { p.PeriodColumnHidden = hidden })
}

// SetShowPeriodLabel toggles time ranges in the period label column.
func (f *Facade) SetShowPeriodLabel(ctx context.Context, show bool) {
	f.updatePrefs(ctx, func(p *visibility.Preferences) { p.ShowPeriodLabel = show })
}

func (f *Facade) updatePrefs(ctx context.Context, fn func(*visibility.Preferences)) {
	f.mu.Lock()
	fn(&f.prefs)
	snapshot := f.prefs.Clone()
	f.mu.Unlock()

	visibility.Save(ctx, f.backend, snapshot, f.log)
	f.changed()
}

func (f *Facade) changed() {
	if f.onChange != nil {
		f.onChange()
	}
}
