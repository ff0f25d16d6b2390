// Package visibility holds the user's hide/show preferences for the grid and
// derives which days and periods get rendered.
package visibility

import (
	"context"
	"encoding/json"
	"slices"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// Storage keys.
const (
	KeyHiddenDays         = "timetable_hidden_days"
	KeyHiddenPeriods      = "timetable_hidden_periods"
	KeyPeriodColumnHidden = "timetable_period_column_hidden"
	KeyShowPeriodLabel    = "timetable_show_period_label"
)

// IntSet is a set of integers that encodes as an ascending JSON array.
type IntSet map[int]struct{}

// NewIntSet builds a set from values.
func NewIntSet(values ...int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IntSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Toggle flips membership of v.
func (s IntSet) Toggle(v int) {
	if s.Has(v) {
		delete(s, v)
		return
	}
	s[v] = struct{}{}
}

// Sorted returns the members in ascending order.
func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s IntSet) Clone() IntSet {
	return NewIntSet(s.Sorted()...)
}

// MarshalJSON encodes the set as a sorted array.
func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array into the set.
func (s *IntSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewIntSet(values...)
	return nil
}

// Preferences gate rendering only; they never touch subjects or periods.
type Preferences struct {
	HiddenDays         IntSet
	HiddenPeriods      IntSet
	PeriodColumnHidden bool
	ShowPeriodLabel    bool
}

// Defaults returns preferences with nothing hidden.
func Defaults() Preferences {
	return Preferences{
		HiddenDays:    NewIntSet(),
		HiddenPeriods: NewIntSet(),
	}
}

// Clone returns a copy that shares no sets with p.
func (p Preferences) Clone() Preferences {
	c := p
	c.HiddenDays = p.HiddenDays.Clone()
	c.HiddenPeriods = p.HiddenPeriods.Clone()
	return c
}

// ToggleDay hides a visible day or shows a hidden one.
func (p *Preferences) ToggleDay(d timetable.Day) {
	p.ensure()
	p.HiddenDays.Toggle(int(d))
}

// TogglePeriod hides a visible period number or shows a hidden one.
func (p *Preferences) TogglePeriod(number int) {
	p.ensure()
	p.HiddenPeriods.Toggle(number)
}

// IsDayHidden reports whether d is hidden.
func (p Preferences) IsDayHidden(d timetable.Day) bool {
	return p.HiddenDays.Has(int(d))
}

// IsPeriodHidden reports whether the period number is hidden.
func (p Preferences) IsPeriodHidden(number int) bool {
	return p.HiddenPeriods.Has(number)
}

func (p *Preferences) ensure() {
	if p.HiddenDays == nil {
		p.HiddenDays = NewIntSet()
	}
	if p.HiddenPeriods == nil {
		p.HiddenPeriods = NewIntSet()
	}
}

// Load reads the preferences. Missing or unreadable values fall back to
// their defaults individually.
func Load(ctx context.Context, backend db.Backend, log *zap.Logger) Preferences {
	p := Defaults()

	load := func(key string, v any) {
		if _, err := db.LoadJSON(ctx, backend, key, v); err != nil {
			log.Warn("loading visibility preference", zap.String("key", key), zap.Error(err))
		}
	}

	var days, periods IntSet
	load(KeyHiddenDays, &days)
	load(KeyHiddenPeriods, &periods)
	load(KeyPeriodColumnHidden, &p.PeriodColumnHidden)
	load(KeyShowPeriodLabel, &p.ShowPeriodLabel)

	if days != nil {
		p.HiddenDays = days
	}
	if periods != nil {
		p.HiddenPeriods = periods
	}
	return p
}

// Save writes every preference under its own key. Failures are logged and
// the remaining keys are still attempted.
func Save(ctx context.Context, backend db.Backend, p Preferences, log *zap.Logger) {
	p.ensure()
	values := []struct {
		key string
		v   any
	}{
		{KeyHiddenDays, p.HiddenDays},
		{KeyHiddenPeriods, p.HiddenPeriods},
		{KeyPeriodColumnHidden, p.PeriodColumnHidden},
		{KeyShowPeriodLabel, p.ShowPeriodLabel},
	}
	for _, kv := range values {
		if err := db.SaveJSON(ctx, backend, kv.key, kv.v); err != nil {
			log.Warn("saving visibility preference", zap.String("key", kv.key), zap.Error(err))
		}
	}
}
