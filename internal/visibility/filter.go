package visibility

import (
	"slices"

	"github.com/javiermolinar/timetable/internal/timetable"
)

// View is the set of axes to render.
type View struct {
	Days             []timetable.Day // ascending, hidden days removed
	Periods          []int           // ascending, distinct, hidden numbers removed
	ShowPeriodColumn bool
	ShowPeriodLabel  bool
}

// Compute derives the visible axes from every period number and the
// preferences. It does not modify its inputs.
func Compute(periodNumbers []int, p Preferences) View {
	v := View{
		Days:             make([]timetable.Day, 0, 7),
		Periods:          make([]int, 0, len(periodNumbers)),
		ShowPeriodColumn: !p.PeriodColumnHidden,
		ShowPeriodLabel:  p.ShowPeriodLabel,
	}

	for _, d := range timetable.AllDays() {
		if !p.IsDayHidden(d) {
			v.Days = append(v.Days, d)
		}
	}

	nums := slices.Clone(periodNumbers)
	slices.Sort(nums)
	for _, n := range slices.Compact(nums) {
		if !p.IsPeriodHidden(n) {
			v.Periods = append(v.Periods, n)
		}
	}

	return v
}

// UnscheduledRow describes the "other" row. It follows the day columns and
// the period column flag of the grid but ignores period visibility.
type UnscheduledRow struct {
	Days      []timetable.Day
	ShowLabel bool
}

// Unscheduled returns the layout of the unscheduled row for v.
func (v View) Unscheduled() UnscheduledRow {
	return UnscheduledRow{
		Days:      slices.Clone(v.Days),
		ShowLabel: v.ShowPeriodColumn,
	}
}
