package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/theme"
	"github.com/javiermolinar/timetable/internal/timetable"
)

func newGridSchedule(t *testing.T) *schedule.Facade {
	t.Helper()
	ctx := context.Background()
	f := schedule.Open(ctx, db.NewMemory(), zap.NewNop(), nil)
	f.SubmitSubject(ctx, schedule.Form{Name: "Mathematics", Day: timetable.Monday, Period: timetable.IntPtr(1), Color: timetable.ColorRed})
	f.SubmitSubject(ctx, schedule.Form{Name: "Art", Day: timetable.Wednesday, Period: timetable.IntPtr(3), Color: timetable.ColorGreen})
	return f
}

func TestBuildGrid_Layout(t *testing.T) {
	f := newGridSchedule(t)
	p := theme.NewPalette(nil)

	g := buildGrid(f, gridOptions{Palette: p, CellWidth: 14})

	require.Len(t, g.Headers, 8)
	assert.Equal(t, "", g.Headers[0])
	assert.Equal(t, "Monday", g.Headers[1])
	require.Len(t, g.Rows, 5, "no Other row without unscheduled subjects")
	assert.Equal(t, "1", g.Rows[0][0])
	assert.Equal(t, "Mathematics", g.Rows[0][1])
	assert.Equal(t, "Art", g.Rows[2][3])
	assert.Equal(t, "", g.Rows[1][1])

	assert.Equal(t, p.Subject(timetable.ColorRed).GetBackground(), g.Styles[0][1].GetBackground())
	assert.Equal(t, p.Empty.GetForeground(), g.Styles[1][1].GetForeground())
}

func TestBuildGrid_TruncatesToCellWidth(t *testing.T) {
	f := newGridSchedule(t)

	g := buildGrid(f, gridOptions{Palette: theme.NewPalette(nil), CellWidth: 5})

	assert.Equal(t, "Math…", g.Rows[0][1])
	assert.Equal(t, "Mon", g.Headers[1], "long day names fall back to the short form")
	assert.LessOrEqual(t, ansi.StringWidth(g.Rows[0][1]), 5)
}

func TestBuildGrid_OtherRowAndLabels(t *testing.T) {
	ctx := context.Background()
	f := newGridSchedule(t)
	f.SubmitSubject(ctx, schedule.Form{Name: "Swim", Day: timetable.Saturday, UseCustomTime: true, CustomTime: "17:00"})
	f.SubmitSubject(ctx, schedule.Form{Name: "Chess", Day: timetable.Saturday})
	f.SetShowPeriodLabel(ctx, true)
	f.TogglePeriodVisible(ctx, 2)

	g := buildGrid(f, gridOptions{Palette: theme.NewPalette(nil), CellWidth: 14})

	require.Len(t, g.Rows, 5, "four visible periods and the Other row")
	assert.Equal(t, "1\n7:00-7:45", g.Rows[0][0])
	assert.Equal(t, "3\n8:40-9:25", g.Rows[1][0])

	other := g.Rows[4]
	assert.Equal(t, otherLabel, other[0])
	assert.Equal(t, "Swim\n17:00\nChess", other[6])
}

func TestBuildGrid_HiddenColumnAndDays(t *testing.T) {
	ctx := context.Background()
	f := newGridSchedule(t)
	f.SubmitSubject(ctx, schedule.Form{Name: "Swim", Day: timetable.Saturday})
	f.SetPeriodColumnHidden(ctx, true)
	f.ToggleDayVisible(ctx, timetable.Tuesday)

	g := buildGrid(f, gridOptions{Palette: theme.NewPalette(nil), CellWidth: 14})

	require.Len(t, g.Headers, 6)
	assert.Equal(t, "Monday", g.Headers[0])
	assert.Equal(t, "Wednesday", g.Headers[1])
	for _, row := range g.Rows {
		assert.Len(t, row, 6, "the Other row follows the day columns")
	}
	assert.Equal(t, "Swim", g.Rows[len(g.Rows)-1][4])
}

func TestRenderGrid_PlainText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	f := newGridSchedule(t)
	p := theme.NewPalette(nil)

	out := renderGrid(buildGrid(f, gridOptions{Palette: p, CellWidth: 14}), p)
	plain := ansi.Strip(out)

	assert.Contains(t, plain, "Mathematics")
	assert.Contains(t, plain, "Wednesday")
	assert.True(t, strings.HasPrefix(plain, "╭"), "rounded border")
}

func TestFitCellWidth(t *testing.T) {
	tests := []struct {
		name      string
		cellWidth int
		maxWidth  int
		days      int
		labelCol  bool
		want      int
	}{
		{"unbounded", 14, 0, 7, true, 14},
		{"wide terminal", 14, 200, 7, true, 14},
		{"narrow terminal", 14, 80, 7, true, 6},
		{"floor", 14, 20, 7, true, minCellWidth},
		{"configured below floor", 1, 0, 7, false, minCellWidth},
		{"no days", 14, 10, 0, true, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitCellWidth(tt.cellWidth, tt.maxWidth, tt.days, tt.labelCol))
		})
	}
}

func TestSubjectLabel_Untitled(t *testing.T) {
	assert.Equal(t, "(untitled)", subjectLabel(timetable.Subject{Name: " "}))
	assert.Equal(t, "Art", subjectLabel(timetable.Subject{Name: "Art"}))
}
