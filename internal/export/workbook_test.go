package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/theme"
	"github.com/javiermolinar/timetable/internal/timetable"
)

func newSchedule(t *testing.T) *schedule.Facade {
	t.Helper()
	ctx := context.Background()
	f := schedule.Open(ctx, db.NewMemory(), zap.NewNop(), nil)
	f.SubmitSubject(ctx, schedule.Form{Name: "Math", Day: timetable.Monday, Period: timetable.IntPtr(1), Color: timetable.ColorRed})
	f.SubmitSubject(ctx, schedule.Form{Name: "Art", Day: timetable.Wednesday, Period: timetable.IntPtr(3)})
	f.SubmitSubject(ctx, schedule.Form{Name: "Swim", Day: timetable.Saturday, UseCustomTime: true, CustomTime: "17:00-18:00"})
	return f
}

func TestNew_GridSheet(t *testing.T) {
	src := newSchedule(t)
	th, err := theme.Load("mocha")
	require.NoError(t, err)

	w, err := New(src, th)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.Equal(t, []string{SheetGrid, SheetSubjects, SheetPeriods}, w.File.GetSheetList())

	rows, err := w.File.GetRows(SheetGrid)
	require.NoError(t, err)
	require.Len(t, rows, 1+5+1, "header, five periods, other row")
	assert.Equal(t, []string{"Period", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, rows[0])

	v, _ := w.File.GetCellValue(SheetGrid, "B2")
	assert.Equal(t, "Math", v)
	v, _ = w.File.GetCellValue(SheetGrid, "D4")
	assert.Equal(t, "Art", v)
	v, _ = w.File.GetCellValue(SheetGrid, "A7")
	assert.Equal(t, "Other", v)
	v, _ = w.File.GetCellValue(SheetGrid, "G7")
	assert.Equal(t, "Swim 17:00-18:00", v)

	styleID, err := w.File.GetCellStyle(SheetGrid, "B2")
	require.NoError(t, err)
	style, err := w.File.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 1, style.Fill.Pattern)
	assert.NotEmpty(t, style.Fill.Color)
}

func TestNew_FollowsVisibility(t *testing.T) {
	ctx := context.Background()
	src := newSchedule(t)
	src.ToggleDayVisible(ctx, timetable.Tuesday)
	src.TogglePeriodVisible(ctx, 2)
	src.SetPeriodColumnHidden(ctx, true)

	w, err := New(src, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	rows, err := w.File.GetRows(SheetGrid)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, rows[0])
	assert.Len(t, rows, 1+4+1)

	// Art sits on Wednesday period 3, which is now the third row.
	v, _ := w.File.GetCellValue(SheetGrid, "B3")
	assert.Equal(t, "Art", v)

	styleID, _ := w.File.GetCellStyle(SheetGrid, "A2")
	assert.Zero(t, styleID, "no theme, no fill")
}

func TestNew_PeriodLabelWithTime(t *testing.T) {
	ctx := context.Background()
	src := newSchedule(t)
	src.SetShowPeriodLabel(ctx, true)

	w, err := New(src, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	v, _ := w.File.GetCellValue(SheetGrid, "A2")
	assert.Equal(t, "1 (7:00 - 7:45)", v)
}

func TestNew_ListSheets(t *testing.T) {
	src := newSchedule(t)

	w, err := New(src, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	subjects, err := w.File.GetRows(SheetSubjects)
	require.NoError(t, err)
	require.Len(t, subjects, 4)
	assert.Equal(t, subjectsHeader, subjects[0])
	assert.Equal(t, []string{"Math", "Monday", "1", "", "red"}, subjects[1][:5])
	assert.Equal(t, []string{"Swim", "Saturday", "", "17:00-18:00", "blue"}, subjects[3][:5])

	periods, err := w.File.GetRows(SheetPeriods)
	require.NoError(t, err)
	require.Len(t, periods, 6)
	assert.Equal(t, []string{"5", "10:20", "11:05"}, periods[5][:3])
}

func TestWorkbook_SaveAndWrite(t *testing.T) {
	w, err := New(newSchedule(t), nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	path := filepath.Join(t.TempDir(), "week.xlsx")
	require.NoError(t, w.SaveAs(path))

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	v, _ := reopened.GetCellValue(SheetGrid, "B2")
	assert.Equal(t, "Math", v)

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestColName(t *testing.T) {
	assert.Equal(t, "A", colName(1))
	assert.Equal(t, "Z", colName(26))
	assert.Equal(t, "AA", colName(27))
	assert.Equal(t, "H3", cellName(8, 3))
}
