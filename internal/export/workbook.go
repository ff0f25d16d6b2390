// Package export writes the timetable to an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/timetable/internal/theme"
	"github.com/javiermolinar/timetable/internal/timetable"
	"github.com/javiermolinar/timetable/internal/visibility"
)

// Sheet names.
const (
	SheetGrid     = "Timetable"
	SheetSubjects = "Subjects"
	SheetPeriods  = "Periods"
)

// Source is the read side of the schedule the workbook is built from.
type Source interface {
	View() visibility.View
	CellContents(day timetable.Day, periodNumber int) []timetable.Subject
	UnscheduledForDay(day timetable.Day) []timetable.Subject
	HasUnscheduled() bool
	Period(number int) (timetable.Period, bool)
	Periods() []timetable.Period
	Subjects() []timetable.Subject
}

// Workbook wraps an excelize file holding the exported timetable.
type Workbook struct {
	File *excelize.File
}

// New builds a workbook with three sheets: the visible grid, every subject
// and every period. Grid cells are filled with the subject color from t;
// a nil theme leaves them unfilled.
func New(src Source, t *theme.Theme) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetGrid); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	w := &Workbook{File: f}
	steps := []func() error{
		func() error { return w.writeGrid(src, t) },
		func() error { return w.writeTable(SheetSubjects, subjectsHeader, subjectRows(src.Subjects())) },
		func() error { return w.writeTable(SheetPeriods, periodsHeader, periodRows(src.Periods())) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return w, nil
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	return w.File.SaveAs(path)
}

// WriteTo writes the workbook to wr.
func (w *Workbook) WriteTo(wr io.Writer) (int64, error) {
	return w.File.WriteTo(wr)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.File.Close()
}

var (
	subjectsHeader = []string{"Name", "Day", "Period", "Time", "Color", "ID"}
	periodsHeader  = []string{"Number", "Start", "End", "ID"}
)

func (w *Workbook) writeGrid(src Source, t *theme.Theme) error {
	f := w.File
	v := src.View()

	col := 1
	if v.ShowPeriodColumn {
		if err := f.SetCellStr(SheetGrid, "A1", "Period"); err != nil {
			return fmt.Errorf("set cell A1: %w", err)
		}
		col = 2
	}
	dayCol := make(map[timetable.Day]int, len(v.Days))
	for i, d := range v.Days {
		dayCol[d] = col + i
		if err := f.SetCellStr(SheetGrid, cellName(col+i, 1), d.String()); err != nil {
			return fmt.Errorf("set header %s: %w", d, err)
		}
	}
	lastCol := max(col+len(v.Days)-1, 1)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	_ = f.SetCellStyle(SheetGrid, "A1", cellName(lastCol, 1), bold)

	fills := newFillCache(f, t)
	row := 2
	for _, n := range v.Periods {
		if v.ShowPeriodColumn {
			if err := f.SetCellStr(SheetGrid, cellName(1, row), periodLabel(src, n, v.ShowPeriodLabel)); err != nil {
				return fmt.Errorf("set period label: %w", err)
			}
		}
		for _, d := range v.Days {
			if err := w.writeCell(fills, dayCol[d], row, src.CellContents(d, n)); err != nil {
				return err
			}
		}
		row++
	}

	if src.HasUnscheduled() {
		if v.ShowPeriodColumn {
			if err := f.SetCellStr(SheetGrid, cellName(1, row), "Other"); err != nil {
				return fmt.Errorf("set other label: %w", err)
			}
		}
		for _, d := range v.Days {
			if err := w.writeCell(fills, dayCol[d], row, src.UnscheduledForDay(d)); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetGrid, "A", colName(lastCol), 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	return nil
}

func (w *Workbook) writeCell(fills *fillCache, col, row int, subjects []timetable.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	cell := cellName(col, row)
	lines := make([]string, len(subjects))
	for i, s := range subjects {
		lines[i] = subjectLine(s)
	}
	if err := w.File.SetCellStr(SheetGrid, cell, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	if style, ok := fills.style(subjects[0].Color); ok {
		_ = w.File.SetCellStyle(SheetGrid, cell, cell, style)
	}
	return nil
}

func (w *Workbook) writeTable(sheet string, header []string, rows [][]string) error {
	f := w.File
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	for c, h := range header {
		cell := cellName(c+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell := cellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	end := colName(len(header)) + "1"
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", end, bold)
	}
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for c := 1; c <= len(header); c++ {
		width := len(header[c-1])
		for r := 0; r < min(50, len(rows)); r++ {
			width = max(width, len(rows[r][c-1]))
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), min(max(float64(width)*0.9, 10), 40))
	}
	return nil
}

func subjectRows(subjects []timetable.Subject) [][]string {
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		var period, at string
		if s.Period != nil {
			period = strconv.Itoa(*s.Period)
		}
		if s.CustomTime != nil {
			at = *s.CustomTime
		}
		rows = append(rows, []string{s.Name, s.DayOfWeek.String(), period, at, string(s.Color), s.ID})
	}
	return rows
}

func periodRows(periods []timetable.Period) [][]string {
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{strconv.Itoa(p.Number), p.StartTime, p.EndTime, p.ID})
	}
	return rows
}

func periodLabel(src Source, n int, withTime bool) string {
	label := strconv.Itoa(n)
	if !withTime {
		return label
	}
	if p, ok := src.Period(n); ok {
		label += " (" + p.TimeRange() + ")"
	}
	return label
}

func subjectLine(s timetable.Subject) string {
	if s.Slot() == timetable.SlotCustom {
		return s.Name + " " + *s.CustomTime
	}
	return s.Name
}
