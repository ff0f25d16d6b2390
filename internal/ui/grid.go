package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/theme"
	"github.com/javiermolinar/timetable/internal/timetable"
)

const (
	minCellWidth = 4
	otherLabel   = "Other"
	ellipsis     = "…"
)

// gridOptions configures grid rendering.
type gridOptions struct {
	Palette   *theme.Palette
	CellWidth int // max characters per subject line
	MaxWidth  int // terminal width, 0 = unbounded
}

// gridContent is the text and styling of the grid before it is drawn.
type gridContent struct {
	Headers []string
	Rows    [][]string
	Styles  [][]lipgloss.Style
}

// buildGrid lays out the visible days and periods of f.
func buildGrid(f *schedule.Facade, opts gridOptions) gridContent {
	v := f.View()
	p := opts.Palette
	labelCol := v.ShowPeriodColumn

	width := fitCellWidth(opts.CellWidth, opts.MaxWidth, len(v.Days), labelCol)

	var g gridContent
	if labelCol {
		g.Headers = append(g.Headers, "")
	}
	for _, d := range v.Days {
		g.Headers = append(g.Headers, dayHeader(d, width))
	}

	for _, n := range v.Periods {
		row := make([]string, 0, len(g.Headers))
		styles := make([]lipgloss.Style, 0, len(g.Headers))
		if labelCol {
			row = append(row, periodLabel(f, n, v.ShowPeriodLabel))
			styles = append(styles, p.Label)
		}
		for _, d := range v.Days {
			subjects := f.CellContents(d, n)
			row = append(row, cellText(subjects, width))
			styles = append(styles, cellStyle(subjects, p.Subject, p.Empty))
		}
		g.Rows = append(g.Rows, row)
		g.Styles = append(g.Styles, styles)
	}

	if f.HasUnscheduled() {
		u := v.Unscheduled()
		row := make([]string, 0, len(g.Headers))
		styles := make([]lipgloss.Style, 0, len(g.Headers))
		if u.ShowLabel {
			row = append(row, otherLabel)
			styles = append(styles, p.Label)
		}
		for _, d := range u.Days {
			subjects := f.UnscheduledForDay(d)
			row = append(row, cellText(subjects, width))
			styles = append(styles, cellStyle(subjects, p.Other, p.Empty))
		}
		g.Rows = append(g.Rows, row)
		g.Styles = append(g.Styles, styles)
	}

	return g
}

// renderGrid draws the grid with a lipgloss table.
func renderGrid(g gridContent, p *theme.Palette) string {
	t := table.New().
		Headers(g.Headers...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(true).
		BorderStyle(p.Border).
		Rows(g.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.Header
			}
			if row < 0 || row >= len(g.Styles) || col < 0 || col >= len(g.Styles[row]) {
				return lipgloss.NewStyle()
			}
			return g.Styles[row][col].Padding(0, 1)
		})
	return t.Render()
}

// fitCellWidth shrinks the configured cell width so the grid fits in
// maxWidth, but never below minCellWidth.
func fitCellWidth(cellWidth, maxWidth, days int, labelCol bool) int {
	cellWidth = max(cellWidth, minCellWidth)
	if maxWidth <= 0 || days == 0 {
		return cellWidth
	}
	cols := days
	if labelCol {
		cols++
	}
	// Each column carries one border and two padding characters.
	avail := (maxWidth-1)/cols - 3
	return max(min(cellWidth, avail), minCellWidth)
}

func dayHeader(d timetable.Day, width int) string {
	if len(d.String()) <= width {
		return d.String()
	}
	return d.Short()
}

func periodLabel(f *schedule.Facade, n int, withTime bool) string {
	label := strconv.Itoa(n)
	if !withTime {
		return label
	}
	if p, ok := f.Period(n); ok {
		label += "\n" + p.StartTime + "-" + p.EndTime
	}
	return label
}

// cellText stacks subject names one per line.
func cellText(subjects []timetable.Subject, width int) string {
	lines := make([]string, 0, len(subjects))
	for _, s := range subjects {
		lines = append(lines, ansi.Truncate(subjectLabel(s), width, ellipsis))
		if s.Slot() == timetable.SlotCustom {
			lines = append(lines, ansi.Truncate(*s.CustomTime, width, ellipsis))
		}
	}
	return strings.Join(lines, "\n")
}

func cellStyle(subjects []timetable.Subject, style func(timetable.Color) lipgloss.Style, empty lipgloss.Style) lipgloss.Style {
	if len(subjects) == 0 {
		return empty
	}
	return style(subjects[0].Color)
}

func subjectLabel(s timetable.Subject) string {
	if strings.TrimSpace(s.Name) == "" {
		return "(untitled)"
	}
	return s.Name
}
