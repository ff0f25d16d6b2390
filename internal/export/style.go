package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/timetable/internal/theme"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// fillCache creates one solid-fill style per subject color on first use.
type fillCache struct {
	f      *excelize.File
	t      *theme.Theme
	styles map[timetable.Color]int
}

func newFillCache(f *excelize.File, t *theme.Theme) *fillCache {
	return &fillCache{f: f, t: t, styles: make(map[timetable.Color]int)}
}

func (c *fillCache) style(color timetable.Color) (int, bool) {
	if c.t == nil {
		return 0, false
	}
	if id, ok := c.styles[color]; ok {
		return id, true
	}
	id, err := c.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c.t.SubjectHex(color)}},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return 0, false
	}
	c.styles[color] = id
	return id, true
}

// colName converts a 1-based column index to its letter name.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}
