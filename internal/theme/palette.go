package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/timetable"
)

// Palette holds precomputed styles derived from a Theme.
type Palette struct {
	Fg      lipgloss.Color
	FgMuted lipgloss.Color
	Accent  lipgloss.Color
	Header  lipgloss.Style
	Label   lipgloss.Style
	Border  lipgloss.Style
	Empty   lipgloss.Style

	subjects map[timetable.Color]lipgloss.Style
	other    map[timetable.Color]lipgloss.Style
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)

	p := &Palette{
		Fg:       lipgloss.Color(t.Fg),
		FgMuted:  lipgloss.Color(t.FgMuted),
		Accent:   lipgloss.Color(t.Accent),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)).Align(lipgloss.Center),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(blendColors(t.FgMuted, t.Bg, 0.5))),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgHighlight)),
		subjects: make(map[timetable.Color]lipgloss.Style),
		other:    make(map[timetable.Color]lipgloss.Style),
	}

	for _, c := range timetable.AllColors() {
		hex := t.SubjectHex(c)
		bg := subjectBg(hex, t.Bg, isLight)
		p.subjects[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(chooseTextColor(bg, t.Fg, t.Bg)))

		otherBg := mutedBg(hex, t.Bg, isLight)
		p.other[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(otherBg)).
			Foreground(lipgloss.Color(chooseTextColor(otherBg, t.Fg, t.Bg)))
	}

	return p
}

// Subject returns the style for a subject tag in the grid.
// Unknown tags use the blue style.
func (p *Palette) Subject(c timetable.Color) lipgloss.Style {
	if s, ok := p.subjects[c]; ok {
		return s
	}
	return p.subjects[timetable.ColorBlue]
}

// Other returns the muted style for subjects in the unscheduled row.
func (p *Palette) Other(c timetable.Color) lipgloss.Style {
	if s, ok := p.other[c]; ok {
		return s
	}
	return p.other[timetable.ColorBlue]
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func subjectBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func mutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return muteColor(accent)
}

// darkenColor creates a darker version of a hex color for backgrounds.
// It reduces the brightness by blending towards black, with a minimum floor
// to ensure visibility on dark themes.
func darkenColor(hex string) string {
	return scaleColor(hex, 0.50, 40)
}

// muteColor creates a more heavily muted version of a hex color.
func muteColor(hex string) string {
	return scaleColor(hex, 0.30, 30)
}

func scaleColor(hex string, factor float64, floor int) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)

	r = max(int(float64(r)*factor), floor)
	g = max(int(float64(g)*factor), floor)
	b = max(int(float64(b)*factor), floor)

	return formatHexColor(r, g, b)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	ratio = min(max(ratio, 0), 1)

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
