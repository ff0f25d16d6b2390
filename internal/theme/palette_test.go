package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/timetable"
)

func TestNewPalette_DarkTheme(t *testing.T) {
	th, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := NewPalette(th)

	if p.Accent != lipgloss.Color(th.Accent) {
		t.Errorf("Accent = %q, want %q", p.Accent, th.Accent)
	}

	for _, c := range timetable.AllColors() {
		wantBg := darkenColor(th.SubjectHex(c))
		if got := p.Subject(c).GetBackground(); got != lipgloss.Color(wantBg) {
			t.Errorf("Subject(%s) bg = %v, want %s", c, got, wantBg)
		}
		wantOther := muteColor(th.SubjectHex(c))
		if got := p.Other(c).GetBackground(); got != lipgloss.Color(wantOther) {
			t.Errorf("Other(%s) bg = %v, want %s", c, got, wantOther)
		}
	}
}

func TestNewPalette_LightTheme(t *testing.T) {
	th, err := Load("latte")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !isLightTheme(th.Bg) {
		t.Fatalf("latte bg %s should be light", th.Bg)
	}
	p := NewPalette(th)

	want := blendColors(th.SubjectHex(timetable.ColorRed), th.Bg, 0.75)
	if got := p.Subject(timetable.ColorRed).GetBackground(); got != lipgloss.Color(want) {
		t.Errorf("Subject(red) bg = %v, want %s", got, want)
	}
}

func TestNewPalette_NilThemeUsesMocha(t *testing.T) {
	p := NewPalette(nil)
	th, _ := Load("mocha")
	if p.Fg != lipgloss.Color(th.Fg) {
		t.Errorf("Fg = %q, want %q", p.Fg, th.Fg)
	}
}

func TestPalette_UnknownColorUsesBlue(t *testing.T) {
	p := NewPalette(nil)
	if p.Subject("magenta").GetBackground() != p.Subject(timetable.ColorBlue).GetBackground() {
		t.Error("unknown color should render as blue")
	}
}

func TestHexHelpers(t *testing.T) {
	var v int
	parseHex("ff", &v)
	if v != 255 {
		t.Errorf("parseHex(ff) = %d", v)
	}
	parseHex("0A", &v)
	if v != 10 {
		t.Errorf("parseHex(0A) = %d", v)
	}
	if got := formatHexColor(255, 16, 0); got != "#ff1000" {
		t.Errorf("formatHexColor = %q", got)
	}
	if got := darkenColor("#000000"); got != "#282828" {
		t.Errorf("darkenColor floor = %q, want #282828", got)
	}
	if got := darkenColor("bogus"); got != "bogus" {
		t.Errorf("darkenColor(bogus) = %q", got)
	}
	if got := blendColors("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("blendColors = %q, want #7f7f7f", got)
	}
}

func TestChooseTextColor(t *testing.T) {
	if got := chooseTextColor("#000000", "#ffffff", "#000000"); got != "#ffffff" {
		t.Errorf("on black = %q, want white", got)
	}
	if got := chooseTextColor("#ffffff", "#ffffff", "#111111"); got != "#111111" {
		t.Errorf("on white = %q, want dark", got)
	}
}
