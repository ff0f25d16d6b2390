// Package theme provides color themes for the timetable grid.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timetable/internal/timetable"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds the base colors and one color per subject tag.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header row, empty cells
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Period labels, "other" row
	Accent      string `toml:"accent"`       // Title, borders

	Subjects map[string]string `toml:"subjects"` // color tag -> hex
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// SubjectHex returns the hex color for a tag. Unknown tags use blue.
func (t *Theme) SubjectHex(c timetable.Color) string {
	if hex, ok := t.Subjects[string(c)]; ok && hex != "" {
		return hex
	}
	return t.Subjects[string(timetable.ColorBlue)]
}

func (t *Theme) applyDefaults() {
	if t.BgHighlight == "" {
		t.BgHighlight = t.Bg
	}
	if t.FgMuted == "" {
		t.FgMuted = t.Fg
	}
	if t.Subjects == nil {
		t.Subjects = make(map[string]string)
	}
	if t.Subjects[string(timetable.ColorBlue)] == "" {
		t.Subjects[string(timetable.ColorBlue)] = coalesce(t.Accent, t.Fg)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
