package ui

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timetable/internal/config"
)

func TestRunConfigInteractive_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(out.String(), "No config file found") {
		t.Errorf("expected creation notice, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "theme            = mocha") {
		t.Errorf("expected current theme in output, got:\n%s", out.String())
	}
}

func TestRunConfigInteractive_Edit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := strings.Join([]string{
		"y",       // edit?
		"sqlite",  // backend
		"",        // db path, keep
		"verbose", // invalid log level
		"debug",   // log level
		"latte",   // theme
		"10",      // cell width
	}, "\n") + "\n"
	var out bytes.Buffer

	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.UI.Theme)
	}
	if cfg.UI.CellWidth != 10 {
		t.Errorf("CellWidth = %d, want 10", cfg.UI.CellWidth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !strings.Contains(out.String(), `Invalid value "verbose"`) {
		t.Errorf("expected invalid value notice, got:\n%s", out.String())
	}
}

func TestRunConfigInteractive_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := "y\nsqlite\n\nwarn\nmocha\n2\n"

	err := runConfigInteractive(strings.NewReader(input), &bytes.Buffer{}, path)
	if err == nil || !strings.Contains(err.Error(), "cell_width") {
		t.Fatalf("expected cell_width error, got %v", err)
	}
}

func TestPromptChoice_GivesUpAfterAttempts(t *testing.T) {
	var out bytes.Buffer
	got := promptChoice(bufio.NewReader(strings.NewReader("a\nb\nc\nmocha\n")), &out, "Theme", "latte", []string{"mocha", "latte"})
	if got != "latte" {
		t.Errorf("promptChoice = %q, want current value", got)
	}
}
