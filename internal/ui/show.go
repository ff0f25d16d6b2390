package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/theme"
)

type showOptions struct {
	Theme     string
	CellWidth int
	Copy      bool
}

func (a *App) showCmd() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weekly grid",
		Long: `Display the timetable as a grid of days and periods.

Hidden days and periods are left out. Subjects without a period appear
in the "Other" row. This is also what runs when no command is given.`,
		Example: `  timetable show
  timetable show --theme latte --width 10
  timetable show --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Theme to render with (default from config)")
	cmd.Flags().IntVar(&opts.CellWidth, "width", 0, "Max characters per cell (default from config)")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy the plain-text grid to the clipboard")
	return cmd
}

func (a *App) runShow(cmd *cobra.Command, opts showOptions) error {
	f, err := a.ensureSchedule(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	themeName := opts.Theme
	if themeName == "" {
		themeName = a.config.UI.Theme
	}
	th, err := theme.Load(themeName)
	if err != nil {
		return err
	}
	palette := theme.NewPalette(th)

	cellWidth := opts.CellWidth
	if cellWidth <= 0 {
		cellWidth = a.config.UI.CellWidth
	}

	view := f.View()
	if len(view.Days) == 0 {
		fmt.Fprintln(out, "All days are hidden. Use 'timetable toggle day <day>' to show one.")
		return nil
	}

	grid := renderGrid(buildGrid(f, gridOptions{
		Palette:   palette,
		CellWidth: cellWidth,
		MaxWidth:  termWidth(),
	}), palette)
	fmt.Fprintln(out, grid)

	if len(view.Periods) == 0 && !f.HasUnscheduled() {
		fmt.Fprintln(out, formatMuted("No periods to show. Add one with 'timetable period add'."))
	}

	if dangling := f.DanglingSubjects(); len(dangling) > 0 {
		names := make([]string, len(dangling))
		for i, s := range dangling {
			names[i] = fmt.Sprintf("%s (period %d)", subjectLabel(s), *s.Period)
		}
		fmt.Fprintln(out, formatWarn("Not shown, period missing: "+strings.Join(names, ", ")))
	}

	if opts.Copy {
		if err := clipboard.WriteAll(ansi.Strip(grid)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(out, formatOK("Copied to clipboard."))
	}
	return nil
}
