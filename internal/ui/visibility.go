package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/timetable"
)

func (a *App) toggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Hide or show days and periods",
		Long: `Toggle the visibility of day columns and period rows.

Hiding only affects the grid; subjects and periods are kept.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "day [day...]",
		Short:   "Toggle day columns",
		Example: `  timetable toggle day sat sun`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := make([]timetable.Day, 0, len(args))
			for _, arg := range args {
				d, err := timetable.ParseDay(arg)
				if err != nil {
					return err
				}
				days = append(days, d)
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range days {
				f.ToggleDayVisible(cmd.Context(), d)
				state := "shown"
				if f.Preferences().IsDayHidden(d) {
					state = "hidden"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d, state)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "period [number...]",
		Short:   "Toggle period rows",
		Example: `  timetable toggle period 5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := strconv.Atoi(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("invalid period number %q", arg)
				}
				numbers = append(numbers, n)
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range numbers {
				f.TogglePeriodVisible(cmd.Context(), n)
				state := "shown"
				if f.Preferences().IsPeriodHidden(n) {
					state = "hidden"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Period %d %s\n", n, state)
			}
			return nil
		},
	})

	return cmd
}

func (a *App) columnCmd() *cobra.Command {
	return a.switchCmd("column", "Show or hide the period column",
		func(cmd *cobra.Command, show bool) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			f.SetPeriodColumnHidden(cmd.Context(), !show)
			fmt.Fprintf(cmd.OutOrStdout(), "Period column %s\n", shownOrHidden(show))
			return nil
		})
}

func (a *App) labelCmd() *cobra.Command {
	return a.switchCmd("label", "Show or hide period times in the period column",
		func(cmd *cobra.Command, show bool) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			f.SetShowPeriodLabel(cmd.Context(), show)
			fmt.Fprintf(cmd.OutOrStdout(), "Period times %s\n", shownOrHidden(show))
			return nil
		})
}

// switchCmd builds a command with "show" and "hide" subcommands.
func (a *App) switchCmd(use, short string, set func(cmd *cobra.Command, show bool) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return set(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "hide",
		Short: "Hide the " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return set(cmd, false)
		},
	})
	return cmd
}

func (a *App) visibilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visibility",
		Short: "Print the current visibility settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			prefs := f.Preferences()
			out := cmd.OutOrStdout()

			var hiddenDays []string
			for _, d := range timetable.AllDays() {
				if prefs.IsDayHidden(d) {
					hiddenDays = append(hiddenDays, d.String())
				}
			}
			var hiddenPeriods []string
			for _, n := range prefs.HiddenPeriods.Sorted() {
				hiddenPeriods = append(hiddenPeriods, strconv.Itoa(n))
			}

			fmt.Fprintf(out, "Hidden days:    %s\n", orNone(hiddenDays))
			fmt.Fprintf(out, "Hidden periods: %s\n", orNone(hiddenPeriods))
			fmt.Fprintf(out, "Period column:  %s\n", shownOrHidden(!prefs.PeriodColumnHidden))
			fmt.Fprintf(out, "Period times:   %s\n", shownOrHidden(prefs.ShowPeriodLabel))
			return nil
		},
	}
}

func shownOrHidden(shown bool) string {
	if shown {
		return "shown"
	}
	return "hidden"
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
