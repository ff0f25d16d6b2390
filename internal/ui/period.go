package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/timetable"
)

func (a *App) periodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage period definitions",
		Long: `Periods are the numbered rows of the grid. Numbers may have gaps.

Removing a period does not touch subjects that use its number.`,
	}
	cmd.AddCommand(a.periodListCmd())
	cmd.AddCommand(a.periodAddCmd())
	cmd.AddCommand(a.periodEditCmd())
	cmd.AddCommand(a.periodRemoveCmd())
	return cmd
}

func (a *App) periodListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			periods := f.Periods()
			if len(periods) == 0 {
				fmt.Fprintln(out, "No periods defined.")
				return nil
			}
			prefs := f.Preferences()
			for _, p := range periods {
				hidden := ""
				if prefs.IsPeriodHidden(p.Number) {
					hidden = formatMuted(" (hidden)")
				}
				length := ""
				if m, ok := p.Minutes(); ok {
					length = formatMuted(fmt.Sprintf("  %d min", m))
				}
				fmt.Fprintf(out, "  %s %3d  %s%s%s\n", formatMuted(shortID(p.ID)), p.Number, p.TimeRange(), length, hidden)
			}
			return nil
		},
	}
}

func (a *App) periodAddCmd() *cobra.Command {
	var (
		number int
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a period",
		Example: `  timetable period add --start 11:10 --end 11:55
  timetable period add --number 9 --start 14:25 --end 15:10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateTimeRange(start, end); err != nil {
				return err
			}
			if cmd.Flags().Changed("number") {
				if err := validatePeriodNumber(number); err != nil {
					return err
				}
			}
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("number") {
				number = f.NextPeriodNumber()
			}
			if _, exists := f.Period(number); exists {
				fmt.Fprintln(cmd.OutOrStdout(), formatWarn(fmt.Sprintf("Period %d already exists; both will share one row.", number)))
			}

			p, _ := f.SubmitPeriod(cmd.Context(), schedule.PeriodForm{Number: number, StartTime: start, EndTime: end})
			fmt.Fprintf(cmd.OutOrStdout(), "%s period %d (%s)\n", formatOK("Added"), p.Number, p.TimeRange())
			warnOverlaps(cmd.OutOrStdout(), f, p)
			return nil
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 0, "Period number (default: one past the highest)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (H:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (H:MM, required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *App) periodEditCmd() *cobra.Command {
	var (
		number int
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:     "edit [number|id]",
		Short:   "Edit a period",
		Example: `  timetable period edit 3 --start 8:45 --end 9:30`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			p, err := resolvePeriod(f, args[0])
			if err != nil {
				return err
			}

			form := schedule.PeriodForm{ID: p.ID, Number: p.Number, StartTime: p.StartTime, EndTime: p.EndTime}
			if cmd.Flags().Changed("number") {
				if err := validatePeriodNumber(number); err != nil {
					return err
				}
				form.Number = number
			}
			if cmd.Flags().Changed("start") {
				form.StartTime = start
			}
			if cmd.Flags().Changed("end") {
				form.EndTime = end
			}
			if err := validateTimeRange(form.StartTime, form.EndTime); err != nil {
				return err
			}

			updated, ok := f.SubmitPeriod(cmd.Context(), form)
			if !ok {
				return fmt.Errorf("period %s no longer exists", shortID(p.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s period %d (%s)\n", formatOK("Updated"), updated.Number, updated.TimeRange())
			warnOverlaps(cmd.OutOrStdout(), f, updated)
			return nil
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 0, "New period number")
	cmd.Flags().StringVar(&start, "start", "", "New start time")
	cmd.Flags().StringVar(&end, "end", "", "New end time")
	return cmd
}

func (a *App) periodRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [number|id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a period",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			p, err := resolvePeriod(f, args[0])
			if err != nil {
				return err
			}
			if !f.RemovePeriod(cmd.Context(), p.ID) {
				return fmt.Errorf("period %s no longer exists", shortID(p.ID))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed period %d (%s)\n", p.Number, p.TimeRange())

			if _, still := f.Period(p.Number); !still {
				orphans := 0
				for _, s := range f.DanglingSubjects() {
					if *s.Period == p.Number {
						orphans++
					}
				}
				if orphans > 0 {
					fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d subject(s) still reference period %d and are hidden from the grid.", orphans, p.Number)))
				}
			}
			return nil
		},
	}
}

// resolvePeriod accepts a period number or an ID (prefix).
func resolvePeriod(f *schedule.Facade, ref string) (timetable.Period, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if p, ok := f.Period(n); ok {
			return p, nil
		}
	}

	var matches []timetable.Period
	for _, p := range f.Periods() {
		if p.ID == ref {
			return p, nil
		}
		if ref != "" && strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return timetable.Period{}, fmt.Errorf("no period matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return timetable.Period{}, fmt.Errorf("%q matches %d periods, use a longer id", ref, len(matches))
	}
}

func validatePeriodNumber(n int) error {
	if n < 1 {
		return fmt.Errorf("%w, got %d", timetable.ErrInvalidPeriod, n)
	}
	return nil
}

// validateTimeRange checks both ends parse as H:MM and end follows start.
func validateTimeRange(start, end string) error {
	s, err := timetable.ClockMinutes(start)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	e, err := timetable.ClockMinutes(end)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if e <= s {
		return fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return nil
}

// warnOverlaps prints a notice for every other period sharing time with p.
func warnOverlaps(w io.Writer, f *schedule.Facade, p timetable.Period) {
	for _, other := range f.Periods() {
		if other.ID == p.ID || !p.Overlaps(other) {
			continue
		}
		fmt.Fprintln(w, formatWarn(fmt.Sprintf("Overlaps period %d (%s).", other.Number, other.TimeRange())))
	}
}
