package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/placement"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// subjectFlags are the raw flag values shared by add and edit.
type subjectFlags struct {
	name     string
	day      string
	period   int
	time     string
	color    string
	noPeriod bool
}

func (a *App) addCmd() *cobra.Command {
	var flags subjectFlags

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a subject",
		Long: `Add a subject to a day, either in a period or at a custom time.

If the target cell is already taken, the first subject in it is
replaced and keeps its ID. Without --period or --time the subject goes
to the "Other" row.`,
		Example: `  timetable add Math --day tue --period 3 --color red
  timetable add Swimming --day saturday --time 17:00-18:00
  timetable add Reading --day 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := schedule.Form{Name: args[0]}
			if err := applySubjectFlags(cmd, flags, &form); err != nil {
				return err
			}
			if !cmd.Flags().Changed("day") {
				return fmt.Errorf("--day is required")
			}
			if err := validateSubjectForm(form); err != nil {
				return err
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			res := f.SubmitSubject(cmd.Context(), form)
			printPlacement(cmd.OutOrStdout(), f, res)
			return nil
		},
	}

	registerSubjectFlags(cmd, &flags, false)
	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var flags subjectFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a subject",
		Long: `Edit a subject by ID or unique ID prefix.

Only the given flags change. Editing never replaces other subjects, so
a cell can end up holding more than one.`,
		Example: `  timetable edit 3f2a --period 4
  timetable edit 3f2a --name "Biology" --color green
  timetable edit 3f2a --no-period`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			s, err := resolveSubject(f, args[0])
			if err != nil {
				return err
			}

			form := schedule.FormFor(s)
			if cmd.Flags().Changed("name") {
				form.Name = flags.name
			}
			if err := applySubjectFlags(cmd, flags, &form); err != nil {
				return err
			}
			if err := validateSubjectForm(form); err != nil {
				return err
			}

			res := f.SubmitSubject(cmd.Context(), form)
			printPlacement(cmd.OutOrStdout(), f, res)
			return nil
		},
	}

	registerSubjectFlags(cmd, &flags, true)
	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a subject",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			s, err := resolveSubject(f, args[0])
			if err != nil {
				return err
			}
			if !f.RemoveSubject(cmd.Context(), s.ID) {
				return fmt.Errorf("subject %s no longer exists", shortID(s.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", shortID(s.ID), subjectLabel(s))
			return nil
		},
	}
}

func registerSubjectFlags(cmd *cobra.Command, flags *subjectFlags, editing bool) {
	if editing {
		cmd.Flags().StringVar(&flags.name, "name", "", "New name")
		cmd.Flags().BoolVar(&flags.noPeriod, "no-period", false, "Move the subject to the Other row")
	}
	cmd.Flags().StringVarP(&flags.day, "day", "d", "", "Day: 1-7, monday..sunday or mon..sun")
	cmd.Flags().IntVarP(&flags.period, "period", "p", 0, "Period number")
	cmd.Flags().StringVarP(&flags.time, "time", "t", "", "Custom time instead of a period, e.g. 17:00-18:00")
	cmd.Flags().StringVarP(&flags.color, "color", "c", "", "Color: "+colorNames())
	cmd.MarkFlagsMutuallyExclusive("period", "time")
}

// applySubjectFlags copies the flags the user actually set onto form.
func applySubjectFlags(cmd *cobra.Command, flags subjectFlags, form *schedule.Form) error {
	changed := cmd.Flags().Changed

	if changed("day") {
		d, err := timetable.ParseDay(flags.day)
		if err != nil {
			return err
		}
		form.Day = d
	}
	if changed("color") {
		c, err := timetable.ParseColor(flags.color)
		if err != nil {
			return fmt.Errorf("%w (choose from %s)", err, colorNames())
		}
		form.Color = c
	}
	if changed("period") {
		form.Period = timetable.IntPtr(flags.period)
		form.UseCustomTime = false
		form.CustomTime = ""
	}
	if changed("time") {
		form.UseCustomTime = true
		form.CustomTime = strings.TrimSpace(flags.time)
	}
	if flags.noPeriod {
		form.Period = nil
		form.UseCustomTime = false
		form.CustomTime = ""
	}
	return nil
}

// validateSubjectForm rejects input the core would accept but a user
// almost certainly did not mean.
func validateSubjectForm(form schedule.Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return timetable.ErrEmptyName
	}
	if !form.Day.Valid() {
		return fmt.Errorf("%w: %d", timetable.ErrInvalidDay, form.Day)
	}
	if form.Color != "" && !form.Color.Valid() {
		return fmt.Errorf("%w: %q", timetable.ErrInvalidColor, form.Color)
	}
	if form.Period != nil {
		return validatePeriodNumber(*form.Period)
	}
	return nil
}

func printPlacement(w io.Writer, f *schedule.Facade, res placement.Result) {
	s := res.Subject
	where := describeSlot(s)

	switch res.Outcome {
	case placement.Created:
		fmt.Fprintf(w, "%s %s %s (%s)\n", formatOK("Added"), shortID(s.ID), subjectLabel(s), where)
	case placement.Replaced:
		fmt.Fprintf(w, "%s %s with %s (%s)\n", formatWarn("Replaced"), shortID(s.ID), subjectLabel(s), where)
	case placement.Updated:
		fmt.Fprintf(w, "%s %s %s (%s)\n", formatOK("Updated"), shortID(s.ID), subjectLabel(s), where)
	default:
		fmt.Fprintf(w, "Nothing changed: subject %s not found\n", shortID(s.ID))
		return
	}

	if s.Period != nil {
		if _, ok := f.Period(*s.Period); !ok {
			fmt.Fprintln(w, formatMuted(fmt.Sprintf("Period %d does not exist yet; add it with 'timetable period add --number %d'.", *s.Period, *s.Period)))
		}
	}
}

func describeSlot(s timetable.Subject) string {
	switch s.Slot() {
	case timetable.SlotCustom:
		return fmt.Sprintf("%s %s", s.DayOfWeek.Short(), *s.CustomTime)
	case timetable.SlotPeriod:
		return fmt.Sprintf("%s period %d", s.DayOfWeek.Short(), *s.Period)
	default:
		return fmt.Sprintf("%s, no period", s.DayOfWeek.Short())
	}
}

func colorNames() string {
	colors := timetable.AllColors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
