package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/timetable"
)

const shortIDLen = 8

func (a *App) listCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subjects by day",
		Long: `List every subject grouped by day, including subjects on hidden
days or periods.`,
		Example: `  timetable list
  timetable list --day fri`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			days := timetable.AllDays()
			if day != "" {
				d, err := timetable.ParseDay(day)
				if err != nil {
					return err
				}
				days = []timetable.Day{d}
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			printed := false
			for _, d := range days {
				subjects := f.SubjectsForDay(d)
				if len(subjects) == 0 {
					continue
				}
				if printed {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(d.String()))
				for _, s := range subjects {
					fmt.Fprintf(out, "  %s %-10s %-8s %s\n",
						formatMuted(shortID(s.ID)),
						slotText(s),
						s.Color,
						subjectLabel(s),
					)
				}
				printed = true
			}

			if !printed {
				fmt.Fprintln(out, "No subjects found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Only list this day")
	return cmd
}

func slotText(s timetable.Subject) string {
	switch s.Slot() {
	case timetable.SlotCustom:
		return *s.CustomTime
	case timetable.SlotPeriod:
		return fmt.Sprintf("period %d", *s.Period)
	default:
		return "-"
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveSubject finds the subject whose ID equals or uniquely starts with ref.
func resolveSubject(f *schedule.Facade, ref string) (timetable.Subject, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return timetable.Subject{}, fmt.Errorf("empty subject id")
	}
	if s, ok := f.Subject(ref); ok {
		return s, nil
	}

	var matches []timetable.Subject
	for _, s := range f.Subjects() {
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return timetable.Subject{}, fmt.Errorf("no subject matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return timetable.Subject{}, fmt.Errorf("%q matches %d subjects, use a longer id", ref, len(matches))
	}
}
