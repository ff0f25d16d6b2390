package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/timetable/internal/placement"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// importFile is the YAML layout accepted by the import command.
type importFile struct {
	Periods  []importPeriod  `yaml:"periods"`
	Subjects []importSubject `yaml:"subjects"`
}

type importPeriod struct {
	Number int    `yaml:"number"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
}

type importSubject struct {
	Name   string `yaml:"name"`
	Day    string `yaml:"day"`
	Period *int   `yaml:"period"`
	Time   string `yaml:"time"`
	Color  string `yaml:"color"`
}

// importSummary counts what an import changed.
type importSummary struct {
	PeriodsAdded   int
	PeriodsUpdated int
	Created        int
	Replaced       int
}

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import periods and subjects from a YAML file",
		Long: `Import periods and subjects from a YAML file.

A period whose number already exists gets the new times. Subjects go
through the same placement as 'add', so a subject landing in a taken
cell replaces its first occupant.

Example file:

  periods:
    - number: 6
      start: "11:10"
      end: "11:55"
  subjects:
    - name: Math
      day: tue
      period: 3
      color: red
    - name: Swimming
      day: saturday
      time: "17:00-18:00"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			file, err := os.Open(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("import file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = file.Close() }()

			doc, err := parseImport(file)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d periods, %d subjects\n",
					sourcePath, len(doc.Periods), len(doc.Subjects))
				return nil
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}
			sum := applyImport(cmd.Context(), f, doc)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported from %s: %d periods added, %d updated, %d subjects added, %d replaced\n",
				sourcePath, sum.PeriodsAdded, sum.PeriodsUpdated, sum.Created, sum.Replaced)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without importing")
	return cmd
}

// importDoc is a validated import, ready to apply.
type importDoc struct {
	Periods  []schedule.PeriodForm
	Subjects []schedule.Form
}

// parseImport decodes and validates an import file. Nothing is applied if
// any entry is invalid.
func parseImport(r io.Reader) (*importDoc, error) {
	var raw importFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}

	doc := &importDoc{}
	for i, p := range raw.Periods {
		if err := validatePeriodNumber(p.Number); err != nil {
			return nil, fmt.Errorf("period %d: %w", i+1, err)
		}
		if err := validateTimeRange(p.Start, p.End); err != nil {
			return nil, fmt.Errorf("period %d: %w", i+1, err)
		}
		doc.Periods = append(doc.Periods, schedule.PeriodForm{Number: p.Number, StartTime: p.Start, EndTime: p.End})
	}

	for i, s := range raw.Subjects {
		form, err := s.form()
		if err != nil {
			return nil, fmt.Errorf("subject %d (%q): %w", i+1, s.Name, err)
		}
		doc.Subjects = append(doc.Subjects, form)
	}
	return doc, nil
}

func (s importSubject) form() (schedule.Form, error) {
	day, err := timetable.ParseDay(s.Day)
	if err != nil {
		return schedule.Form{}, err
	}
	color, err := timetable.ParseColor(s.Color)
	if err != nil {
		return schedule.Form{}, err
	}
	if s.Period != nil && s.Time != "" {
		return schedule.Form{}, fmt.Errorf("set either period or time, not both")
	}

	form := schedule.Form{Name: s.Name, Day: day, Color: color}
	if t := strings.TrimSpace(s.Time); t != "" {
		form.UseCustomTime = true
		form.CustomTime = t
	} else if s.Period != nil {
		form.Period = timetable.IntPtr(*s.Period)
	}
	return form, validateSubjectForm(form)
}

// applyImport submits periods first so subjects can land on them.
func applyImport(ctx context.Context, f *schedule.Facade, doc *importDoc) importSummary {
	var sum importSummary
	for _, p := range doc.Periods {
		if existing, ok := f.Period(p.Number); ok {
			p.ID = existing.ID
			if _, ok := f.SubmitPeriod(ctx, p); ok {
				sum.PeriodsUpdated++
			}
			continue
		}
		f.SubmitPeriod(ctx, p)
		sum.PeriodsAdded++
	}

	for _, form := range doc.Subjects {
		switch f.SubmitSubject(ctx, form).Outcome {
		case placement.Created:
			sum.Created++
		case placement.Replaced:
			sum.Replaced++
		}
	}
	return sum
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
