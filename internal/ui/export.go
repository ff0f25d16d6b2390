package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/export"
	"github.com/javiermolinar/timetable/internal/theme"
)

func (a *App) exportCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Export the timetable to an Excel workbook",
		Long: `Write the visible grid, every subject and every period to an .xlsx file.

Grid cells are filled with the subject color of the configured theme
unless --plain is given.`,
		Example: `  timetable export
  timetable export ~/Documents/week.xlsx --plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "timetable.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			path, err := resolvePath(path)
			if err != nil {
				return err
			}
			if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
				path += ".xlsx"
			}

			f, err := a.ensureSchedule(cmd.Context())
			if err != nil {
				return err
			}

			var th *theme.Theme
			if !plain {
				if th, err = theme.Load(a.config.UI.Theme); err != nil {
					return err
				}
			}

			wb, err := export.New(f, th)
			if err != nil {
				return fmt.Errorf("building workbook: %w", err)
			}
			defer func() { _ = wb.Close() }()

			if err := wb.SaveAs(path); err != nil {
				return fmt.Errorf("saving workbook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatOK("Exported to"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Do not color grid cells")
	return cmd
}
