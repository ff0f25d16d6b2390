package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/logging"
	"github.com/javiermolinar/timetable/internal/schedule"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

type backendOpener func(ctx context.Context, cfg config.StorageConfig) (db.Backend, error)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	log      *logging.Log
	open     backendOpener
	backend  db.Backend
	schedule *schedule.Facade
	root     *cobra.Command
	debug    bool // Enable debug logging
	noColor  bool
}

// NewApp creates a new CLI application. Storage is opened on first use so
// that commands like config and version work without it.
func NewApp(cfg *config.Config, log *logging.Log) *App {
	return newApp(cfg, log, db.Open)
}

func newApp(cfg *config.Config, log *logging.Log, open backendOpener) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{config: cfg, log: log, open: open}

	a.root = &cobra.Command{
		Use:   "timetable",
		Short: "A personal weekly timetable",
		Long: `Timetable keeps a weekly grid of subjects.

Days run Monday to Sunday across the top, numbered periods run down the
side. Subjects without a period are listed in an "Other" row.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.debug {
				a.log.Level.SetLevel(zap.DebugLevel)
			}
			if a.noColor {
				DisableColor()
				lipgloss.SetColorProfile(termenv.Ascii)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, showOptions{})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (to stderr)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.periodCmd())
	a.root.AddCommand(a.toggleCmd())
	a.root.AddCommand(a.columnCmd())
	a.root.AddCommand(a.labelCmd())
	a.root.AddCommand(a.visibilityCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timetable %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureSchedule opens storage and loads the schedule if not done yet.
func (a *App) ensureSchedule(ctx context.Context) (*schedule.Facade, error) {
	if a.schedule != nil {
		return a.schedule, nil
	}

	backend, err := a.open(ctx, a.config.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	a.backend = backend

	log := a.log.Base
	a.schedule = schedule.Open(ctx, backend, log, func() {
		log.Debug("schedule changed")
	})
	return a.schedule, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the storage backend, if one was opened.
func (a *App) Close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	a.schedule = nil
	return err
}
