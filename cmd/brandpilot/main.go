package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"github.com/stefanpenner/brandpilot/pkg/catalog"
	"github.com/stefanpenner/brandpilot/pkg/config"
	"github.com/stefanpenner/brandpilot/pkg/logging"
	"github.com/stefanpenner/brandpilot/pkg/program"
	"github.com/stefanpenner/brandpilot/pkg/tui"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd(newApp()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// skipCatalogAnnotation marks commands that must run without loading the
// current catalogue, such as init replacing a broken one.
const skipCatalogAnnotation = "brandpilot/skip-catalog"

// app carries the flags and the state built before every command runs.
type app struct {
	// Flags
	dir         string
	catalogPath string
	jsonOutput  bool
	verbose     bool

	env envconfig.Lookuper
	now func() time.Time

	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	store   *program.Store
}

func newApp() *app {
	return &app{
		env: envconfig.OsLookuper(),
		now: time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "brandpilot",
		Short: "Track brand partnership programs on a kanban board",
		Long: `brandpilot tracks brand partnership programs: targets, achievement,
payment status and estimated rewards.

Run without arguments to open the interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	root.PersistentFlags().StringVar(&a.dir, "dir", "", "Data directory (or set BRANDPILOT_DIR)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "Catalog file (default <dir>/catalog.yaml)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print JSON instead of text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newBoardCmd(a),
		newChartCmd(a),
		newShowCmd(a),
		newRewardCmd(a),
		newCatalogCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup loads configuration, the logger, the catalogue and a store seeded
// from it. Flags override the environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFrom(cmd.Context(), a.env)
	if err != nil {
		return err
	}
	if a.dir != "" {
		cfg.DataDir = a.dir
	}
	if a.catalogPath != "" {
		cfg.Catalog = a.catalogPath
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	// The board owns the terminal, so it logs to a file
	output := "stderr"
	if cmd == cmd.Root() {
		output = cfg.LogPath()
	}
	a.logger, err = logging.New(cfg.LogLevel, output)
	if err != nil {
		return err
	}
	if cmd.Annotations[skipCatalogAnnotation] == "true" {
		return nil
	}

	a.catalog, err = catalog.Load(cfg.CatalogPath())
	if err != nil {
		return err
	}
	a.logger.Debug("catalog loaded",
		zap.String("path", cfg.CatalogPath()),
		zap.Int("programs", len(a.catalog.Programs)))

	a.store = program.NewStore(program.WithLogger(a.logger))
	if err := a.store.Seed(a.catalog.Programs); err != nil {
		return fmt.Errorf("seeding programs: %w", err)
	}
	return nil
}

func (a *app) runTUI() error {
	m := tui.NewModel(a.store, a.catalog,
		tui.WithLogger(a.logger),
		tui.WithClock(a.now),
		tui.WithCatalogPath(a.cfg.CatalogPath()),
		tui.WithRewardDebounce(a.cfg.RewardDebounce),
	)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	cleanup, err := tui.StartWatcher(a.cfg.CatalogPath(), p.Send, a.logger)
	if err != nil {
		a.logger.Warn("catalog watcher not started",
			zap.String("path", a.cfg.CatalogPath()),
			zap.Error(err))
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}
