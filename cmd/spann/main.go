package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tavla/spann/internal/adapters/storage/sqlite"
	"github.com/tavla/spann/internal/app"
	"github.com/tavla/spann/internal/config"
	"github.com/tavla/spann/internal/domain"
	"github.com/tavla/spann/internal/platform"
	"github.com/tavla/spann/internal/timeline"
	"github.com/tavla/spann/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// rootOptions holds the persistent flag values shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
}

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), newRootCmd(os.Stdout, os.Stderr)); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the CLI tree. The bare command launches the schedule
// board; subcommands cover snapshots and path inspection.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{appName: "spann"}
	if env := strings.TrimSpace(os.Getenv("SPANN_APP_NAME")); env != "" {
		opts.appName = env
	}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("SPANN_DEV_MODE"); ok {
		defaultDevMode = envDev
	}

	root := &cobra.Command{
		Use:           "spann",
		Short:         "Terminal schedule board with a draggable day grid",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, stderr)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	root.PersistentFlags().StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newExportCmd(opts, stdout))
	root.AddCommand(newImportCmd(opts, stdout))
	root.AddCommand(newProjectsCmd(opts, stdout))
	root.AddCommand(newPathsCmd(opts, stdout))
	return root
}

// runtimeEnv is the resolved configuration shared across command flows.
type runtimeEnv struct {
	cfg        config.Config
	configPath string
	paths      platform.Paths
}

// resolveEnv merges flag, env, and platform defaults into a loaded config.
func resolveEnv(opts *rootOptions) (runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return runtimeEnv{}, err
	}

	configPath := opts.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("SPANN_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	dbPath := opts.dbPath
	dbOverridden := strings.TrimSpace(dbPath) != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("SPANN_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}
	return runtimeEnv{cfg: cfg, configPath: configPath, paths: paths}, nil
}

// openService opens the repository and wires the application service.
func openService(env runtimeEnv) (*app.Service, *sqlite.Repository, error) {
	repo, err := sqlite.Open(env.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	svc := app.NewService(repo, uuid.NewString, nil, app.ServiceConfig{
		DefaultDeleteMode: app.DeleteMode(env.cfg.Delete.DefaultMode),
	})
	return svc, repo, nil
}

// runTUI runs the requested command flow.
func runTUI(opts *rootOptions, stderr io.Writer) error {
	env, err := resolveEnv(opts)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, env.cfg.Logging, env.paths.DataDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while
	// the board is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		_ = logger.Close()
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", env.configPath, "data_dir", env.paths.DataDir, "db_path", env.cfg.Database.Path)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	svc, repo, err := openService(env)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", env.cfg.Database.Path, "err", err)
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("sqlite close failed", "db_path", env.cfg.Database.Path, "err", closeErr)
		}
	}()
	logger.Info("sqlite repository ready", "db_path", env.cfg.Database.Path, "migrations", "ensured")

	palette, err := timeline.NewPalette(toPaletteEntries(env.cfg.Palette))
	if err != nil {
		return fmt.Errorf("build priority palette: %w", err)
	}

	m := tui.NewModel(
		svc,
		tui.WithTimelineOptions(tui.TimelineOptions{
			ChunkMonths:   env.cfg.Timeline.ChunkMonths,
			CapDays:       env.cfg.Timeline.CapDays,
			PageDays:      env.cfg.Timeline.PageDays,
			ThresholdDays: env.cfg.Timeline.ThresholdDays,
			DayCellWidth:  env.cfg.Timeline.DayCellWidth,
			DimWeekends:   env.cfg.Timeline.DimWeekends,
		}),
		tui.WithPalette(palette),
		tui.WithDefaultDeleteMode(app.DeleteMode(env.cfg.Delete.DefaultMode)),
		tui.WithDefaultPriority(domain.Priority(env.cfg.Create.DefaultPriority)),
		tui.WithKeyOverrides(tui.KeyOverrides{
			Today:       env.cfg.Keys.Today,
			PageEarlier: env.cfg.Keys.PageEarlier,
			PageLater:   env.cfg.Keys.PageLater,
			NewTask:     env.cfg.Keys.NewTask,
			Delete:      env.cfg.Keys.Delete,
			Yank:        env.cfg.Keys.Yank,
		}),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// newExportCmd writes the seed board snapshot as JSON.
func newExportCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveEnv(opts)
			if err != nil {
				return err
			}
			svc, repo, err := openService(env)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			project, err := svc.EnsureSeedBoard(cmd.Context())
			if err != nil {
				return fmt.Errorf("resolve board: %w", err)
			}
			encoded, err := svc.ExportSnapshot(cmd.Context(), project.ID)
			if err != nil {
				return fmt.Errorf("export snapshot: %w", err)
			}
			encoded = append(encoded, '\n')

			if outPath == "-" {
				_, err := stdout.Write(encoded)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create export output dir: %w", err)
			}
			return os.WriteFile(outPath, encoded, 0o644)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	return cmd
}

// newImportCmd loads a snapshot JSON into a fresh project.
func newImportCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON snapshot as a new board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inPath == "" {
				return fmt.Errorf("--in is required")
			}
			content, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			env, err := resolveEnv(opts)
			if err != nil {
				return err
			}
			svc, repo, err := openService(env)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			project, err := svc.ImportSnapshot(cmd.Context(), content)
			if err != nil {
				return fmt.Errorf("import snapshot: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "imported board %q\n", project.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot JSON file")
	return cmd
}

// newProjectsCmd lists the boards in the store, oldest first.
func newProjectsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List boards in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveEnv(opts)
			if err != nil {
				return err
			}
			svc, repo, err := openService(env)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			projects, err := svc.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("list projects: %w", err)
			}
			if len(projects) == 0 {
				_, _ = fmt.Fprintln(stdout, "no boards yet")
				return nil
			}
			for _, p := range projects {
				_, _ = fmt.Fprintf(stdout, "%s\t%s\t%s\n", p.ID, p.TicketPrefix, p.Name)
			}
			return nil
		},
	}
}

// newPathsCmd prints the resolved config and data locations.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := resolveEnv(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", env.configPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", env.paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "db: %s\n", env.cfg.Database.Path)
			return nil
		},
	}
}

// toPaletteEntries maps config palette rows into the timeline palette form.
func toPaletteEntries(entries []config.PaletteEntry) []timeline.Entry {
	out := make([]timeline.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeline.Entry{Priority: e.Priority, Hex: e.Color})
	}
	return out
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// runtimeLogger fans log events to a styled console sink and an optional
// dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, dataDir string, now func() time.Time) (*runtimeLogger, error) {
	levelName := cfg.Level
	if strings.TrimSpace(levelName) == "" {
		levelName = "info"
	}
	level, err := charmLog.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if now == nil {
		now = time.Now
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	if !devMode {
		return logger, nil
	}

	devLogPath := filepath.Join(dataDir, "log", fmt.Sprintf("%s-%s.log", appName, now().UTC().Format("20060102")))
	if err := os.MkdirAll(filepath.Dir(devLogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled
	// console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// DevLogPath returns the active dev log file path.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	l.emit(func(s *charmLog.Logger) { s.Debug(msg, keyvals...) })
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	l.emit(func(s *charmLog.Logger) { s.Info(msg, keyvals...) })
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	l.emit(func(s *charmLog.Logger) { s.Warn(msg, keyvals...) })
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	l.emit(func(s *charmLog.Logger) { s.Error(msg, keyvals...) })
}

func (l *runtimeLogger) emit(fn func(*charmLog.Logger)) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		fn(sink)
	}
}
