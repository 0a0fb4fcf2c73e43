// Package main provides the CLI entrypoint for typesmart.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/typesmart/internal/config"
	"github.com/verte-zerg/typesmart/internal/generator"
	"github.com/verte-zerg/typesmart/internal/lessons"
	"github.com/verte-zerg/typesmart/internal/levels"
	"github.com/verte-zerg/typesmart/internal/logging"
	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/progress"
	"github.com/verte-zerg/typesmart/internal/stats"
	"github.com/verte-zerg/typesmart/internal/statsui"
	"github.com/verte-zerg/typesmart/internal/theme"
	"github.com/verte-zerg/typesmart/internal/tracker"
	"github.com/verte-zerg/typesmart/internal/tui"
)

const (
	defaultBarWidth    = 20
	defaultDelayMs     = 50
	defaultHeatmapMode = heatmapDelta
	defaultTestMinutes = 1
	defaultLogLevel    = "info"
)

const (
	heatmapDelta  = "delta"
	heatmapRescan = "rescan"
)

var (
	practiceProgressPath string
	practiceCatalog      string
	practiceBarWidth     int
	practiceDelayMs      int
	practiceHeatmap      string

	testMinutes int
	statsPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesmart",
		Short:         "Progressive TUI typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceProgressPath, "progress", "", "progress document path (default: XDG data dir)")
	flags.StringVar(&practiceCatalog, "catalog", "", "YAML level catalog (default: built-in levels)")
	flags.IntVar(&practiceBarWidth, "bar-width", defaultBarWidth, "progress bar width")
	flags.IntVar(&practiceDelayMs, "delay", defaultDelayMs, "delay in ms before the next set loads")
	flags.StringVar(&practiceHeatmap, "heatmap", defaultHeatmapMode, "heatmap scoring: delta or rescan")

	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newLessonCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles everything a command needs after config resolution.
type app struct {
	cfg     model.Config
	catalog *levels.Static
	engine  *tracker.Engine
	logger  *zap.Logger
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func loadApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "progress", &practiceProgressPath, fileCfg.Practice.ProgressPath)
	applyStringConfig(cmd, "catalog", &practiceCatalog, fileCfg.Practice.Catalog)
	applyIntConfig(cmd, "bar-width", &practiceBarWidth, fileCfg.Practice.BarWidth)
	applyIntConfig(cmd, "delay", &practiceDelayMs, fileCfg.Practice.CompleteDelayMs)
	applyStringConfig(cmd, "heatmap", &practiceHeatmap, fileCfg.Practice.Heatmap)
	if cmd.Flags().Lookup("minutes") != nil {
		applyIntConfig(cmd, "minutes", &testMinutes, fileCfg.Test.Minutes)
	}

	cfg := model.Config{
		BarWidth:        practiceBarWidth,
		CompleteDelayMs: practiceDelayMs,
		RescanHeatmap:   practiceHeatmap == heatmapRescan,
		TestMinutes:     testMinutes,
	}
	if err := validateConfig(cfg, practiceHeatmap); err != nil {
		return nil, err
	}

	logger := newLogger(fileCfg.Log)

	catalog := levels.Builtin()
	if practiceCatalog != "" {
		catalog, err = levels.LoadFile(practiceCatalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	progressPath := practiceProgressPath
	if progressPath == "" {
		progressPath = config.DefaultProgressPath()
	}
	st := progress.NewStore(progressPath)
	doc, err := st.Load()
	if err != nil {
		logger.Warn("progress unreadable, starting from defaults", zap.String("path", progressPath), zap.Error(err))
		logErrf("warning: %v (starting from defaults)\n", err)
	}

	engine := tracker.NewEngine(doc, catalog, st,
		tracker.WithBarWidth(cfg.BarWidth),
		tracker.WithRescanHeatmap(cfg.RescanHeatmap),
	)
	logger.Debug("progress loaded",
		zap.String("path", progressPath),
		zap.Int("level", doc.Level),
		zap.Int("current_set", doc.CurrentSet),
	)
	return &app{cfg: cfg, catalog: catalog, engine: engine, logger: logger}, nil
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	path := config.DefaultLogPath()
	if cfg.Path != nil && *cfg.Path != "" {
		path = *cfg.Path
	}
	level := defaultLogLevel
	if cfg.Level != nil {
		level = *cfg.Level
	}
	logger, err := logging.New(path, level)
	if err != nil {
		logErrf("warning: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return runPractice(a, nil)
}

// runPractice starts the typing TUI. setup runs on the model before the
// program starts.
func runPractice(a *app, setup func(*tui.Model)) error {
	m := tui.NewModel(a.engine, a.catalog, generator.New(), a.cfg, a.logger)
	if setup != nil {
		setup(m)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run a timed typing test",
		Args:  cobra.NoArgs,
		RunE:  runTestCmd,
	}
	cmd.Flags().IntVar(&testMinutes, "minutes", defaultTestMinutes, "test duration in minutes")
	return cmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if a.cfg.TestMinutes <= 0 {
		return fmt.Errorf("--minutes must be > 0")
	}
	return runPractice(a, func(m *tui.Model) {
		// Init schedules the countdown once the program starts.
		_ = m.StartTimedTest(a.cfg.TestMinutes)
	})
}

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Record today's practice and start practicing",
		Args:  cobra.NoArgs,
		RunE:  runDailyCmd,
	}
}

func runDailyCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.engine.MarkPractice(time.Now()); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	streak := a.engine.Progress().Streak
	a.logger.Info("daily practice", zap.Int("streak", streak))
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Daily practice started! Streak: %d days\n", streak); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !isTerminal(cmd.OutOrStdout()) {
		return nil
	}
	return runPractice(a, nil)
}

func newLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Manage custom lessons",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a custom lesson",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLessonAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List custom lessons",
		Args:  cobra.NoArgs,
		RunE:  runLessonListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import lessons from a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonImportCmd,
	})
	return cmd
}

func runLessonAddCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.engine.AddCustomLesson(strings.Join(args, " ")); err != nil {
		return fmt.Errorf("failed to add lesson: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Lesson added!")
	return err
}

func runLessonListCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	custom := a.engine.Progress().CustomLessons
	if len(custom) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No custom lessons yet.")
		return err
	}
	for i, text := range custom {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runLessonImportCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	texts, err := lessons.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}
	if err := a.engine.AddCustomLessons(texts...); err != nil {
		return fmt.Errorf("failed to import lessons: %w", err)
	}
	a.logger.Info("lessons imported", zap.String("file", args[0]), zap.Int("count", len(texts)))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lessons.\n", len(texts))
	return err
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or change the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		current := a.engine.Progress().Theme
		for _, name := range theme.Names() {
			marker := " "
			if name == current {
				marker = "*"
			}
			if _, err := fmt.Fprintf(out, "%s %s\n", marker, name); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}
	if err := a.engine.SetTheme(args[0]); err != nil {
		if errors.Is(err, tracker.ErrUnknownTheme) {
			return err
		}
		return fmt.Errorf("failed to save theme: %w", err)
	}
	_, err = fmt.Fprintf(out, "Theme changed to %s\n", args[0])
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summary stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	p := a.engine.Progress()
	summary := stats.Summarize(p)
	if statsPlain || !isTerminal(cmd.OutOrStdout()) {
		return stats.RenderSummary(cmd.OutOrStdout(), summary)
	}
	program := tea.NewProgram(statsui.NewModel(summary, p.Theme), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List practice levels",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	p := a.engine.Progress()
	for level := 1; level <= a.catalog.MaxLevel(); level++ {
		total := len(a.catalog.Texts(level))
		line := fmt.Sprintf("  %d. %s (%d sets)", level, a.catalog.Name(level), total)
		if level == p.Level {
			done := min(p.CurrentSet, total)
			line = fmt.Sprintf("* %d. %s (%d sets) %s %d/%d", level, a.catalog.Name(level), total,
				tracker.ProgressBar(done, total, a.cfg.BarWidth), done, total)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config template unless a file already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesmart configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# progress-path = ""          # Progress document (default: $XDG_DATA_HOME/typesmart/progress.json)
# catalog = ""                # YAML level catalog (default: built-in levels)
# bar-width = %d              # Progress bar width
# complete-delay-ms = %d      # Delay before the next set loads
# heatmap = %q           # Heatmap scoring: "delta" or "rescan"

[test]
# minutes = %d                # Timed test duration

[log]
# level = %q              # debug, info, warn, error
# path = ""                   # Log file (default: $XDG_STATE_HOME/typesmart/typesmart.log)
`,
		defaultBarWidth,
		defaultDelayMs,
		defaultHeatmapMode,
		defaultTestMinutes,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config, heatmap string) error {
	if cfg.BarWidth <= 0 {
		return fmt.Errorf("--bar-width must be > 0")
	}
	if cfg.CompleteDelayMs < 0 {
		return fmt.Errorf("--delay must be >= 0")
	}
	if heatmap != heatmapDelta && heatmap != heatmapRescan {
		return fmt.Errorf("--heatmap must be %q or %q", heatmapDelta, heatmapRescan)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
