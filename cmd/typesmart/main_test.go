package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typesmart/internal/config"
	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/progress"
	"github.com/verte-zerg/typesmart/internal/tracker"
)

func setupEnv(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLessonAddAndList(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "lesson", "list")
	require.NoError(t, err)
	require.Contains(t, out, "No custom lessons yet.")

	out, err = run(t, "lesson", "add", "the", "quick", "fox")
	require.NoError(t, err)
	require.Contains(t, out, "Lesson added!")

	out, err = run(t, "lesson", "list")
	require.NoError(t, err)
	require.Contains(t, out, "1. the quick fox")

	p, err := progress.NewStore(config.DefaultProgressPath()).Load()
	require.NoError(t, err)
	require.Equal(t, []string{"the quick fox"}, p.CustomLessons)
}

func TestLessonImport(t *testing.T) {
	setupEnv(t)
	file := filepath.Join(t.TempDir(), "lessons.txt")
	require.NoError(t, os.WriteFile(file, []byte("# mine\nfirst one\n\nsecond one\n"), 0o644))

	out, err := run(t, "lesson", "import", file)
	require.NoError(t, err)
	require.Contains(t, out, "Imported 2 lessons.")

	out, err = run(t, "lesson", "list")
	require.NoError(t, err)
	require.Contains(t, out, "2. second one")
}

func TestLessonAddRejectsControlCharacters(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "lesson", "add", "tab\there")
	require.ErrorIs(t, err, tracker.ErrUntypeableLesson)
	_, statErr := os.Stat(config.DefaultProgressPath())
	require.True(t, os.IsNotExist(statErr))
}

func TestThemeCommand(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "theme", "plaid")
	require.ErrorIs(t, err, tracker.ErrUnknownTheme)
	_, statErr := os.Stat(config.DefaultProgressPath())
	require.True(t, os.IsNotExist(statErr))

	out, err := run(t, "theme", "dark")
	require.NoError(t, err)
	require.Contains(t, out, "Theme changed to dark")

	out, err = run(t, "theme")
	require.NoError(t, err)
	require.Contains(t, out, "* dark")
	require.Contains(t, out, "  neon")
}

func TestDailyRecordsStreakOnce(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "daily")
	require.NoError(t, err)
	require.Contains(t, out, "Streak: 1 days")

	out, err = run(t, "daily")
	require.NoError(t, err)
	require.Contains(t, out, "Streak: 1 days")
}

func TestStatsPlain(t *testing.T) {
	setupEnv(t)
	st := progress.NewStore(config.DefaultProgressPath())
	p, err := st.Load()
	require.NoError(t, err)
	p.TotalWords = 50
	p.TotalTime = 60
	p.Heatmap["a"] = model.KeyCounts{Correct: 3, Wrong: 1}
	require.NoError(t, st.Save(p))

	out, err := run(t, "stats", "--plain")
	require.NoError(t, err)
	require.Contains(t, out, "Avg WPM: 50.0")
	require.Contains(t, out, "Heatmap")
}

func TestLevelsMarksCurrent(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "levels")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "* 1. Beginner"), lines[0])
	require.Contains(t, lines[0], "0/13")
}

func TestConfigOverridesDefaults(t *testing.T) {
	setupEnv(t)
	require.NoError(t, writeDefaultConfig(config.DefaultConfigPath()))
	custom := filepath.Join(t.TempDir(), "doc.json")
	cfg := "[practice]\nprogress-path = \"" + custom + "\"\nbar-width = 10\n"
	require.NoError(t, os.WriteFile(config.DefaultConfigPath(), []byte(cfg), 0o644))

	out, err := run(t, "levels")
	require.NoError(t, err)
	require.Contains(t, out, "[----------] 0/13")

	_, err = run(t, "lesson", "add", "x")
	require.NoError(t, err)
	_, err = os.Stat(custom)
	require.NoError(t, err)
}

func TestInvalidHeatmapMode(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "levels", "--heatmap", "sometimes")
	require.Error(t, err)
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	setupEnv(t)
	path := config.DefaultConfigPath()
	require.NoError(t, writeDefaultConfig(path))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Nil(t, cfg.Practice.BarWidth)
}
