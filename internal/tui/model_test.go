package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typesmart/internal/generator"
	"github.com/verte-zerg/typesmart/internal/levels"
	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/tracker"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func newTestModel(t *testing.T, p *model.Progress) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local)}
	engine := tracker.NewEngine(p, levels.Builtin(), nil)
	cfg := model.Config{CompleteDelayMs: 50}
	m := NewModel(engine, levels.Builtin(), generator.NewWithSeed(1), cfg, nil)
	m.now = clock.now
	return m, clock
}

func typeString(m *Model, s string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestRenderFooterFormats(t *testing.T) {
	m, _ := newTestModel(t, model.NewProgress())
	out := m.renderFooter()
	for _, want := range []string{"WPM: 0.0", "Accuracy: 100.0%", "[--------------------] 0/13", "Streak 0"} {
		require.Contains(t, out, want)
	}
}

func TestCompletingSetAdvancesAfterDelay(t *testing.T) {
	p := model.NewProgress()
	m, clock := newTestModel(t, p)
	require.Equal(t, "asdf jkl qwe rty", m.engine.Target())

	clock.t = clock.t.Add(4 * time.Second)
	cmd := typeString(m, "asdf jkl qwe rty")
	require.NotNil(t, cmd)
	require.True(t, m.advancing)
	require.Equal(t, 1, p.CurrentSet)
	require.Equal(t, 4, p.TotalWords)

	typeString(m, "x")
	require.Empty(t, m.inputRunes[len("asdf jkl qwe rty"):])

	m.Update(advanceMsg{})
	require.False(t, m.advancing)
	require.Equal(t, "zxcv bn m po iu", m.engine.Target())
	require.Empty(t, m.inputRunes)
}

func TestBackspaceUpdatesInput(t *testing.T) {
	m, _ := newTestModel(t, model.NewProgress())
	typeString(m, "asx")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "as", string(m.inputRunes))
	require.Equal(t, "as", m.engine.Snapshot().Typed)
}

func TestThemePromptRejectsUnknown(t *testing.T) {
	p := model.NewProgress()
	m, _ := newTestModel(t, p)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, modePrompt, m.mode)
	typeString(m, "plaid")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeMessage, m.mode)
	require.Equal(t, "Invalid theme", m.message)
	require.Equal(t, "neon", p.Theme)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, modePractice, m.mode)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	typeString(m, "dark")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "dark", p.Theme)
}

func TestDailyPracticeShowsStreak(t *testing.T) {
	p := model.NewProgress()
	m, _ := newTestModel(t, p)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, 1, p.Streak)
	require.Equal(t, "2026-10-15", p.LastPractice)
	require.Contains(t, m.message, "Streak: 1 days")
}

func TestTimedTestFlow(t *testing.T) {
	m, clock := newTestModel(t, model.NewProgress())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotNil(t, cmd)
	require.Equal(t, modeTimed, m.mode)
	require.NotEmpty(t, m.testSample)

	typeString(m, "one two")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, m.testInput)

	clock.t = clock.t.Add(30 * time.Second)
	_, cmd = m.Update(testTickMsg{id: m.testID})
	require.NotNil(t, cmd)
	require.Equal(t, modeTimed, m.mode)

	clock.t = clock.t.Add(31 * time.Second)
	m.Update(testTickMsg{id: m.testID})
	require.Equal(t, modeMessage, m.mode)
	require.Contains(t, m.message, "Test Complete! WPM: 2.0")
	require.Nil(t, m.test)
}

func TestTimedTestCancel(t *testing.T) {
	m, clock := newTestModel(t, model.NewProgress())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	typeString(m, "a b c")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	clock.t = clock.t.Add(15 * time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, m.message, "Test cancelled.")
	require.Contains(t, m.message, "5-Minute Typing Test")

	staleID := m.testID
	_, cmd := m.Update(testTickMsg{id: staleID})
	require.Nil(t, cmd)
}

func TestAddLessonPrompt(t *testing.T) {
	p := model.NewProgress()
	m, _ := newTestModel(t, p)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	typeString(m, "my lesson")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"my lesson"}, p.CustomLessons)
	require.Equal(t, "Lesson added!", m.message)
}

func TestStatsView(t *testing.T) {
	p := model.NewProgress()
	p.TotalWords = 30
	p.TotalTime = 60
	m, _ := newTestModel(t, p)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, modeMessage, m.mode)
	require.True(t, strings.Contains(m.View(), "Avg WPM: 30.0"))
}

func TestControlKeysIgnoredWhileAdvancing(t *testing.T) {
	p := model.NewProgress()
	m, _ := newTestModel(t, p)
	typeString(m, "asdf jkl qwe rty")
	require.True(t, m.advancing)
	require.Equal(t, 1, p.CurrentSet)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Nil(t, cmd)
	require.Equal(t, modePractice, m.mode)
	require.Nil(t, m.test)
	require.Equal(t, 1, p.CurrentSet)
	require.Equal(t, 0, p.Streak)

	m.Update(advanceMsg{})
	require.Equal(t, 1, p.CurrentSet)
	require.Equal(t, "zxcv bn m po iu", m.engine.Target())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, 2, p.CurrentSet)
}

func TestLessonPromptRejectsControlCharacters(t *testing.T) {
	p := model.NewProgress()
	m, _ := newTestModel(t, p)

	m.promptKind = promptLesson
	m.submitPrompt("bell\a here")
	require.Equal(t, modeMessage, m.mode)
	require.True(t, m.messageIsErr)
	require.Equal(t, "Lesson contains control characters", m.message)
	require.Empty(t, p.CustomLessons)
}

func TestThemeChangeUpdatesBackground(t *testing.T) {
	m, _ := newTestModel(t, model.NewProgress())
	require.Equal(t, lipgloss.Color("#1a1a1a"), m.styles.Background)

	m.promptKind = promptTheme
	m.submitPrompt("light")
	require.Equal(t, lipgloss.Color("#ffffff"), m.styles.Background)
}
