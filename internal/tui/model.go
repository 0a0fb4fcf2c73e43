// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typesmart/internal/generator"
	"github.com/verte-zerg/typesmart/internal/levels"
	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/stats"
	"github.com/verte-zerg/typesmart/internal/theme"
	"github.com/verte-zerg/typesmart/internal/tracker"
)

const (
	shortTestMinutes = 1
	longTestMinutes  = 5
)

type mode int

const (
	modePractice mode = iota
	modePrompt
	modeTimed
	modeMessage
)

type promptKind int

const (
	promptLesson promptKind = iota
	promptTheme
)

type advanceMsg struct{}

type testTickMsg struct {
	id int
}

type levelNamer interface {
	Name(level int) string
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine  *tracker.Engine
	catalog levels.Catalog
	gen     *generator.Generator
	logger  *zap.Logger
	config  model.Config
	now     func() time.Time
	styles  theme.Styles
	keys    keyMap

	width  int
	height int

	mode       mode
	inputRunes []rune
	advancing  bool
	errMsg     string

	prompt     textinput.Model
	promptKind promptKind

	message      string
	messageIsErr bool

	test       *tracker.TimedTest
	testID     int
	testSample string
	testInput  []rune
}

// NewModel constructs a typing TUI model over an engine.
func NewModel(engine *tracker.Engine, catalog levels.Catalog, gen *generator.Generator, cfg model.Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := textinput.New()
	prompt.CharLimit = 500
	prompt.Width = 60
	m := &Model{
		engine:  engine,
		catalog: catalog,
		gen:     gen,
		logger:  logger,
		config:  cfg,
		now:     time.Now,
		styles:  theme.StylesFor(engine.Progress().Theme),
		keys:    defaultKeyMap(),
		prompt:  prompt,
	}
	m.loadSet()
	return m
}

// StartTimedTest opens the model directly in a timed test.
func (m *Model) StartTimedTest(minutes int) tea.Cmd {
	return m.startTest(minutes)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.test != nil {
		return m.testTick()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case advanceMsg:
		m.advancing = false
		m.loadSet()
		return m, nil
	case testTickMsg:
		if m.test == nil || msg.id != m.testID {
			return m, nil
		}
		if m.test.Tick(m.now()) {
			m.finishTest()
			return m, nil
		}
		return m, m.testTick()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.persist()
			return m, tea.Quit
		}
		switch m.mode {
		case modeMessage:
			m.mode = modePractice
			return m, nil
		case modePrompt:
			return m.updatePrompt(msg)
		case modeTimed:
			return m.updateTimed(msg)
		default:
			return m.updatePractice(msg)
		}
	}
	return m, nil
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The completed set already moved current_set; anything that loads a
	// set now would skip one or be overwritten by the pending advance.
	if m.advancing && key.Matches(msg, m.keys.NextSet, m.keys.Daily, m.keys.ShortRun, m.keys.LongRun) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.NextSet):
		m.nextSet()
		return m, nil
	case key.Matches(msg, m.keys.Daily):
		m.dailyPractice()
		return m, nil
	case key.Matches(msg, m.keys.Lesson):
		return m, m.openPrompt(promptLesson, "lesson text")
	case key.Matches(msg, m.keys.Theme):
		return m, m.openPrompt(promptTheme, strings.Join(theme.Names(), ", "))
	case key.Matches(msg, m.keys.ShortRun):
		return m, m.startTest(shortTestMinutes)
	case key.Matches(msg, m.keys.LongRun):
		return m, m.startTest(longTestMinutes)
	case key.Matches(msg, m.keys.Stats):
		m.showStats()
		return m, nil
	}
	if m.advancing {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.inputRunes) == 0 {
			return m, nil
		}
		m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
		return m, m.inputChanged()
	case tea.KeySpace:
		m.inputRunes = append(m.inputRunes, ' ')
		return m, m.inputChanged()
	case tea.KeyRunes:
		m.inputRunes = append(m.inputRunes, msg.Runes...)
		return m, m.inputChanged()
	}
	return m, nil
}

func (m *Model) inputChanged() tea.Cmd {
	upd, err := m.engine.Type(string(m.inputRunes), m.now())
	if err != nil {
		m.reportErr("failed to save progress", err)
	}
	if !upd.Completed {
		return nil
	}
	snap := m.engine.Snapshot()
	m.logger.Info("set completed",
		zap.Int("tier", snap.Level),
		zap.Int("set", snap.SetIndex),
		zap.Float64("wpm", upd.WPM),
		zap.Float64("accuracy", upd.Accuracy),
		zap.Float64("elapsed", upd.Elapsed))
	m.advancing = true
	delay := time.Duration(m.config.CompleteDelayMs) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return advanceMsg{}
	})
}

func (m *Model) loadSet() {
	prev := m.engine.Progress().Level
	tierDone, err := m.engine.LoadSet(m.now())
	m.inputRunes = nil
	if err != nil {
		m.reportErr("failed to load set", err)
		return
	}
	m.errMsg = ""
	if tierDone {
		m.showMessage(fmt.Sprintf("Level %s completed!", m.levelName(prev)), false)
	}
}

func (m *Model) nextSet() {
	prev := m.engine.Progress().Level
	tierDone, err := m.engine.NextSet(m.now())
	m.inputRunes = nil
	if err != nil {
		m.reportErr("failed to advance", err)
		return
	}
	m.errMsg = ""
	if tierDone {
		m.showMessage(fmt.Sprintf("Level %s completed!", m.levelName(prev)), false)
	}
}

func (m *Model) dailyPractice() {
	if _, err := m.engine.MarkPractice(m.now()); err != nil {
		m.reportErr("failed to save streak", err)
		return
	}
	m.loadSet()
	m.showMessage(fmt.Sprintf("Daily practice started! Streak: %d days", m.engine.Progress().Streak), false)
}

func (m *Model) showStats() {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, stats.Summarize(m.engine.Progress())); err != nil {
		m.reportErr("failed to render stats", err)
		return
	}
	m.showMessage(strings.TrimRight(buf.String(), "\n"), false)
}

func (m *Model) openPrompt(kind promptKind, placeholder string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Reset()
	m.prompt.Placeholder = placeholder
	m.mode = modePrompt
	return m.prompt.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt.Blur()
		m.mode = modePractice
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		value := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		m.mode = modePractice
		m.submitPrompt(value)
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt(value string) {
	switch m.promptKind {
	case promptLesson:
		if value == "" {
			return
		}
		if err := m.engine.AddCustomLesson(value); err != nil {
			if errors.Is(err, tracker.ErrUntypeableLesson) {
				m.showMessage("Lesson contains control characters", true)
				return
			}
			m.reportErr("failed to add lesson", err)
			return
		}
		m.showMessage("Lesson added!", false)
	case promptTheme:
		if err := m.engine.SetTheme(value); err != nil {
			if errors.Is(err, tracker.ErrUnknownTheme) {
				m.showMessage("Invalid theme", true)
				return
			}
			m.reportErr("failed to save theme", err)
			return
		}
		m.styles = theme.StylesFor(value)
		m.showMessage(fmt.Sprintf("Theme changed to %s", value), false)
	}
}

func (m *Model) startTest(minutes int) tea.Cmd {
	test, err := tracker.StartTimedTest(minutes, m.now())
	if err != nil {
		m.reportErr("failed to start test", err)
		return nil
	}
	m.test = test
	m.testID++
	m.testInput = nil
	m.testSample = m.gen.Pick(m.catalog.Texts(m.catalog.MaxLevel()))
	m.mode = modeTimed
	m.logger.Info("timed test started", zap.Int("minutes", minutes))
	return m.testTick()
}

func (m *Model) testTick() tea.Cmd {
	id := m.testID
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return testTickMsg{id: id}
	})
}

func (m *Model) updateTimed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.test.Cancel(m.now())
		m.finishTest()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if !m.test.Submit(string(m.testInput), m.now()) {
			m.finishTest()
			return m, nil
		}
		m.testInput = nil
		m.testSample = m.gen.PickOther(m.catalog.Texts(m.catalog.MaxLevel()), m.testSample)
		return m, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.testInput) > 0 {
			m.testInput = m.testInput[:len(m.testInput)-1]
		}
	case tea.KeySpace:
		m.testInput = append(m.testInput, ' ')
	case tea.KeyRunes:
		m.testInput = append(m.testInput, msg.Runes...)
	}
	return m, nil
}

func (m *Model) finishTest() {
	res := m.test.Result()
	m.test = nil
	m.testInput = nil
	m.logger.Info("timed test finished",
		zap.Int("minutes", res.Minutes),
		zap.Int("words", res.Words),
		zap.Float64("wpm", res.WPM),
		zap.Bool("cancelled", res.Cancelled))
	m.loadSet()
	status := "Test Complete!"
	if res.Cancelled {
		status = "Test cancelled."
	}
	m.showMessage(fmt.Sprintf("%d-Minute Typing Test\n%s WPM: %.1f", res.Minutes, status, res.WPM), false)
}

func (m *Model) showMessage(text string, isErr bool) {
	m.message = text
	m.messageIsErr = isErr
	m.mode = modeMessage
}

func (m *Model) reportErr(context string, err error) {
	m.errMsg = fmt.Sprintf("%s: %v", context, err)
	m.logger.Error(context, zap.Error(err))
}

func (m *Model) persist() {
	if err := m.engine.Save(); err != nil {
		m.logger.Error("failed to save progress on exit", zap.Error(err))
	}
}

func (m *Model) levelName(level int) string {
	if n, ok := m.catalog.(levelNamer); ok {
		return fmt.Sprintf("%d (%s)", level, n.Name(level))
	}
	return fmt.Sprintf("%d", level)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.mode {
	case modeMessage:
		style := lipgloss.NewStyle()
		if m.messageIsErr {
			style = m.styles.Error
		}
		content = m.styles.Modal.Render(style.Render(m.message) + "\n\n" + m.styles.Footer.Render("press any key"))
	case modePrompt:
		title := "Custom Lesson"
		if m.promptKind == promptTheme {
			title = "Change Theme"
		}
		content = m.styles.Modal.Render(m.styles.Target.Render(title) + "\n\n" + m.prompt.View())
	case modeTimed:
		content = m.renderTimed()
	default:
		content = m.renderPractice()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(m.styles.Background))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderPractice() string {
	snap := m.engine.Snapshot()
	target := []rune(snap.Target)
	cursorIndex := -1
	if len(m.inputRunes) < len(target) {
		cursorIndex = len(m.inputRunes)
	}
	styled := buildStyledRunes(m.styles, target, m.inputRunes, cursorIndex)
	text := wrapStyledRunes(styled, m.contentWidth())

	lines := []string{
		m.styles.Footer.Render("Level " + m.levelName(snap.Level)),
		"",
		text,
		"",
		m.renderFooter(),
		m.styles.Footer.Faint(true).Render(m.keys.practiceHelp()),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	snap := m.engine.Snapshot()
	segments := []string{
		fmt.Sprintf("WPM: %.1f | Accuracy: %.1f%%", snap.WPM, snap.Accuracy),
		fmt.Sprintf("%s %d/%d", snap.Bar, snap.SetIndex, snap.TotalSets),
		fmt.Sprintf("Streak %d", m.engine.Progress().Streak),
	}
	footer := m.styles.Footer.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "\n" + m.styles.Error.Render(m.errMsg)
	}
	return footer
}

func (m *Model) renderTimed() string {
	remaining := m.test.Remaining(m.now()).Round(time.Second)
	lines := []string{
		m.styles.Footer.Render(fmt.Sprintf("Typing Test · %s left", remaining)),
		"",
		m.styles.Target.Render(m.testSample),
		"",
		"> " + string(m.testInput) + m.styles.Pending.Underline(true).Render(" "),
		"",
		m.styles.Footer.Faint(true).Render(m.keys.testHelp()),
	}
	return strings.Join(lines, "\n")
}
