// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesmart/internal/model"
	"github.com/verte-zerg/typesmart/internal/stats"
	"github.com/verte-zerg/typesmart/internal/theme"
)

const (
	tabOverview = iota
	tabHeatmap
)

const (
	sortWeakest = iota
	sortFrequent
)

var (
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	summary   model.Summary
	palette   theme.Palette
	tabs      []string
	activeTab int
	sortMode  int
	keyTable  table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model for a summary.
func NewModel(summary model.Summary, themeName string) *Model {
	m := &Model{
		summary: summary,
		palette: theme.Get(themeName),
		tabs:    []string{"Overview", "Heatmap"},
	}
	m.keyTable = table.New(
		table.WithColumns(keyColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.keyTable.SetStyles(m.tableStyles())
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.keyTable.SetHeight(max(1, m.height-6))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "s":
			m.sortMode = (m.sortMode + 1) % 2
			m.refreshRows()
			return m, nil
		}
		if m.activeTab == tabHeatmap {
			var cmd tea.Cmd
			m.keyTable, cmd = m.keyTable.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	body := m.renderOverview()
	if m.activeTab == tabHeatmap {
		body = m.renderHeatmap()
	}
	return strings.Join([]string{m.renderTabs(), body, headerStyle.Render(m.renderHelp())}, "\n")
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
}

func (m *Model) renderTabs() string {
	active := inactiveNavStyle.
		Foreground(m.palette.Foreground).
		Bold(true).
		BorderForeground(m.palette.Accent)
	rendered := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.activeTab {
			rendered[i] = active.Render(name)
		} else {
			rendered[i] = inactiveNavStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderHelp() string {
	if m.activeTab == tabHeatmap {
		return "←/→ tabs · ↑/↓ scroll · s sort · q quit"
	}
	return "←/→ tabs · q quit"
}

func (m *Model) renderOverview() string {
	s := m.summary
	cards := []string{
		metricCard("Level", fmt.Sprintf("%d", s.Level)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AverageWPM)),
		metricCard("Streak", fmt.Sprintf("%d days", s.Streak)),
		metricCard("Total Words", fmt.Sprintf("%d", s.TotalWords)),
		metricCard("Errors", fmt.Sprintf("%d", s.TotalErrors)),
		metricCard("Practice Time", stats.FormatSeconds(s.TotalTime)),
		metricCard("Custom Lessons", fmt.Sprintf("%d", s.CustomLessons)),
	}
	var out string
	if m.width > 0 && m.width < 80 {
		out = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		out = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	if weak := stats.WeakKeys(s.Keys, 8); len(weak) > 0 {
		labels := make([]string, len(weak))
		for i, k := range weak {
			labels[i] = stats.KeyLabel(k)
		}
		out += "\n" + cardTitleStyle.Render("Weak keys: ") + strings.Join(labels, " ")
	}
	return out
}

func (m *Model) renderHeatmap() string {
	if len(m.summary.Keys) == 0 {
		return "No key stats yet."
	}
	label := "weakest first"
	if m.sortMode == sortFrequent {
		label = "most typed first"
	}
	return headerStyle.Render("Sorted "+label) + "\n" + m.keyTable.View()
}

func (m *Model) refreshRows() {
	m.keyTable.SetRows(buildRows(m.summary.Keys, m.sortMode))
	m.keyTable.GotoTop()
}

func keyColumns() []table.Column {
	return []table.Column{
		{Title: "Key", Width: 8},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 8},
		{Title: "Wrong", Width: 8},
		{Title: "Total", Width: 8},
	}
}

func buildRows(keys []model.KeyRatio, sortMode int) []table.Row {
	ordered := stats.SortWeakest(keys)
	if sortMode == sortFrequent {
		byKey := make(map[string]model.KeyRatio, len(keys))
		for _, k := range keys {
			byKey[k.Key] = k
		}
		ordered = ordered[:0]
		for _, name := range stats.TopKeysByFrequency(keys, len(keys)) {
			ordered = append(ordered, byKey[name])
		}
	}
	rows := make([]table.Row, 0, len(ordered))
	for _, k := range ordered {
		rows = append(rows, table.Row{
			stats.KeyLabel(k.Key),
			fmt.Sprintf("%.2f%%", k.Ratio*100),
			fmt.Sprintf("%d", k.Correct),
			fmt.Sprintf("%d", k.Wrong),
			fmt.Sprintf("%d", k.Correct+k.Wrong),
		})
	}
	return rows
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(m.palette.Accent).
		Bold(true)
	return styles
}
