package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	NextSet  key.Binding
	Daily    key.Binding
	Lesson   key.Binding
	ShortRun key.Binding
	LongRun  key.Binding
	Stats    key.Binding
	Theme    key.Binding
	Cancel   key.Binding
	Submit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextSet:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next set")),
		Daily:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "daily")),
		Lesson:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "add lesson")),
		ShortRun: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "1-min test")),
		LongRun:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "5-min test")),
		Stats:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "stats")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "theme")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	}
}

func (k keyMap) practiceHelp() string {
	return helpLine(k.NextSet, k.Daily, k.Lesson, k.ShortRun, k.LongRun, k.Stats, k.Theme, k.Quit)
}

func (k keyMap) testHelp() string {
	return helpLine(k.Submit, k.Cancel)
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
