package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hivecadlanding/internal/content"
	"hivecadlanding/internal/downloads"
)

func Run(page *content.Page, resolver *downloads.Resolver, timeout time.Duration) error {
	m := newModel(page, resolver, timeout)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
