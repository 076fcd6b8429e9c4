package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleEventKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.eventCursor = clampCursor(m.eventCursor-1, len(m.events))
	case key.Matches(msg, m.keys.Down):
		m.eventCursor = clampCursor(m.eventCursor+1, len(m.events))
	}
	return m, nil
}

// renderEvents lists the persisted history, newest first. Only events the
// dashboard does not act on end up here; the acted-on ones are visible as
// state changes on the other pages.
func (m Model) renderEvents() string {
	var b strings.Builder
	if m.opts.History == nil {
		b.WriteString(m.styles.Muted.Render("event history disabled"))
		b.WriteString("\n")
		return m.styles.ActivePane.Render(b.String())
	}
	if len(m.events) == 0 {
		b.WriteString(m.styles.Muted.Render("no recorded events"))
		b.WriteString("\n")
	}

	visible := m.events
	height := m.height - 8
	if height < 4 {
		height = 4
	}
	start := m.eventCursor
	if start > len(visible)-height {
		start = len(visible) - height
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		ev := visible[i]
		line := fmt.Sprintf("%s  %-28s #%d",
			ev.Time.Format("15:04:05"), truncate(ev.Type, 28), ev.ID)
		if i == m.eventCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return m.styles.ActivePane.Render(b.String())
}
