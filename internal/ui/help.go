package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m Model) renderHelp() string {
	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"Navigation", []key.Binding{
			m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right,
			m.keys.NextPage, m.keys.PrevPage, m.keys.Escape,
		}},
		{"Folders", []key.Binding{
			m.keys.NewFolder, m.keys.Share, m.keys.Filter,
		}},
		{"Pending", []key.Binding{
			m.keys.Accept, m.keys.Dismiss,
		}},
		{"General", []key.Binding{
			m.keys.Reload, m.keys.Help, m.keys.Quit,
		}},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(m.styles.Accent.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.keys {
			help := binding.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(padRight(help.Key, 8)))
			b.WriteString(m.styles.Muted.Render(help.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Faint.Render("press any key to close"))
	return m.styles.Popup.Render(b.String())
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
