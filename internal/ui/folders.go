package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hertelukas/synctui/internal/reconcile"
	"github.com/hertelukas/synctui/internal/state"
)

func (m Model) handleFolderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	folders := m.visibleFolders()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.folderCursor = clampCursor(m.folderCursor-1, len(folders))
	case key.Matches(msg, m.keys.Down):
		m.folderCursor = clampCursor(m.folderCursor+1, len(folders))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		if len(folders) > 0 {
			m.focusDetail = true
		}
	case key.Matches(msg, m.keys.Left):
		m.focusDetail = false
	case key.Matches(msg, m.keys.NewFolder):
		m.popup = newFolderPopup(m.styles, "", "", nil, m.submitNewFolder)
	case key.Matches(msg, m.keys.Share):
		if len(folders) > 0 {
			m.popup = m.shareFolderPopup(folders[m.folderCursor])
		}
	}
	return m, nil
}

func (m Model) submitNewFolder(id, label, path string, shareWith []string) error {
	return m.opts.Actions.AddFolder(reconcile.NewFolder{
		ID:        id,
		Label:     label,
		Path:      path,
		ShareWith: shareWith,
	})
}

// shareFolderPopup lists devices the folder is not yet shared with.
func (m Model) shareFolderPopup(folder state.Folder) *popup {
	shared := make(map[string]bool, len(folder.SharedWith))
	for _, id := range folder.SharedWith {
		shared[id] = true
	}
	var items []pickItem
	for _, device := range m.snap.devices {
		if shared[device.ID] {
			continue
		}
		items = append(items, pickItem{id: device.ID, label: device.DisplayName()})
	}
	actions := m.opts.Actions
	folderID := folder.ID
	return newPickPopup("Share "+folder.DisplayLabel()+" with", items, func(deviceID string) error {
		return actions.ShareFolder(folderID, deviceID)
	})
}

func (m Model) renderFolders() string {
	folders := m.visibleFolders()

	var list strings.Builder
	if len(folders) == 0 {
		list.WriteString(m.styles.Muted.Render("no folders"))
		list.WriteString("\n")
	}
	for i, folder := range folders {
		line := fmt.Sprintf("%-24s %s", truncate(folder.DisplayLabel(), 24), renderBar(folder.Completion, 10))
		if i == m.folderCursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = m.styles.Text.Render("  " + line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(m.styles.Faint.Render("[n] new  [s] share  [/] filter"))

	listPane := m.styles.ActivePane
	detailPane := m.styles.Pane
	if m.focusDetail {
		listPane, detailPane = detailPane, listPane
	}

	var detail string
	if len(folders) > 0 {
		detail = m.renderFolderDetail(folders[m.folderCursor])
	} else {
		detail = m.styles.Faint.Render("nothing selected")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		listPane.Render(list.String()),
		detailPane.Render(detail),
	)
}

func (m Model) renderFolderDetail(folder state.Folder) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(folder.DisplayLabel()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("ID    "))
	b.WriteString(m.styles.Text.Render(folder.ID))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Path  "))
	b.WriteString(m.styles.Text.Render(folder.Path))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Sync  "))
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s %.0f%%", renderBar(folder.Completion, 16), folder.Completion)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render("Shared with"))
	b.WriteString("\n")
	sharing := m.snap.sharers[folder.ID]
	if len(sharing) == 0 {
		b.WriteString(m.styles.Faint.Render("  nobody"))
		b.WriteString("\n")
	}
	for _, share := range sharing {
		name := share.DeviceID
		if device, err := m.deviceByID(share.DeviceID); err == nil {
			name = device.DisplayName()
		}
		switch share.State {
		case state.SharingPending:
			label := share.RemoteLabel
			if label == "" {
				label = "pending"
			}
			b.WriteString(m.styles.Pending.Render(fmt.Sprintf("  ? %s (%s)", name, label)))
		default:
			b.WriteString(m.styles.Connected.Render("  ✓ " + name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) deviceByID(deviceID string) (state.Device, error) {
	for _, device := range m.snap.devices {
		if device.ID == deviceID {
			return device, nil
		}
	}
	return state.Device{}, state.ErrUnknownDevice
}

func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
