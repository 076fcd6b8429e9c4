package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handlePendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.snap.pendingEntries()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.pendingCursor = clampCursor(m.pendingCursor-1, len(entries))
	case key.Matches(msg, m.keys.Down):
		m.pendingCursor = clampCursor(m.pendingCursor+1, len(entries))
	case key.Matches(msg, m.keys.Accept), key.Matches(msg, m.keys.Enter):
		if len(entries) > 0 {
			m.popup = m.acceptPopup(entries[m.pendingCursor])
		}
	case key.Matches(msg, m.keys.Dismiss):
		if len(entries) > 0 {
			m.popup = m.dismissPopup(entries[m.pendingCursor])
		}
	}
	return m, nil
}

func (m Model) acceptPopup(entry pendingEntry) *popup {
	actions := m.opts.Actions
	if entry.device != nil {
		deviceID := entry.device.ID
		prompt := fmt.Sprintf("Add device %s to the configuration?", entry.device.DisplayName())
		return newConfirmPopup("Accept Device", prompt, func() error {
			return actions.AcceptDevice(deviceID)
		})
	}
	// Accepting a folder offer means creating the folder locally, shared
	// back with the offering device. The form comes prefilled from the offer.
	offer := *entry.offer
	return newFolderPopup(m.styles, offer.FolderID, offer.Label, []string{offer.DeviceID}, m.submitNewFolder)
}

func (m Model) dismissPopup(entry pendingEntry) *popup {
	actions := m.opts.Actions
	if entry.device != nil {
		deviceID := entry.device.ID
		prompt := fmt.Sprintf("Dismiss connection attempt from %s?", entry.device.DisplayName())
		return newConfirmPopup("Dismiss Device", prompt, func() error {
			return actions.DismissDevice(deviceID)
		})
	}
	offer := *entry.offer
	prompt := fmt.Sprintf("Dismiss folder %q offered by %s?", offer.Label, offer.DeviceID)
	return newConfirmPopup("Dismiss Folder", prompt, func() error {
		return actions.DismissFolder(offer.FolderID, offer.DeviceID)
	})
}

func (m Model) renderPending() string {
	entries := m.snap.pendingEntries()

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing pending"))
		b.WriteString("\n")
	}
	for i, entry := range entries {
		var line string
		if entry.device != nil {
			line = fmt.Sprintf("device  %-24s %s",
				truncate(entry.device.DisplayName(), 24), entry.device.Address)
		} else {
			label := entry.offer.Label
			if label == "" {
				label = entry.offer.FolderID
			}
			from := entry.offer.DeviceID
			if device, err := m.deviceByID(entry.offer.DeviceID); err == nil {
				from = device.DisplayName()
			}
			line = fmt.Sprintf("folder  %-24s from %s", truncate(label, 24), from)
		}
		if i == m.pendingCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Pending.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("[a] accept  [d] dismiss"))

	return m.styles.ActivePane.Render(b.String())
}
