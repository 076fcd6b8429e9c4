package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hertelukas/synctui/internal/state"
)

func (m Model) handleDeviceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	devices := m.visibleDevices()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.deviceCursor = clampCursor(m.deviceCursor-1, len(devices))
	case key.Matches(msg, m.keys.Down):
		m.deviceCursor = clampCursor(m.deviceCursor+1, len(devices))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		if len(devices) > 0 {
			m.focusDetail = true
		}
	case key.Matches(msg, m.keys.Left):
		m.focusDetail = false
	}
	return m, nil
}

func (m Model) renderDevices() string {
	devices := m.visibleDevices()

	var list strings.Builder
	if len(devices) == 0 {
		list.WriteString(m.styles.Muted.Render("no devices"))
		list.WriteString("\n")
	}
	for i, device := range devices {
		name := fmt.Sprintf("%-24s", truncate(device.DisplayName(), 24))
		var line string
		if i == m.deviceCursor {
			line = m.styles.Selected.Render("> "+name) + " " + m.renderDeviceStatus(device)
		} else {
			line = m.styles.Text.Render("  "+name) + " " + m.renderDeviceStatus(device)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(m.styles.Faint.Render("[/] filter"))

	listPane := m.styles.ActivePane
	detailPane := m.styles.Pane
	if m.focusDetail {
		listPane, detailPane = detailPane, listPane
	}

	var detail string
	if len(devices) > 0 {
		detail = m.renderDeviceDetail(devices[m.deviceCursor])
	} else {
		detail = m.styles.Faint.Render("nothing selected")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		listPane.Render(list.String()),
		detailPane.Render(detail),
	)
}

func (m Model) renderDeviceStatus(device state.Device) string {
	switch device.Status() {
	case state.UpToDate:
		return m.styles.Connected.Render("up to date")
	case state.Syncing:
		return m.styles.Syncing.Render(fmt.Sprintf("syncing %.0f%%", device.Completion))
	default:
		return m.styles.Disconnected.Render("disconnected")
	}
}

func (m Model) renderDeviceDetail(device state.Device) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(device.DisplayName()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("ID      "))
	b.WriteString(m.styles.Text.Render(device.ID))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Status  "))
	b.WriteString(m.renderDeviceStatus(device))
	b.WriteString("\n")
	if len(device.Addresses) > 0 {
		b.WriteString(m.styles.Muted.Render("Address "))
		b.WriteString(m.styles.Text.Render(strings.Join(device.Addresses, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Muted.Render("Shared folders"))
	b.WriteString("\n")
	folders := m.snap.deviceFolders[device.ID]
	if len(folders) == 0 {
		b.WriteString(m.styles.Faint.Render("  none"))
		b.WriteString("\n")
	}
	for _, folder := range folders {
		b.WriteString(m.styles.Text.Render("  " + folder.DisplayLabel()))
		b.WriteString("\n")
	}
	return b.String()
}
