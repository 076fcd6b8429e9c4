package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hertelukas/synctui/internal/reconcile"
)

// notificationMsg wraps a reconciliation notification for Bubble Tea.
type notificationMsg reconcile.Notification

// notificationsClosedMsg signals that the notification channel was closed
// and no further updates will arrive.
type notificationsClosedMsg struct{}

// tickMsg drives the periodic fallback refresh.
type tickMsg time.Time

const refreshInterval = 2 * time.Second

// waitForNotification blocks on the shared notification channel and hands
// the next notification to Update. It is re-issued after every delivery.
func waitForNotification(ch chan reconcile.Notification) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-ch
		if !ok {
			return notificationsClosedMsg{}
		}
		return notificationMsg(note)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
