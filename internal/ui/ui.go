package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hertelukas/synctui/internal/reconcile"
	"github.com/hertelukas/synctui/internal/state"
	"github.com/hertelukas/synctui/internal/syncthing"
)

// Actions is the write path the UI triggers. Implemented by
// *reconcile.Dispatcher.
type Actions interface {
	AcceptDevice(deviceID string) error
	DismissDevice(deviceID string) error
	AddFolder(folder reconcile.NewFolder) error
	ShareFolder(folderID, deviceID string) error
	DismissFolder(folderID, deviceID string) error
}

// History provides the persisted event history for the events page.
// Implemented by *eventlog.Log; may be nil.
type History interface {
	Recent(n int) ([]syncthing.Event, error)
}

// Options configure the UI runtime.
type Options struct {
	Store    *state.Store
	Queue    *reconcile.Queue
	Notifier *reconcile.Notifier
	Actions  Actions
	History  History
}

const eventHistoryLimit = 100

// Page identifies one top-level view.
type Page int

const (
	PageFolders Page = iota
	PageDevices
	PagePending
	PageEvents
	PageID
	pageCount
)

func (p Page) String() string {
	switch p {
	case PageFolders:
		return "Folders"
	case PageDevices:
		return "Devices"
	case PagePending:
		return "Pending"
	case PageEvents:
		return "Events"
	case PageID:
		return "ID"
	default:
		return fmt.Sprintf("page-%d", int(p))
	}
}

// Run blocks until ctx is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("ui requires a data store")
	}
	model := NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

// Model is the root Bubble Tea model.
type Model struct {
	opts   Options
	keys   KeyMap
	styles Styles

	page        Page
	focusDetail bool

	folderCursor  int
	deviceCursor  int
	pendingCursor int
	eventCursor   int

	snap   snapshot
	events []syncthing.Event

	filtering bool
	filter    textinput.Model
	query     string

	popup     *popup
	showHelp  bool
	statusMsg string

	// qrID caches the rendered QR code for the current local ID.
	qrID     string
	qrRender string

	updates chan reconcile.Notification

	width  int
	height int
	ready  bool
}

// NewModel builds the root model and subscribes to change notifications.
func NewModel(opts Options) Model {
	styles := DefaultStyles()

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.CharLimit = 64
	filter.Width = 24
	filter.Prompt = "/"
	filter.TextStyle = styles.Text
	filter.PlaceholderStyle = styles.Faint

	m := Model{
		opts:   opts,
		keys:   DefaultKeyMap(),
		styles: styles,
		filter: filter,
	}
	if opts.Notifier != nil {
		m.updates = opts.Notifier.Subscribe()
	}
	if opts.Store != nil {
		m.refresh()
	}
	return m
}

// Init starts the notification wait and the fallback tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.updates != nil {
		cmds = append(cmds, waitForNotification(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case notificationMsg:
		note := reconcile.Notification(msg)
		switch note.Kind {
		case reconcile.PendingDeviceSeen:
			name := note.DeviceName
			if name == "" {
				name = note.DeviceID
			}
			m.statusMsg = fmt.Sprintf("device %s wants to connect", name)
		case reconcile.PendingFolderSeen:
			label := note.FolderLabel
			if label == "" {
				label = note.FolderID
			}
			m.statusMsg = fmt.Sprintf("folder %q offered by %s", label, note.DeviceID)
		}
		m.refresh()
		return m, waitForNotification(m.updates)

	case notificationsClosedMsg:
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.popup != nil {
		return m.updatePopup(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from anywhere, popups included.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.popup != nil {
		return m.updatePopup(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.setPage((m.page + 1) % pageCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.setPage((m.page + pageCount - 1) % pageCount)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.requestReload()
		m.statusMsg = "reload requested"
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if m.page == PageFolders || m.page == PageDevices {
			m.filtering = true
			m.filter.SetValue(m.query)
			m.filter.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.focusDetail:
			m.focusDetail = false
		case m.query != "":
			m.query = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "1":
		m.setPage(PageFolders)
		return m, nil
	case "2":
		m.setPage(PageDevices)
		return m, nil
	case "3":
		m.setPage(PagePending)
		return m, nil
	case "4":
		m.setPage(PageEvents)
		return m, nil
	case "5":
		m.setPage(PageID)
		return m, nil
	}

	switch m.page {
	case PageFolders:
		return m.handleFolderKey(msg)
	case PageDevices:
		return m.handleDeviceKey(msg)
	case PagePending:
		return m.handlePendingKey(msg)
	case PageEvents:
		return m.handleEventKey(msg)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = strings.TrimSpace(m.filter.Value())
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) updatePopup(msg tea.Msg) (tea.Model, tea.Cmd) {
	closed, cmd, err := m.popup.update(msg, m.keys)
	if err != nil {
		m.statusMsg = err.Error()
	}
	if closed {
		m.popup = nil
		m.refresh()
	}
	return m, cmd
}

func (m *Model) setPage(page Page) {
	if m.page != page {
		m.page = page
		m.focusDetail = false
		m.query = ""
		m.filtering = false
	}
}

// requestReload enqueues a full refresh of everything the dashboard shows.
func (m *Model) requestReload() {
	if m.opts.Queue == nil {
		return
	}
	m.opts.Queue.Enqueue(reconcile.Job{Kind: reconcile.KindConfiguration})
	m.opts.Queue.Enqueue(reconcile.Job{Kind: reconcile.KindPendingDevices})
	m.opts.Queue.Enqueue(reconcile.Job{Kind: reconcile.KindPendingFolders})
	m.opts.Queue.Enqueue(reconcile.Job{Kind: reconcile.KindConnections})
}

func (m *Model) refresh() {
	m.snap = takeSnapshot(m.opts.Store)
	if m.opts.History != nil {
		if events, err := m.opts.History.Recent(eventHistoryLimit); err == nil {
			m.events = events
		}
	}
	m.folderCursor = clampCursor(m.folderCursor, len(m.visibleFolders()))
	m.deviceCursor = clampCursor(m.deviceCursor, len(m.visibleDevices()))
	m.pendingCursor = clampCursor(m.pendingCursor, len(m.snap.pendingEntries()))
	m.eventCursor = clampCursor(m.eventCursor, len(m.events))
	m.ensureQR()
}

func (m *Model) visibleFolders() []state.Folder {
	if m.page != PageFolders {
		return m.snap.folders
	}
	return filterFolders(m.snap.folders, m.query)
}

func (m *Model) visibleDevices() []state.Device {
	if m.page != PageDevices {
		return m.snap.devices
	}
	return filterDevices(m.snap.devices, m.query)
}

// View renders the full frame.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.snap.err != nil {
		return m.renderError()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.page {
	case PageFolders:
		b.WriteString(m.renderFolders())
	case PageDevices:
		b.WriteString(m.renderDevices())
	case PagePending:
		b.WriteString(m.renderPending())
	case PageEvents:
		b.WriteString(m.renderEvents())
	case PageID:
		b.WriteString(m.renderID())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	frame := b.String()
	if m.popup != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.popup.view(m.styles))
	}
	return frame
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, int(pageCount))
	for page := PageFolders; page < pageCount; page++ {
		label := fmt.Sprintf("%d %s", int(page)+1, page)
		if page == PagePending {
			if n := len(m.snap.pendingEntries()); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		style := m.styles.Tab
		if page == m.page {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderError takes over the whole frame while the error slot is set. The
// pages come back once a reconciliation round succeeds and clears the slot.
func (m Model) renderError() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Error.Render("✗ "+m.snap.err.Error()),
		"",
		m.styles.Faint.Render("[r] reload  [q] quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// renderFooter shows exactly one line: the filter prompt while filtering,
// then transient status, then key hints.
func (m Model) renderFooter() string {
	if m.filtering {
		return m.filter.View()
	}
	if m.statusMsg != "" {
		return m.styles.Status.Render(m.statusMsg)
	}
	return m.styles.Faint.Render("[tab] switch page  [r] reload  [?] help  [q] quit")
}
