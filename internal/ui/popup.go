package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type popupKind int

const (
	popupConfirm popupKind = iota
	popupNewFolder
	popupPick
)

// popup is the single modal layer. Only one popup is open at a time; all
// keys go to it until it closes.
type popup struct {
	kind   popupKind
	title  string
	prompt string

	// confirm runs when a confirm popup is accepted.
	confirm func() error

	// new-folder form state
	inputs    []textinput.Model
	focus     int
	shareWith []string
	submit    func(id, label, path string, shareWith []string) error

	// pick-list state
	items  []pickItem
	cursor int
	pick   func(id string) error
}

type pickItem struct {
	id    string
	label string
}

func newConfirmPopup(title, prompt string, confirm func() error) *popup {
	return &popup{
		kind:    popupConfirm,
		title:   title,
		prompt:  prompt,
		confirm: confirm,
	}
}

func newFolderPopup(styles Styles, id, label string, shareWith []string, submit func(id, label, path string, shareWith []string) error) *popup {
	makeInput := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = styles.Text
		ti.PlaceholderStyle = styles.Faint
		ti.SetValue(value)
		return ti
	}
	p := &popup{
		kind:  popupNewFolder,
		title: "New Folder",
		inputs: []textinput.Model{
			makeInput("folder id", id),
			makeInput("label (optional)", label),
			makeInput("path", ""),
		},
		shareWith: shareWith,
		submit:    submit,
	}
	p.inputs[0].Focus()
	return p
}

func newPickPopup(title string, items []pickItem, pick func(id string) error) *popup {
	return &popup{
		kind:  popupPick,
		title: title,
		items: items,
		pick:  pick,
	}
}

// update feeds one message to the popup. It reports whether the popup
// closed, and any error from the triggered action.
func (p *popup) update(msg tea.Msg, keys KeyMap) (closed bool, cmd tea.Cmd, err error) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == "esc" {
		return true, nil, nil
	}

	switch p.kind {
	case popupConfirm:
		if !isKey {
			return false, nil, nil
		}
		switch keyMsg.String() {
		case "y", "enter":
			return true, nil, p.confirm()
		case "n":
			return true, nil, nil
		}

	case popupNewFolder:
		if isKey {
			switch keyMsg.String() {
			case "tab", "down":
				p.moveFocus(1)
				return false, nil, nil
			case "shift+tab", "up":
				p.moveFocus(-1)
				return false, nil, nil
			case "enter":
				if p.focus < len(p.inputs)-1 {
					p.moveFocus(1)
					return false, nil, nil
				}
				id := strings.TrimSpace(p.inputs[0].Value())
				label := strings.TrimSpace(p.inputs[1].Value())
				path := strings.TrimSpace(p.inputs[2].Value())
				return true, nil, p.submit(id, label, path, p.shareWith)
			}
		}
		p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
		return false, cmd, nil

	case popupPick:
		if !isKey {
			return false, nil, nil
		}
		switch {
		case key.Matches(keyMsg, keys.Up):
			p.cursor = clampCursor(p.cursor-1, len(p.items))
		case key.Matches(keyMsg, keys.Down):
			p.cursor = clampCursor(p.cursor+1, len(p.items))
		case key.Matches(keyMsg, keys.Enter):
			if len(p.items) == 0 {
				return true, nil, nil
			}
			return true, nil, p.pick(p.items[p.cursor].id)
		}
	}
	return false, nil, nil
}

func (p *popup) moveFocus(delta int) {
	p.inputs[p.focus].Blur()
	p.focus = (p.focus + delta + len(p.inputs)) % len(p.inputs)
	p.inputs[p.focus].Focus()
}

func (p *popup) view(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(p.title))
	b.WriteString("\n\n")

	switch p.kind {
	case popupConfirm:
		b.WriteString(styles.Text.Render(p.prompt))
		b.WriteString("\n\n")
		b.WriteString(styles.Faint.Render("[y] confirm  [n/esc] cancel"))

	case popupNewFolder:
		labels := []string{"ID", "Label", "Path"}
		for i, input := range p.inputs {
			marker := "  "
			if i == p.focus {
				marker = styles.Accent.Render("> ")
			}
			b.WriteString(marker)
			b.WriteString(styles.Muted.Render(labels[i]))
			b.WriteString("\n  ")
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		if len(p.shareWith) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.Faint.Render("shared with " + strings.Join(p.shareWith, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.Faint.Render("[tab] next field  [enter] create  [esc] cancel"))

	case popupPick:
		if len(p.items) == 0 {
			b.WriteString(styles.Muted.Render("nothing to select"))
			b.WriteString("\n")
		}
		for i, item := range p.items {
			line := item.label
			if i == p.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.Faint.Render("[enter] select  [esc] cancel"))
	}

	return styles.Popup.Render(b.String())
}
