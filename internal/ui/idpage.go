package ui

import (
	"strings"

	qrterminal "github.com/mdp/qrterminal/v3"
)

// ensureQR regenerates the cached QR rendering when the local ID changes.
func (m *Model) ensureQR() {
	if m.snap.localID == "" || m.snap.localID == m.qrID {
		return
	}
	var buf strings.Builder
	qrterminal.GenerateHalfBlock(m.snap.localID, qrterminal.L, &buf)
	m.qrID = m.snap.localID
	m.qrRender = buf.String()
}

// renderID shows the daemon's device ID as text and QR code, for pairing a
// phone without copying sixty characters by hand.
func (m Model) renderID() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("This Device"))
	b.WriteString("\n\n")
	if m.snap.localID == "" {
		b.WriteString(m.styles.Muted.Render("device ID not loaded yet"))
		b.WriteString("\n")
		return m.styles.ActivePane.Render(b.String())
	}

	b.WriteString(m.styles.Accent.Render(m.snap.localID))
	b.WriteString("\n\n")
	b.WriteString(m.qrRender)
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("scan from another device to add this one"))
	return m.styles.ActivePane.Render(b.String())
}
