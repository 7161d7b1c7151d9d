package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panegrid/internal/backend"
)

func waitForPoolEvent(p *backend.Pool) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-p.Events()
		if !ok {
			return poolDoneMsg{}
		}
		return poolEventMsg{event: evt}
	}
}

type poolEventMsg struct {
	event backend.Event
}

type poolDoneMsg struct{}

// handlePoolEventMsg applies a completion on the host goroutine. Ticks only
// cause a redraw so relative load times stay current.
func (m *Model) handlePoolEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(poolEventMsg)
	if !ok {
		return nil
	}
	res := m.dispatcher.Handle(eventMsg.event)
	if res.Failed && m.verbose {
		m.setInfo("a background load failed; see the log")
	}
	if m.pool != nil {
		return waitForPoolEvent(m.pool)
	}
	return nil
}

func (m *Model) handlePoolDoneMsg(tea.Msg) tea.Cmd {
	m.pool = nil
	return nil
}
