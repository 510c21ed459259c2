package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/site"
)

// Message types shared across the browser
type scrollFrameMsg time.Time

type submitResultMsg struct {
	flow    contact.Flow
	outcome contact.Outcome
}

type contentReloadedMsg struct {
	page *site.Page
}

type contentErrorMsg struct {
	err error
}

// ContentReloaded tells a running browser to display page
func ContentReloaded(page *site.Page) tea.Msg {
	return contentReloadedMsg{page: page}
}

// ContentError tells a running browser that reloading content failed
func ContentError(err error) tea.Msg {
	return contentErrorMsg{err: err}
}

// scrollFrame schedules the next smooth scrolling step
func scrollFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return scrollFrameMsg(t)
	})
}

// waitForOutcome turns a pending submission into a message
func waitForOutcome(flow contact.Flow, done <-chan contact.Outcome) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{flow: flow, outcome: <-done}
	}
}
