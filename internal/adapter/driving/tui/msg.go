package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/gitexplorer/internal/application"
)

// Msg is the interface for all TUI messages produced by this package.
type Msg interface {
	sealed()
}

// MsgNavigate switches the visible screen.
type MsgNavigate struct {
	Route Route
}

func (MsgNavigate) sealed() {}

// MsgRepositoryAdded is sent when an add attempt from the dashboard resolves.
type MsgRepositoryAdded struct {
	Err error
}

func (MsgRepositoryAdded) sealed() {}

// MsgRepositoryLoaded is sent when the detail metadata fetch resolves.
// Applied is false for failed or stale fetches.
type MsgRepositoryLoaded struct {
	Ticket  application.Ticket
	Applied bool
}

func (MsgRepositoryLoaded) sealed() {}

// MsgIssuesLoaded is sent when the detail issue fetch resolves.
type MsgIssuesLoaded struct {
	Ticket  application.Ticket
	Applied bool
}

func (MsgIssuesLoaded) sealed() {}

// MsgIssueOpened is sent after trying to open an issue in the browser.
type MsgIssueOpened struct {
	URL string
	Err error
}

func (MsgIssueOpened) sealed() {}

func navigateTo(route Route) tea.Cmd {
	return func() tea.Msg { return MsgNavigate{Route: route} }
}
