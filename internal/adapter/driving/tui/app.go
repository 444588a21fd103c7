// Package tui is the terminal front-end: a dashboard of tracked repositories and
// a paginated repository detail screen, switched by route.
package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/browser"

	"github.com/ericfisherdev/gitexplorer/internal/application"
)

// Model is the root bubbletea model. It owns both screens and forwards messages
// to the one the current route selects.
type Model struct {
	keys  KeyMap
	start Route
	route Route

	viewer     *application.DetailViewer
	dashboard  *dashboardScreen
	repository *repositoryScreen
	help       help.Model

	width  int
	height int
}

// New creates the root model. The app opens at start once Init runs.
func New(
	ctx context.Context,
	list *application.RepositoryList,
	viewer *application.DetailViewer,
	msgs application.Messages,
	start Route,
) *Model {
	keys := DefaultKeyMap()

	return &Model{
		keys:       keys,
		start:      start,
		route:      DashboardRoute(),
		viewer:     viewer,
		dashboard:  newDashboardScreen(ctx, list, msgs, keys),
		repository: newRepositoryScreen(ctx, viewer, msgs, keys),
		help:       help.New(),
	}
}

// Run starts the program on the alternate screen and blocks until it exits or
// ctx is canceled.
func Run(ctx context.Context, m *Model) error {
	// The browser launcher must not write over the alternate screen.
	browser.Stdout, browser.Stderr = io.Discard, io.Discard

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Route returns the route currently shown.
func (m *Model) Route() Route {
	return m.route
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.dashboard.Init()}
	if m.start != m.route {
		cmds = append(cmds, navigateTo(m.start))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.typing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

	case MsgNavigate:
		return m, m.navigate(msg.Route)

	case MsgRepositoryAdded:
		return m, m.dashboard.Update(msg)

	case MsgRepositoryLoaded, MsgIssuesLoaded, MsgIssueOpened:
		return m, m.repository.Update(msg)
	}

	if m.route.Screen == ScreenRepository {
		return m, m.repository.Update(msg)
	}
	return m, m.dashboard.Update(msg)
}

func (m *Model) navigate(route Route) tea.Cmd {
	prev := m.route
	m.route = route

	if route.Screen == ScreenRepository {
		return m.repository.open(route.Identifier)
	}

	if prev.Screen == ScreenRepository {
		m.viewer.Reset()
	}
	return m.dashboard.Init()
}

// typing reports whether keystrokes belong to the dashboard input.
func (m *Model) typing() bool {
	return m.route.Screen == ScreenDashboard && m.dashboard.InputFocused()
}

func (m *Model) View() string {
	var (
		content string
		keys    help.KeyMap
	)

	if m.route.Screen == ScreenRepository {
		content = m.repository.View()
		keys = repositoryKeys{KeyMap: m.keys}
	} else {
		content = m.dashboard.View()
		keys = dashboardKeys{KeyMap: m.keys, inputFocused: m.dashboard.InputFocused()}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(content))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
		mutedStyle.Render(m.route.Path()) + "  " + m.help.View(keys),
	))

	return b.String()
}
