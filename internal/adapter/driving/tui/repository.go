package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/browser"

	"github.com/ericfisherdev/gitexplorer/internal/application"
)

// repositoryScreen shows one repository's header and a page of its issues.
type repositoryScreen struct {
	ctx    context.Context
	viewer *application.DetailViewer
	msgs   application.Messages
	keys   KeyMap

	// openURL opens an issue in the user's browser.
	openURL func(url string) error

	ticket  application.Ticket
	cursor  int // index into the current page
	openErr error
}

func newRepositoryScreen(ctx context.Context, viewer *application.DetailViewer, msgs application.Messages, keys KeyMap) *repositoryScreen {
	return &repositoryScreen{
		ctx:     ctx,
		viewer:  viewer,
		msgs:    msgs,
		keys:    keys,
		openURL: browser.OpenURL,
	}
}

// open points the screen at identifier and starts both fetches. Reopening the
// identifier already shown keeps the loaded state and fetches nothing.
func (s *repositoryScreen) open(identifier string) tea.Cmd {
	ticket, changed := s.viewer.Navigate(identifier)
	if !changed {
		return nil
	}

	s.ticket = ticket
	s.cursor = 0
	s.openErr = nil

	ctx, viewer := s.ctx, s.viewer
	return tea.Batch(
		func() tea.Msg {
			return MsgRepositoryLoaded{Ticket: ticket, Applied: viewer.FetchRepository(ctx, ticket)}
		},
		func() tea.Msg {
			return MsgIssuesLoaded{Ticket: ticket, Applied: viewer.FetchIssues(ctx, ticket)}
		},
	)
}

// Cursor returns the index of the selected issue on the current page.
func (s *repositoryScreen) Cursor() int {
	return s.cursor
}

func (s *repositoryScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MsgIssuesLoaded:
		if msg.Applied && msg.Ticket == s.ticket {
			s.cursor = 0
		}
		return nil

	case MsgIssueOpened:
		s.openErr = msg.Err
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.PrevPage):
			if s.viewer.PrevPage() {
				s.cursor = 0
			}
		case key.Matches(msg, s.keys.NextPage):
			if s.viewer.NextPage() {
				s.cursor = 0
			}
		case key.Matches(msg, s.keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keys.Down):
			if s.cursor < len(s.viewer.Snapshot().Page.Issues)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keys.Open):
			return s.openSelected()
		case key.Matches(msg, s.keys.Back):
			return navigateTo(DashboardRoute())
		}
	}

	return nil
}

func (s *repositoryScreen) openSelected() tea.Cmd {
	issues := s.viewer.Snapshot().Page.Issues
	if s.cursor < 0 || s.cursor >= len(issues) {
		return nil
	}

	url, openURL := issues[s.cursor].HTMLURL, s.openURL
	return func() tea.Msg {
		return MsgIssueOpened{URL: url, Err: openURL(url)}
	}
}

func (s *repositoryScreen) View() string {
	state := s.viewer.Snapshot()

	var b strings.Builder

	b.WriteString(mutedStyle.Render("← " + s.msgs.Back))
	b.WriteString("\n\n")

	// No header at all until the metadata resolves.
	if repo := state.Repository; repo != nil {
		b.WriteString(titleStyle.Render(repo.FullName))
		b.WriteString("\n")
		if repo.Description != "" {
			b.WriteString(repo.Description)
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render(repo.Owner.Login + "  " + repo.Owner.AvatarURL))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			counter(repo.StargazersCount, s.msgs.Stars),
			counter(repo.ForksCount, s.msgs.Forks),
			counter(repo.OpenIssuesCount, s.msgs.OpenIssues),
		))
		b.WriteString("\n\n")
	}

	if !state.IssuesLoaded {
		return b.String()
	}

	if len(state.Page.Issues) == 0 {
		b.WriteString(mutedStyle.Render(s.msgs.NoIssues))
		b.WriteString("\n")
	}
	for i, issue := range state.Page.Issues {
		card := cardStyle
		if i == s.cursor {
			card = selectedCardStyle
		}
		body := fmt.Sprintf("%s\n%s\n%s",
			nameStyle.Render(issue.Title),
			issue.User.Login,
			mutedStyle.Render(issue.HTMLURL),
		)
		b.WriteString(card.Render(body))
		b.WriteString("\n")
	}

	if s.openErr != nil {
		b.WriteString(errorStyle.Render(s.msgs.OpenFailed))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pager(state.Page.PrevEnabled, state.Page.NextEnabled, state.Page.Page, s.msgs))

	return b.String()
}

func counter(value int, label string) string {
	return lipgloss.NewStyle().MarginRight(4).Render(
		counterValueStyle.Render(fmt.Sprintf("%d", value)) + "\n" + mutedStyle.Render(label),
	)
}

func pager(prevEnabled, nextEnabled bool, page int, msgs application.Messages) string {
	prev := pagerDisabledStyle.Render("‹ " + msgs.Previous)
	if prevEnabled {
		prev = pagerStyle.Render("‹ " + msgs.Previous)
	}
	next := pagerDisabledStyle.Render(msgs.Next + " ›")
	if nextEnabled {
		next = pagerStyle.Render(msgs.Next + " ›")
	}

	return fmt.Sprintf("%s   %s %d   %s", prev, msgs.Page, page, next)
}
