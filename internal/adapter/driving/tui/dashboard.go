package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/gitexplorer/internal/application"
)

// dashboardScreen lists tracked repositories under an "owner/name" input.
type dashboardScreen struct {
	ctx  context.Context
	list *application.RepositoryList
	msgs application.Messages
	keys KeyMap

	input      textinput.Model
	cursor     int
	submitting bool
}

func newDashboardScreen(ctx context.Context, list *application.RepositoryList, msgs application.Messages, keys KeyMap) *dashboardScreen {
	ti := textinput.New()
	ti.Placeholder = msgs.Placeholder
	ti.CharLimit = 200
	ti.Width = 50
	ti.SetValue(list.Input())
	ti.Focus()

	return &dashboardScreen{
		ctx:   ctx,
		list:  list,
		msgs:  msgs,
		keys:  keys,
		input: ti,
	}
}

func (d *dashboardScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (d *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MsgRepositoryAdded:
		d.submitting = false
		d.input.SetValue(d.list.Input())
		if msg.Err == nil {
			d.cursor = len(d.list.Repositories()) - 1
		}
		return nil

	case tea.KeyMsg:
		// Ignore keys while an add is in flight so the input stays consistent.
		if d.submitting {
			return nil
		}

		if key.Matches(msg, d.keys.Focus) {
			return d.toggleFocus()
		}

		if d.input.Focused() {
			if key.Matches(msg, d.keys.Submit) {
				return d.submit()
			}
			break
		}

		repos := d.list.Repositories()
		switch {
		case key.Matches(msg, d.keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, d.keys.Down):
			if d.cursor < len(repos)-1 {
				d.cursor++
			}
		case key.Matches(msg, d.keys.Open):
			if d.cursor >= 0 && d.cursor < len(repos) {
				return navigateTo(RepositoryRoute(repos[d.cursor].FullName))
			}
		}
		return nil
	}

	var cmd tea.Cmd
	if d.input.Focused() {
		d.input, cmd = d.input.Update(msg)
		d.list.SetInput(d.input.Value())
	}
	return cmd
}

// InputFocused reports whether keystrokes go to the text input.
func (d *dashboardScreen) InputFocused() bool {
	return d.input.Focused()
}

func (d *dashboardScreen) toggleFocus() tea.Cmd {
	if d.input.Focused() {
		d.input.Blur()
		return nil
	}
	return d.input.Focus()
}

func (d *dashboardScreen) submit() tea.Cmd {
	d.list.SetInput(d.input.Value())
	d.submitting = true

	ctx, list := d.ctx, d.list
	return func() tea.Msg {
		_, err := list.Submit(ctx)
		return MsgRepositoryAdded{Err: err}
	}
}

func (d *dashboardScreen) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.msgs.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(d.msgs.Subtitle))
	b.WriteString("\n")

	err := d.list.Err()
	style := inputStyle
	switch {
	case err != nil:
		style = errorInputStyle
	case d.input.Focused():
		style = focusedInputStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		style.Render(d.input.View()),
		buttonStyle.Render(d.msgs.Search),
	))
	b.WriteString("\n")

	if text := application.ErrorMessage(err, d.msgs); text != "" {
		b.WriteString(errorStyle.Render(text))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	repos := d.list.Repositories()
	if len(repos) == 0 {
		b.WriteString(mutedStyle.Render(d.msgs.NoRepositories))
		return b.String()
	}

	for i, repo := range repos {
		card := cardStyle
		if i == d.cursor && !d.input.Focused() {
			card = selectedCardStyle
		}
		body := fmt.Sprintf("%s\n%s\n%s",
			nameStyle.Render(repo.FullName),
			repo.Description,
			mutedStyle.Render(repo.Owner.Login+"  "+repo.Owner.AvatarURL),
		)
		b.WriteString(card.Render(body))
		b.WriteString("\n")
	}

	return b.String()
}
