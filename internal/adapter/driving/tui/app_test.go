package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
)

// --- Mock implementations ---

type mockRepositoryAPI struct {
	repos  map[string]*model.RepositoryDetail
	issues map[string][]model.Issue
}

func (m *mockRepositoryAPI) GetRepository(_ context.Context, fullName string) (*model.RepositoryDetail, error) {
	detail, ok := m.repos[fullName]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return detail, nil
}

func (m *mockRepositoryAPI) ListIssues(_ context.Context, fullName string) ([]model.Issue, error) {
	issues, ok := m.issues[fullName]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return issues, nil
}

// --- Helpers ---

func newTestAPI() *mockRepositoryAPI {
	issues := make([]model.Issue, 12)
	for i := range issues {
		issues[i] = model.Issue{
			ID:      int64(i + 1),
			Title:   "Issue " + string(rune('A'+i)),
			HTMLURL: fmt.Sprintf("https://github.com/facebook/react/issues/%d", i+1),
			User:    model.IssueAuthor{Login: "gaearon"},
		}
	}

	return &mockRepositoryAPI{
		repos: map[string]*model.RepositoryDetail{
			"facebook/react": {
				RepositoryRecord: model.RepositoryRecord{
					FullName:    "facebook/react",
					Owner:       model.Owner{Login: "facebook", AvatarURL: "https://avatars.githubusercontent.com/u/69631"},
					Description: "The library for web and native user interfaces.",
				},
				StargazersCount: 1234,
				ForksCount:      56,
				OpenIssuesCount: 12,
			},
		},
		issues: map[string][]model.Issue{"facebook/react": issues},
	}
}

func newTestModel(t *testing.T, locale application.Locale, start Route) (*Model, *application.RepositoryList) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	api := newTestAPI()
	list := application.NewRepositoryList(api, logger)
	viewer := application.NewDetailViewer(api, logger)
	return New(context.Background(), list, viewer, application.MessagesFor(locale), start), list
}

// run executes cmd, flattening batches, and returns the package's own messages
// plus tea.QuitMsg. Timer-driven messages (cursor blink) are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	case Msg, tea.QuitMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

// send feeds msg to m and then every message its commands produce.
func send(m *Model, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, run(cmd)...)
	}
}

// sendKey feeds a key without running its commands; typing returns blink timers.
func sendKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeAndSubmit(m *Model, text string) {
	if text != "" {
		sendKey(m, runes(text))
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
}

// --- Dashboard ---

func TestDashboard_InitialRenderEmpty(t *testing.T) {
	m, list := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	assert.Empty(t, list.Repositories())
	assert.Contains(t, m.View(), "No repositories yet")
	assert.True(t, m.dashboard.InputFocused())
}

func TestDashboard_AddRepository(t *testing.T) {
	m, list := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	typeAndSubmit(m, "facebook/react")

	require.Len(t, list.Repositories(), 1)
	assert.Equal(t, "facebook/react", list.Repositories()[0].FullName)
	assert.Equal(t, "", m.dashboard.input.Value(), "input clears")
	assert.NoError(t, list.Err())

	view := m.View()
	assert.Contains(t, view, "facebook/react")
	assert.Contains(t, view, "The library for web and native user interfaces.")
	assert.Contains(t, view, "https://avatars.githubusercontent.com/u/69631")
}

func TestDashboard_TypingMirrorsIntoList(t *testing.T) {
	m, list := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	sendKey(m, runes("golang"))

	assert.Equal(t, "golang", list.Input())
}

func TestDashboard_EmptySubmitShowsError(t *testing.T) {
	m, list := newTestModel(t, application.LocalePortuguese, DashboardRoute())

	typeAndSubmit(m, "")

	assert.Empty(t, list.Repositories())
	assert.ErrorIs(t, list.Err(), application.ErrEmptyIdentifier)
	assert.Contains(t, m.View(), "Digite o autor/nome do repositório")
}

func TestDashboard_LookupFailureShowsError(t *testing.T) {
	m, list := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	typeAndSubmit(m, "nobody/nothing")

	assert.Empty(t, list.Repositories())
	assert.Equal(t, "", m.dashboard.input.Value(), "input clears on failure")
	assert.Contains(t, m.View(), "Repository lookup failed")

	typeAndSubmit(m, "facebook/react")
	assert.NotContains(t, m.View(), "Repository lookup failed", "a success clears the error")
}

func TestDashboard_QuitOnlyOutsideInput(t *testing.T) {
	m, _ := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	sendKey(m, runes("q"))
	assert.Equal(t, "q", m.dashboard.input.Value(), "q is typed into the input")

	sendKey(m, tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, m.dashboard.InputFocused())

	cmd := sendKey(m, runes("q"))
	assert.Contains(t, run(cmd), tea.Msg(tea.QuitMsg{}))
}

func TestDashboard_CtrlCAlwaysQuits(t *testing.T) {
	m, _ := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	cmd := sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Contains(t, run(cmd), tea.Msg(tea.QuitMsg{}))
}

// --- Repository screen ---

func openReact(t *testing.T, locale application.Locale) *Model {
	t.Helper()
	m, _ := newTestModel(t, locale, DashboardRoute())

	typeAndSubmit(m, "facebook/react")
	sendKey(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, RepositoryRoute("facebook/react"), m.Route())
	return m
}

func TestRepository_OpenFromDashboard(t *testing.T) {
	m := openReact(t, application.LocaleEnglish)

	assert.Equal(t, 0, m.repository.Cursor())

	view := m.View()
	assert.Contains(t, view, "facebook/react")
	assert.Contains(t, view, "1234")
	assert.Contains(t, view, "Open issues")
	assert.Contains(t, view, "Issue A")
	assert.Contains(t, view, "Issue E")
	assert.NotContains(t, view, "Issue F", "only five issues per page")
	assert.Contains(t, view, "gaearon")
	assert.Contains(t, view, "Page 1")
	assert.Contains(t, view, "/repository/facebook%2Freact")
}

func TestRepository_Pagination(t *testing.T) {
	m := openReact(t, application.LocaleEnglish)

	send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.viewer.Snapshot().Page.Page)
	assert.Contains(t, m.View(), "Issue F")

	send(m, runes("l"))
	page := m.viewer.Snapshot().Page
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Issues, 2)
	assert.False(t, page.NextEnabled)

	send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.viewer.Snapshot().Page.Page, "next is disabled on the last page")

	send(m, runes("h"))
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.viewer.Snapshot().Page.Page)
}

func TestRepository_BackResetsView(t *testing.T) {
	m := openReact(t, application.LocalePortuguese)
	assert.Contains(t, m.View(), "Voltar")
	assert.Contains(t, m.View(), "Issues abertas")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, DashboardRoute(), m.Route())
	assert.Nil(t, m.viewer.Snapshot().Repository)

	// Reopening fetches again.
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, m.viewer.Snapshot().Repository)
}

func TestRepository_StartRoute(t *testing.T) {
	m, list := newTestModel(t, application.LocaleEnglish, RepositoryRoute("facebook/react"))

	for _, msg := range run(m.Init()) {
		send(m, msg)
	}

	assert.Equal(t, RepositoryRoute("facebook/react"), m.Route())
	assert.NotNil(t, m.viewer.Snapshot().Repository)
	assert.Empty(t, list.Repositories(), "opening a repository does not track it")
}

func TestRepository_HeaderAbsentUntilMetadataLoads(t *testing.T) {
	m, _ := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	_, cmd := m.Update(MsgNavigate{Route: RepositoryRoute("facebook/react")})
	require.NotNil(t, cmd)

	view := m.View()
	assert.NotContains(t, view, "facebook/react", "no header before the metadata resolves")
	assert.NotContains(t, view, "Loading")
	assert.NotContains(t, view, "Open issues")
	assert.NotContains(t, view, "Page 1")

	for _, msg := range run(cmd) {
		send(m, msg)
	}

	view = m.View()
	assert.Contains(t, view, "facebook/react")
	assert.Contains(t, view, "Open issues")
}

func TestRepository_FailedFetchRendersNoHeader(t *testing.T) {
	m, _ := newTestModel(t, application.LocaleEnglish, DashboardRoute())

	send(m, MsgNavigate{Route: RepositoryRoute("nobody/nothing")})

	state := m.viewer.Snapshot()
	assert.Nil(t, state.Repository)
	assert.False(t, state.IssuesLoaded)

	view := m.View()
	assert.NotContains(t, view, "nobody/nothing")
	assert.NotContains(t, view, "Page", "no pager until issues load")
}

func TestRepository_StaleIssuesDoNotMoveCursor(t *testing.T) {
	m := openReact(t, application.LocaleEnglish)

	send(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.repository.Cursor())

	stale := application.Ticket{Identifier: "facebook/react", Generation: 0}
	send(m, MsgIssuesLoaded{Ticket: stale, Applied: true})

	assert.Equal(t, 1, m.repository.Cursor(), "results of an older navigation are ignored")
}

func TestRepository_OpenSelectedIssue(t *testing.T) {
	m := openReact(t, application.LocaleEnglish)

	var opened []string
	m.repository.openURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, runes("j"))
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"https://github.com/facebook/react/issues/3"}, opened)

	// Paging resets the selection to the first issue of the new page.
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.repository.Cursor())
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "https://github.com/facebook/react/issues/6", opened[len(opened)-1])

	// The cursor stops at the last issue of the page.
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	for range 5 {
		send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.repository.Cursor(), "page 3 holds two issues")

	assert.NotContains(t, m.View(), "Could not open the issue in a browser")
}

func TestRepository_OpenIssueFailureShown(t *testing.T) {
	m := openReact(t, application.LocalePortuguese)
	m.repository.openURL = func(string) error { return errors.New("no browser") }

	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, m.View(), "Não foi possível abrir a issue no navegador")
}
