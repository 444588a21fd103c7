package application_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
)

// --- Mock implementations ---

type mockRepositoryAPI struct {
	getRepository func(ctx context.Context, fullName string) (*model.RepositoryDetail, error)
	listIssues    func(ctx context.Context, fullName string) ([]model.Issue, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockRepositoryAPI) GetRepository(ctx context.Context, fullName string) (*model.RepositoryDetail, error) {
	m.record("repo:" + fullName)
	if m.getRepository == nil {
		return nil, errNotFound
	}
	return m.getRepository(ctx, fullName)
}

func (m *mockRepositoryAPI) ListIssues(ctx context.Context, fullName string) ([]model.Issue, error) {
	m.record("issues:" + fullName)
	if m.listIssues == nil {
		return nil, errNotFound
	}
	return m.listIssues(ctx, fullName)
}

func (m *mockRepositoryAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockRepositoryAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

type mockKeyValueStore struct {
	mu      sync.Mutex
	entries map[string]string
	sets    []string
	getErr  error
	setErr  error
}

func newMockKeyValueStore() *mockKeyValueStore {
	return &mockKeyValueStore{entries: map[string]string{}}
}

func (m *mockKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *mockKeyValueStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	m.sets = append(m.sets, value)
	return nil
}

func (m *mockKeyValueStore) Sets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.sets...)
}

// --- Fixtures ---

var errNotFound = errors.New("GET /repos: 404 Not Found")

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func detailFor(fullName string) *model.RepositoryDetail {
	return &model.RepositoryDetail{
		RepositoryRecord: model.RepositoryRecord{
			FullName:    fullName,
			Owner:       model.Owner{Login: "owner", AvatarURL: "https://avatars.example.com/owner"},
			Description: "description of " + fullName,
		},
		StargazersCount: 10,
		ForksCount:      2,
		OpenIssuesCount: 3,
	}
}

// resolvingAPI resolves every identifier in known and fails everything else.
func resolvingAPI(known ...string) *mockRepositoryAPI {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	return &mockRepositoryAPI{
		getRepository: func(_ context.Context, fullName string) (*model.RepositoryDetail, error) {
			if !set[fullName] {
				return nil, errNotFound
			}
			return detailFor(fullName), nil
		},
	}
}

func issuesN(n int) []model.Issue {
	issues := make([]model.Issue, n)
	for i := range issues {
		issues[i] = model.Issue{
			ID:      int64(i + 1),
			Title:   "issue",
			HTMLURL: "https://github.com/o/r/issues/1",
			User:    model.IssueAuthor{Login: "someone"},
		}
	}
	return issues
}

func mustAdd(t *testing.T, list *application.RepositoryList, fullName string) model.RepositoryRecord {
	t.Helper()
	record, err := list.Add(context.Background(), fullName)
	require.NoError(t, err)
	return record
}
