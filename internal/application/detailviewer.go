package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// Ticket identifies one navigation of the detail view. Fetch results carry the
// ticket they were issued for and are dropped once a newer navigation happened.
type Ticket struct {
	Identifier string
	Generation uint64
}

// DetailState is a point-in-time copy of the detail view.
type DetailState struct {
	Identifier string
	// Repository is nil until the metadata fetch resolves successfully.
	Repository *model.RepositoryDetail
	// IssuesLoaded reports whether the issue fetch has resolved successfully.
	IssuesLoaded bool
	Issues       []model.Issue
	Page         model.IssuePage
}

// DetailViewer holds the state of the repository detail view: metadata, the full
// issue collection and the current page over it.
type DetailViewer struct {
	api    driven.RepositoryAPI
	logger *slog.Logger

	mu           sync.Mutex
	ticket       Ticket
	repo         *model.RepositoryDetail
	issues       []model.Issue
	issuesLoaded bool
	page         int // 0 until the issue collection resolves
}

// NewDetailViewer creates a viewer with no identifier.
func NewDetailViewer(api driven.RepositoryAPI, logger *slog.Logger) *DetailViewer {
	return &DetailViewer{api: api, logger: logger}
}

// Navigate points the viewer at identifier. When the identifier changes the view
// is reset and a new ticket is returned with changed=true; otherwise the current
// ticket is returned and nothing happens.
func (v *DetailViewer) Navigate(identifier string) (ticket Ticket, changed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.ticket.Generation != 0 && v.ticket.Identifier == identifier {
		return v.ticket, false
	}

	v.ticket = Ticket{Identifier: identifier, Generation: v.ticket.Generation + 1}
	v.repo = nil
	v.issues = nil
	v.issuesLoaded = false
	v.page = 0

	return v.ticket, true
}

// Reset clears the view when the detail route is left, so the next Navigate
// refetches even for the same identifier. In-flight fetches become stale.
func (v *DetailViewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ticket = Ticket{Generation: v.ticket.Generation + 1}
	v.repo = nil
	v.issues = nil
	v.issuesLoaded = false
	v.page = 0
}

// FetchRepository loads metadata for the ticket's identifier and applies it if the
// ticket is still current. It reports whether the state changed.
func (v *DetailViewer) FetchRepository(ctx context.Context, t Ticket) bool {
	detail, err := v.api.GetRepository(ctx, t.Identifier)
	if err != nil {
		v.logger.Warn("repository metadata fetch failed", "identifier", t.Identifier, "error", err)
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if t != v.ticket {
		v.logger.Debug("dropping stale repository metadata", "identifier", t.Identifier, "generation", t.Generation)
		return false
	}

	v.repo = detail
	return true
}

// FetchIssues loads the issue collection for the ticket's identifier and applies it
// if the ticket is still current. Applying it moves the view to page 1.
func (v *DetailViewer) FetchIssues(ctx context.Context, t Ticket) bool {
	issues, err := v.api.ListIssues(ctx, t.Identifier)
	if err != nil {
		v.logger.Warn("issue fetch failed", "identifier", t.Identifier, "error", err)
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if t != v.ticket {
		v.logger.Debug("dropping stale issues", "identifier", t.Identifier, "generation", t.Generation)
		return false
	}

	v.issues = issues
	v.issuesLoaded = true
	v.page = 1
	return true
}

// Open navigates to identifier and runs both fetches concurrently, returning once
// both have resolved. Reopening the current identifier does nothing.
func (v *DetailViewer) Open(ctx context.Context, identifier string) {
	t, changed := v.Navigate(identifier)
	if !changed {
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		v.FetchRepository(ctx, t)
	}()
	go func() {
		defer wg.Done()
		v.FetchIssues(ctx, t)
	}()
	wg.Wait()
}

// NextPage advances one page when the current page has a successor.
func (v *DetailViewer) NextPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.pageLocked().NextEnabled {
		return false
	}
	v.page++
	return true
}

// PrevPage goes back one page when the current page is past the first.
func (v *DetailViewer) PrevPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.pageLocked().PrevEnabled {
		return false
	}
	v.page--
	return true
}

// Snapshot returns a copy of the current view state.
func (v *DetailViewer) Snapshot() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := DetailState{
		Identifier:   v.ticket.Identifier,
		IssuesLoaded: v.issuesLoaded,
		Issues:       append([]model.Issue{}, v.issues...),
		Page:         v.pageLocked(),
	}
	if v.repo != nil {
		repo := *v.repo
		state.Repository = &repo
	}

	return state
}

func (v *DetailViewer) pageLocked() model.IssuePage {
	return model.PaginateIssues(v.issues, v.page, model.IssuePageSize)
}
