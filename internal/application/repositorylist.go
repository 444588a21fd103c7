// Package application contains the dashboard and detail view use cases.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// Errors surfaced by RepositoryList. Both render as inline text on the dashboard.
// A missing repository and an unreachable API both surface as ErrLookupFailed.
var (
	// ErrEmptyIdentifier indicates the user submitted an empty "owner/name".
	ErrEmptyIdentifier = errors.New("empty repository identifier")

	// ErrLookupFailed indicates the repository could not be resolved for any reason.
	ErrLookupFailed = errors.New("repository lookup failed")
)

// ChangeFunc observes the tracked list. It receives a copy of the full list after
// every commit and runs while the list is locked, so it must not call back into
// the RepositoryList.
type ChangeFunc func(ctx context.Context, repos []model.RepositoryRecord)

// RepositoryList owns the tracked repositories shown on the dashboard along with
// the pending input text and the last error.
type RepositoryList struct {
	api    driven.RepositoryAPI
	logger *slog.Logger

	mu        sync.Mutex
	input     string
	err       error
	repos     []model.RepositoryRecord
	observers []ChangeFunc
}

// NewRepositoryList creates an empty list. Most callers want OpenRepositoryList,
// which also restores and persists the list.
func NewRepositoryList(api driven.RepositoryAPI, logger *slog.Logger) *RepositoryList {
	return &RepositoryList{
		api:    api,
		logger: logger,
		repos:  []model.RepositoryRecord{},
	}
}

// OpenRepositoryList restores the tracked list from store and mirrors every later
// change back into it. Restoring counts as a change, so the stored entry is
// rewritten once at startup.
func OpenRepositoryList(
	ctx context.Context,
	api driven.RepositoryAPI,
	store driven.KeyValueStore,
	logger *slog.Logger,
) *RepositoryList {
	persister := NewListPersister(store, logger)

	list := NewRepositoryList(api, logger)
	list.Subscribe(persister.Save)
	list.Restore(ctx, persister.Load(ctx))

	return list
}

// Subscribe registers fn to run after every change of the tracked list.
func (l *RepositoryList) Subscribe(fn ChangeFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Restore replaces the tracked list wholesale and notifies observers.
func (l *RepositoryList) Restore(ctx context.Context, repos []model.RepositoryRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.repos = append([]model.RepositoryRecord{}, repos...)
	l.notifyLocked(ctx)
}

// SetInput records the identifier currently typed by the user.
func (l *RepositoryList) SetInput(input string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.input = input
}

// Input returns the identifier currently typed by the user.
func (l *RepositoryList) Input() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.input
}

// Err returns the error of the last add attempt, or nil.
func (l *RepositoryList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Repositories returns a copy of the tracked list in insertion order.
func (l *RepositoryList) Repositories() []model.RepositoryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.RepositoryRecord{}, l.repos...)
}

// Submit adds the repository named by the current input.
func (l *RepositoryList) Submit(ctx context.Context) (model.RepositoryRecord, error) {
	return l.Add(ctx, l.Input())
}

// Add resolves input ("owner/name") through the API and appends the result to the
// tracked list, returning the appended record. An empty input fails with
// ErrEmptyIdentifier and leaves the input as-is; any lookup failure clears the
// input and fails with an error wrapping ErrLookupFailed. Duplicates are allowed.
func (l *RepositoryList) Add(ctx context.Context, input string) (model.RepositoryRecord, error) {
	if input == "" {
		l.mu.Lock()
		l.err = ErrEmptyIdentifier
		l.mu.Unlock()
		return model.RepositoryRecord{}, ErrEmptyIdentifier
	}

	// The lookup runs unlocked; concurrent adds append in resolution order.
	detail, err := l.api.GetRepository(ctx, input)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.input = ""

	if err != nil {
		l.logger.Warn("repository lookup failed", "identifier", input, "error", err)
		l.err = ErrLookupFailed
		return model.RepositoryRecord{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	record := detail.Record()
	l.err = nil
	l.repos = append(l.repos, record)
	l.logger.Info("repository added", "full_name", record.FullName, "tracked", len(l.repos))
	l.notifyLocked(ctx)

	return record, nil
}

func (l *RepositoryList) notifyLocked(ctx context.Context) {
	for _, fn := range l.observers {
		fn(ctx, append([]model.RepositoryRecord{}, l.repos...))
	}
}
