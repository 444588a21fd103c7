package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// StorageKey is the store entry that holds the JSON-encoded tracked list.
const StorageKey = "@GitHubExplorer:repositories"

// ListPersister mirrors the tracked list into a KeyValueStore as a single JSON
// array under StorageKey. Every save overwrites the whole entry.
type ListPersister struct {
	store  driven.KeyValueStore
	logger *slog.Logger
}

// NewListPersister creates a ListPersister writing to store.
func NewListPersister(store driven.KeyValueStore, logger *slog.Logger) *ListPersister {
	return &ListPersister{store: store, logger: logger}
}

// Load returns the stored list, or an empty list when the entry is absent, empty
// or unreadable. Failures are logged, never returned.
func (p *ListPersister) Load(ctx context.Context) []model.RepositoryRecord {
	raw, ok, err := p.store.Get(ctx, StorageKey)
	if err != nil {
		p.logger.Warn("failed to read tracked repositories", "key", StorageKey, "error", err)
		return []model.RepositoryRecord{}
	}
	if !ok || raw == "" {
		return []model.RepositoryRecord{}
	}

	repos, err := DecodeRepositories(raw)
	if err != nil {
		p.logger.Warn("discarding unreadable tracked repositories", "key", StorageKey, "error", err)
		return []model.RepositoryRecord{}
	}

	p.logger.Debug("tracked repositories restored", "count", len(repos))
	return repos
}

// Save overwrites the stored entry with repos. It has the ChangeFunc signature so
// it can be subscribed directly. Write failures are logged and dropped.
func (p *ListPersister) Save(ctx context.Context, repos []model.RepositoryRecord) {
	raw, err := EncodeRepositories(repos)
	if err != nil {
		p.logger.Error("failed to encode tracked repositories", "error", err)
		return
	}

	if err := p.store.Set(ctx, StorageKey, raw); err != nil {
		p.logger.Error("failed to persist tracked repositories", "key", StorageKey, "error", err)
	}
}

// EncodeRepositories serializes repos in the persisted format. A nil slice
// encodes as an empty array.
func EncodeRepositories(repos []model.RepositoryRecord) (string, error) {
	if repos == nil {
		repos = []model.RepositoryRecord{}
	}

	data, err := json.Marshal(repos)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeRepositories parses the persisted format. A JSON null decodes as an empty list.
func DecodeRepositories(raw string) ([]model.RepositoryRecord, error) {
	var repos []model.RepositoryRecord
	if err := json.Unmarshal([]byte(raw), &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []model.RepositoryRecord{}
	}
	return repos, nil
}
