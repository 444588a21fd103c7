package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	boltadapter "github.com/ericfisherdev/gitexplorer/internal/adapter/driven/bolt"
	githubadapter "github.com/ericfisherdev/gitexplorer/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/gitexplorer/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/config"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// dependencies are the adapters and components shared by both front-ends.
type dependencies struct {
	api    *githubadapter.Client
	list   *application.RepositoryList
	closer io.Closer
	logger *slog.Logger
}

// Close releases the store.
func (d *dependencies) Close() {
	if err := d.closer.Close(); err != nil {
		d.logger.Error("error closing store", "error", err)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// wire opens the configured store, creates the GitHub client and restores the
// tracked list from the store.
func wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	store, closer, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	api, err := githubadapter.NewClient(cfg.APIBaseURL, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	list := application.OpenRepositoryList(ctx, api, store, logger)
	logger.Info("tracked repositories loaded", "count", len(list.Repositories()))

	return &dependencies{
		api:    api,
		list:   list,
		closer: closer,
		logger: logger,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.KeyValueStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreBolt:
		store, err := boltadapter.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("bolt store opened", "path", cfg.DBPath)
		return store, store, nil

	case config.StoreSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database opened", "path", db.Path())

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("migrations complete", "version", version)

		return sqliteadapter.NewKVRepo(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
