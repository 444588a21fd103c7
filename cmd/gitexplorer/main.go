package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/gitexplorer/internal/adapter/driving/tui"
	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "gitexplorer",
		Short: "Explore GitHub repositories and their issues",
		Long: `gitexplorer keeps a local list of GitHub repositories looked up by
"owner/name" and browses each repository's open issues five at a time.

Running without a subcommand starts the terminal UI. Use "serve" for the JSON API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), route)
		},
	}

	cmd.Flags().StringVar(&route, "route", "/", `start route: "/" or "/repository/{owner%2Fname}"`)
	cmd.AddCommand(newServeCommand())

	return cmd
}

func runTUI(parent context.Context, rawRoute string) error {
	start, err := tui.ParseRoute(rawRoute)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = newLogger(f, cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	viewer := application.NewDetailViewer(deps.api, logger)
	msgs := application.MessagesFor(cfg.Locale)

	logger.Info("tui starting", "route", start.Path(), "store", cfg.Store, "locale", cfg.Locale)
	return tui.Run(ctx, tui.New(ctx, deps.list, viewer, msgs, start))
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
