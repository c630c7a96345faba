package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/erazemk/bso/internal/amqp"
	"github.com/erazemk/bso/internal/api"
	"github.com/erazemk/bso/internal/report"
	"github.com/erazemk/bso/internal/services"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	database, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	var publisher services.EventPublisher
	if a.cfg.AMQPEnabled() {
		client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
		if err != nil {
			slog.Warn("AMQP unavailable, events will not be published", "error", err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	blanks := services.NewBlankService(database, publisher)
	reports := report.NewEngine(database)

	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(database, blanks, reports)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server started", "addr", a.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown on SIGINT/SIGTERM or a listener failure.
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}
