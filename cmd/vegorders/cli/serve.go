package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mos234/vegetable-orders/jobs"
)

func newServeCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.serve(cmd.Context())
		},
	}
}

func (s *session) serve(ctx context.Context) error {
	c, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			s.logger.Warn("store close", slog.Any("error", err))
		}
	}()

	var jobsHandler *jobs.Handler
	if s.cfg.JobsEnabled {
		client := jobs.NewClient(s.cfg.RedisOpts())
		inspector := asynq.NewInspector(s.cfg.RedisOpts())
		defer func() {
			if err := inspector.Close(); err != nil {
				s.logger.Warn("inspector close", slog.Any("error", err))
			}
			if err := client.Close(); err != nil {
				s.logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		jobsHandler = jobs.NewHandler(inspector, client, s.logger)
	}

	server := &http.Server{
		Addr:         s.cfg.AppAddr,
		Handler:      c.Router(jobsHandler),
		ReadTimeout:  s.cfg.AppReadTimeout,
		WriteTimeout: s.cfg.AppWriteTimeout,
	}
	return runServer(ctx, server, s.logger)
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.String("addr", server.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
