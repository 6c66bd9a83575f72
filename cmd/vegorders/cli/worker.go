package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWorkerCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the background job worker and scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runWorker(cmd.Context())
		},
	}
}

// runWorker processes backup and report jobs until ctx is cancelled. When
// WORKER_METRICS_ADDR is set the job metrics are served there.
func (s *session) runWorker(ctx context.Context) error {
	c, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			s.logger.Warn("store close", slog.Any("error", err))
		}
	}()
	worker, err := c.NewWorker()
	if err != nil {
		return err
	}
	s.logger.Info("starting worker", slog.String("redis", s.cfg.RedisAddr), slog.Bool("scheduled", worker.Scheduled()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if s.cfg.WorkerMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", c.Metrics.Handler())
		server := &http.Server{Addr: s.cfg.WorkerMetricsAddr, Handler: mux}
		g.Go(func() error { return runServer(gctx, server, s.logger) })
	}
	return g.Wait()
}

// RunWorker loads configuration and runs the worker; cmd/worker uses it.
func RunWorker(ctx context.Context) error {
	root := NewRootCommand()
	root.SetArgs([]string{"worker"})
	return root.ExecuteContext(ctx)
}
