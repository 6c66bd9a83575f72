// Package cli implements the vegorders command tree.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mos234/vegetable-orders/internal/app"
)

// session carries the loaded configuration between cobra hooks and commands.
type session struct {
	cfg    *app.Config
	logger *slog.Logger
}

// NewRootCommand assembles the vegorders command tree.
func NewRootCommand() *cobra.Command {
	s := &session{}
	var ephemeral bool
	root := &cobra.Command{
		Use:           "vegorders",
		Short:         "Vegetable orders management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if ephemeral {
				cfg.StoreDriver = "memory"
				cfg.BlobDriver = "memory"
			}
			s.cfg = cfg
			s.logger = app.NewLogger(cfg)
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep all data in memory for this run")
	root.AddCommand(
		newServeCommand(s),
		newWorkerCommand(s),
		newSuppliersCommand(s),
		newOrdersCommand(s),
		newReportCommand(s),
		newBackupCommand(s),
		newJobsCommand(s),
	)
	return root
}

// open builds the service container for one command run.
func (s *session) open(ctx context.Context) (*app.Container, error) {
	return app.Build(ctx, s.cfg, s.logger)
}
