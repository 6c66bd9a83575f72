package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mos234/vegetable-orders/cmd/vegorders/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.RunWorker(ctx); err != nil {
		slog.Default().Error("worker run", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}
