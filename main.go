package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/statement-insights/cmd/batch"
	"fjacquet/statement-insights/cmd/budget"
	"fjacquet/statement-insights/cmd/extract"
	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/cmd/summary"
	"fjacquet/statement-insights/cmd/transactions"
	"fjacquet/statement-insights/internal/config"
	"fjacquet/statement-insights/internal/logging"
)

func init() {
	// .env must be loaded before the root logger level is read
	envFile, err := config.LoadEnv()
	root.Log = logging.NewLogrusAdapter(config.StartupLogLevel(), "text")
	if err != nil {
		root.Log.WithError(err).Warn("Failed to load .env file",
			logging.Field{Key: logging.FieldFile, Value: envFile})
	}

	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
