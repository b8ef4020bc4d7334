// Command airwatch-seed prepares a database for local work: schema, admin account and sample events
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"airwatch/internal/platform/config"
	"airwatch/internal/platform/logger"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCommand(config.New()).ExecuteContext(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("seed failed")
		stop()
		os.Exit(1)
	}
}

// rootCommand creates the root command and its subcommands
func rootCommand(cfg config.Conf) *cobra.Command {
	root := &cobra.Command{
		Use:           "airwatch-seed",
		Short:         "Seed an airwatch database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCommand(cfg),
		adminCommand(cfg),
		eventsCommand(cfg),
	)
	return root
}
