package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ytinsight/internal/app"
	"ytinsight/internal/jobs"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := loadConfig(cmd)
			store, err := app.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return store.Close()
		},
	}
}

func newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired keyword analyses once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := loadConfig(cmd)
			store, err := app.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			n := jobs.NewCacheJanitor(store, cfg.CachePurgeInterval, log).PurgeOnce(cmd.Context())
			log.Debug("purge finished", slog.Int64("count", n))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired analyses\n", n)
			return err
		},
	}
}
