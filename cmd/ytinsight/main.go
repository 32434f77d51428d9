package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ytinsight/internal/app"
	"ytinsight/internal/config"
	"ytinsight/internal/logging"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ytinsight",
		Short: "YouTube keyword and comment analysis",
		Long: `ytinsight runs the same analyses as the HTTP server from the command line.

Examples:
  ytinsight keyword "파이썬 강의"
  ytinsight comments https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytinsight ranking "golang" --max 20 --top 5
  ytinsight purge`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newKeywordCmd(),
		newCommentsCmd(),
		newRankingCmd(),
		newQuotaCmd(),
		newMigrateCmd(),
		newPurgeCmd(),
	)
	return root
}

// loadConfig reads the environment and builds a logger that writes to stderr
// so stdout stays machine readable.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger) {
	cfg := config.Load()
	log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return cfg, log
}

// withApp runs fn against a fully wired application.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, log := loadConfig(cmd)
	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
