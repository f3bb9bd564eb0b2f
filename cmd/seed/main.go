// Package main implements the seed CLI that loads demo data into the
// configured store.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uptask/internal/config"
	"uptask/internal/db"
	"uptask/internal/logging"
	"uptask/internal/seed"
)

var (
	// sourceURL fetches the seed document over HTTP instead of reading a file.
	sourceURL string
	timeout   time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load demo users, projects and tasks",
	Long: `seed reads a JSON document with "usuarios" and "proyectos" and writes it
to the store selected by the usual configuration (STORE_DRIVER, MONGO_URI,
MYSQL_DSN, ...). Users are created confirmed. Existing users and projects
are left untouched, so the command can be run repeatedly.

Examples:
  # Seed from the bundled sample
  seed cmd/seed/seed.json

  # Seed from stdin
  cat demo.json | seed -

  # Seed from a URL
  seed --url https://example.com/uptask-demo.json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&sourceURL, "url", "", "fetch the seed document from this URL")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	src, err := openSource(ctx, args)
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := seed.Decode(src)
	if err != nil {
		return err
	}

	repos, closeStore, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	res, err := seed.New(repos, logger).Run(ctx, data)
	if err != nil {
		return err
	}
	logger.Info("seed completed",
		zap.Int("users_created", res.Users),
		zap.Int("projects_created", res.Projects),
		zap.Int("tasks_created", res.Tasks),
		zap.Int("skipped", res.Skipped),
	)
	return nil
}

func openSource(ctx context.Context, args []string) (io.ReadCloser, error) {
	if sourceURL != "" {
		return fetch(ctx, sourceURL)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a seed file or --url is required")
	}
	if args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	return f, nil
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed data: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch seed data: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
