package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/diarystats/internal/core/config"
	"github.com/aevon-lab/diarystats/internal/diary"
	"github.com/aevon-lab/diarystats/internal/render"
	"github.com/aevon-lab/diarystats/internal/server"
	"github.com/aevon-lab/diarystats/internal/stats"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "diarystats",
		Short:        "diarystats - yearly statistics for a film diary",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")

	root.AddCommand(newStatsCmd(&configPath), newServeCmd(&configPath))
	return root
}

func newStatsCmd(configPath *string) *cobra.Command {
	var (
		year   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats <username|profile-url>",
		Short: "Collect one diary year and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			username, err := diary.ParseUsername(args[0])
			if err != nil {
				return err
			}
			renderer, err := render.For(format)
			if err != nil {
				return err
			}
			collector, err := newCollector(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := stats.NewService(collector, stats.Options{DefaultYear: cfg.Collection.TargetYear})
			report, err := svc.Summarize(ctx, username, year)
			if err != nil {
				return err
			}
			return renderer.Render(cmd.OutOrStdout(), *report)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Diary year to summarize (default collection.target_year)")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format: text, json or yaml")
	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the stats HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *corecfg.Config) error {
	// 1. Collector (HTTP fetcher, optional retry)
	collector, err := newCollector(cfg)
	if err != nil {
		return err
	}

	// 2. Stats service with the summary cache
	var cache *stats.SummaryCache
	if cfg.Cache.Enabled {
		cache = stats.NewSummaryCache(cfg.Cache.Capacity, cfg.Cache.TTLDuration())
	}
	svc := stats.NewService(collector, stats.Options{
		DefaultYear:    cfg.Collection.TargetYear,
		CollectTimeout: cfg.Source.CollectTimeoutDuration(),
		Cache:          cache,
	})

	// 3. HTTP server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode)
	svc.RegisterRoutes(srv.Engine)

	slog.Info("Stats API initialized",
		"base_url", cfg.Source.BaseURL,
		"target_year", cfg.Collection.TargetYear,
		"year_match", cfg.Collection.YearMatch,
		"cache_enabled", cfg.Cache.Enabled,
		"retry_attempts", cfg.Source.Retry.MaxAttempts,
	)

	// 4. Run until a signal arrives or the server fails.
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}

// loadConfig loads config and installs the default logger it describes.
func loadConfig(path string, logOut io.Writer) (*corecfg.Config, error) {
	cfg, err := corecfg.Load(path)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return nil, err
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	slog.Debug("Loaded config", "config", cfg)
	return cfg, nil
}

func newLogger(cfg corecfg.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func newCollector(cfg *corecfg.Config) (*diary.Collector, error) {
	var fetcher diary.Fetcher = diary.NewHTTPFetcher(
		cfg.Source.RequestTimeoutDuration(),
		cfg.Source.UserAgent,
		cfg.Source.MaxBodyBytes(),
	)
	if cfg.Source.Retry.MaxAttempts > 1 {
		fetcher = diary.NewRetryFetcher(fetcher, diary.RetryOptions{
			MaxAttempts:     cfg.Source.Retry.MaxAttempts,
			InitialInterval: cfg.Source.Retry.InitialIntervalDuration(),
			MaxInterval:     cfg.Source.Retry.MaxIntervalDuration(),
		})
	}

	filter, err := diary.FilterFor(cfg.Collection.YearMatch)
	if err != nil {
		return nil, err
	}

	return diary.NewCollector(fetcher, diary.Options{
		BaseURL:  cfg.Source.BaseURL,
		Filter:   filter,
		MaxPages: cfg.Source.MaxPages,
	}), nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
