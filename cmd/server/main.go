package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/api"
	"github.com/hoanghai1803/contentformer/internal/config"
	"github.com/hoanghai1803/contentformer/internal/generation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	timeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second

	factory := ai.NewFactory(ai.Defaults{
		Provider:         cfg.AI.DefaultProvider,
		AnthropicAPIKey:  cfg.AI.AnthropicAPIKey,
		OpenAIAPIKey:     cfg.AI.OpenAIAPIKey,
		AnthropicModel:   cfg.AI.AnthropicModel,
		OpenAIModel:      cfg.AI.OpenAIModel,
		AnthropicBaseURL: cfg.AI.AnthropicBaseURL,
		OpenAIBaseURL:    cfg.AI.OpenAIBaseURL,
		Timeout:          timeout,
	})
	svc := generation.NewService(factory, logger)

	router := api.NewRouter(svc, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Generation calls can run for the full provider timeout.
		WriteTimeout: timeout + 10*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			"addr", srv.Addr,
			"default_provider", cfg.AI.DefaultProvider,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// newLogger builds the process logger from the log settings.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
