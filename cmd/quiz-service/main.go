package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/httpapi"
	"trivia-quiz/internal/logging"
	"trivia-quiz/internal/quiz"
	"trivia-quiz/internal/scorestore"
	"trivia-quiz/internal/source"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quiz-service",
		Short:         "Serve questions and high scores over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("addr", "", "HTTP listen address (default :8080)")
	flags.StringP("file", "f", "", "questions file to serve")
	flags.String("highscore", "", "high score file to serve")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	sourceOpts := source.Options{Timeout: cfg.Questions.Timeout, Logger: logger}
	loader := func(ctx context.Context, filters quiz.Filters) ([]quiz.Question, error) {
		return source.Load(ctx, cfg.Questions.File, filters, sourceOpts)
	}
	scores := scorestore.New(cfg.Scores.Path, scorestore.Options{Limit: cfg.Scores.Limit, Logger: logger})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(httpapi.NewAPI(loader, scores, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("quiz-service listening", zap.String("addr", cfg.Server.Addr), zap.String("questions", cfg.Questions.File))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
