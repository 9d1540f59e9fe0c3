package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/export"
	"trivia-quiz/internal/history"
	"trivia-quiz/internal/opentdb"
	"trivia-quiz/internal/quiz"
	"trivia-quiz/internal/scorestore"
	"trivia-quiz/internal/source"
)

var ErrInputClosed = errors.New("input closed before the quiz finished")

// Options carries collaborators that tests replace; zero values are fine.
type Options struct {
	Logger     *zap.Logger
	HTTPClient *http.Client
	Rand       *rand.Rand
	Now        func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Run is one quiz pass: load, ask, persist. Only a question load failure, closed
// input or a failed export returns an error; score and history problems are
// logged and the run still succeeds.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, opts Options) error {
	opts = opts.withDefaults()
	logger := opts.Logger

	questions, err := loadQuestions(ctx, cfg, opts)
	if err != nil {
		return err
	}
	questions = quiz.Select(questions, cfg.Questions.Limit, cfg.Questions.Shuffle, opts.Rand)

	reader := bufio.NewReader(in)

	name := strings.TrimSpace(cfg.Player.Name)
	if name == "" {
		fmt.Fprint(out, "Your name: ")
		name, err = readLine(reader)
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
	}

	startedAt := opts.Now()
	provider := newConsoleProvider(reader, out, len(questions))
	score, results, err := quiz.Run(ctx, questions, provider)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "──── Quiz Complete ────")
	fmt.Fprintf(out, "You got %d/%d correct.\n", score, len(questions))

	scores := scorestore.New(cfg.Scores.Path, scorestore.Options{Limit: cfg.Scores.Limit, Logger: logger})
	if err := scores.Save(name, score); err != nil {
		logger.Warn("could not save high score", zap.String("path", cfg.Scores.Path), zap.Error(err))
	}
	fmt.Fprintf(out, "High Score: %d\n", scores.Best())

	if cfg.History.DSN != "" {
		recordHistory(ctx, cfg.History.DSN, history.NewRun(name, score, results, startedAt), logger)
	}

	if cfg.Export.Path != "" {
		if err := export.WriteFile(cfg.Export.Path, results); err != nil {
			return err
		}
		fmt.Fprintf(out, "Results exported to %s\n", cfg.Export.Path)
	}

	return nil
}

func loadQuestions(ctx context.Context, cfg *config.Config, opts Options) ([]quiz.Question, error) {
	filters := quiz.Filters{
		Category:   cfg.Questions.Category,
		Difficulty: cfg.Questions.Difficulty,
	}
	sourceOpts := source.Options{
		HTTPClient: opts.HTTPClient,
		Timeout:    cfg.Questions.Timeout,
		Logger:     opts.Logger,
	}

	if cfg.Questions.OpenTDBAmount > 0 {
		httpClient := opts.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Questions.Timeout}
		}
		src := opentdb.NewSource(opentdb.NewClient(httpClient), cfg.Questions.OpenTDBAmount, opts.Rand)
		return source.FetchFiltered(ctx, src, filters, opts.Logger)
	}

	return source.Load(ctx, cfg.Questions.File, filters, sourceOpts)
}

func recordHistory(ctx context.Context, dsn string, run history.Run, logger *zap.Logger) {
	repo, err := OpenHistory(ctx, dsn)
	if err != nil {
		logger.Warn("could not open run history", zap.Error(err))
		return
	}
	defer repo.Close()

	if err := repo.RecordRun(ctx, run); err != nil {
		logger.Warn("could not record run", zap.String("run_id", run.ID), zap.Error(err))
		return
	}
	logger.Info("run recorded", zap.String("run_id", run.ID), zap.Int("score", run.Score), zap.Int("total", run.Total))
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
