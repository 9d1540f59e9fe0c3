package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"trivia-quiz/internal/quiz"
)

const DefaultTimeout = 10 * time.Second

// Source produces the full, unfiltered question list of one location.
type Source interface {
	Fetch(ctx context.Context) ([]quiz.Question, error)
}

type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Open picks the variant for location: http(s) URLs are fetched remotely, any
// other "scheme://" is rejected, everything else is a local path.
func Open(location string, opts Options) (Source, error) {
	if !strings.Contains(location, "://") {
		return NewFile(location, opts), nil
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return nil, &quiz.LoadError{Source: location, Err: err}
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return NewRemote(location, opts), nil
	default:
		return nil, &quiz.LoadError{
			Source: location,
			Err:    fmt.Errorf("%w: scheme %q", quiz.ErrUnsupportedSource, parsed.Scheme),
		}
	}
}

func Load(ctx context.Context, location string, filters quiz.Filters, opts Options) ([]quiz.Question, error) {
	src, err := Open(location, opts)
	if err != nil {
		return nil, err
	}
	return FetchFiltered(ctx, src, filters, opts.Logger)
}

// FetchFiltered fetches from src and applies filters, keeping parse order.
func FetchFiltered(ctx context.Context, src Source, filters quiz.Filters, logger *zap.Logger) ([]quiz.Question, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	questions, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Apply(questions, filters)
	logger.Debug("questions loaded",
		zap.Int("parsed", len(questions)),
		zap.Int("kept", len(filtered)),
		zap.String("category", filters.Category),
		zap.String("difficulty", filters.Difficulty),
	)
	return filtered, nil
}

func Apply(questions []quiz.Question, filters quiz.Filters) []quiz.Question {
	return quiz.Filter(questions, filters)
}
