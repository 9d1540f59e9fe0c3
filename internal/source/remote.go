package source

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"trivia-quiz/internal/quiz"
)

// Remote performs one GET per Fetch and expects the same JSON array shape as
// question files. There is no retry.
type Remote struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewRemote(url string, opts Options) *Remote {
	opts = opts.withDefaults()
	return &Remote{url: url, client: opts.HTTPClient, logger: opts.Logger}
}

func (r *Remote) Fetch(ctx context.Context) ([]quiz.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, &quiz.LoadError{Source: r.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Info("fetching questions", zap.String("url", r.url))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &quiz.LoadError{Source: r.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &quiz.LoadError{Source: r.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return decodeJSON(r.url, resp.Body)
}
