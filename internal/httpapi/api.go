package httpapi

import (
	"context"

	"go.uber.org/zap"

	"trivia-quiz/internal/quiz"
	"trivia-quiz/internal/scorestore"
)

// QuestionLoader returns the filtered question list served by /questions.
type QuestionLoader func(ctx context.Context, filters quiz.Filters) ([]quiz.Question, error)

type API struct {
	load   QuestionLoader
	scores *scorestore.Store
	logger *zap.Logger
}

func NewAPI(load QuestionLoader, scores *scorestore.Store, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		load:   load,
		scores: scores,
		logger: logger,
	}
}
