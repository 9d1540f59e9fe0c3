package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"trivia-quiz/internal/quiz"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrInvalidRun  = errors.New("invalid run")
)

// Run is one finished quiz pass together with its result log.
type Run struct {
	ID        string
	Player    string
	Score     int
	Total     int
	StartedAt time.Time
	Answers   []quiz.AnswerResult
}

type Summary struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	StartedAt time.Time `json:"started_at"`
}

type Repository interface {
	RecordRun(ctx context.Context, run Run) error
	RecentRuns(ctx context.Context, limit int) ([]Summary, error)
	RunAnswers(ctx context.Context, runID string) ([]quiz.AnswerResult, error)
	Close() error
}

func NewRun(player string, score int, results []quiz.AnswerResult, startedAt time.Time) Run {
	return Run{
		ID:        uuid.NewString(),
		Player:    strings.TrimSpace(player),
		Score:     score,
		Total:     len(results),
		StartedAt: startedAt.UTC(),
		Answers:   results,
	}
}

func (r Run) Validate() error {
	if r.ID == "" {
		return errors.Join(ErrInvalidRun, errors.New("run id is required"))
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return errors.Join(ErrInvalidRun, err)
	}
	if r.Score < 0 || r.Score > r.Total || r.Total != len(r.Answers) {
		return errors.Join(ErrInvalidRun, errors.New("score and total do not match the answers"))
	}
	return nil
}

// NormalizePlayer is the lookup key for a player name.
func NormalizePlayer(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
