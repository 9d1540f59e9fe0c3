package history

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"trivia-quiz/internal/quiz"
)

func TestNewRunAssignsIDAndTotals(t *testing.T) {
	results := []quiz.AnswerResult{
		{Question: "Q1", ExpectedAnswer: "A", GivenAnswer: "a", Correct: true},
		{Question: "Q2", ExpectedAnswer: "B", GivenAnswer: "c", Correct: false},
	}
	startedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	run := NewRun("  Alice ", 1, results, startedAt)
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", run.ID, err)
	}
	if run.Player != "Alice" || run.Score != 1 || run.Total != 2 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.StartedAt.Location() != time.UTC || !run.StartedAt.Equal(startedAt) {
		t.Fatalf("started_at not normalized to UTC: %v", run.StartedAt)
	}
	if err := run.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestRunValidate(t *testing.T) {
	valid := NewRun("p", 0, []quiz.AnswerResult{{Question: "Q"}}, time.Now())

	tests := []struct {
		name   string
		mutate func(*Run)
	}{
		{name: "missing id", mutate: func(r *Run) { r.ID = "" }},
		{name: "bad id", mutate: func(r *Run) { r.ID = "run-1" }},
		{name: "score above total", mutate: func(r *Run) { r.Score = 2 }},
		{name: "negative score", mutate: func(r *Run) { r.Score = -1 }},
		{name: "total mismatch", mutate: func(r *Run) { r.Total = 3 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run := valid
			tc.mutate(&run)
			if err := run.Validate(); !errors.Is(err, ErrInvalidRun) {
				t.Fatalf("Validate() = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestNormalizePlayer(t *testing.T) {
	if got := NormalizePlayer("  Bob "); got != "bob" {
		t.Fatalf("NormalizePlayer = %q, want %q", got, "bob")
	}
}
