package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"trivia-quiz/internal/history"
	"trivia-quiz/internal/quiz"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("QUIZ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("QUIZ_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := store.pool.Exec(ctx, `TRUNCATE quiz_runs CASCADE`); err != nil {
		t.Fatalf("truncate runs: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewRejectsInvalidDSN(t *testing.T) {
	if _, err := New(context.Background(), "postgres://%zz"); err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
}

func TestStoreRecordAndReadRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	answers := []quiz.AnswerResult{
		{Question: "2+2?", ExpectedAnswer: "4", GivenAnswer: "4", Correct: true},
		{Question: "Sky?", ExpectedAnswer: "Blue", GivenAnswer: "red", Correct: false},
	}
	run := history.NewRun("Alice", 1, answers, time.Now().Truncate(time.Microsecond))
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	summaries, err := store.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != run.ID || !summaries[0].StartedAt.Equal(run.StartedAt) {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	got, err := store.RunAnswers(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunAnswers failed: %v", err)
	}
	if len(got) != 2 || got[0] != answers[0] || got[1] != answers[1] {
		t.Fatalf("answers = %+v, want %+v", got, answers)
	}
}

func TestStoreRunAnswersUnknownRun(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.RunAnswers(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("RunAnswers = %v, want ErrRunNotFound", err)
	}
}
