package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trivia-quiz/internal/history"
	"trivia-quiz/internal/quiz"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_runs (
		run_id UUID PRIMARY KEY,
		player TEXT NOT NULL,
		player_norm TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		started_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_run_answers (
		run_id UUID NOT NULL REFERENCES quiz_runs (run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		question TEXT NOT NULL,
		expected_answer TEXT NOT NULL,
		given_answer TEXT NOT NULL,
		correct BOOLEAN NOT NULL,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_runs_started_at ON quiz_runs (started_at DESC)`,
}

// Store persists quiz runs in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to dsn, verifies the connection and creates the schema if it
// does not exist yet.
func New(ctx context.Context, dsn string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate history schema: %w", err)
		}
	}
	return nil
}

// withinTx runs fn in a transaction that is committed only when fn succeeds.
func (s *Store) withinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RecordRun inserts the run and its answers atomically.
func (s *Store) RecordRun(ctx context.Context, run history.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	return s.withinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO quiz_runs (run_id, player, player_norm, score, total, started_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			run.ID,
			run.Player,
			history.NormalizePlayer(run.Player),
			run.Score,
			run.Total,
			run.StartedAt,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		batch := &pgx.Batch{}
		for position, answer := range run.Answers {
			batch.Queue(
				`INSERT INTO quiz_run_answers (run_id, position, question, expected_answer, given_answer, correct)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				run.ID,
				position,
				answer.Question,
				answer.ExpectedAnswer,
				answer.GivenAnswer,
				answer.Correct,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert run answers: %w", err)
		}
		return nil
	})
}

// RecentRuns returns the newest runs first; limit <= 0 returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]history.Summary, error) {
	query := `
		SELECT run_id::text, player, score, total, started_at
		FROM quiz_runs
		ORDER BY started_at DESC, run_id ASC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (history.Summary, error) {
		var summary history.Summary
		err := row.Scan(&summary.ID, &summary.Player, &summary.Score, &summary.Total, &summary.StartedAt)
		summary.StartedAt = summary.StartedAt.UTC()
		return summary, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return summaries, nil
}

// RunAnswers returns the result log of runID in question order.
func (s *Store) RunAnswers(ctx context.Context, runID string) ([]quiz.AnswerResult, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quiz_runs WHERE run_id::text = $1)`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup run: %w", err)
	}
	if !exists {
		return nil, history.ErrRunNotFound
	}

	rows, err := s.pool.Query(
		ctx,
		`SELECT question, expected_answer, given_answer, correct
		 FROM quiz_run_answers
		 WHERE run_id::text = $1
		 ORDER BY position ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run answers: %w", err)
	}

	answers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (quiz.AnswerResult, error) {
		var answer quiz.AnswerResult
		err := row.Scan(&answer.Question, &answer.ExpectedAnswer, &answer.GivenAnswer, &answer.Correct)
		return answer, err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scan run answers: %w", err)
	}
	return answers, nil
}

var _ history.Repository = (*Store)(nil)
