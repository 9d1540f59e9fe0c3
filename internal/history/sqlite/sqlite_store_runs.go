package sqlite

import (
	"context"
	"time"

	"trivia-quiz/internal/history"
	"trivia-quiz/internal/quiz"
)

// RecordRun stores the run row and every answer in one transaction, so a run
// is either fully recorded or absent.
func (s *SQLiteStore) RecordRun(ctx context.Context, run history.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, player, player_norm, score, total, started_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Player,
		history.NormalizePlayer(run.Player),
		run.Score,
		run.Total,
		run.StartedAt.UTC().UnixNano(),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO run_answers (run_id, position, question, expected_answer, given_answer, correct)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, answer := range run.Answers {
		correct := 0
		if answer.Correct {
			correct = 1
		}
		if _, err := stmt.ExecContext(ctx, run.ID, position, answer.Question, answer.ExpectedAnswer, answer.GivenAnswer, correct); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentRuns returns the newest runs first; limit <= 0 returns every run.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]history.Summary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, player, score, total, started_at_unix
		 FROM runs
		 ORDER BY started_at_unix DESC, run_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]history.Summary, 0)
	for rows.Next() {
		var (
			summary        history.Summary
			startedAtNanos int64
		)
		if err := rows.Scan(&summary.ID, &summary.Player, &summary.Score, &summary.Total, &startedAtNanos); err != nil {
			return nil, err
		}
		summary.StartedAt = time.Unix(0, startedAtNanos).UTC()
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func (s *SQLiteStore) RunAnswers(ctx context.Context, runID string) ([]quiz.AnswerResult, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, history.ErrRunNotFound
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question, expected_answer, given_answer, correct
		 FROM run_answers
		 WHERE run_id = ?
		 ORDER BY position ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]quiz.AnswerResult, 0)
	for rows.Next() {
		var (
			answer  quiz.AnswerResult
			correct int
		)
		if err := rows.Scan(&answer.Question, &answer.ExpectedAnswer, &answer.GivenAnswer, &correct); err != nil {
			return nil, err
		}
		answer.Correct = correct == 1
		answers = append(answers, answer)
	}

	return answers, rows.Err()
}

var _ history.Repository = (*SQLiteStore)(nil)
