package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			player_norm TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			started_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_answers (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			expected_answer TEXT NOT NULL,
			given_answer TEXT NOT NULL,
			correct INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player_norm);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
