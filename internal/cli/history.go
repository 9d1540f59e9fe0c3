package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"trivia-quiz/internal/history"
	"trivia-quiz/internal/history/postgres"
	"trivia-quiz/internal/history/sqlite"
	"trivia-quiz/internal/scorestore"
)

// OpenHistory picks the history backend from dsn: postgres:// and
// postgresql:// URLs go to PostgreSQL, anything else is a SQLite file path.
func OpenHistory(ctx context.Context, dsn string) (history.Repository, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return postgres.New(ctx, dsn)
	}
	return sqlite.NewSQLiteStore(ctx, dsn)
}

func PrintScores(out io.Writer, store *scorestore.Store) {
	entries := store.LoadAll()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No high scores yet.")
		return
	}

	fmt.Fprintln(out, "Rank  Score  Name")
	for idx, entry := range entries {
		name := entry.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "%4d  %5d  %s\n", idx+1, entry.Score, name)
	}
}

var errHistoryNotConfigured = errors.New("run history is not configured, set --history or QUIZ_HISTORY_DSN")

func openConfiguredHistory(ctx context.Context, dsn string) (history.Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errHistoryNotConfigured
	}

	repo, err := OpenHistory(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return repo, nil
}

func PrintHistory(ctx context.Context, out io.Writer, dsn string, limit int) error {
	repo, err := openConfiguredHistory(ctx, dsn)
	if err != nil {
		return err
	}
	defer repo.Close()

	runs, err := repo.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		player := run.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "%s  %s  %d/%d  %s\n", run.StartedAt.Local().Format(time.DateTime), run.ID, run.Score, run.Total, player)
	}
	return nil
}

// PrintRun prints the answer log of one recorded run.
func PrintRun(ctx context.Context, out io.Writer, dsn, runID string) error {
	repo, err := openConfiguredHistory(ctx, dsn)
	if err != nil {
		return err
	}
	defer repo.Close()

	answers, err := repo.RunAnswers(ctx, strings.TrimSpace(runID))
	if err != nil {
		return fmt.Errorf("show run %s: %w", runID, err)
	}
	if len(answers) == 0 {
		fmt.Fprintln(out, "Run has no answers.")
		return nil
	}

	for idx, answer := range answers {
		verdict := "incorrect"
		if answer.Correct {
			verdict = "correct"
		}
		fmt.Fprintf(out, "Q%d: %s\n", idx+1, answer.Question)
		fmt.Fprintf(out, "    answer %q, given %q, %s\n", answer.ExpectedAnswer, answer.GivenAnswer, verdict)
	}
	return nil
}
