package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/cli"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/logging"
	"trivia-quiz/internal/scorestore"
)

const defaultHistoryLimit = 10

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quiz-cli",
		Short:         "Command-line trivia quiz",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return cli.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, cli.Options{Logger: logger})
		},
	}

	persistent := root.PersistentFlags()
	persistent.String("config", "", "path to a YAML config file (default ./quiz.yaml or ./config/quiz.yaml)")
	persistent.String("highscore", "", "path to the high score file")
	persistent.String("history", "", "run history database: SQLite path or postgres:// URL")
	persistent.String("log-level", "", "log level (debug, info, warn, error)")

	flags := root.Flags()
	flags.StringP("file", "f", "", "path or http(s) URL of the questions file")
	flags.IntP("num", "n", 0, "number of questions to ask")
	flags.StringP("category", "c", "", "only ask questions from the given category")
	flags.StringP("difficulty", "d", "", "only ask questions with the given difficulty")
	flags.BoolP("shuffle", "s", false, "ask questions in random order")
	flags.String("name", "", "player name for the high score")
	flags.String("export", "", "export results to a .csv or .xlsx file")
	flags.Int("opentdb", 0, "fetch this many questions from OpenTriviaDB instead of --file")
	flags.Duration("timeout", 0, "timeout for remote question sources")

	root.AddCommand(newScoresCmd(), newHistoryCmd())
	return root
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the high score table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store := scorestore.New(cfg.Scores.Path, scorestore.Options{Limit: cfg.Scores.Limit, Logger: logger})
			cli.PrintScores(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [limit]",
		Short: "List recent quiz runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := defaultHistoryLimit
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid limit %q: must be an integer", args[0])
				}
				limit = parsed
			}

			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return cli.PrintHistory(cmd.Context(), cmd.OutOrStdout(), cfg.History.DSN, limit)
		},
	}
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the answer log of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return cli.PrintRun(cmd.Context(), cmd.OutOrStdout(), cfg.History.DSN, args[0])
		},
	}
}

func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
