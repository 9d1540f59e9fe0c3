package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const envPrefix = "QUIZ"

// Config holds every tunable of the quiz binaries. Defaults live in Load only.
type Config struct {
	Questions Questions `mapstructure:"questions"`
	Scores    Scores    `mapstructure:"scores"`
	History   History   `mapstructure:"history"`
	Export    Export    `mapstructure:"export"`
	Player    Player    `mapstructure:"player"`
	Log       Log       `mapstructure:"log"`
	Server    Server    `mapstructure:"server"`
}

type Questions struct {
	File          string        `mapstructure:"file"`           // local path or http(s) URL
	Limit         int           `mapstructure:"limit"`          // ask only the first N, 0 means all
	Shuffle       bool          `mapstructure:"shuffle"`        // randomize order after truncation
	Category      string        `mapstructure:"category"`       // exact category filter
	Difficulty    string        `mapstructure:"difficulty"`     // exact difficulty filter
	Timeout       time.Duration `mapstructure:"timeout"`        // remote fetch timeout
	OpenTDBAmount int           `mapstructure:"opentdb_amount"` // fetch from OpenTriviaDB instead of File when > 0
}

type Scores struct {
	Path  string `mapstructure:"path"`
	Limit int    `mapstructure:"limit"`
}

type History struct {
	DSN string `mapstructure:"dsn"` // empty disables history; postgres:// URLs use Postgres, anything else is a SQLite path
}

type Export struct {
	Path string `mapstructure:"path"`
}

type Player struct {
	Name string `mapstructure:"name"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"file":       "questions.file",
	"num":        "questions.limit",
	"shuffle":    "questions.shuffle",
	"category":   "questions.category",
	"difficulty": "questions.difficulty",
	"timeout":    "questions.timeout",
	"opentdb":    "questions.opentdb_amount",
	"highscore":  "scores.path",
	"history":    "history.dsn",
	"export":     "export.path",
	"name":       "player.name",
	"log-level":  "log.level",
	"addr":       "server.addr",
}

// Load reads .env, an optional quiz.yaml, QUIZ_* environment variables and the
// given flags, in increasing order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("quiz")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("questions.file", "questions.json")
	v.SetDefault("questions.limit", 0)
	v.SetDefault("questions.shuffle", false)
	v.SetDefault("questions.category", "")
	v.SetDefault("questions.difficulty", "")
	v.SetDefault("questions.timeout", "10s")
	v.SetDefault("questions.opentdb_amount", 0)
	v.SetDefault("scores.path", "highscore.json")
	v.SetDefault("scores.limit", 5)
	v.SetDefault("history.dsn", "")
	v.SetDefault("export.path", "")
	v.SetDefault("player.name", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("server.addr", ":8080")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if configFlag := flags.Lookup("config"); configFlag != nil && configFlag.Value.String() != "" {
			v.SetConfigFile(configFlag.Value.String())
		}
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var problems []string
	if c.Questions.Limit < 0 {
		problems = append(problems, "questions.limit must not be negative")
	}
	if c.Questions.OpenTDBAmount < 0 {
		problems = append(problems, "questions.opentdb_amount must not be negative")
	}
	if c.Questions.Timeout <= 0 {
		problems = append(problems, "questions.timeout must be positive")
	}
	if c.Scores.Limit <= 0 {
		problems = append(problems, "scores.limit must be positive")
	}
	if strings.TrimSpace(c.Scores.Path) == "" {
		problems = append(problems, "scores.path is required")
	}
	if c.Questions.OpenTDBAmount == 0 && strings.TrimSpace(c.Questions.File) == "" {
		problems = append(problems, "questions.file is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
