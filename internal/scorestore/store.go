package scorestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const DefaultLimit = 5

type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type Options struct {
	Limit  int
	Logger *zap.Logger
}

// Store keeps a ranked top-N list of scores in a JSON file.
//
// Policy: every Save appends, ranks descending by score and keeps the best
// Limit entries. Reads never fail: a missing or unreadable file is an empty
// history. The read and the rewrite are separate file operations with no lock,
// so two concurrent writers can lose an entry.
type Store struct {
	path   string
	limit  int
	logger *zap.Logger
}

type rankedFile struct {
	Scores []Entry `json:"scores"`
}

func New(path string, opts Options) *Store {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		limit:  opts.Limit,
		logger: opts.Logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

// LoadAll returns the recorded entries in file order. Both the ranked
// {"scores": [...]} shape and the bare {"high_score": N} shape are accepted.
func (s *Store) LoadAll() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("score file unreadable, treating as empty", zap.String("path", s.path), zap.Error(err))
		}
		return []Entry{}
	}

	entries, skipped, ok := parseEntries(data)
	if !ok {
		s.logger.Debug("score file malformed, treating as empty", zap.String("path", s.path))
		return []Entry{}
	}
	if skipped > 0 {
		// The next Save rewrites the file without them.
		s.logger.Debug("score entries without a numeric score skipped", zap.String("path", s.path), zap.Int("skipped", skipped))
	}
	return entries
}

func (s *Store) Best() int {
	best := 0
	for idx, entry := range s.LoadAll() {
		if idx == 0 || entry.Score > best {
			best = entry.Score
		}
	}
	return best
}

// Save records name and score, keeping the best Limit entries. Ties keep
// earlier entries ahead of the new one.
func (s *Store) Save(name string, score int) error {
	entries := append(s.LoadAll(), Entry{Name: name, Score: score})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	data, err := json.MarshalIndent(rankedFile{Scores: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create score directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}

	s.logger.Debug("score saved", zap.String("path", s.path), zap.String("name", name), zap.Int("score", score), zap.Int("entries", len(entries)))
	return nil
}
