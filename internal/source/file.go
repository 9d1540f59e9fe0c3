package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"trivia-quiz/internal/quiz"
)

// File reads a local question file. A ".csv" extension selects the CSV parser,
// anything else is read as a JSON array.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, opts Options) *File {
	opts = opts.withDefaults()
	return &File{path: path, logger: opts.Logger}
}

func (f *File) Fetch(_ context.Context) ([]quiz.Question, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, &quiz.LoadError{Source: f.path, Err: err}
	}
	defer fh.Close()

	f.logger.Info("reading questions", zap.String("path", f.path))

	if strings.EqualFold(filepath.Ext(f.path), ".csv") {
		return decodeCSV(f.path, fh)
	}
	return decodeJSON(f.path, fh)
}
