package source

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"trivia-quiz/internal/quiz"
)

const (
	fieldQuestion   = "question"
	fieldAnswer     = "answer"
	fieldCategory   = "category"
	fieldDifficulty = "difficulty"
)

type rawItem struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   string  `json:"category"`
	Difficulty string  `json:"difficulty"`
}

func decodeJSON(location string, r io.Reader) ([]quiz.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &quiz.LoadError{Source: location, Err: fmt.Errorf("read JSON: %w", err)}
	}

	// Unmarshal rejects trailing data after the array.
	var items []rawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &quiz.LoadError{Source: location, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	if items == nil {
		return nil, &quiz.LoadError{Source: location, Err: errors.New("decode JSON: expected an array of questions")}
	}

	questions := make([]quiz.Question, 0, len(items))
	for idx, item := range items {
		if item.Question == nil || *item.Question == "" {
			return nil, &quiz.SchemaError{Source: location, Index: idx, Field: fieldQuestion}
		}
		if item.Answer == nil {
			return nil, &quiz.SchemaError{Source: location, Index: idx, Field: fieldAnswer}
		}
		questions = append(questions, quiz.Question{
			Text:       *item.Question,
			Answer:     *item.Answer,
			Category:   item.Category,
			Difficulty: item.Difficulty,
		})
	}
	return questions, nil
}

func decodeCSV(location string, r io.Reader) ([]quiz.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty CSV, header row is required")
		}
		return nil, &quiz.LoadError{Source: location, Err: fmt.Errorf("read CSV header: %w", err)}
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		if idx == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = idx
		}
	}
	for _, required := range []string{fieldQuestion, fieldAnswer} {
		if _, ok := columns[required]; !ok {
			return nil, &quiz.SchemaError{Source: location, Index: 0, Field: required}
		}
	}

	questions := make([]quiz.Question, 0)
	for idx := 0; ; idx++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &quiz.LoadError{Source: location, Err: fmt.Errorf("read CSV: %w", err)}
		}

		text, ok := cell(row, columns, fieldQuestion)
		if !ok || text == "" {
			return nil, &quiz.SchemaError{Source: location, Index: idx, Field: fieldQuestion}
		}
		answer, ok := cell(row, columns, fieldAnswer)
		if !ok {
			return nil, &quiz.SchemaError{Source: location, Index: idx, Field: fieldAnswer}
		}
		category, _ := cell(row, columns, fieldCategory)
		difficulty, _ := cell(row, columns, fieldDifficulty)

		questions = append(questions, quiz.Question{
			Text:       text,
			Answer:     answer,
			Category:   category,
			Difficulty: difficulty,
		})
	}
	return questions, nil
}

func cell(row []string, columns map[string]int, name string) (string, bool) {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}
