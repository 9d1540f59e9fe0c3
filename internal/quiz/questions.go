package quiz

import (
	"math/rand"
	"strings"
)

type Question struct {
	Text       string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Choices    []string `json:"choices,omitempty"`
}

type AnswerResult struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"answer"`
	GivenAnswer    string `json:"user_answer"`
	Correct        bool   `json:"correct"`
}

// Filters narrows a question list; empty fields match everything.
type Filters struct {
	Category   string
	Difficulty string
}

func (f Filters) Keep(question Question) bool {
	if f.Category != "" && question.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && question.Difficulty != f.Difficulty {
		return false
	}
	return true
}

func Filter(questions []Question, filters Filters) []Question {
	kept := make([]Question, 0, len(questions))
	for _, question := range questions {
		if filters.Keep(question) {
			kept = append(kept, question)
		}
	}
	return kept
}

// Select truncates to the first limit questions (limit <= 0 keeps all) and then
// optionally shuffles. The input slice is never modified.
func Select(questions []Question, limit int, shuffle bool, rng *rand.Rand) []Question {
	if limit > 0 && limit < len(questions) {
		questions = questions[:limit]
	}

	selected := make([]Question, len(questions))
	copy(selected, questions)

	if shuffle {
		swap := func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		}
		if rng != nil {
			rng.Shuffle(len(selected), swap)
		} else {
			rand.Shuffle(len(selected), swap)
		}
	}
	return selected
}

// Matches reports whether given is an acceptable response to expected. Only the
// response is trimmed; both sides are case folded and nothing else is normalized.
func Matches(expected, given string) bool {
	return strings.ToLower(strings.TrimSpace(given)) == strings.ToLower(expected)
}
