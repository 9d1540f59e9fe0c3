package opentdb

import (
	"context"
	"html"
	"math/rand"

	"trivia-quiz/internal/quiz"
)

// Source adapts the OpenTriviaDB API to the question source interface. Each
// Fetch performs one API call.
type Source struct {
	client *Client
	amount int
	rng    *rand.Rand
}

// NewSource fetches amount questions per call. rng orders multiple-choice
// options; nil uses the global source.
func NewSource(client *Client, amount int, rng *rand.Rand) *Source {
	if client == nil {
		client = NewClient(nil)
	}
	return &Source{client: client, amount: amount, rng: rng}
}

func (s *Source) Fetch(ctx context.Context) ([]quiz.Question, error) {
	raw, err := s.client.FetchQuestions(ctx, s.amount)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.client.baseURL, Err: err}
	}

	questions := BuildQuestions(raw, s.rng)
	for idx, question := range questions {
		if question.Text == "" {
			return nil, &quiz.SchemaError{Source: s.client.baseURL, Index: idx, Field: "question"}
		}
	}
	return questions, nil
}

func BuildQuestions(raw []RawQuestion, rng *rand.Rand) []quiz.Question {
	questions := make([]quiz.Question, 0, len(raw))
	for _, item := range raw {
		questions = append(questions, buildQuestion(item, rng))
	}
	return questions
}

// buildQuestion unescapes the HTML entities OpenTriviaDB sends. Multiple-choice
// items carry their shuffled options as display choices; the expected answer is
// always the correct answer text.
func buildQuestion(raw RawQuestion, rng *rand.Rand) quiz.Question {
	question := quiz.Question{
		Text:       html.UnescapeString(raw.Question),
		Answer:     html.UnescapeString(raw.CorrectAnswer),
		Category:   html.UnescapeString(raw.Category),
		Difficulty: raw.Difficulty,
	}
	if raw.Type != "multiple" || len(raw.IncorrectAnswers) == 0 {
		return question
	}

	choices := make([]string, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, html.UnescapeString(incorrect))
	}
	choices = append(choices, question.Answer)

	swap := func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	}
	if rng != nil {
		rng.Shuffle(len(choices), swap)
	} else {
		rand.Shuffle(len(choices), swap)
	}

	question.Choices = choices
	return question
}
