package quiz

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type scriptedProvider struct {
	answers  []string
	asked    []string
	reported []AnswerResult
}

func (p *scriptedProvider) Answer(_ context.Context, question Question) (string, error) {
	p.asked = append(p.asked, question.Text)
	if len(p.asked) > len(p.answers) {
		return "", errors.New("script exhausted")
	}
	return p.answers[len(p.asked)-1], nil
}

func (p *scriptedProvider) Report(result AnswerResult) {
	p.reported = append(p.reported, result)
}

func TestRunSingleCorrectAnswer(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"4"}}

	score, results, err := Run(context.Background(), []Question{{Text: "2+2?", Answer: "4"}}, provider)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if score != 1 {
		t.Fatalf("score = %d, want 1", score)
	}
	want := []AnswerResult{{Question: "2+2?", ExpectedAnswer: "4", GivenAnswer: "4", Correct: true}}
	if !reflect.DeepEqual(results, want) {
		t.Fatalf("results = %+v, want %+v", results, want)
	}
}

func TestRunRecordsIncorrectAnswersInOrder(t *testing.T) {
	questions := []Question{
		{Text: "Capital of France?", Answer: "Paris"},
		{Text: "2+2?", Answer: "4"},
		{Text: "Who wrote '1984'?", Answer: "George Orwell"},
	}
	provider := &scriptedProvider{answers: []string{" paris ", "5", "george orwell"}}

	score, results, err := Run(context.Background(), questions, provider)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if score != 2 {
		t.Fatalf("score = %d, want 2", score)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantCorrect := []bool{true, false, true}
	for idx, result := range results {
		if result.Question != questions[idx].Text {
			t.Fatalf("result %d question = %q, want %q", idx, result.Question, questions[idx].Text)
		}
		if result.Correct != wantCorrect[idx] {
			t.Fatalf("result %d correct = %v, want %v", idx, result.Correct, wantCorrect[idx])
		}
	}
	if results[0].GivenAnswer != " paris " {
		t.Fatalf("given answer should be recorded raw, got %q", results[0].GivenAnswer)
	}
	if !reflect.DeepEqual(provider.reported, results) {
		t.Fatalf("reported results = %+v, want %+v", provider.reported, results)
	}
}

func TestRunEmptyQuestions(t *testing.T) {
	called := false
	provider := AnswerProviderFunc(func(context.Context, Question) (string, error) {
		called = true
		return "", nil
	})

	score, results, err := Run(context.Background(), nil, provider)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if score != 0 || len(results) != 0 {
		t.Fatalf("Run(nil) = (%d, %+v), want (0, [])", score, results)
	}
	if called {
		t.Fatalf("provider should not be called for an empty quiz")
	}
}

func TestRunStopsOnProviderError(t *testing.T) {
	questions := []Question{
		{Text: "Q1", Answer: "a"},
		{Text: "Q2", Answer: "b"},
	}
	provider := &scriptedProvider{answers: []string{"a"}}

	score, results, err := Run(context.Background(), questions, provider)
	if err == nil {
		t.Fatalf("expected provider error")
	}
	if score != 1 || len(results) != 1 {
		t.Fatalf("partial run = (%d, %d results), want (1, 1)", score, len(results))
	}
}
