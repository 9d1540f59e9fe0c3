package opentdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"reflect"
	"testing"

	"trivia-quiz/internal/quiz"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(&http.Client{Transport: rt})
}

func jsonResponse(t *testing.T, payload any) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(encoded)),
		Header:     make(http.Header),
	}
}

func TestFetchQuestionsUsesDefaultAmountWhenNonPositive(t *testing.T) {
	var seenAmount string

	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenAmount = r.URL.Query().Get("amount")
		resp := http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte(`{"response_code":0,"results":[]}`))),
			Header:     make(http.Header),
		}
		return &resp, nil
	}))

	questions, err := client.FetchQuestions(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchQuestions returned error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
	if seenAmount != "10" {
		t.Fatalf("expected default amount 10, got %q", seenAmount)
	}
}

func TestFetchQuestionsPropagatesNonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		resp := http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}
		return &resp, nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 5); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestFetchQuestionsJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		resp := http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte("not-json"))),
			Header:     make(http.Header),
		}
		return &resp, nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 3); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}

func TestFetchQuestionsNonZeroResponseCode(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, apiResponse{
			ResponseCode: 1,
			Results:      []RawQuestion{{Question: "ignored"}},
		}), nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 3); err == nil {
		t.Fatalf("expected error for non-zero response_code")
	}
}

func TestSourceFetchBuildsQuestions(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("amount"); got != "2" {
			t.Errorf("amount = %q, want 2", got)
		}
		return jsonResponse(t, apiResponse{
			Results: []RawQuestion{
				{
					Type:             "multiple",
					Category:         "Science &amp; Nature",
					Difficulty:       "easy",
					Question:         "2 &amp; 2 = ?",
					CorrectAnswer:    "4 &lt; 5",
					IncorrectAnswers: []string{"1", "2", "3"},
				},
				{
					Type:             "boolean",
					Difficulty:       "hard",
					Question:         "The sky is blue.",
					CorrectAnswer:    "True",
					IncorrectAnswers: []string{"False"},
				},
			},
		}), nil
	}))

	source := NewSource(client, 2, rand.New(rand.NewSource(1)))

	questions, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Text != "2 & 2 = ?" || first.Answer != "4 < 5" || first.Category != "Science & Nature" {
		t.Fatalf("question not unescaped: %+v", first)
	}
	if len(first.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %+v", first.Choices)
	}
	found := false
	for _, choice := range first.Choices {
		if choice == first.Answer {
			found = true
		}
	}
	if !found {
		t.Fatalf("correct answer missing from choices: %+v", first.Choices)
	}

	second := questions[1]
	if second.Choices != nil {
		t.Fatalf("boolean question should have no choices, got %+v", second.Choices)
	}
	if !quiz.Matches(second.Answer, "true") {
		t.Fatalf("expected case-folded match for %q", second.Answer)
	}
}

func TestSourceFetchWrapsLoadError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))

	_, err := NewSource(client, 1, nil).Fetch(context.Background())
	var loadErr *quiz.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestSourceFetchRejectsEmptyQuestionText(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, apiResponse{
			Results: []RawQuestion{{Type: "boolean", CorrectAnswer: "True"}},
		}), nil
	}))

	_, err := NewSource(client, 1, nil).Fetch(context.Background())
	var schemaErr *quiz.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestSourceSeededChoiceOrderIsRepeatable(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, apiResponse{
			ResponseCode: 0,
			Results: []RawQuestion{{
				Type:             "multiple",
				Question:         "Largest planet?",
				CorrectAnswer:    "Jupiter",
				IncorrectAnswers: []string{"Mars", "Venus", "Earth", "Saturn", "Mercury"},
			}},
		}), nil
	}))

	first, err := NewSource(client, 1, rand.New(rand.NewSource(42))).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	second, err := NewSource(client, 1, rand.New(rand.NewSource(42))).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !reflect.DeepEqual(first[0].Choices, second[0].Choices) {
		t.Fatalf("choices = %v and %v, want the same order for the same seed", first[0].Choices, second[0].Choices)
	}
}
