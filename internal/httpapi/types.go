package httpapi

import "trivia-quiz/internal/scorestore"

type errorResponse struct {
	Error string `json:"error"`
}

type questionResponse struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// scoresResponse uses the ranked high-score file shape.
type scoresResponse struct {
	Scores []scorestore.Entry `json:"scores"`
}
