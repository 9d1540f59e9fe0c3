package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trivia-quiz/internal/quiz"
)

func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.load == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "question source unavailable"})
		return
	}

	filters := quiz.Filters{
		Category:   strings.TrimSpace(r.URL.Query().Get("category")),
		Difficulty: strings.TrimSpace(r.URL.Query().Get("difficulty")),
	}

	questions, err := a.load(r.Context(), filters)
	if err != nil {
		a.logger.Warn("load questions failed", zap.Error(err))
		writeLoadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponses(questions))
}

func (a *API) HandleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.scores == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "score store unavailable"})
		return
	}

	limit, err := parseLimit(r, 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	entries := a.scores.LoadAll()
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: entries})
}

func writeLoadError(w http.ResponseWriter, err error) {
	var schemaErr *quiz.SchemaError
	if errors.As(err, &schemaErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "question file is missing required fields"})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to load questions"})
}
