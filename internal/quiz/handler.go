package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/reel-trivia/backend/internal/models"
)

// Finalizer persists a completed session's outcome to the results store.
// Implemented by the scores service.
type Finalizer interface {
	Finalize(ctx context.Context, req models.CompleteQuizRequest) (*models.CompleteQuizResponse, error)
}

type Handler struct {
	engine    *Engine
	finalizer Finalizer
}

func NewHandler(engine *Engine, finalizer Finalizer) *Handler {
	return &Handler{engine: engine, finalizer: finalizer}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Code: "bad_request"})
		return
	}

	// Prefer the authenticated identity over a client-supplied user_id.
	if uid, ok := userIDFromContext(r.Context()); ok {
		req.UserID = &uid
	}

	resp, err := h.engine.Start(r.Context(), req)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Code: "bad_request"})
		return
	}

	if req.SessionID == "" || req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "session_id and question_id are required", Code: "bad_request"})
		return
	}

	resp, err := h.engine.SubmitAnswer(r.Context(), req)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Code: "bad_request"})
		return
	}

	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "session_id is required", Code: "bad_request"})
		return
	}

	resp, err := h.finalizer.Finalize(r.Context(), req)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: "invalid_config"})
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found or already complete", Code: "session_not_found"})
	case errors.Is(err, ErrQuestionMismatch):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Answer does not match the current question", Code: "question_mismatch"})
	case errors.Is(err, ErrUpstreamUnavailable):
		log.Printf("[quiz] upstream error: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Upstream unavailable", Code: "upstream_unavailable"})
	default:
		log.Printf("[quiz] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error", Code: "internal"})
	}
}

func userIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value("user_id").(int64)
	return uid, ok
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
