package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/trivia-backend/internal/apperror"
	"github.com/rocketscienceinc/trivia-backend/internal/entity"
)

type initRequest struct {
	Questions    []entity.Question `json:"questions"`
	QuestionsURL string            `json:"questionsUrl"`
}

type answerRequest struct {
	PlayerID string `json:"playerId"`
	Answer   string `json:"answer"`
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) createRoomHandler(w http.ResponseWriter, _ *http.Request) {
	roomID := that.rooms.CreateRoom()

	that.writeJSON(w, http.StatusCreated, map[string]string{"roomId": roomID})
}

func (that *Server) joinHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	playerID := r.URL.Query().Get("playerId")

	if err := that.rooms.Join(r.Context(), roomID, playerID); err != nil {
		that.writeError(w, r, err)

		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"playerId": playerID})
}

func (that *Server) initHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")

	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	if err := that.rooms.Init(r.Context(), roomID, req.Questions, req.QuestionsURL); err != nil {
		that.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) answerHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	// Dropped submissions are still acknowledged; the client cannot tell
	// the server's round boundary from its side of a poll.
	if err := that.rooms.SubmitAnswer(r.Context(), roomID, req.PlayerID, req.Answer); err != nil {
		that.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")

	snapshot, err := that.rooms.State(r.Context(), roomID)
	if err != nil {
		that.writeError(w, r, err)

		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error taxonomy to status codes: malformed request
// 400, unreachable question source 502, everything else (persistence
// included) a retryable 500.
func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrQuestionSourceUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, apperror.ErrMissingPlayerID),
		errors.Is(err, apperror.ErrInvalidInitPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
