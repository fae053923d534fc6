// Package api provides HTTP API handlers for the CyberCoach training system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jwojnar/cybercoach/internal/store"
)

// SessionHandler handles HTTP requests for session resources.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler with the given store.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/sessions, /api/sessions/{id} or /api/sessions/{id}/reps
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/sessions
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/reps"); ok {
		// Sub-resource endpoint: /api/sessions/{id}/reps
		switch r.Method {
		case http.MethodGet:
			h.listReps(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/sessions/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type sessionResponse struct {
	ID             string  `json:"id"`
	ExerciseName   string  `json:"exercise_name"`
	StartedAt      string  `json:"started_at"`
	EndedAt        string  `json:"ended_at,omitempty"`
	TotalReps      int     `json:"total_reps"`
	CompleteReps   int     `json:"complete_reps"`
	IncompleteReps int     `json:"incomplete_reps"`
	AvgROM         float64 `json:"avg_rom"`
	ConfirmedReps  int     `json:"confirmed_reps"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type repetitionResponse struct {
	ID         int64    `json:"id"`
	View       string   `json:"view"`
	StartFrame int      `json:"start_frame"`
	EndFrame   int      `json:"end_frame"`
	MinAngle   float64  `json:"min_angle"`
	MaxAngle   float64  `json:"max_angle"`
	ROM        float64  `json:"rom"`
	IsComplete bool     `json:"is_complete"`
	Errors     []string `json:"errors,omitempty"`
}

type listRepsResponse struct {
	Repetitions []repetitionResponse `json:"repetitions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Session to a sessionResponse.
func toResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:             s.ID,
		ExerciseName:   s.ExerciseName,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		TotalReps:      s.TotalReps,
		CompleteReps:   s.CompleteReps,
		IncompleteReps: s.IncompleteReps,
		AvgROM:         s.AvgROM,
		ConfirmedReps:  s.ConfirmedReps,
	}
	if s.EndedAt != nil {
		resp.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	return resp
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/sessions and returns all sessions, most recent first.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id} and returns a single session.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(session))
}

// listReps handles GET /api/sessions/{id}/reps and returns the session's repetitions.
func (h *SessionHandler) listReps(w http.ResponseWriter, r *http.Request, id string) {
	// Verify the session exists so unknown IDs return 404 rather than an empty list.
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	reps, err := h.store.Repetitions().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list repetitions")
		return
	}

	response := listRepsResponse{
		Repetitions: make([]repetitionResponse, 0, len(reps)),
	}
	for _, rep := range reps {
		response.Repetitions = append(response.Repetitions, repetitionResponse{
			ID:         rep.ID,
			View:       rep.View,
			StartFrame: rep.StartFrame,
			EndFrame:   rep.EndFrame,
			MinAngle:   rep.MinAngle,
			MaxAngle:   rep.MaxAngle,
			ROM:        rep.ROM,
			IsComplete: rep.IsComplete,
			Errors:     rep.Errors,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// delete handles DELETE /api/sessions/{id} and removes a session with its repetitions.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Sessions().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
