package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/fitchef/ember/internal/config"
	"github.com/fitchef/ember/internal/errors"
	"github.com/fitchef/ember/internal/sentry"
	"github.com/fitchef/ember/internal/session"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	cfg   *config.Config
	store *session.Store
}

func NewServer(cfg *config.Config, store *session.Store) *Server {
	return &Server{
		cfg:   cfg,
		store: store,
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Recovery string `json:"recovery,omitempty"`
}

// writeError maps an error onto the HTTP surface. Typed application errors
// carry their own status code and recovery hint; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError("internal server error", "INTERNAL_ERROR", err)
	}
	if !appErr.IsOperational {
		sentry.CaptureError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Error:    appErr.Message,
		Code:     appErr.Code(),
		Recovery: appErr.RecoverySuggestion(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func historyIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, errors.NewNotFoundError("history index must be a number", "HISTORY_INDEX_INVALID")
	}
	return index, nil
}

// HandleCreateSession starts a new idle generation session.
func (s *Server) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// HandleGetSession returns the session's current state.
func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// HandleDeleteSession discards a session and its history.
func (s *Server) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

type GenerateRequest struct {
	Input      string `json:"input"`
	DietFilter string `json:"dietFilter,omitempty"`
}

// HandleGenerate runs one generation on the session. A request while one
// is already in flight is rejected with 409; it is never queued.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewEmptyInputError("invalid request body"))
		return
	}

	if _, err := sess.Submit(r.Context(), req.Input, req.DietFilter); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// HandleSelectHistory makes a past result the current recipe again.
func (s *Server) HandleSelectHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	index, err := historyIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := sess.SelectFromHistory(index); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// HandleRemoveHistory deletes one history entry by index.
func (s *Server) HandleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	index, err := historyIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := sess.RemoveFromHistory(index); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}
