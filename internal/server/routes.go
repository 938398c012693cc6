package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/ui-showcase/internal/session"
)

// createSessionRequest is the optional body of POST /api/session.
type createSessionRequest struct {
	PrefersDark bool   `json:"prefers_dark"`
	Category    string `json:"category,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := clientID(w, r)
	sess, err := session.New(r.Context(), s.sessionDeps(r, client), session.Options{
		PrefersDark:     req.PrefersDark,
		InitialCategory: req.Category,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("creating session")
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.sessions.add(sess)
	writeJSON(w, http.StatusCreated, sess.View())
}

// sessionDeps binds a new session to the current catalog snapshot and the
// client's preference store.
func (s *Server) sessionDeps(r *http.Request, client string) session.Deps {
	return session.Deps{
		Catalog:          s.catalogs.Load(),
		Loader:           s.loader,
		Extractor:        s.extractor,
		Panels:           s.cfg.Panels,
		ThemeStore:       s.themeStore(client),
		HostOrigin:       hostOrigin(r),
		AutoplayInterval: s.cfg.AutoplayInterval,
		Recorder:         s.recorder,
		Logger:           s.logger,
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.remove(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	sess.Close()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var msg session.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := sess.Do(r.Context(), msg)
	switch {
	case errors.Is(err, session.ErrUnknownMessage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrClosed):
		writeError(w, http.StatusGone, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
