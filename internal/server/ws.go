package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/ui-showcase/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the outgoing WebSocket message format.
type wsMessage struct {
	Type  string        `json:"type"` // "view" or "error"
	View  *session.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
}

// handleWebSocket streams session views to the page and feeds its input back
// into the session. The session ends with the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	s.sessions.attach(id, 1)
	views, unsubscribe := sess.Subscribe()
	errs := make(chan string, 8)
	writerDone := make(chan struct{})

	// The writer closes the connection when the session ends, which unblocks
	// the read loop below.
	go func() {
		defer close(writerDone)
		defer conn.Close()
		for {
			var out wsMessage
			select {
			case v, ok := <-views:
				if !ok {
					return
				}
				out = wsMessage{Type: "view", View: &v}
			case e := <-errs:
				out = wsMessage{Type: "error", Error: e}
			}
			if err := conn.WriteJSON(out); err != nil {
				s.logger.Debug().Err(err).Str("session", id).Msg("websocket write")
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Str("session", id).Msg("websocket read")
			}
			break
		}

		var msg session.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			report(errs, "invalid message format")
			continue
		}
		if err := sess.Dispatch(context.Background(), msg); err != nil {
			report(errs, err.Error())
			if errors.Is(err, session.ErrClosed) {
				break
			}
		}
	}

	unsubscribe()
	<-writerDone
	s.sessions.attach(id, -1)
	if closed, ok := s.sessions.remove(id); ok {
		closed.Close()
	}
}

func report(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}
