package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chartweb/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsHandler streams editor events: every text message is one engine.Event
// and is answered with the resulting outputs. A connection stays bound to
// one session.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxEventBytes)

	session := r.URL.Query().Get("session")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", zap.String("session", session), zap.Error(err))
			}
			return
		}

		var resp APIResponse
		var ev engine.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			resp = APIResponse{Error: "invalid event: " + err.Error()}
		} else {
			res, err := s.app.ApplyEvent(session, ev)
			session = res.Session
			resp = APIResponse{Success: err == nil, Data: res}
			if err != nil {
				resp.Error = err.Error()
			}
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
