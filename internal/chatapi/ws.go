package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AnswerTimeout bounds each question asked over a websocket.
const AnswerTimeout = 60 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SocketRequest is an incoming websocket message.
type SocketRequest struct {
	Type  string `json:"type"` // "ask"
	ID    string `json:"id,omitempty"`
	Query string `json:"query"`
}

// SocketResponse is an outgoing websocket message. Type is "answer" or
// "error"; ID echoes the request's.
type SocketResponse struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Answer string `json:"answer,omitempty"`
	Source string `json:"source,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// handleWebSocket answers questions over one long-lived connection, one at
// a time and in order.
func handleWebSocket(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			deps.Logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		// The request context is bounded by the HTTP timeout middleware.
		base := context.WithoutCancel(r.Context())

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					deps.Logger.Warn("websocket read failed", zap.Error(err))
				}
				return
			}

			var req SocketRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				deps.send(conn, SocketResponse{Type: "error", Detail: "invalid message format"})
				continue
			}
			if req.Type != "ask" {
				deps.send(conn, SocketResponse{Type: "error", ID: req.ID, Detail: "unknown message type: " + req.Type})
				continue
			}
			if req.Query == "" {
				deps.send(conn, SocketResponse{Type: "error", ID: req.ID, Detail: "query is required and must not be empty"})
				continue
			}

			ctx, cancel := context.WithTimeout(base, AnswerTimeout)
			resp := deps.respond(ctx, req.Query, r.RemoteAddr)
			cancel()
			deps.send(conn, SocketResponse{Type: "answer", ID: req.ID, Answer: resp.Answer, Source: resp.Source})
		}
	}
}

func (deps Deps) send(conn *websocket.Conn, resp SocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		deps.Logger.Warn("websocket write failed", zap.Error(err))
	}
}
