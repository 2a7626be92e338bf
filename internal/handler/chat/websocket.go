package chat

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/glucoamigo/backend/internal/model/chat"
	chatservice "github.com/glucoamigo/backend/internal/service/chat"
)

// WebSocketHandler delivers conversation turns over a socket: the
// client sends text utterances and receives each assistant segment as
// its own frame, followed by an emotion frame.
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes wires the socket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{patientID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outboundFrame struct {
	Type      string        `json:"type"`
	Message   *chat.Message `json:"message,omitempty"`
	Emotion   string        `json:"emotion,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for patient=%s: %v", patientID, err)
		return
	}
	defer conn.Close()

	ctx := r.Context()

	// Hydrate (or greet) before entering the read loop so the client
	// always starts from the restored transcript.
	result, err := h.chatSvc.Start(ctx, patientID)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	h.writeTurn(conn, result.Messages, string(result.Emotion))

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] connection closed for patient=%s: %v", patientID, err)
			}
			return
		}

		if frame.Type != "text" {
			h.writeError(conn, errors.New("unsupported frame type"))
			continue
		}

		turn, err := h.chatSvc.Send(ctx, patientID, frame.Text)
		if err != nil {
			h.writeError(conn, err)
			continue
		}
		h.writeTurn(conn, turn.New, string(turn.Emotion))
	}
}

func (h *WebSocketHandler) writeTurn(conn *websocket.Conn, messages []chat.Message, emotionLabel string) {
	for i := range messages {
		h.write(conn, outboundFrame{Type: "message", Message: &messages[i]})
	}
	h.write(conn, outboundFrame{Type: "emotion", Emotion: emotionLabel})
}

func (h *WebSocketHandler) writeError(conn *websocket.Conn, err error) {
	h.write(conn, outboundFrame{Type: "error", Error: err.Error()})
}

func (h *WebSocketHandler) write(conn *websocket.Conn, frame outboundFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
