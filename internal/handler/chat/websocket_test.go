package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	modelchat "github.com/glucoamigo/backend/internal/model/chat"
	chatservice "github.com/glucoamigo/backend/internal/service/chat"
	"github.com/glucoamigo/backend/internal/storage/conversation"
)

type wsFrame struct {
	Type    string             `json:"type"`
	Message *modelchat.Message `json:"message,omitempty"`
	Emotion string             `json:"emotion,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func dialTestSocket(t *testing.T, reply string) *websocket.Conn {
	t.Helper()

	gateway := conversation.NewMemoryGateway()
	svc := chatservice.NewService(gateway, &scriptedResponder{reply: reply})
	wsHandler := NewWebSocketHandler(svc)

	r := chi.NewRouter()
	wsHandler.RegisterWebSocketRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/patient-1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrames(t *testing.T, conn *websocket.Conn, n int) []wsFrame {
	t.Helper()
	frames := make([]wsFrame, 0, n)
	for i := 0; i < n; i++ {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		frames = append(frames, frame)
	}
	return frames
}

func TestWebSocketGreetsOnConnect(t *testing.T) {
	conn := dialTestSocket(t, "Emocion: Saludo\nHola, ¿cómo te sientes hoy?")

	frames := readFrames(t, conn, 3)
	if frames[0].Type != "message" || frames[0].Message.Sender != modelchat.SenderUser {
		t.Fatalf("unexpected first frame: %+v", frames[0])
	}
	if frames[1].Type != "message" || frames[1].Message.Sender != modelchat.SenderAssistant {
		t.Fatalf("unexpected second frame: %+v", frames[1])
	}
	if frames[2].Type != "emotion" || frames[2].Emotion != "saludo" {
		t.Fatalf("unexpected emotion frame: %+v", frames[2])
	}
}

func TestWebSocketTurnDeliversSegmentsAsFrames(t *testing.T) {
	conn := dialTestSocket(t, "Emocion: preocupado. Deberías revisar tu insulina. ¿Has comido algo?")

	// Discard the greeting turn: user + assistant segments + emotion.
	readFrames(t, conn, 4)

	if err := conn.WriteJSON(map[string]string{"type": "text", "text": "Tengo 180 de glucosa"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	frames := readFrames(t, conn, 4)
	if frames[0].Message == nil || frames[0].Message.Text != "Tengo 180 de glucosa" {
		t.Fatalf("expected echoed user message, got %+v", frames[0])
	}
	if frames[1].Message == nil || frames[1].Message.Text != "Deberías revisar tu insulina." {
		t.Fatalf("unexpected first segment: %+v", frames[1])
	}
	if frames[2].Message == nil || frames[2].Message.Text != "¿Has comido algo?" {
		t.Fatalf("unexpected second segment: %+v", frames[2])
	}
	if frames[3].Type != "emotion" || frames[3].Emotion != "preocupado" {
		t.Fatalf("unexpected emotion frame: %+v", frames[3])
	}
}

func TestWebSocketRejectsUnsupportedFrameType(t *testing.T) {
	conn := dialTestSocket(t, "Emocion: neutral De acuerdo, sigamos.")

	readFrames(t, conn, 3)

	if err := conn.WriteJSON(map[string]string{"type": "audio"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	frames := readFrames(t, conn, 1)
	if frames[0].Type != "error" {
		t.Fatalf("expected error frame, got %+v", frames[0])
	}
}
