package chat

import "github.com/google/uuid"

// Sender values accepted on a Message.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one displayable unit of a conversation. Messages are
// append-only: once created they are never edited, only carried along
// inside the ordered transcript.
type Message struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// NewUserMessage builds a user turn with a fresh identifier.
func NewUserMessage(text string) Message {
	return Message{ID: uuid.NewString(), Text: text, Sender: SenderUser}
}

// NewAssistantMessage builds an assistant segment with a fresh identifier.
func NewAssistantMessage(text string) Message {
	return Message{ID: uuid.NewString(), Text: text, Sender: SenderAssistant}
}
