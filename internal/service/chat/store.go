package chat

import (
	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/model/chat"
)

// Store holds the in-memory transcript and current emotion for one
// active session. It is the sole mutator of conversation state; the
// owning Session serializes access, so the Store itself carries no
// locking.
type Store struct {
	messages []chat.Message
	emotion  emotion.Label
}

func NewStore() *Store {
	return &Store{emotion: emotion.Neutral}
}

// ReplaceAll overwrites the state with a durable snapshot, either at
// hydration or when resyncing on top of the latest persisted history
// before a turn.
func (s *Store) ReplaceAll(messages []chat.Message, e emotion.Label) {
	s.messages = append([]chat.Message(nil), messages...)
	s.emotion = e
}

// AppendUserMessage adds a user turn and returns the full updated
// sequence, which the orchestrator needs to build the outbound model
// request including the just-added message.
func (s *Store) AppendUserMessage(text string) []chat.Message {
	s.messages = append(s.messages, chat.NewUserMessage(text))
	return s.Messages()
}

// AppendAssistantMessages adds one message per segment, in order, and
// returns the newly created messages.
func (s *Store) AppendAssistantMessages(segments []string) []chat.Message {
	appended := make([]chat.Message, 0, len(segments))
	for _, seg := range segments {
		msg := chat.NewAssistantMessage(seg)
		s.messages = append(s.messages, msg)
		appended = append(appended, msg)
	}
	return appended
}

// SetEmotion overwrites the current emotion, last write wins.
func (s *Store) SetEmotion(e emotion.Label) {
	s.emotion = e
}

// Messages returns a copy of the ordered transcript.
func (s *Store) Messages() []chat.Message {
	return append([]chat.Message(nil), s.messages...)
}

func (s *Store) Emotion() emotion.Label {
	return s.emotion
}

func (s *Store) Len() int {
	return len(s.messages)
}
