package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/analysis/segment"
	"github.com/glucoamigo/backend/internal/model/chat"
	"github.com/glucoamigo/backend/internal/storage/conversation"
)

var (
	ErrBlankUtterance = errors.New("utterance is blank")
	ErrTurnInFlight   = errors.New("a turn is already in flight")
	ErrModelOffline   = errors.New("chat model is not configured")
)

// greetingUtterance is the synthetic first turn sent on behalf of a
// patient with no stored conversation.
const greetingUtterance = "Hola"

// fallbackReply stands in for the model when the remote call fails. It
// is plain prose on purpose: it carries no emotion tag, so the
// extractor falls back to neutral.
const fallbackReply = "Lo siento, tuve un problema para responderte en este momento. ¿Me lo puedes repetir?"

// Responder is the remote language model as the orchestrator sees it:
// full ordered history in, one raw text blob out.
type Responder interface {
	Respond(ctx context.Context, history []chat.Message) (string, error)
}

// TurnResult reports the outcome of a session start or a user turn.
type TurnResult struct {
	// Messages is the full transcript after the turn.
	Messages []chat.Message
	// New holds only the messages added by this turn, user first.
	New []chat.Message
	// Emotion is the current emotion after the turn.
	Emotion emotion.Label
	// Restored is true when Start hydrated a stored transcript
	// without calling the model.
	Restored bool
}

// Session drives one patient's conversation: it hydrates from the
// durable gateway, runs user turns against the model, decomposes the
// reply into emotion plus displayable segments, and persists the
// updated transcript. At most one turn may be in flight; a second
// caller is rejected rather than interleaved.
type Session struct {
	patientID string
	store     *Store
	gateway   conversation.Gateway
	responder Responder
	now       func() time.Time

	turn     sync.Mutex
	hydrated bool
}

func NewSession(patientID string, gateway conversation.Gateway, responder Responder, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		patientID: patientID,
		store:     NewStore(),
		gateway:   gateway,
		responder: responder,
		now:       now,
	}
}

// Start hydrates the session. A stored transcript with at least one
// message is restored verbatim with no model call; a missing or empty
// one triggers the greeting turn. A transport failure while loading is
// returned to the caller instead of being mistaken for a fresh patient.
func (s *Session) Start(ctx context.Context) (*TurnResult, error) {
	if !s.turn.TryLock() {
		return nil, ErrTurnInFlight
	}
	defer s.turn.Unlock()

	if s.hydrated {
		return &TurnResult{Messages: s.store.Messages(), Emotion: s.store.Emotion(), Restored: true}, nil
	}

	snap, err := s.gateway.Load(ctx, s.patientID)
	if err != nil && !errors.Is(err, conversation.ErrNotFound) {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	if err == nil && len(snap.Messages) > 0 {
		s.store.ReplaceAll(snap.Messages, snap.Emotion)
		s.hydrated = true
		return &TurnResult{Messages: s.store.Messages(), Emotion: s.store.Emotion(), Restored: true}, nil
	}

	result := s.runTurn(ctx, nil, greetingUtterance)
	s.hydrated = true
	return result, nil
}

// Send runs one user turn. Blank utterances are rejected with no state
// change and no network call.
func (s *Session) Send(ctx context.Context, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankUtterance
	}
	if !s.turn.TryLock() {
		return nil, ErrTurnInFlight
	}
	defer s.turn.Unlock()

	return s.runTurn(ctx, s.fetchHistory(ctx), text), nil
}

// Transcript returns the in-memory view of the conversation.
func (s *Session) Transcript() ([]chat.Message, emotion.Label) {
	s.turn.Lock()
	defer s.turn.Unlock()
	return s.store.Messages(), s.store.Emotion()
}

// fetchHistory re-reads the durable snapshot so the turn appends on
// top of the latest known-durable history even if the in-memory state
// was reset. A missing row means an empty history; a transport failure
// falls back to the in-memory transcript.
func (s *Session) fetchHistory(ctx context.Context) []chat.Message {
	snap, err := s.gateway.Load(ctx, s.patientID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil
		}
		log.Printf("[chat] reload before turn failed for patient=%s, using in-memory history: %v", s.patientID, err)
		return s.store.Messages()
	}
	return snap.Messages
}

func (s *Session) runTurn(ctx context.Context, history []chat.Message, utterance string) *TurnResult {
	s.store.ReplaceAll(history, s.store.Emotion())
	full := s.store.AppendUserMessage(utterance)
	userMsg := full[len(full)-1]

	raw, err := s.respond(ctx, full)
	if err != nil {
		log.Printf("[chat] model call failed for patient=%s: %v", s.patientID, err)
		raw = fallbackReply
	}

	extracted := emotion.Extract(raw)
	segments := segment.Split(extracted.CleanText)
	assistantMsgs := s.store.AppendAssistantMessages(segments)

	label, ok := emotion.ParseLabel(extracted.Emotion)
	if !ok {
		label = emotion.Unknown
	}
	s.store.SetEmotion(label)

	now := s.now().UTC()
	snap := &conversation.Snapshot{
		ID:        s.patientID,
		Messages:  s.store.Messages(),
		Emotion:   label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.gateway.Upsert(ctx, snap); err != nil {
		// The in-memory transcript is kept as-is so the session can
		// continue; a later reload may lose this turn.
		log.Printf("[chat] persist failed for patient=%s: %v", s.patientID, err)
	}

	return &TurnResult{
		Messages: s.store.Messages(),
		New:      append([]chat.Message{userMsg}, assistantMsgs...),
		Emotion:  label,
	}
}

func (s *Session) respond(ctx context.Context, history []chat.Message) (string, error) {
	if s.responder == nil {
		return "", ErrModelOffline
	}
	return s.responder.Respond(ctx, history)
}
