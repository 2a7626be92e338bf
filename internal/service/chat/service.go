package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/model/chat"
	"github.com/glucoamigo/backend/internal/storage/conversation"
)

var ErrPatientRequired = errors.New("patient id is required")

// Service owns one Session per patient. Conversations are keyed by
// patient identity, never by a fixed deployment-wide id.
type Service struct {
	mu        sync.Mutex
	gateway   conversation.Gateway
	responder Responder
	now       func() time.Time
	sessions  map[string]*Session
}

func NewService(gateway conversation.Gateway, responder Responder) *Service {
	return &Service{
		gateway:   gateway,
		responder: responder,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Start hydrates (or greets) the patient's session.
func (s *Service) Start(ctx context.Context, patientID string) (*TurnResult, error) {
	session, err := s.session(patientID)
	if err != nil {
		return nil, err
	}
	return session.Start(ctx)
}

// Send runs one user turn for the patient.
func (s *Service) Send(ctx context.Context, patientID, text string) (*TurnResult, error) {
	session, err := s.session(patientID)
	if err != nil {
		return nil, err
	}
	return session.Send(ctx, text)
}

// Transcript returns the in-memory transcript and current emotion.
func (s *Service) Transcript(_ context.Context, patientID string) ([]chat.Message, emotion.Label, error) {
	session, err := s.session(patientID)
	if err != nil {
		return nil, "", err
	}
	messages, label := session.Transcript()
	return messages, label, nil
}

func (s *Service) session(patientID string) (*Session, error) {
	if patientID == "" {
		return nil, ErrPatientRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[patientID]
	if !ok {
		session = NewSession(patientID, s.gateway, s.responder, s.now)
		s.sessions[patientID] = session
	}
	return session, nil
}
