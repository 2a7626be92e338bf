package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/model/chat"
	chatservice "github.com/glucoamigo/backend/internal/service/chat"
	"github.com/glucoamigo/backend/pkg/utils"
)

// Handler exposes the conversation pipeline over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
}

func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes wires the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/patients/{patientID}/session", h.handleStartSession)
	r.Post("/patients/{patientID}/messages", h.handleSendMessage)
	r.Get("/patients/{patientID}/transcript", h.handleTranscript)
}

type transcriptResponse struct {
	Messages []chat.Message `json:"messages"`
	Emotion  emotion.Label  `json:"emotion"`
	Restored bool           `json:"restored,omitempty"`
}

type turnResponse struct {
	Messages []chat.Message `json:"messages"`
	Emotion  emotion.Label  `json:"emotion"`
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	result, err := h.chatSvc.Start(r.Context(), patientID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, transcriptResponse{
		Messages: result.Messages,
		Emotion:  result.Emotion,
		Restored: result.Restored,
	})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.Send(r.Context(), patientID, payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, turnResponse{
		Messages: result.New,
		Emotion:  result.Emotion,
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	messages, label, err := h.chatSvc.Transcript(r.Context(), patientID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, transcriptResponse{Messages: messages, Emotion: label})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatservice.ErrPatientRequired), errors.Is(err, chatservice.ErrBlankUtterance):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatservice.ErrTurnInFlight):
		utils.RespondError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
