package mission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glucoamigo/backend/internal/model/mission"
	missionservice "github.com/glucoamigo/backend/internal/service/mission"
	"github.com/glucoamigo/backend/pkg/utils"
)

// Handler exposes the daily mission selection.
type Handler struct {
	selector *missionservice.Selector
}

func New(selector *missionservice.Selector) *Handler {
	return &Handler{selector: selector}
}

// RegisterRoutes wires the mission endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/missions/today", h.handleToday)
}

func (h *Handler) handleToday(w http.ResponseWriter, _ *http.Request) {
	missions := h.selector.Today()
	if missions == nil {
		missions = []mission.Mission{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"missions": missions})
}
