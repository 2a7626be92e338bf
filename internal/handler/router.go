package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/glucoamigo/backend/internal/handler/chat"
	missionhandler "github.com/glucoamigo/backend/internal/handler/mission"
	middlewarePkg "github.com/glucoamigo/backend/internal/middleware"
	chatservice "github.com/glucoamigo/backend/internal/service/chat"
	missionservice "github.com/glucoamigo/backend/internal/service/mission"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatservice.Service, missions *missionservice.Selector) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(chatSvc)
	wsHandler := chathandler.NewWebSocketHandler(chatSvc)
	missionHandler := missionhandler.New(missions)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)
		missionHandler.RegisterRoutes(api)
	})

	return r
}
