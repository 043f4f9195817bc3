package app

import (
	"github.com/gorilla/mux"

	"match-highlights/internal/handlers"
	"match-highlights/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the application
func SetupRoutes(router *mux.Router, h *handlers.Handlers) {
	router.Use(middleware.LoggingMiddleware)

	router.HandleFunc("/events", h.PublishEvent).Methods("POST")

	router.HandleFunc("/highlights", h.ListHighlights).Methods("GET")
	router.HandleFunc("/highlights/{id}", h.GetHighlight).Methods("GET")

	router.HandleFunc("/health", h.Health).Methods("GET")
}
