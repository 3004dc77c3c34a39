package profile

import (
	"github.com/gorilla/mux"

	"github.com/alignd-app/alignd-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profile").Subrouter()

	// Registration is the only unauthenticated route
	api.HandleFunc("/register", handler.Register).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware.Authenticate)
	protected.HandleFunc("/me", handler.GetAccount).Methods("GET")
	protected.HandleFunc("/preferences", handler.UpdatePreferences).Methods("PUT")
	protected.HandleFunc("/quiz", handler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/location", handler.UpdateLocation).Methods("PUT")
}
