package matching

import (
	"github.com/gorilla/mux"

	"github.com/alignd-app/alignd-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Discovery
	api.HandleFunc("/discover", handler.Discover).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Like graph
	api.HandleFunc("/likes", handler.LikeUser).Methods("POST")
	api.HandleFunc("/likes/{userId}", handler.UnlikeUser).Methods("DELETE")

	// Matches & notifications
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/notifications", handler.GetNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/seen", handler.MarkNotificationSeen).Methods("POST")

	// Live match notifications
	api.HandleFunc("/ws", hub.ServeWS).Methods("GET")
}
