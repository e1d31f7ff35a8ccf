package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"teambalancer/internal/logger"
	"teambalancer/internal/service"
	"teambalancer/internal/transport/rest/handler"
	"teambalancer/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	GroupService   *service.GroupService
	VoteService    *service.VoteService
	StatsService   *service.StatsService
	TeamService    *service.TeamService
	AdminService   *service.AdminService
	Logger         *logger.Logger
	AllowedOrigins []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Logger)
	groupHandler := handler.NewGroupHandler(c.GroupService, c.StatsService, c.Logger)
	voteHandler := handler.NewVoteHandler(c.VoteService, c.Logger)
	sessionHandler := handler.NewSessionHandler(c.TeamService, c.Logger)
	adminHandler := handler.NewAdminHandler(c.AdminService, c.Logger)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	cors := middleware.DefaultCORSConfig()
	if len(c.AllowedOrigins) > 0 {
		cors.AllowedOrigins = c.AllowedOrigins
	}
	r.Use(middleware.CORS(cors))
	r.Use(middleware.RequestLogger(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/admin/auth", authHandler.AdminLogin).Methods("POST", "OPTIONS")
	v1.HandleFunc("/groups", groupHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/groups/{groupId}/players", groupHandler.Players).Methods("GET", "OPTIONS")
	v1.HandleFunc("/groups/{groupId}/players", groupHandler.AddPlayer).Methods("POST", "OPTIONS")

	// Group routes (player token of the same group)
	groupRoutes := v1.PathPrefix("/groups/{groupId}").Subrouter()
	groupRoutes.Use(authMW.RequirePlayer, authMW.RequireGroup)

	groupRoutes.HandleFunc("/players/{playerId}", groupHandler.UpdatePlayer).Methods("PUT", "OPTIONS")
	groupRoutes.HandleFunc("/players/{playerId}", groupHandler.RemovePlayer).Methods("DELETE", "OPTIONS")
	groupRoutes.HandleFunc("/stats", groupHandler.Stats).Methods("GET", "OPTIONS")
	groupRoutes.HandleFunc("/ranking", groupHandler.Ranking).Methods("GET", "OPTIONS")
	groupRoutes.HandleFunc("/ranking/me", groupHandler.MyRank).Methods("GET", "OPTIONS")
	groupRoutes.HandleFunc("/votes", voteHandler.List).Methods("GET", "OPTIONS")
	groupRoutes.HandleFunc("/votes", voteHandler.Submit).Methods("POST", "OPTIONS")
	groupRoutes.HandleFunc("/votes/batch", voteHandler.SubmitBatch).Methods("POST", "OPTIONS")
	groupRoutes.HandleFunc("/votes/{toPlayerId}", voteHandler.Retract).Methods("DELETE", "OPTIONS")
	groupRoutes.HandleFunc("/reset-scores", voteHandler.ResetScores).Methods("POST", "OPTIONS")
	groupRoutes.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")

	// Session routes (player token, scoped by the token's group)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{sessionId}/presence/{playerId}", sessionHandler.SetPresence).Methods("PUT", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{sessionId}/teams", sessionHandler.GenerateTeams).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{sessionId}/teams", sessionHandler.ClearTeams).Methods("DELETE", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{sessionId}/teams/export", sessionHandler.Export).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/snapshots", sessionHandler.ListSnapshots).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/snapshots/{sessionId}", sessionHandler.GetSnapshot).Methods("GET", "OPTIONS")

	// Admin routes (require admin token)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/groups", adminHandler.ListGroups).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/groups", adminHandler.CreateGroup).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/groups/{groupId}", adminHandler.UpdateGroup).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/groups/{groupId}", adminHandler.DeleteGroup).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/stats", adminHandler.Stats).Methods("GET", "OPTIONS")

	return r
}
