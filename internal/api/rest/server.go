package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chapmjs/bball-tracker/internal/service"
	"github.com/chapmjs/bball-tracker/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, tracker *service.TrackerService) *Server {
	handler := NewHandler(db, tracker)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams and rosters
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams", handler.CreateTeam).Methods("POST")
	api.HandleFunc("/teams/current", handler.GetCurrentTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamID}/players", handler.AddPlayer).Methods("POST")
	api.HandleFunc("/players/{playerID}", handler.UpdatePlayer).Methods("PUT")

	// Games
	api.HandleFunc("/teams/{teamID}/games", handler.GetTeamGames).Methods("GET")
	api.HandleFunc("/teams/{teamID}/games", handler.StartGame).Methods("POST")
	api.HandleFunc("/teams/{teamID}/games/active", handler.GetActiveGame).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/score", handler.UpdateScore).Methods("PUT")
	api.HandleFunc("/games/{gameID}/complete", handler.CompleteGame).Methods("POST")

	// In-game tracking
	api.HandleFunc("/games/{gameID}/possessions", handler.GetPossessions).Methods("GET")
	api.HandleFunc("/games/{gameID}/possessions", handler.RecordPossession).Methods("POST")
	api.HandleFunc("/games/{gameID}/possessions/detailed", handler.GetDetailedPossessions).Methods("GET")
	api.HandleFunc("/games/{gameID}/possessions/detailed", handler.RecordDetailedPossession).Methods("POST")
	api.HandleFunc("/games/{gameID}/shots", handler.RecordShot).Methods("POST")
	api.HandleFunc("/games/{gameID}/players/{playerID}/stats", handler.SavePlayerStats).Methods("PUT")
	api.HandleFunc("/games/{gameID}/stats", handler.GetGameStats).Methods("GET")
	api.HandleFunc("/games/{gameID}/summary", handler.GetLiveSummary).Methods("GET")

	// Analytics
	api.HandleFunc("/games/{gameID}/analytics/possessions", handler.GetGamePossessionSummary).Methods("GET")
	api.HandleFunc("/games/{gameID}/analytics/constraints", handler.GetConstraintAnalysis).Methods("GET")
	api.HandleFunc("/games/{gameID}/analytics/lineups", handler.GetGameLineups).Methods("GET")
	api.HandleFunc("/games/{gameID}/analytics/impact", handler.GetGameNetImpact).Methods("GET")
	api.HandleFunc("/teams/{teamID}/analytics/possessions", handler.GetTeamPossessionSummary).Methods("GET")
	api.HandleFunc("/teams/{teamID}/analytics/lineups", handler.GetTeamLineups).Methods("GET")
	api.HandleFunc("/teams/{teamID}/analytics/impact", handler.GetTeamNetImpact).Methods("GET")
	api.HandleFunc("/analytics/shooting", handler.GetShootingStats).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
