package rest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/chapmjs/bball-tracker/internal/service"
	"github.com/chapmjs/bball-tracker/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db               *store.Database
	teamService      *service.TeamService
	rosterService    *service.RosterService
	gameService      *service.GameService
	trackerService   *service.TrackerService
	analyticsService *service.AnalyticsService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, tracker *service.TrackerService) *Handler {
	return &Handler{
		db:               db,
		teamService:      service.NewTeamService(db),
		rosterService:    service.NewRosterService(db),
		gameService:      service.NewGameService(db),
		trackerService:   tracker,
		analyticsService: service.NewAnalyticsService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "quicktrack",
	})
}

// GetTeams returns all teams, newest first
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// CreateTeam creates a new team
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team request", err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), req.TeamName, req.Season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create team", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"team": team})
}

// GetCurrentTeam resolves the current team, creating a placeholder team
// on first use
func (h *Handler) GetCurrentTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.CurrentTeam(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resolve current team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamRoster returns a team's players
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	roster, err := h.rosterService.GetRoster(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch roster", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": roster})
}

// AddPlayer adds a player to a team's roster
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	var req AddPlayerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player request", err)
		return
	}

	player, err := h.rosterService.AddPlayer(r.Context(), teamID, req.PlayerName, req.JerseyNumber, req.Position)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add player", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"player": player})
}

// UpdatePlayer replaces a player's roster entry
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathInt(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	var req AddPlayerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player request", err)
		return
	}

	player, err := h.rosterService.UpdatePlayer(r.Context(), playerID, req.PlayerName, req.JerseyNumber, req.Position)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"player": player})
}

// GetTeamGames returns a team's games; ?completed=true filters to
// completed games only
func (h *Handler) GetTeamGames(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	completedOnly := r.URL.Query().Get("completed") == "true"

	games, err := h.gameService.ListGames(r.Context(), teamID, completedOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// StartGame creates a new game for a team
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	var req StartGameRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game request", err)
		return
	}

	gameDate, err := time.Parse("2006-01-02", req.GameDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game date (use YYYY-MM-DD)", err)
		return
	}

	game, err := h.gameService.StartGame(r.Context(), teamID, gameDate, req.Opponent, req.Location)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to start game", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"game": game})
}

// GetActiveGame returns the team's active game. With no active game the
// response is a 200 with a null game, which drives the new-game flow.
func (h *Handler) GetActiveGame(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	game, err := h.gameService.ActiveGame(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resolve active game", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// GetGame returns a game by ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// UpdateScore sets the running score for a game
func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	var req UpdateScoreRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid score request", err)
		return
	}

	game, err := h.gameService.UpdateScore(r.Context(), gameID, *req.ScoreUs, *req.ScoreThem)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update score", err)
		return
	}

	h.trackerService.NotifyScoreUpdate(r.Context(), game)

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// CompleteGame marks a game as completed
func (h *Handler) CompleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	game, err := h.gameService.CompleteGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to complete game", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// RecordPossession records a simple possession for a game
func (h *Handler) RecordPossession(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	var req RecordPossessionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid possession request", err)
		return
	}

	possession := &store.Possession{
		GameID:         gameID,
		Quarter:        req.Quarter,
		TimeRemaining:  nullString(req.TimeRemaining),
		Outcome:        req.Outcome,
		FailureType:    nullString(req.FailureType),
		PlayersOnCourt: store.Lineup(req.PlayersOnCourt),
	}

	recorded, err := h.trackerService.RecordPossession(r.Context(), possession)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "Invalid possession", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record possession", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"possession": recorded})
}

// GetPossessions returns a game's simple possessions
func (h *Handler) GetPossessions(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	possessions, err := h.trackerService.GetPossessions(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch possessions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"possessions": possessions})
}

// RecordDetailedPossession records a detailed possession for a game
func (h *Handler) RecordDetailedPossession(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	var req RecordDetailedPossessionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid possession request", err)
		return
	}

	possession := &store.DetailedPossession{
		GameID:             gameID,
		Quarter:            req.Quarter,
		TimeElapsedSeconds: req.TimeElapsedSeconds,
		Lineup:             store.Lineup(req.Lineup),
		BallAdvancement:    nullString(req.BallAdvancement),
		ShotQuality:        nullString(req.ShotQuality),
		ShooterID:          nullInt32(req.ShooterID),
		ShotType:           nullString(req.ShotType),
		ShotResult:         nullString(req.ShotResult),
		Outcome:            nullString(req.Outcome),
		PointsScored:       req.PointsScored,
		MomentumState:      req.MomentumState,
	}

	recorded, err := h.trackerService.RecordDetailedPossession(r.Context(), possession)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record detailed possession", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"possession": recorded})
}

// GetDetailedPossessions returns a game's detailed possessions
func (h *Handler) GetDetailedPossessions(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	possessions, err := h.trackerService.GetDetailedPossessions(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch detailed possessions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"possessions": possessions})
}

// RecordShot records a shot attempt for a game
func (h *Handler) RecordShot(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	var req RecordShotRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid shot request", err)
		return
	}

	shot := &store.Shot{
		GameID:             gameID,
		PlayerID:           req.PlayerID,
		Quarter:            req.Quarter,
		TimeElapsedSeconds: req.TimeElapsedSeconds,
		ShotType:           req.ShotType,
		ShotQuality:        req.ShotQuality,
		Made:               *req.Made,
	}

	recorded, err := h.trackerService.RecordShot(r.Context(), shot)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record shot", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"shot": recorded})
}

// GetShootingStats returns grouped shooting stats filtered by optional
// game and player query params
func (h *Handler) GetShootingStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := queryInt(r, "game")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game filter", err)
		return
	}

	playerID, err := queryInt(r, "player")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player filter", err)
		return
	}

	shots, err := h.analyticsService.ShootingStats(r.Context(), gameID, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shooting stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"shooting": shots})
}

// SavePlayerStats upserts a full box-score line for (game, player)
func (h *Handler) SavePlayerStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	playerID, err := pathInt(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	var req SaveStatsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid stats request", err)
		return
	}

	stats := &store.PlayerGameStats{
		GameID:            gameID,
		PlayerID:          playerID,
		MinutesPlayed:     req.MinutesPlayed,
		Points:            req.Points,
		Assists:           req.Assists,
		ReboundsOffensive: req.ReboundsOffensive,
		ReboundsDefensive: req.ReboundsDefensive,
		Turnovers:         req.Turnovers,
		Steals:            req.Steals,
		Blocks:            req.Blocks,
		Fouls:             req.Fouls,
	}

	if err := h.trackerService.SavePlayerStats(r.Context(), stats); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save player stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// GetGameStats returns the box score for a game
func (h *Handler) GetGameStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	stats, err := h.trackerService.GetGameStats(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// GetLiveSummary returns the in-game dashboard for a game
func (h *Handler) GetLiveSummary(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	summary, err := h.trackerService.GetLiveSummary(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute live summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetGamePossessionSummary returns the possession breakdown for one game
func (h *Handler) GetGamePossessionSummary(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	summary, err := h.analyticsService.GamePossessionSummary(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute possession summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetTeamPossessionSummary returns the breakdown across completed games
func (h *Handler) GetTeamPossessionSummary(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	summary, err := h.analyticsService.TeamPossessionSummary(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute possession summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetConstraintAnalysis returns the ranked failure modes for a game
func (h *Handler) GetConstraintAnalysis(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	analysis, err := h.analyticsService.GameConstraintAnalysis(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute constraint analysis", err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// GetGameLineups returns lineup performance for one game
func (h *Handler) GetGameLineups(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	lineups, err := h.analyticsService.GameLineupPerformance(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute lineup performance", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lineups": lineups})
}

// GetTeamLineups returns lineup performance across all of a team's games
func (h *Handler) GetTeamLineups(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	lineups, err := h.analyticsService.TeamLineupPerformance(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute lineup performance", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lineups": lineups})
}

// GetGameNetImpact returns the net-impact ranking for one game
func (h *Handler) GetGameNetImpact(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	ranking, err := h.analyticsService.GameNetImpact(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute net impact", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": ranking})
}

// GetTeamNetImpact returns the net-impact ranking across completed games
func (h *Handler) GetTeamNetImpact(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	ranking, err := h.analyticsService.TeamNetImpact(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute net impact", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": ranking})
}

// pathInt extracts an integer path variable
func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// queryInt extracts an optional integer query parameter. An absent
// parameter yields 0 (no filter); a present but unparsable value is an
// error, not an unfiltered query.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", name, raw)
	}
	return value, nil
}

// isValidationError reports whether err is a tracker validation failure
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidOutcome) ||
		errors.Is(err, service.ErrMissingFailureReason) ||
		errors.Is(err, service.ErrInvalidFailureReason)
}

// nullString maps "" to SQL NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullInt32 maps 0 to SQL NULL
func nullInt32(n int) sql.NullInt32 {
	if n == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(n), Valid: true}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
