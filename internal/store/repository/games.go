package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a new game and returns its ID
func (r *GameRepository) Create(ctx context.Context, teamID int, gameDate time.Time, opponent, location string) (int, error) {
	query := `
		INSERT INTO games (team_id, game_date, opponent, location)
		VALUES ($1, $2, $3, $4)
		RETURNING game_id
	`

	var gameID int
	err := r.db.DB().QueryRowContext(ctx, query, teamID, gameDate, opponent, location).Scan(&gameID)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}

	return gameID, nil
}

// GetByID finds a game by ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `
		SELECT game_id, team_id, game_date, opponent, location,
			final_score_us, final_score_them, game_completed, created_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.TeamID, &game.GameDate, &game.Opponent, &game.Location,
		&game.FinalScoreUs, &game.FinalScoreThem, &game.GameCompleted, &game.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// ListByTeam returns a team's games, newest game date first. When
// completedOnly is set, in-progress games are excluded.
func (r *GameRepository) ListByTeam(ctx context.Context, teamID int, completedOnly bool) ([]*store.Game, error) {
	query := `
		SELECT game_id, team_id, game_date, opponent, location,
			final_score_us, final_score_them, game_completed, created_at
		FROM games
		WHERE team_id = $1
	`
	if completedOnly {
		query += " AND game_completed = TRUE"
	}
	query += " ORDER BY game_date DESC"

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetActiveGame returns the most recently created incomplete game for a
// team, or nil when there is none. "No active game" drives the new-game
// flow, so it is not an error.
func (r *GameRepository) GetActiveGame(ctx context.Context, teamID int) (*store.Game, error) {
	query := `
		SELECT game_id, team_id, game_date, opponent, location,
			final_score_us, final_score_them, game_completed, created_at
		FROM games
		WHERE team_id = $1 AND game_completed = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&game.GameID, &game.TeamID, &game.GameDate, &game.Opponent, &game.Location,
		&game.FinalScoreUs, &game.FinalScoreThem, &game.GameCompleted, &game.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active game: %w", err)
	}

	return game, nil
}

// UpdateScore sets the running score for a game
func (r *GameRepository) UpdateScore(ctx context.Context, gameID, scoreUs, scoreThem int) error {
	query := `
		UPDATE games
		SET final_score_us = $2, final_score_them = $3
		WHERE game_id = $1
	`

	result, err := r.db.DB().ExecContext(ctx, query, gameID, scoreUs, scoreThem)
	if err != nil {
		return fmt.Errorf("updating game score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating game score: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game not found: %d", gameID)
	}

	return nil
}

// Complete marks a game as completed
func (r *GameRepository) Complete(ctx context.Context, gameID int) error {
	query := `UPDATE games SET game_completed = TRUE WHERE game_id = $1`

	result, err := r.db.DB().ExecContext(ctx, query, gameID)
	if err != nil {
		return fmt.Errorf("completing game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing game: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game not found: %d", gameID)
	}

	return nil
}

// scanGames scans multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.TeamID, &game.GameDate, &game.Opponent, &game.Location,
			&game.FinalScoreUs, &game.FinalScoreThem, &game.GameCompleted, &game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
