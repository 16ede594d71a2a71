package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// PlayerRepository handles roster data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create inserts a new player and returns its ID
func (r *PlayerRepository) Create(ctx context.Context, teamID int, name, number string, position sql.NullString) (int, error) {
	query := `
		INSERT INTO players (team_id, player_name, jersey_number, position)
		VALUES ($1, $2, $3, $4)
		RETURNING player_id
	`

	var playerID int
	err := r.db.DB().QueryRowContext(ctx, query, teamID, name, number, position).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("inserting player: %w", err)
	}

	return playerID, nil
}

// Update replaces a player's name, number and position
func (r *PlayerRepository) Update(ctx context.Context, playerID int, name, number string, position sql.NullString) error {
	query := `
		UPDATE players
		SET player_name = $2, jersey_number = $3, position = $4
		WHERE player_id = $1
	`

	result, err := r.db.DB().ExecContext(ctx, query, playerID, name, number, position)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %d", playerID)
	}

	return nil
}

// GetByID finds a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `
		SELECT player_id, team_id, player_name, jersey_number, position, created_at
		FROM players
		WHERE player_id = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&player.PlayerID, &player.TeamID, &player.PlayerName,
		&player.JerseyNumber, &player.Position, &player.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// ListByTeam returns all players on a team in jersey-number order
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*store.Player, error) {
	query := `
		SELECT player_id, team_id, player_name, jersey_number, position, created_at
		FROM players
		WHERE team_id = $1
		ORDER BY jersey_number
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		err := rows.Scan(
			&player.PlayerID, &player.TeamID, &player.PlayerName,
			&player.JerseyNumber, &player.Position, &player.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
