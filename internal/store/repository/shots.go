package repository

import (
	"context"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// ShotRepository handles shot data access
type ShotRepository struct {
	db *store.Database
}

// NewShotRepository creates a new shot repository
func NewShotRepository(db *store.Database) *ShotRepository {
	return &ShotRepository{db: db}
}

// Insert records a shot and returns its ID
func (r *ShotRepository) Insert(ctx context.Context, s *store.Shot) (int, error) {
	query := `
		INSERT INTO shots (game_id, player_id, quarter, time_elapsed_seconds, shot_type, shot_quality, made)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING shot_id
	`

	var shotID int
	err := r.db.DB().QueryRowContext(ctx, query,
		s.GameID, s.PlayerID, s.Quarter, s.TimeElapsedSeconds,
		s.ShotType, s.ShotQuality, s.Made,
	).Scan(&shotID)
	if err != nil {
		return 0, fmt.Errorf("inserting shot: %w", err)
	}

	return shotID, nil
}

// List returns shots joined with player identity, optionally filtered by
// game and/or player. Zero filter values mean "all".
func (r *ShotRepository) List(ctx context.Context, gameID, playerID int) ([]*store.Shot, error) {
	query := `
		SELECT s.shot_id, s.game_id, s.player_id, s.quarter, s.time_elapsed_seconds,
			s.shot_type, s.shot_quality, s.made, s.created_at,
			p.player_name, p.jersey_number
		FROM shots s
		JOIN players p ON s.player_id = p.player_id
		WHERE 1=1
	`
	args := []interface{}{}

	if gameID != 0 {
		args = append(args, gameID)
		query += fmt.Sprintf(" AND s.game_id = $%d", len(args))
	}
	if playerID != 0 {
		args = append(args, playerID)
		query += fmt.Sprintf(" AND s.player_id = $%d", len(args))
	}

	query += " ORDER BY s.game_id, s.time_elapsed_seconds"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying shots: %w", err)
	}
	defer rows.Close()

	var shots []*store.Shot
	for rows.Next() {
		s := &store.Shot{}
		err := rows.Scan(
			&s.ShotID, &s.GameID, &s.PlayerID, &s.Quarter, &s.TimeElapsedSeconds,
			&s.ShotType, &s.ShotQuality, &s.Made, &s.CreatedAt,
			&s.PlayerName, &s.JerseyNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning shot: %w", err)
		}
		shots = append(shots, s)
	}

	return shots, rows.Err()
}
