package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// PossessionRepository handles both possession event streams: the simple
// outcome-per-trip model and the detailed lineup/shot model. The two are
// independent tables and are never cross-joined.
type PossessionRepository struct {
	db *store.Database
}

// NewPossessionRepository creates a new possession repository
func NewPossessionRepository(db *store.Database) *PossessionRepository {
	return &PossessionRepository{db: db}
}

// Insert records a simple possession and returns its ID
func (r *PossessionRepository) Insert(ctx context.Context, p *store.Possession) (int, error) {
	query := `
		INSERT INTO possessions (game_id, quarter, time_remaining, outcome, failure_type, players_on_court)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING possession_id
	`

	var possessionID int
	err := r.db.DB().QueryRowContext(ctx, query,
		p.GameID, p.Quarter, p.TimeRemaining, p.Outcome, p.FailureType, p.PlayersOnCourt,
	).Scan(&possessionID)
	if err != nil {
		return 0, fmt.Errorf("inserting possession: %w", err)
	}

	return possessionID, nil
}

// ListByGame returns all simple possessions for a game in recorded order
func (r *PossessionRepository) ListByGame(ctx context.Context, gameID int) ([]*store.Possession, error) {
	query := `
		SELECT possession_id, game_id, quarter, time_remaining, outcome, failure_type, players_on_court, created_at
		FROM possessions
		WHERE game_id = $1
		ORDER BY possession_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying possessions: %w", err)
	}
	defer rows.Close()

	return r.scanPossessions(rows)
}

// ListCompletedByTeam returns simple possessions across all of a team's
// completed games, for whole-season analytics.
func (r *PossessionRepository) ListCompletedByTeam(ctx context.Context, teamID int) ([]*store.Possession, error) {
	query := `
		SELECT p.possession_id, p.game_id, p.quarter, p.time_remaining, p.outcome, p.failure_type, p.players_on_court, p.created_at
		FROM possessions p
		JOIN games g ON p.game_id = g.game_id
		WHERE g.team_id = $1 AND g.game_completed = TRUE
		ORDER BY p.game_id, p.possession_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team possessions: %w", err)
	}
	defer rows.Close()

	return r.scanPossessions(rows)
}

// InsertDetailed records a detailed possession and returns its ID
func (r *PossessionRepository) InsertDetailed(ctx context.Context, p *store.DetailedPossession) (int, error) {
	query := `
		INSERT INTO detailed_possessions (game_id, quarter, time_elapsed_seconds, lineup,
			ball_advancement, shot_quality, shooter_id, shot_type, shot_result,
			outcome, points_scored, momentum_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING possession_id
	`

	var possessionID int
	err := r.db.DB().QueryRowContext(ctx, query,
		p.GameID, p.Quarter, p.TimeElapsedSeconds, p.Lineup,
		p.BallAdvancement, p.ShotQuality, p.ShooterID, p.ShotType, p.ShotResult,
		p.Outcome, p.PointsScored, p.MomentumState,
	).Scan(&possessionID)
	if err != nil {
		return 0, fmt.Errorf("inserting detailed possession: %w", err)
	}

	return possessionID, nil
}

// ListDetailedByGame returns detailed possessions for a game in elapsed-time order
func (r *PossessionRepository) ListDetailedByGame(ctx context.Context, gameID int) ([]*store.DetailedPossession, error) {
	query := `
		SELECT possession_id, game_id, quarter, time_elapsed_seconds, lineup,
			ball_advancement, shot_quality, shooter_id, shot_type, shot_result,
			outcome, points_scored, momentum_state, created_at
		FROM detailed_possessions
		WHERE game_id = $1
		ORDER BY time_elapsed_seconds
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying detailed possessions: %w", err)
	}
	defer rows.Close()

	return r.scanDetailedPossessions(rows)
}

// ListDetailedByTeam returns detailed possessions across all of a team's games
func (r *PossessionRepository) ListDetailedByTeam(ctx context.Context, teamID int) ([]*store.DetailedPossession, error) {
	query := `
		SELECT dp.possession_id, dp.game_id, dp.quarter, dp.time_elapsed_seconds, dp.lineup,
			dp.ball_advancement, dp.shot_quality, dp.shooter_id, dp.shot_type, dp.shot_result,
			dp.outcome, dp.points_scored, dp.momentum_state, dp.created_at
		FROM detailed_possessions dp
		JOIN games g ON dp.game_id = g.game_id
		WHERE g.team_id = $1
		ORDER BY dp.game_id, dp.time_elapsed_seconds
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team detailed possessions: %w", err)
	}
	defer rows.Close()

	return r.scanDetailedPossessions(rows)
}

// scanPossessions scans multiple simple possession rows
func (r *PossessionRepository) scanPossessions(rows *sql.Rows) ([]*store.Possession, error) {
	var possessions []*store.Possession
	for rows.Next() {
		p := &store.Possession{}
		err := rows.Scan(
			&p.PossessionID, &p.GameID, &p.Quarter, &p.TimeRemaining,
			&p.Outcome, &p.FailureType, &p.PlayersOnCourt, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning possession: %w", err)
		}
		possessions = append(possessions, p)
	}

	return possessions, rows.Err()
}

// scanDetailedPossessions scans multiple detailed possession rows
func (r *PossessionRepository) scanDetailedPossessions(rows *sql.Rows) ([]*store.DetailedPossession, error) {
	var possessions []*store.DetailedPossession
	for rows.Next() {
		p := &store.DetailedPossession{}
		err := rows.Scan(
			&p.PossessionID, &p.GameID, &p.Quarter, &p.TimeElapsedSeconds, &p.Lineup,
			&p.BallAdvancement, &p.ShotQuality, &p.ShooterID, &p.ShotType, &p.ShotResult,
			&p.Outcome, &p.PointsScored, &p.MomentumState, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning detailed possession: %w", err)
		}
		possessions = append(possessions, p)
	}

	return possessions, rows.Err()
}
