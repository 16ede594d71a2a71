package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a new team and returns its ID
func (r *TeamRepository) Create(ctx context.Context, teamName, season string) (int, error) {
	query := `
		INSERT INTO teams (team_name, season)
		VALUES ($1, $2)
		RETURNING team_id
	`

	var teamID int
	err := r.db.DB().QueryRowContext(ctx, query, teamName, season).Scan(&teamID)
	if err != nil {
		return 0, fmt.Errorf("inserting team: %w", err)
	}

	return teamID, nil
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `
		SELECT team_id, team_name, season, created_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.TeamName, &team.Season, &team.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetAll returns all teams, newest first
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, team_name, season, created_at
		FROM teams
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(&team.TeamID, &team.TeamName, &team.Season, &team.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetMostRecent returns the most recently created team, or nil if no team
// exists yet. Absence is a valid outcome, not an error.
func (r *TeamRepository) GetMostRecent(ctx context.Context) (*store.Team, error) {
	query := `
		SELECT team_id, team_name, season, created_at
		FROM teams
		ORDER BY created_at DESC
		LIMIT 1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&team.TeamID, &team.TeamName, &team.Season, &team.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying most recent team: %w", err)
	}

	return team, nil
}
