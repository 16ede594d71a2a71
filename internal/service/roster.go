package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
	"github.com/chapmjs/bball-tracker/internal/store/repository"
)

// RosterService handles roster management. Jersey-number uniqueness within
// a team is not enforced, matching the recording tool's loose model.
type RosterService struct {
	playerRepo *repository.PlayerRepository
}

// NewRosterService creates a new roster service
func NewRosterService(db *store.Database) *RosterService {
	return &RosterService{
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// AddPlayer adds a player to a team. Position is optional.
func (s *RosterService) AddPlayer(ctx context.Context, teamID int, name, number, position string) (*store.Player, error) {
	playerID, err := s.playerRepo.Create(ctx, teamID, name, number, nullString(position))
	if err != nil {
		return nil, fmt.Errorf("adding player: %w", err)
	}

	return s.playerRepo.GetByID(ctx, playerID)
}

// UpdatePlayer replaces a player's name, number and position
func (s *RosterService) UpdatePlayer(ctx context.Context, playerID int, name, number, position string) (*store.Player, error) {
	if err := s.playerRepo.Update(ctx, playerID, name, number, nullString(position)); err != nil {
		return nil, fmt.Errorf("updating player: %w", err)
	}

	return s.playerRepo.GetByID(ctx, playerID)
}

// GetRoster returns a team's players in jersey-number order
func (s *RosterService) GetRoster(ctx context.Context, teamID int) ([]*store.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return players, nil
}

// nullString maps "" to SQL NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
