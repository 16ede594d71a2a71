package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chapmjs/bball-tracker/internal/store"
	"github.com/chapmjs/bball-tracker/internal/store/repository"
)

// GameService handles game lifecycle: start, running score, completion.
// "Active game" is the most recently created incomplete game for the team;
// if several incomplete games exist only the newest is surfaced.
type GameService struct {
	gameRepo *repository.GameRepository
}

// NewGameService creates a new game service
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo: repository.NewGameRepository(db),
	}
}

// StartGame creates a new game for a team
func (s *GameService) StartGame(ctx context.Context, teamID int, gameDate time.Time, opponent, location string) (*store.Game, error) {
	gameID, err := s.gameRepo.Create(ctx, teamID, gameDate, opponent, location)
	if err != nil {
		return nil, fmt.Errorf("starting game: %w", err)
	}

	return s.gameRepo.GetByID(ctx, gameID)
}

// GetGame retrieves a game by ID
func (s *GameService) GetGame(ctx context.Context, gameID int) (*store.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return game, nil
}

// ActiveGame returns the team's active game, or nil when none exists.
// Absence triggers the new-game flow upstream; it is not an error.
func (s *GameService) ActiveGame(ctx context.Context, teamID int) (*store.Game, error) {
	game, err := s.gameRepo.GetActiveGame(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("resolving active game: %w", err)
	}
	return game, nil
}

// ListGames returns a team's games, optionally only completed ones
func (s *GameService) ListGames(ctx context.Context, teamID int, completedOnly bool) ([]*store.Game, error) {
	games, err := s.gameRepo.ListByTeam(ctx, teamID, completedOnly)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// UpdateScore sets the running score. Scores are free-running integers;
// nothing rejects a decrease, which the tool relies on for corrections.
func (s *GameService) UpdateScore(ctx context.Context, gameID, scoreUs, scoreThem int) (*store.Game, error) {
	if err := s.gameRepo.UpdateScore(ctx, gameID, scoreUs, scoreThem); err != nil {
		return nil, fmt.Errorf("updating score: %w", err)
	}

	return s.gameRepo.GetByID(ctx, gameID)
}

// CompleteGame marks a game as completed, freezing it for analytics
func (s *GameService) CompleteGame(ctx context.Context, gameID int) (*store.Game, error) {
	if err := s.gameRepo.Complete(ctx, gameID); err != nil {
		return nil, fmt.Errorf("completing game: %w", err)
	}

	return s.gameRepo.GetByID(ctx, gameID)
}
