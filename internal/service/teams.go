package service

import (
	"context"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
	"github.com/chapmjs/bball-tracker/internal/store/repository"
)

// Placeholder identity used when no team exists yet
const (
	DefaultTeamName = "My Team"
	DefaultSeason   = "2024-25"
)

// TeamStore is the slice of team persistence the service needs. Narrow so
// the resolution logic is testable without a database.
type TeamStore interface {
	Create(ctx context.Context, teamName, season string) (int, error)
	GetByID(ctx context.Context, teamID int) (*store.Team, error)
	GetAll(ctx context.Context) ([]*store.Team, error)
	GetMostRecent(ctx context.Context) (*store.Team, error)
}

// TeamService handles team identity and selection. "Current team" is a
// convention, not a stored pointer: the most recently created team wins.
type TeamService struct {
	teamRepo TeamStore
}

// NewTeamService creates a new team service
func NewTeamService(db *store.Database) *TeamService {
	return &TeamService{
		teamRepo: repository.NewTeamRepository(db),
	}
}

// NewTeamServiceWithStore creates a team service over an explicit store
func NewTeamServiceWithStore(teams TeamStore) *TeamService {
	return &TeamService{teamRepo: teams}
}

// CurrentTeam resolves the current team. If no team exists yet, a
// placeholder team is created so the tracker always has somewhere to
// record; calling it again returns that same team.
func (s *TeamService) CurrentTeam(ctx context.Context) (*store.Team, error) {
	team, err := s.teamRepo.GetMostRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current team: %w", err)
	}
	if team != nil {
		return team, nil
	}

	teamID, err := s.teamRepo.Create(ctx, DefaultTeamName, DefaultSeason)
	if err != nil {
		return nil, fmt.Errorf("creating default team: %w", err)
	}

	team, err = s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching default team: %w", err)
	}

	return team, nil
}

// CreateTeam creates a new team, which becomes the current team
func (s *TeamService) CreateTeam(ctx context.Context, name, season string) (*store.Team, error) {
	teamID, err := s.teamRepo.Create(ctx, name, season)
	if err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}

	return s.teamRepo.GetByID(ctx, teamID)
}

// ListTeams returns all teams, newest first
func (s *TeamService) ListTeams(ctx context.Context) ([]*store.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}
