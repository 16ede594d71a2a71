package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// fakeTeamStore is an in-memory TeamStore. IDs are assigned sequentially;
// GetMostRecent returns the newest entry, matching the SQL ordering.
type fakeTeamStore struct {
	teams       []*store.Team
	nextID      int
	createCalls int
}

func newFakeTeamStore(existing ...*store.Team) *fakeTeamStore {
	f := &fakeTeamStore{nextID: 1}
	for _, team := range existing {
		f.teams = append(f.teams, team)
		if team.TeamID >= f.nextID {
			f.nextID = team.TeamID + 1
		}
	}
	return f
}

func (f *fakeTeamStore) Create(ctx context.Context, teamName, season string) (int, error) {
	f.createCalls++
	team := &store.Team{
		TeamID:    f.nextID,
		TeamName:  teamName,
		Season:    season,
		CreatedAt: time.Now(),
	}
	f.nextID++
	f.teams = append(f.teams, team)
	return team.TeamID, nil
}

func (f *fakeTeamStore) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	for _, team := range f.teams {
		if team.TeamID == teamID {
			return team, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamStore) GetAll(ctx context.Context) ([]*store.Team, error) {
	return f.teams, nil
}

func (f *fakeTeamStore) GetMostRecent(ctx context.Context) (*store.Team, error) {
	if len(f.teams) == 0 {
		return nil, nil
	}
	return f.teams[len(f.teams)-1], nil
}

func TestCurrentTeamReturnsExistingTeam(t *testing.T) {
	existing := &store.Team{TeamID: 3, TeamName: "Westview", Season: "2024-25"}
	teams := newFakeTeamStore(existing)
	svc := NewTeamServiceWithStore(teams)

	team, err := svc.CurrentTeam(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, team.TeamID)
	assert.Zero(t, teams.createCalls)
}

func TestCurrentTeamBootstrapsPlaceholderOnce(t *testing.T) {
	teams := newFakeTeamStore()
	svc := NewTeamServiceWithStore(teams)

	first, err := svc.CurrentTeam(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultTeamName, first.TeamName)
	assert.Equal(t, DefaultSeason, first.Season)
	assert.Equal(t, 1, teams.createCalls)

	// Resolving again returns the same team without creating another
	second, err := svc.CurrentTeam(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.TeamID, second.TeamID)
	assert.Equal(t, 1, teams.createCalls)
}

func TestCurrentTeamPrefersNewestTeam(t *testing.T) {
	teams := newFakeTeamStore(
		&store.Team{TeamID: 1, TeamName: "Westview", Season: "2023-24"},
		&store.Team{TeamID: 2, TeamName: "Westview", Season: "2024-25"},
	)
	svc := NewTeamServiceWithStore(teams)

	team, err := svc.CurrentTeam(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, team.TeamID)
}
