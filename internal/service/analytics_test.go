package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapmjs/bball-tracker/internal/store"
)

func possession(outcome, failureType string) *store.Possession {
	p := &store.Possession{Outcome: outcome}
	if failureType != "" {
		p.FailureType = sql.NullString{String: failureType, Valid: true}
	}
	return p
}

func TestSummarizePossessions(t *testing.T) {
	possessions := []*store.Possession{
		possession(store.OutcomeGood, ""),
		possession(store.OutcomeGood, ""),
		possession(store.OutcomeNeutral, ""),
		possession(store.OutcomeFailed, store.FailureTurnover),
	}

	summary := SummarizePossessions(possessions)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Good)
	assert.Equal(t, 1, summary.Neutral)
	assert.Equal(t, 1, summary.Failed)

	require.NotNil(t, summary.Efficiency)
	require.NotNil(t, summary.NeutralRate)
	require.NotNil(t, summary.WasteRate)
	assert.InDelta(t, 50.0, *summary.Efficiency, 0.001)
	assert.InDelta(t, 25.0, *summary.NeutralRate, 0.001)
	assert.InDelta(t, 25.0, *summary.WasteRate, 0.001)

	// The three rates always partition the whole
	assert.InDelta(t, 100.0, *summary.Efficiency+*summary.NeutralRate+*summary.WasteRate, 0.001)
}

func TestSummarizePossessionsNoData(t *testing.T) {
	summary := SummarizePossessions(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Nil(t, summary.Efficiency)
	assert.Nil(t, summary.NeutralRate)
	assert.Nil(t, summary.WasteRate)
}

func TestRankConstraints(t *testing.T) {
	possessions := []*store.Possession{
		possession(store.OutcomeFailed, store.FailureTurnover),
		possession(store.OutcomeFailed, store.FailureTurnover),
		possession(store.OutcomeFailed, store.FailureShotSelection),
		possession(store.OutcomeGood, ""),
	}

	analysis := RankConstraints(possessions)

	require.Len(t, analysis.Breakdown, 2)
	assert.Equal(t, store.FailureTurnover, analysis.Breakdown[0].FailureType)
	assert.Equal(t, 2, analysis.Breakdown[0].Count)
	assert.Equal(t, store.FailureShotSelection, analysis.Breakdown[1].FailureType)
	assert.Equal(t, 1, analysis.Breakdown[1].Count)
	assert.Equal(t, store.FailureTurnover, analysis.Constraint)
}

func TestRankConstraintsTieBreak(t *testing.T) {
	// Equal counts rank alphabetically so repeated runs agree
	possessions := []*store.Possession{
		possession(store.OutcomeFailed, store.FailureTurnover),
		possession(store.OutcomeFailed, store.FailureBadProcess),
	}

	analysis := RankConstraints(possessions)

	require.Len(t, analysis.Breakdown, 2)
	assert.Equal(t, store.FailureBadProcess, analysis.Breakdown[0].FailureType)
	assert.Equal(t, store.FailureBadProcess, analysis.Constraint)
}

func TestRankConstraintsNoFailures(t *testing.T) {
	analysis := RankConstraints([]*store.Possession{
		possession(store.OutcomeGood, ""),
		possession(store.OutcomeNeutral, ""),
	})

	assert.Empty(t, analysis.Breakdown)
	assert.Empty(t, analysis.Constraint)
}

func TestLineupPerformanceGroupsByPlayerSet(t *testing.T) {
	score := sql.NullString{String: store.DetailedOutcomeScore, Valid: true}
	miss := sql.NullString{String: "MISS", Valid: true}

	// Same five players in different recorded orders
	possessions := []*store.DetailedPossession{
		{Lineup: store.Lineup{5, 3, 1, 4, 2}, Outcome: score, PointsScored: 2},
		{Lineup: store.Lineup{1, 2, 3, 4, 5}, Outcome: score, PointsScored: 3},
		{Lineup: store.Lineup{2, 1, 4, 3, 5}, Outcome: miss, PointsScored: 0},
		{Lineup: store.Lineup{6, 7, 8, 9, 10}, Outcome: score, PointsScored: 2},
	}

	lines := LineupPerformance(possessions)

	require.Len(t, lines, 2)
	assert.Equal(t, store.Lineup{1, 2, 3, 4, 5}, lines[0].Lineup)
	assert.Equal(t, 3, lines[0].Possessions)
	assert.Equal(t, 2, lines[0].Scores)
	assert.Equal(t, 5, lines[0].TotalPoints)

	assert.Equal(t, store.Lineup{6, 7, 8, 9, 10}, lines[1].Lineup)
	assert.Equal(t, 1, lines[1].Possessions)
	assert.Equal(t, 2, lines[1].TotalPoints)
}

func TestNetImpactRanking(t *testing.T) {
	lines := []*store.PlayerGameStats{
		{
			PlayerID:          1,
			PlayerName:        "Jordan Miller",
			MinutesPlayed:     20,
			Points:            10,
			Assists:           3,
			ReboundsOffensive: 2,
			ReboundsDefensive: 4,
			Turnovers:         2,
			Steals:            1,
			Blocks:            0,
			Fouls:             3,
		},
	}

	ranking := NetImpactRanking(lines)

	require.Len(t, ranking, 1)
	// 10 + 2*3 + 6 + 1 - 2*2 - 3 = 16
	assert.Equal(t, 16, ranking[0].NetImpact)
	require.NotNil(t, ranking[0].NetImpactPer10)
	// 16 / 20 * 10 = 8.0
	assert.InDelta(t, 8.0, *ranking[0].NetImpactPer10, 0.001)
}

func TestNetImpactRankingZeroMinutes(t *testing.T) {
	ranking := NetImpactRanking([]*store.PlayerGameStats{
		{PlayerID: 1, Points: 4},
	})

	require.Len(t, ranking, 1)
	assert.Equal(t, 4, ranking[0].NetImpact)
	assert.Nil(t, ranking[0].NetImpactPer10)
}

func TestNetImpactRankingAggregatesAcrossGames(t *testing.T) {
	lines := []*store.PlayerGameStats{
		{PlayerID: 1, GameID: 1, MinutesPlayed: 10, Points: 6},
		{PlayerID: 1, GameID: 2, MinutesPlayed: 10, Points: 4, Turnovers: 1},
		{PlayerID: 2, GameID: 1, MinutesPlayed: 20, Points: 20},
	}

	ranking := NetImpactRanking(lines)

	require.Len(t, ranking, 2)
	assert.Equal(t, 2, ranking[0].PlayerID)
	assert.Equal(t, 20, ranking[0].NetImpact)

	assert.Equal(t, 1, ranking[1].PlayerID)
	assert.Equal(t, 2, ranking[1].GamesPlayed)
	assert.Equal(t, 20, ranking[1].MinutesPlayed)
	// (6 + 4) - 2*1 = 8
	assert.Equal(t, 8, ranking[1].NetImpact)
	require.NotNil(t, ranking[1].NetImpactPer10)
	assert.InDelta(t, 4.0, *ranking[1].NetImpactPer10, 0.001)
}

func TestNetImpactRankingTieBreak(t *testing.T) {
	ranking := NetImpactRanking([]*store.PlayerGameStats{
		{PlayerID: 7, Points: 5},
		{PlayerID: 3, Points: 5},
	})

	require.Len(t, ranking, 2)
	assert.Equal(t, 3, ranking[0].PlayerID)
	assert.Equal(t, 7, ranking[1].PlayerID)
}

func TestGroupShooting(t *testing.T) {
	shots := []*store.Shot{
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "3PT", ShotQuality: "Open", Made: true},
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "3PT", ShotQuality: "Open", Made: true},
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "3PT", ShotQuality: "Open", Made: true},
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "3PT", ShotQuality: "Open", Made: false},
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "3PT", ShotQuality: "Open", Made: false},
		{PlayerID: 1, PlayerName: "Avery Cole", ShotType: "Layup", ShotQuality: "Contested", Made: true},
	}

	lines := GroupShooting(shots)

	require.Len(t, lines, 2)
	assert.Equal(t, "3PT", lines[0].ShotType)
	assert.Equal(t, 5, lines[0].Attempts)
	assert.Equal(t, 3, lines[0].Makes)
	assert.InDelta(t, 60.0, lines[0].FGPct, 0.001)

	assert.Equal(t, "Layup", lines[1].ShotType)
	assert.InDelta(t, 100.0, lines[1].FGPct, 0.001)
}

func TestGroupShootingRoundsToOneDecimal(t *testing.T) {
	shots := []*store.Shot{
		{PlayerID: 1, ShotType: "2PT", ShotQuality: "Open", Made: true},
		{PlayerID: 1, ShotType: "2PT", ShotQuality: "Open", Made: false},
		{PlayerID: 1, ShotType: "2PT", ShotQuality: "Open", Made: false},
	}

	lines := GroupShooting(shots)

	require.Len(t, lines, 1)
	// 1/3 = 33.333... rounds to 33.3
	assert.InDelta(t, 33.3, lines[0].FGPct, 0.0001)
}
