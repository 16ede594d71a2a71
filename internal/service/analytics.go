package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/chapmjs/bball-tracker/internal/store"
	"github.com/chapmjs/bball-tracker/internal/store/repository"
)

// AnalyticsService computes derived metrics from raw possession, shot and
// box-score rows. The repositories fetch rows; all math happens here so
// every metric is computable (and testable) without a database.
type AnalyticsService struct {
	possessionRepo *repository.PossessionRepository
	shotRepo       *repository.ShotRepository
	statsRepo      *repository.StatsRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *store.Database) *AnalyticsService {
	return &AnalyticsService{
		possessionRepo: repository.NewPossessionRepository(db),
		shotRepo:       repository.NewShotRepository(db),
		statsRepo:      repository.NewStatsRepository(db),
	}
}

// PossessionSummary is the outcome breakdown for a set of possessions.
// Rates are nil ("no data") when no possessions were recorded.
type PossessionSummary struct {
	Total       int      `json:"total"`
	Good        int      `json:"good"`
	Neutral     int      `json:"neutral"`
	Failed      int      `json:"failed"`
	Efficiency  *float64 `json:"efficiency,omitempty"`
	NeutralRate *float64 `json:"neutral_rate,omitempty"`
	WasteRate   *float64 `json:"waste_rate,omitempty"`
}

// ConstraintCount is one failure reason with its occurrence count
type ConstraintCount struct {
	FailureType string `json:"failure_type"`
	Count       int    `json:"count"`
}

// ConstraintAnalysis ranks the causes of failed possessions. Constraint is
// the top-ranked reason, the single highest-frequency failure mode.
type ConstraintAnalysis struct {
	Breakdown  []ConstraintCount `json:"breakdown"`
	Constraint string            `json:"constraint,omitempty"`
}

// LineupLine is the performance of one five-player lineup
type LineupLine struct {
	Lineup      store.Lineup `json:"lineup"`
	Possessions int          `json:"possessions"`
	Scores      int          `json:"scores"`
	TotalPoints int          `json:"total_points"`
}

// PlayerImpact is a player's aggregated stat line with the net-impact score
type PlayerImpact struct {
	PlayerID       int      `json:"player_id"`
	PlayerName     string   `json:"player_name"`
	JerseyNumber   string   `json:"jersey_number"`
	GamesPlayed    int      `json:"games_played"`
	MinutesPlayed  int      `json:"minutes_played"`
	Points         int      `json:"points"`
	Assists        int      `json:"assists"`
	TotalRebounds  int      `json:"total_rebounds"`
	Turnovers      int      `json:"turnovers"`
	Steals         int      `json:"steals"`
	Blocks         int      `json:"blocks"`
	Fouls          int      `json:"fouls"`
	NetImpact      int      `json:"net_impact"`
	NetImpactPer10 *float64 `json:"net_impact_per_10,omitempty"`
}

// ShootingLine is shooting performance for one (player, shot type, quality) group
type ShootingLine struct {
	PlayerID     int     `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	JerseyNumber string  `json:"jersey_number"`
	ShotType     string  `json:"shot_type"`
	ShotQuality  string  `json:"shot_quality"`
	Attempts     int     `json:"attempts"`
	Makes        int     `json:"makes"`
	FGPct        float64 `json:"fg_pct"`
}

// GamePossessionSummary computes the outcome breakdown for one game
func (s *AnalyticsService) GamePossessionSummary(ctx context.Context, gameID int) (*PossessionSummary, error) {
	possessions, err := s.possessionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching possessions: %w", err)
	}

	return SummarizePossessions(possessions), nil
}

// TeamPossessionSummary computes the breakdown across all completed games
func (s *AnalyticsService) TeamPossessionSummary(ctx context.Context, teamID int) (*PossessionSummary, error) {
	possessions, err := s.possessionRepo.ListCompletedByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team possessions: %w", err)
	}

	return SummarizePossessions(possessions), nil
}

// GameConstraintAnalysis ranks failure reasons for one game
func (s *AnalyticsService) GameConstraintAnalysis(ctx context.Context, gameID int) (*ConstraintAnalysis, error) {
	possessions, err := s.possessionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching possessions: %w", err)
	}

	return RankConstraints(possessions), nil
}

// GameLineupPerformance groups one game's detailed possessions by lineup
func (s *AnalyticsService) GameLineupPerformance(ctx context.Context, gameID int) ([]LineupLine, error) {
	possessions, err := s.possessionRepo.ListDetailedByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching detailed possessions: %w", err)
	}

	return LineupPerformance(possessions), nil
}

// TeamLineupPerformance groups all of a team's detailed possessions by lineup
func (s *AnalyticsService) TeamLineupPerformance(ctx context.Context, teamID int) ([]LineupLine, error) {
	possessions, err := s.possessionRepo.ListDetailedByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team detailed possessions: %w", err)
	}

	return LineupPerformance(possessions), nil
}

// GameNetImpact ranks players by net impact for one game
func (s *AnalyticsService) GameNetImpact(ctx context.Context, gameID int) ([]PlayerImpact, error) {
	lines, err := s.statsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game stats: %w", err)
	}

	return NetImpactRanking(lines), nil
}

// TeamNetImpact ranks players by net impact summed across completed games
func (s *AnalyticsService) TeamNetImpact(ctx context.Context, teamID int) ([]PlayerImpact, error) {
	lines, err := s.statsRepo.ListCompletedByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team stats: %w", err)
	}

	return NetImpactRanking(lines), nil
}

// ShootingStats groups shots by (player, shot type, quality), optionally
// filtered by game and/or player
func (s *AnalyticsService) ShootingStats(ctx context.Context, gameID, playerID int) ([]ShootingLine, error) {
	shots, err := s.shotRepo.List(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("fetching shots: %w", err)
	}

	return GroupShooting(shots), nil
}

// SummarizePossessions computes efficiency, neutral and waste rates.
// With no possessions the rates stay nil; zero possessions is "no data",
// never a division fault.
func SummarizePossessions(possessions []*store.Possession) *PossessionSummary {
	summary := &PossessionSummary{Total: len(possessions)}

	for _, p := range possessions {
		switch p.Outcome {
		case store.OutcomeGood:
			summary.Good++
		case store.OutcomeNeutral:
			summary.Neutral++
		case store.OutcomeFailed:
			summary.Failed++
		}
	}

	if summary.Total == 0 {
		return summary
	}

	total := float64(summary.Total)
	summary.Efficiency = ptr(float64(summary.Good) / total * 100)
	summary.NeutralRate = ptr(float64(summary.Neutral) / total * 100)
	summary.WasteRate = ptr(float64(summary.Failed) / total * 100)

	return summary
}

// RankConstraints counts failure reasons among FAILED possessions and ranks
// them by count descending. Ties break lexicographically on the reason name
// so the ranking is deterministic.
func RankConstraints(possessions []*store.Possession) *ConstraintAnalysis {
	counts := make(map[string]int)
	for _, p := range possessions {
		if p.Outcome != store.OutcomeFailed || !p.FailureType.Valid {
			continue
		}
		counts[p.FailureType.String]++
	}

	analysis := &ConstraintAnalysis{Breakdown: make([]ConstraintCount, 0, len(counts))}
	for reason, count := range counts {
		analysis.Breakdown = append(analysis.Breakdown, ConstraintCount{FailureType: reason, Count: count})
	}

	sort.Slice(analysis.Breakdown, func(i, j int) bool {
		a, b := analysis.Breakdown[i], analysis.Breakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.FailureType < b.FailureType
	})

	if len(analysis.Breakdown) > 0 {
		analysis.Constraint = analysis.Breakdown[0].FailureType
	}

	return analysis
}

// LineupPerformance groups detailed possessions by lineup identity. Lineup
// identity is the normalized player set, so the same five players recorded
// in a different order land in the same group. Ordered by total points
// descending.
func LineupPerformance(possessions []*store.DetailedPossession) []LineupLine {
	groups := make(map[string]*LineupLine)
	for _, p := range possessions {
		key := p.Lineup.Key()
		line, ok := groups[key]
		if !ok {
			line = &LineupLine{Lineup: p.Lineup.Normalize()}
			groups[key] = line
		}

		line.Possessions++
		if p.Outcome.Valid && p.Outcome.String == store.DetailedOutcomeScore {
			line.Scores++
		}
		line.TotalPoints += p.PointsScored
	}

	lines := make([]LineupLine, 0, len(groups))
	for _, line := range groups {
		lines = append(lines, *line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].TotalPoints != lines[j].TotalPoints {
			return lines[i].TotalPoints > lines[j].TotalPoints
		}
		return lines[i].Lineup.Key() < lines[j].Lineup.Key()
	})

	return lines
}

// Net-impact weighting. The coefficients encode the product's scoring
// philosophy and are a fixed contract, not tunables.
const (
	assistWeight   = 2
	turnoverWeight = 2
)

// NetImpactRanking sums stat lines per player and scores each player:
//
//	net_impact = points + 2*assists + rebounds + steals - 2*turnovers - fouls
//	per 10 min = net_impact / minutes * 10
//
// per-10 stays unset for players with zero recorded minutes. Ranked by net
// impact descending.
func NetImpactRanking(lines []*store.PlayerGameStats) []PlayerImpact {
	totals := make(map[int]*PlayerImpact)
	for _, line := range lines {
		impact, ok := totals[line.PlayerID]
		if !ok {
			impact = &PlayerImpact{
				PlayerID:     line.PlayerID,
				PlayerName:   line.PlayerName,
				JerseyNumber: line.JerseyNumber,
			}
			totals[line.PlayerID] = impact
		}

		impact.GamesPlayed++
		impact.MinutesPlayed += line.MinutesPlayed
		impact.Points += line.Points
		impact.Assists += line.Assists
		impact.TotalRebounds += line.ReboundsOffensive + line.ReboundsDefensive
		impact.Turnovers += line.Turnovers
		impact.Steals += line.Steals
		impact.Blocks += line.Blocks
		impact.Fouls += line.Fouls
	}

	ranking := make([]PlayerImpact, 0, len(totals))
	for _, impact := range totals {
		impact.NetImpact = impact.Points +
			assistWeight*impact.Assists +
			impact.TotalRebounds +
			impact.Steals -
			turnoverWeight*impact.Turnovers -
			impact.Fouls

		if impact.MinutesPlayed > 0 {
			impact.NetImpactPer10 = ptr(round1(float64(impact.NetImpact) / float64(impact.MinutesPlayed) * 10))
		}

		ranking = append(ranking, *impact)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].NetImpact != ranking[j].NetImpact {
			return ranking[i].NetImpact > ranking[j].NetImpact
		}
		return ranking[i].PlayerID < ranking[j].PlayerID
	})

	return ranking
}

// GroupShooting groups shots by (player, shot type, quality) and computes
// attempts, makes and the field-goal percentage. Ordered by player name,
// then shot type.
func GroupShooting(shots []*store.Shot) []ShootingLine {
	type key struct {
		playerID int
		shotType string
		quality  string
	}

	groups := make(map[key]*ShootingLine)
	for _, shot := range shots {
		k := key{playerID: shot.PlayerID, shotType: shot.ShotType, quality: shot.ShotQuality}
		line, ok := groups[k]
		if !ok {
			line = &ShootingLine{
				PlayerID:     shot.PlayerID,
				PlayerName:   shot.PlayerName,
				JerseyNumber: shot.JerseyNumber,
				ShotType:     shot.ShotType,
				ShotQuality:  shot.ShotQuality,
			}
			groups[k] = line
		}

		line.Attempts++
		if shot.Made {
			line.Makes++
		}
	}

	lines := make([]ShootingLine, 0, len(groups))
	for _, line := range groups {
		if line.Attempts > 0 {
			line.FGPct = round1(float64(line.Makes) * 100.0 / float64(line.Attempts))
		}
		lines = append(lines, *line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].PlayerName != lines[j].PlayerName {
			return lines[i].PlayerName < lines[j].PlayerName
		}
		if lines[i].ShotType != lines[j].ShotType {
			return lines[i].ShotType < lines[j].ShotType
		}
		return lines[i].ShotQuality < lines[j].ShotQuality
	})

	return lines
}

// round1 rounds to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func ptr(x float64) *float64 {
	return &x
}
