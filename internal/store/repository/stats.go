package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapmjs/bball-tracker/internal/store"
)

// StatsRepository handles per-(game, player) box-score lines
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// Upsert inserts or fully replaces the stat line for (game, player).
// The second write's values overwrite the first's; deltas are never merged.
func (r *StatsRepository) Upsert(ctx context.Context, stats *store.PlayerGameStats) error {
	query := `
		INSERT INTO player_game_stats (game_id, player_id, minutes_played, points, assists,
			rebounds_offensive, rebounds_defensive, turnovers, steals, blocks, fouls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			minutes_played = EXCLUDED.minutes_played,
			points = EXCLUDED.points,
			assists = EXCLUDED.assists,
			rebounds_offensive = EXCLUDED.rebounds_offensive,
			rebounds_defensive = EXCLUDED.rebounds_defensive,
			turnovers = EXCLUDED.turnovers,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			fouls = EXCLUDED.fouls,
			updated_at = NOW()
		RETURNING stat_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		stats.GameID, stats.PlayerID, stats.MinutesPlayed, stats.Points, stats.Assists,
		stats.ReboundsOffensive, stats.ReboundsDefensive, stats.Turnovers,
		stats.Steals, stats.Blocks, stats.Fouls,
	).Scan(&stats.StatID)

	if err != nil {
		return fmt.Errorf("upserting player stats: %w", err)
	}

	return nil
}

// ListByGame returns all stat lines for a game joined with player identity
func (r *StatsRepository) ListByGame(ctx context.Context, gameID int) ([]*store.PlayerGameStats, error) {
	query := `
		SELECT pgs.stat_id, pgs.game_id, pgs.player_id, pgs.minutes_played, pgs.points,
			pgs.assists, pgs.rebounds_offensive, pgs.rebounds_defensive, pgs.turnovers,
			pgs.steals, pgs.blocks, pgs.fouls, pgs.updated_at,
			p.player_name, p.jersey_number
		FROM player_game_stats pgs
		JOIN players p ON pgs.player_id = p.player_id
		WHERE pgs.game_id = $1
		ORDER BY p.jersey_number
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying game stats: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows)
}

// ListCompletedByTeam returns stat lines across all of a team's completed
// games. The aggregation layer sums these per player.
func (r *StatsRepository) ListCompletedByTeam(ctx context.Context, teamID int) ([]*store.PlayerGameStats, error) {
	query := `
		SELECT pgs.stat_id, pgs.game_id, pgs.player_id, pgs.minutes_played, pgs.points,
			pgs.assists, pgs.rebounds_offensive, pgs.rebounds_defensive, pgs.turnovers,
			pgs.steals, pgs.blocks, pgs.fouls, pgs.updated_at,
			p.player_name, p.jersey_number
		FROM player_game_stats pgs
		JOIN players p ON pgs.player_id = p.player_id
		JOIN games g ON pgs.game_id = g.game_id
		WHERE g.team_id = $1 AND g.game_completed = TRUE
		ORDER BY pgs.game_id, p.jersey_number
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows)
}

// scanStats scans multiple stat-line rows
func (r *StatsRepository) scanStats(rows *sql.Rows) ([]*store.PlayerGameStats, error) {
	var allStats []*store.PlayerGameStats
	for rows.Next() {
		stats := &store.PlayerGameStats{}
		err := rows.Scan(
			&stats.StatID, &stats.GameID, &stats.PlayerID, &stats.MinutesPlayed, &stats.Points,
			&stats.Assists, &stats.ReboundsOffensive, &stats.ReboundsDefensive, &stats.Turnovers,
			&stats.Steals, &stats.Blocks, &stats.Fouls, &stats.UpdatedAt,
			&stats.PlayerName, &stats.JerseyNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player stats: %w", err)
		}
		allStats = append(allStats, stats)
	}

	return allStats, rows.Err()
}
