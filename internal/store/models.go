package store

import (
	"database/sql"
	"time"
)

// Possession outcomes
const (
	OutcomeGood    = "GOOD"
	OutcomeNeutral = "NEUTRAL"
	OutcomeFailed  = "FAILED"
)

// Failure reasons for FAILED possessions
const (
	FailureTurnover        = "Turnover"
	FailureBallAdvancement = "Ball_Advancement"
	FailureShotSelection   = "Shot_Selection"
	FailureBadProcess      = "Bad_Process"
)

// DetailedOutcomeScore marks a detailed possession that ended in a score
const DetailedOutcomeScore = "SCORE"

// Team represents a tracked team
type Team struct {
	TeamID    int       `json:"team_id" db:"team_id"`
	TeamName  string    `json:"team_name" db:"team_name"`
	Season    string    `json:"season" db:"season"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Player represents a roster entry
type Player struct {
	PlayerID     int            `json:"player_id" db:"player_id"`
	TeamID       int            `json:"team_id" db:"team_id"`
	PlayerName   string         `json:"player_name" db:"player_name"`
	JerseyNumber string         `json:"jersey_number" db:"jersey_number"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Game represents a single tracked game
type Game struct {
	GameID         int       `json:"game_id" db:"game_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	GameDate       time.Time `json:"game_date" db:"game_date"`
	Opponent       string    `json:"opponent" db:"opponent"`
	Location       string    `json:"location" db:"location"`
	FinalScoreUs   int       `json:"final_score_us" db:"final_score_us"`
	FinalScoreThem int       `json:"final_score_them" db:"final_score_them"`
	GameCompleted  bool      `json:"game_completed" db:"game_completed"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Possession is the simple possession model: one outcome per trip down
// the floor, with a failure reason only when the possession failed.
type Possession struct {
	PossessionID   int            `json:"possession_id" db:"possession_id"`
	GameID         int            `json:"game_id" db:"game_id"`
	Quarter        string         `json:"quarter" db:"quarter"`
	TimeRemaining  sql.NullString `json:"time_remaining,omitempty" db:"time_remaining"`
	Outcome        string         `json:"outcome" db:"outcome"`
	FailureType    sql.NullString `json:"failure_type,omitempty" db:"failure_type"`
	PlayersOnCourt Lineup         `json:"players_on_court" db:"players_on_court"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// DetailedPossession is the richer possession model. It is an independent
// event stream from Possession; the two are never cross-joined.
type DetailedPossession struct {
	PossessionID       int            `json:"possession_id" db:"possession_id"`
	GameID             int            `json:"game_id" db:"game_id"`
	Quarter            string         `json:"quarter" db:"quarter"`
	TimeElapsedSeconds int            `json:"time_elapsed_seconds" db:"time_elapsed_seconds"`
	Lineup             Lineup         `json:"lineup" db:"lineup"`
	BallAdvancement    sql.NullString `json:"ball_advancement,omitempty" db:"ball_advancement"`
	ShotQuality        sql.NullString `json:"shot_quality,omitempty" db:"shot_quality"`
	ShooterID          sql.NullInt32  `json:"shooter_id,omitempty" db:"shooter_id"`
	ShotType           sql.NullString `json:"shot_type,omitempty" db:"shot_type"`
	ShotResult         sql.NullString `json:"shot_result,omitempty" db:"shot_result"`
	Outcome            sql.NullString `json:"outcome,omitempty" db:"outcome"`
	PointsScored       int            `json:"points_scored" db:"points_scored"`
	MomentumState      int            `json:"momentum_state" db:"momentum_state"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
}

// Shot represents a single shot attempt
type Shot struct {
	ShotID             int       `json:"shot_id" db:"shot_id"`
	GameID             int       `json:"game_id" db:"game_id"`
	PlayerID           int       `json:"player_id" db:"player_id"`
	Quarter            string    `json:"quarter" db:"quarter"`
	TimeElapsedSeconds int       `json:"time_elapsed_seconds" db:"time_elapsed_seconds"`
	ShotType           string    `json:"shot_type" db:"shot_type"`
	ShotQuality        string    `json:"shot_quality" db:"shot_quality"`
	Made               bool      `json:"made" db:"made"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	// Populated from the players join for reporting
	PlayerName   string `json:"player_name,omitempty" db:"-"`
	JerseyNumber string `json:"jersey_number,omitempty" db:"-"`
}

// PlayerGameStats is the per-(game, player) box-score line. Upserted as a
// full row: later writes replace every field, they do not merge deltas.
type PlayerGameStats struct {
	StatID            int       `json:"stat_id" db:"stat_id"`
	GameID            int       `json:"game_id" db:"game_id"`
	PlayerID          int       `json:"player_id" db:"player_id"`
	MinutesPlayed     int       `json:"minutes_played" db:"minutes_played"`
	Points            int       `json:"points" db:"points"`
	Assists           int       `json:"assists" db:"assists"`
	ReboundsOffensive int       `json:"rebounds_offensive" db:"rebounds_offensive"`
	ReboundsDefensive int       `json:"rebounds_defensive" db:"rebounds_defensive"`
	Turnovers         int       `json:"turnovers" db:"turnovers"`
	Steals            int       `json:"steals" db:"steals"`
	Blocks            int       `json:"blocks" db:"blocks"`
	Fouls             int       `json:"fouls" db:"fouls"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	// Populated from the players join for reporting
	PlayerName   string `json:"player_name,omitempty" db:"-"`
	JerseyNumber string `json:"jersey_number,omitempty" db:"-"`
}
