package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateTeamRequest is the payload for creating a team
type CreateTeamRequest struct {
	TeamName string `json:"team_name" validate:"required"`
	Season   string `json:"season" validate:"required"`
}

// AddPlayerRequest is the payload for adding or updating a roster entry
type AddPlayerRequest struct {
	PlayerName   string `json:"player_name" validate:"required"`
	JerseyNumber string `json:"jersey_number" validate:"required"`
	Position     string `json:"position" validate:"omitempty,oneof=PG SG SF PF C"`
}

// StartGameRequest is the payload for starting a game
type StartGameRequest struct {
	GameDate string `json:"game_date" validate:"required,datetime=2006-01-02"`
	Opponent string `json:"opponent" validate:"required"`
	Location string `json:"location" validate:"required,oneof=Home Away"`
}

// UpdateScoreRequest is the payload for a running-score change. Pointer
// fields so an explicit zero passes the required check; score values are
// otherwise unconstrained.
type UpdateScoreRequest struct {
	ScoreUs   *int `json:"score_us" validate:"required"`
	ScoreThem *int `json:"score_them" validate:"required"`
}

// RecordPossessionRequest is the payload for a simple possession
type RecordPossessionRequest struct {
	Quarter        string `json:"quarter" validate:"required"`
	TimeRemaining  string `json:"time_remaining"`
	Outcome        string `json:"outcome" validate:"required,oneof=GOOD NEUTRAL FAILED"`
	FailureType    string `json:"failure_type" validate:"omitempty,oneof=Turnover Ball_Advancement Shot_Selection Bad_Process"`
	PlayersOnCourt []int  `json:"players_on_court"`
}

// RecordDetailedPossessionRequest is the payload for a detailed possession
type RecordDetailedPossessionRequest struct {
	Quarter            string `json:"quarter" validate:"required"`
	TimeElapsedSeconds int    `json:"time_elapsed_seconds" validate:"min=0"`
	Lineup             []int  `json:"lineup" validate:"required,min=1"`
	BallAdvancement    string `json:"ball_advancement"`
	ShotQuality        string `json:"shot_quality"`
	ShooterID          int    `json:"shooter_id"`
	ShotType           string `json:"shot_type"`
	ShotResult         string `json:"shot_result"`
	Outcome            string `json:"outcome"`
	PointsScored       int    `json:"points_scored" validate:"min=0"`
	MomentumState      int    `json:"momentum_state"`
}

// RecordShotRequest is the payload for a shot attempt
type RecordShotRequest struct {
	PlayerID           int    `json:"player_id" validate:"required"`
	Quarter            string `json:"quarter" validate:"required"`
	TimeElapsedSeconds int    `json:"time_elapsed_seconds" validate:"min=0"`
	ShotType           string `json:"shot_type" validate:"required"`
	ShotQuality        string `json:"shot_quality" validate:"required"`
	Made               *bool  `json:"made" validate:"required"`
}

// SaveStatsRequest is the payload for a full box-score line. Missing
// fields default to zero and the stored row is replaced wholesale.
type SaveStatsRequest struct {
	MinutesPlayed     int `json:"minutes_played" validate:"min=0"`
	Points            int `json:"points" validate:"min=0"`
	Assists           int `json:"assists" validate:"min=0"`
	ReboundsOffensive int `json:"rebounds_offensive" validate:"min=0"`
	ReboundsDefensive int `json:"rebounds_defensive" validate:"min=0"`
	Turnovers         int `json:"turnovers" validate:"min=0"`
	Steals            int `json:"steals" validate:"min=0"`
	Blocks            int `json:"blocks" validate:"min=0"`
	Fouls             int `json:"fouls" validate:"min=0"`
}

// decodeAndValidate parses a JSON body into dst and runs struct validation
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var details strings.Builder
		for _, fieldErr := range err.(validator.ValidationErrors) {
			if details.Len() > 0 {
				details.WriteString("; ")
			}
			details.WriteString(fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %s", details.String())
	}

	return nil
}
