package rest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string, dst interface{}) error {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return decodeAndValidate(r, dst)
}

func TestDecodeRecordPossessionRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid good possession",
			body: `{"quarter":"Q1","outcome":"GOOD","players_on_court":[1,2,3,4,5]}`,
		},
		{
			name: "valid failed possession with reason",
			body: `{"quarter":"Q3","outcome":"FAILED","failure_type":"Ball_Advancement"}`,
		},
		{
			name:    "unknown outcome",
			body:    `{"quarter":"Q1","outcome":"SORTA"}`,
			wantErr: true,
		},
		{
			name:    "unknown failure reason",
			body:    `{"quarter":"Q1","outcome":"FAILED","failure_type":"Gremlins"}`,
			wantErr: true,
		},
		{
			name:    "missing quarter",
			body:    `{"outcome":"GOOD"}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			body:    `{"quarter":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RecordPossessionRequest
			err := decode(t, tt.body, &req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeUpdateScoreRequestAllowsZero(t *testing.T) {
	var req UpdateScoreRequest
	require.NoError(t, decode(t, `{"score_us":0,"score_them":0}`, &req))
	assert.Equal(t, 0, *req.ScoreUs)
	assert.Equal(t, 0, *req.ScoreThem)
}

func TestDecodeUpdateScoreRequestRequiresBothScores(t *testing.T) {
	var req UpdateScoreRequest
	assert.Error(t, decode(t, `{"score_us":10}`, &req))
}

func TestDecodeStartGameRequest(t *testing.T) {
	var req StartGameRequest
	require.NoError(t, decode(t, `{"game_date":"2025-01-18","opponent":"Eastside","location":"Home"}`, &req))

	assert.Error(t, decode(t, `{"game_date":"01/18/2025","opponent":"Eastside","location":"Home"}`, &req))
	assert.Error(t, decode(t, `{"game_date":"2025-01-18","opponent":"Eastside","location":"Gym"}`, &req))
}

func TestDecodeRecordShotRequestRequiresMade(t *testing.T) {
	var req RecordShotRequest
	require.NoError(t, decode(t, `{"player_id":4,"quarter":"Q2","shot_type":"3PT","shot_quality":"Open","made":false}`, &req))
	assert.False(t, *req.Made)

	var missing RecordShotRequest
	assert.Error(t, decode(t, `{"player_id":4,"quarter":"Q2","shot_type":"3PT","shot_quality":"Open"}`, &missing))
}

func TestDecodeAddPlayerRequestPosition(t *testing.T) {
	var req AddPlayerRequest
	require.NoError(t, decode(t, `{"player_name":"Sam Ortiz","jersey_number":"23","position":"PG"}`, &req))
	require.NoError(t, decode(t, `{"player_name":"Sam Ortiz","jersey_number":"23"}`, &req))
	assert.Error(t, decode(t, `{"player_name":"Sam Ortiz","jersey_number":"23","position":"GOALIE"}`, &req))
}
