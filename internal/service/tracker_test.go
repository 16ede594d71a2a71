package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapmjs/bball-tracker/internal/store"
)

func TestNormalizeOutcome(t *testing.T) {
	tests := []struct {
		name        string
		outcome     string
		failureType string
		want        string
		wantErr     error
	}{
		{
			name:    "good outcome keeps no reason",
			outcome: store.OutcomeGood,
		},
		{
			name:        "good outcome drops a stray reason",
			outcome:     store.OutcomeGood,
			failureType: store.FailureTurnover,
		},
		{
			name:        "neutral outcome drops a stray reason",
			outcome:     store.OutcomeNeutral,
			failureType: store.FailureBadProcess,
		},
		{
			name:        "failed outcome keeps its reason",
			outcome:     store.OutcomeFailed,
			failureType: store.FailureShotSelection,
			want:        store.FailureShotSelection,
		},
		{
			name:    "failed outcome without a reason is rejected",
			outcome: store.OutcomeFailed,
			wantErr: ErrMissingFailureReason,
		},
		{
			name:        "failed outcome with an unknown reason is rejected",
			outcome:     store.OutcomeFailed,
			failureType: "Bad_Luck",
			wantErr:     ErrInvalidFailureReason,
		},
		{
			name:    "unknown outcome is rejected",
			outcome: "MEDIOCRE",
			wantErr: ErrInvalidOutcome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failureType sql.NullString
			if tt.failureType != "" {
				failureType = sql.NullString{String: tt.failureType, Valid: true}
			}

			got, err := normalizeOutcome(tt.outcome, failureType)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.want == "" {
				assert.False(t, got.Valid)
			} else {
				assert.True(t, got.Valid)
				assert.Equal(t, tt.want, got.String)
			}
		})
	}
}
