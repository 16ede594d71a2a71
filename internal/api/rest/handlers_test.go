package rest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    int
		wantErr bool
	}{
		{
			name:   "absent parameter means no filter",
			target: "/api/v1/analytics/shooting",
			want:   0,
		},
		{
			name:   "valid parameter",
			target: "/api/v1/analytics/shooting?game=12",
			want:   12,
		},
		{
			name:    "unparsable parameter is rejected, not ignored",
			target:  "/api/v1/analytics/shooting?game=abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)

			got, err := queryInt(r, "game")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
