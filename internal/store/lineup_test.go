package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineupNormalize(t *testing.T) {
	lineup := Lineup{5, 3, 1, 4, 2}

	normalized := lineup.Normalize()

	assert.Equal(t, Lineup{1, 2, 3, 4, 5}, normalized)
	// The original order is left untouched
	assert.Equal(t, Lineup{5, 3, 1, 4, 2}, lineup)
}

func TestLineupKeyIsOrderInsensitive(t *testing.T) {
	a := Lineup{5, 3, 1, 4, 2}
	b := Lineup{1, 2, 3, 4, 5}
	c := Lineup{1, 2, 3, 4, 6}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestLineupValueScanRoundTrip(t *testing.T) {
	lineup := Lineup{12, 4, 23, 7, 31}

	value, err := lineup.Value()
	require.NoError(t, err)
	assert.Equal(t, "[4,7,12,23,31]", value)

	var scanned Lineup
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, Lineup{4, 7, 12, 23, 31}, scanned)
}

func TestLineupScanBytes(t *testing.T) {
	var lineup Lineup
	require.NoError(t, lineup.Scan([]byte("[1,2,3]")))
	assert.Equal(t, Lineup{1, 2, 3}, lineup)
}

func TestLineupScanNil(t *testing.T) {
	lineup := Lineup{1}
	require.NoError(t, lineup.Scan(nil))
	assert.Nil(t, lineup)
}

func TestLineupScanRejectsUnknownType(t *testing.T) {
	var lineup Lineup
	assert.Error(t, lineup.Scan(42))
}
