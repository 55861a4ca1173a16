package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInterval(t *testing.T) {
	assert.True(t, IsValidInterval("Day"))
	assert.True(t, IsValidInterval("Hour"))
	assert.False(t, IsValidInterval("day"))
	assert.False(t, IsValidInterval("Fortnight"))
	assert.False(t, IsValidInterval(""))
}

func TestParseTimeRangeDefaults(t *testing.T) {
	start, end, err := ParseTimeRange("", "")
	require.NoError(t, err)
	assert.InDelta(t, 7*24*time.Hour, end.Sub(start), float64(time.Minute))
}

func TestParseTimeRangeExplicit(t *testing.T) {
	start, end, err := ParseTimeRange("2025-01-01T00:00:00Z", "2025-02-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.February, end.Month())

	_, _, err = ParseTimeRange("yesterday", "")
	assert.Error(t, err)
}
