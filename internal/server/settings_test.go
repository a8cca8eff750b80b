package server

import (
	"testing"

	"visadesk/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCadence(t *testing.T) {
	cadence, ok := parseCadence("weekly")
	require.True(t, ok)
	assert.Equal(t, types.CadenceWeekly, cadence)

	_, ok = parseCadence("fortnightly")
	assert.False(t, ok)
}

func TestParseThresholds(t *testing.T) {
	t.Run("normalizes descending and deduplicates", func(t *testing.T) {
		thresholds, err := parseThresholds("7, 30, 90, 30")
		require.NoError(t, err)
		assert.Equal(t, []int{90, 30, 7}, thresholds)
	})

	t.Run("empty input falls back to defaults", func(t *testing.T) {
		thresholds, err := parseThresholds("  ")
		require.NoError(t, err)
		assert.Equal(t, types.DefaultNotificationPreferences().ExpiryThresholds, thresholds)
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		_, err := parseThresholds("30, 0")
		assert.Error(t, err)

		_, err = parseThresholds("soon")
		assert.Error(t, err)
	})
}
