package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestGetCalendarKnownMIC(t *testing.T) {
	tc := GetCalendar("xnys")
	require.NotNil(t, tc)
	assert.False(t, tc.Fallback)
}

// -----------------------------------------------------------------------------

func TestGetCalendarDefaultsToXNYS(t *testing.T) {
	tc := GetCalendar("")
	require.NotNil(t, tc)
	assert.False(t, tc.Fallback)
}

// -----------------------------------------------------------------------------

func TestFallbackWeekendsClosed(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	tc := &TradingCalendar{Fallback: true, Timezone: ny}

	saturday := time.Date(2025, 6, 7, 12, 0, 0, 0, ny)
	monday := time.Date(2025, 6, 9, 12, 0, 0, 0, ny)

	assert.False(t, tc.IsTradingDay(saturday))
	assert.True(t, tc.IsTradingDay(monday))
}

// -----------------------------------------------------------------------------

func TestFallbackSessionBounds(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	tc := &TradingCalendar{Fallback: true, Timezone: ny}

	day := time.Date(2025, 6, 9, 0, 0, 0, 0, ny) // a Monday

	assert.False(t, tc.IsOpenOnMinute(day.Add(9*time.Hour+29*time.Minute)))
	assert.True(t, tc.IsOpenOnMinute(day.Add(9*time.Hour+30*time.Minute)))
	assert.True(t, tc.IsOpenOnMinute(day.Add(15*time.Hour+59*time.Minute)))
	assert.False(t, tc.IsOpenOnMinute(day.Add(16*time.Hour)))
}
