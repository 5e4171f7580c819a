package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPolicy(t *testing.T) {
	now := time.Date(2025, 10, 13, 15, 20, 0, 0, time.UTC)
	p := BookingPolicy{MinNoticeMinutes: 60, AdvanceBookingDays: 7}

	assert.Equal(t, time.UTC, p.Loc())
	assert.Equal(t, time.Date(2025, 10, 13, 16, 20, 0, 0, time.UTC), p.NoticeCutoff(now))

	assert.False(t, p.IsTooFarAhead(now.AddDate(0, 0, 7), now))
	assert.True(t, p.IsTooFarAhead(now.AddDate(0, 0, 8), now))

	p.AdvanceBookingDays = 0
	assert.False(t, p.IsTooFarAhead(now.AddDate(1, 0, 0), now))
}

func TestDateHelpers(t *testing.T) {
	now := time.Date(2025, 10, 13, 15, 20, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(now.AddDate(0, 0, -1), now))
	assert.False(t, IsDateInPast(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), now))

	assert.Equal(t, 0, DaysBetween(now, now))
	assert.Equal(t, 30, DaysBetween(now, now.AddDate(0, 0, 30)))
	assert.Equal(t, 0, DaysBetween(now, now.AddDate(0, 0, -3)))

	at, err := At(now, "09:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 9, 45, 0, 0, time.UTC), at)

	moscow := time.FixedZone("MSK", 3*60*60)
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, moscow), DateIn(now, moscow))

	_, err = At(now, "bad")
	assert.Error(t, err)
}
